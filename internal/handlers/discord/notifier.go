package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/mafiabot/internal/services/notifier"
)

// channelMessenger is the part of *discordgo.Session the notifier needs
type channelMessenger interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ notifier.Notifier = (*Notifier)(nil)

// Notifier posts and edits channel messages. Chat IDs are channel IDs and
// message refs are message IDs.
type Notifier struct {
	session channelMessenger
}

// NewNotifier creates a notifier on top of a Discord session
func NewNotifier(session *discordgo.Session) (*Notifier, error) {
	if session == nil {
		return nil, errors.New("session cannot be nil")
	}
	return &Notifier{session: session}, nil
}

func (n *Notifier) SendMessage(ctx context.Context, input *notifier.SendMessageInput) (*notifier.SendMessageOutput, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	msg, err := n.session.ChannelMessageSendComplex(input.ChatID, renderSend(input.Text, input.Keyboard), discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to send message to %s: %w", input.ChatID, err)
	}

	return &notifier.SendMessageOutput{
		MessageRef: msg.ID,
	}, nil
}

func (n *Notifier) EditMessage(ctx context.Context, input *notifier.EditMessageInput) error {
	if input == nil || input.ChatID == "" || input.MessageRef == "" {
		return errors.New("input, chat ID and message ref cannot be empty")
	}

	_, err := n.session.ChannelMessageEditComplex(
		renderEdit(input.ChatID, input.MessageRef, input.Text, input.Keyboard),
		discordgo.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to edit message %s: %w", input.MessageRef, err)
	}

	return nil
}
