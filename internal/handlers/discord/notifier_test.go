package discord

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mafiabot/internal/models"
	"github.com/KirkDiggler/mafiabot/internal/services/notifier"
)

// fakeMessenger records the messages it is asked to send or edit
type fakeMessenger struct {
	sent    []*discordgo.MessageSend
	edits   []*discordgo.MessageEdit
	sendErr error
}

func (f *fakeMessenger) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, data)
	return &discordgo.Message{ID: "msg-1", ChannelID: channelID}, nil
}

func (f *fakeMessenger) ChannelMessageEditComplex(m *discordgo.MessageEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.edits = append(f.edits, m)
	return &discordgo.Message{ID: m.ID, ChannelID: m.Channel}, nil
}

type NotifierTestSuite struct {
	suite.Suite
	messenger *fakeMessenger
	notifier  *Notifier
	ctx       context.Context
}

func (s *NotifierTestSuite) SetupTest() {
	s.messenger = &fakeMessenger{}
	s.notifier = &Notifier{session: s.messenger}
	s.ctx = context.Background()
}

func TestNotifierSuite(t *testing.T) {
	suite.Run(t, new(NotifierTestSuite))
}

func (s *NotifierTestSuite) TestSendMessageReturnsRef() {
	out, err := s.notifier.SendMessage(s.ctx, &notifier.SendMessageInput{
		ChatID: "chan-1",
		Text:   "Signup is open.",
		Keyboard: &models.Keyboard{Rows: [][]models.Button{{
			{Label: "Join / Leave", Action: models.Action{Kind: models.ActionLobbyToggle}},
		}}},
	})
	s.Require().NoError(err)
	s.Equal("msg-1", out.MessageRef)

	s.Require().Len(s.messenger.sent, 1)
	s.Equal("Signup is open.", s.messenger.sent[0].Content)
	s.Len(s.messenger.sent[0].Components, 1)
}

func (s *NotifierTestSuite) TestSendMessageWrapsError() {
	s.messenger.sendErr = errors.New("unknown channel")

	_, err := s.notifier.SendMessage(s.ctx, &notifier.SendMessageInput{ChatID: "chan-1", Text: "hi"})
	s.ErrorIs(err, s.messenger.sendErr)
}

func (s *NotifierTestSuite) TestEditMessage() {
	err := s.notifier.EditMessage(s.ctx, &notifier.EditMessageInput{
		ChatID:     "chan-1",
		MessageRef: "msg-9",
		Text:       "Day 2",
	})
	s.Require().NoError(err)

	s.Require().Len(s.messenger.edits, 1)
	s.Equal("msg-9", s.messenger.edits[0].ID)
	s.Equal("Day 2", *s.messenger.edits[0].Content)
}

func (s *NotifierTestSuite) TestEditMessageRequiresRef() {
	err := s.notifier.EditMessage(s.ctx, &notifier.EditMessageInput{ChatID: "chan-1", Text: "Day 2"})
	s.Error(err)
}
