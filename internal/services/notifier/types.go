package notifier

import "github.com/KirkDiggler/mafiabot/internal/models"

type SendMessageInput struct {
	ChatID string
	Text   string

	// Keyboard is optional
	Keyboard *models.Keyboard
}

type SendMessageOutput struct {
	// MessageRef is the opaque handle used to edit the message later
	MessageRef string
}

type EditMessageInput struct {
	ChatID     string
	MessageRef string
	Text       string

	// Keyboard replaces the buttons; nil removes them
	Keyboard *models.Keyboard
}
