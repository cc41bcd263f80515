package notifier

//go:generate mockgen -package=mocks -destination=mocks/mock_notifier.go github.com/KirkDiggler/mafiabot/internal/services/notifier Notifier

import "context"

// Notifier delivers messages to a chat. Game logic never depends on delivery
// for correctness: failures are logged and the game goes on.
type Notifier interface {
	// SendMessage posts a message and returns its handle
	SendMessage(ctx context.Context, input *SendMessageInput) (*SendMessageOutput, error)

	// EditMessage replaces the text and keyboard of a posted message
	EditMessage(ctx context.Context, input *EditMessageInput) error
}
