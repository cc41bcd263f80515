package poll

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/mafiabot/internal/repositories/poll Repository

import (
	"context"

	"github.com/KirkDiggler/mafiabot/internal/models"
)

// Repository defines the interface for quorum poll persistence
type Repository interface {
	// CreatePoll inserts a poll built against the current session, failing if one of that type exists
	CreatePoll(ctx context.Context, input *CreatePollInput) (*models.Poll, error)

	// GetPoll retrieves a poll of a chat by type
	GetPoll(ctx context.Context, input *GetPollInput) (*models.Poll, error)

	// VotePoll atomically applies a vote against the poll and the current session
	VotePoll(ctx context.Context, input *VotePollInput) (*models.Poll, error)

	// UpdatePollMessage stores the notifier handle of the poll message if the poll still exists
	UpdatePollMessage(ctx context.Context, input *UpdatePollMessageInput) error
}
