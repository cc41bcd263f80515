package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/mafiabot/internal/repositories/session Repository

import (
	"context"

	"github.com/KirkDiggler/mafiabot/internal/models"
)

// Repository defines the interface for session persistence
type Repository interface {
	// CreateSession inserts a session, failing if the chat already has one
	CreateSession(ctx context.Context, input *CreateSessionInput) error

	// GetSession retrieves the session of a chat
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// UpdateSession atomically applies a conditional mutation and returns the post-image
	UpdateSession(ctx context.Context, input *UpdateSessionInput) (*UpdateSessionOutput, error)

	// GetDueSessions lists the chats whose stage deadline has passed
	GetDueSessions(ctx context.Context, input *GetDueSessionsInput) (*GetDueSessionsOutput, error)

	// DeleteAllSessions removes every session and poll
	DeleteAllSessions(ctx context.Context, input *DeleteAllSessionsInput) (*DeleteAllSessionsOutput, error)
}
