package lobby

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/mafiabot/internal/repositories/lobby Repository

import (
	"context"

	"github.com/KirkDiggler/mafiabot/internal/models"
)

// Repository defines the interface for lobby persistence
type Repository interface {
	// CreateLobby inserts a lobby, failing if the chat has a lobby or a running session
	CreateLobby(ctx context.Context, input *CreateLobbyInput) error

	// GetLobby retrieves the lobby of a chat
	GetLobby(ctx context.Context, input *GetLobbyInput) (*models.Lobby, error)

	// UpdateLobby atomically applies a conditional mutation and returns the post-image
	UpdateLobby(ctx context.Context, input *UpdateLobbyInput) (*models.Lobby, error)

	// DeleteLobby atomically removes the lobby if the check passes and returns it
	DeleteLobby(ctx context.Context, input *DeleteLobbyInput) (*models.Lobby, error)

	// PromoteLobby atomically replaces the lobby with the session built from it
	PromoteLobby(ctx context.Context, input *PromoteLobbyInput) (*models.Session, error)

	// GetExpiredLobbies lists the chats whose lobby deadline has passed
	GetExpiredLobbies(ctx context.Context, input *GetExpiredLobbiesInput) (*GetExpiredLobbiesOutput, error)

	// DeleteAllLobbies removes every lobby
	DeleteAllLobbies(ctx context.Context, input *DeleteAllLobbiesInput) (*DeleteAllLobbiesOutput, error)
}
