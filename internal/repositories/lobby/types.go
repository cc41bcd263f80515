package lobby

import (
	"time"

	"github.com/KirkDiggler/mafiabot/internal/models"
)

type CreateLobbyInput struct {
	Lobby *models.Lobby
}

type GetLobbyInput struct {
	ChatID string
}

type UpdateLobbyInput struct {
	ChatID string

	// Apply mutates the current lobby; returning an error aborts without writing
	Apply func(lobby *models.Lobby) error
}

type DeleteLobbyInput struct {
	ChatID string

	// Check may reject the deletion; a nil Check always deletes
	Check func(lobby *models.Lobby) error
}

type PromoteLobbyInput struct {
	ChatID string

	// Build turns the lobby into a session or rejects the promotion
	Build func(lobby *models.Lobby) (*models.Session, error)
}

type GetExpiredLobbiesInput struct {
	Now time.Time
}

type GetExpiredLobbiesOutput struct {
	ChatIDs []string
}

type DeleteAllLobbiesInput struct {
}

type DeleteAllLobbiesOutput struct {
	Deleted int
}
