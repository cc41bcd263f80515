package lobby

import (
	"time"

	"github.com/KirkDiggler/mafiabot/internal/common/clock"
	"github.com/KirkDiggler/mafiabot/internal/common/uuid"
	"github.com/KirkDiggler/mafiabot/internal/models"
	lobbyRepo "github.com/KirkDiggler/mafiabot/internal/repositories/lobby"
	"github.com/KirkDiggler/mafiabot/internal/services/game"
	"github.com/KirkDiggler/mafiabot/internal/services/messaging"
	"github.com/KirkDiggler/mafiabot/internal/services/notifier"
	"github.com/rs/zerolog"
)

const (
	DefaultPlayersMin = 4
	DefaultPlayersMax = 20
	DefaultTTL        = 10 * time.Minute

	// PlayersLimit is the largest table whose vote buttons, one per player
	// plus abstain, fit on a single chat message
	PlayersLimit = 24
)

// Config holds configuration for the lobby service
type Config struct {
	// PlayersMin and PlayersMax bound the signup list
	PlayersMin int
	PlayersMax int

	// TTL is how long a signup stays open after its last join
	TTL time.Duration

	Logger zerolog.Logger

	LobbyRepo lobbyRepo.Repository

	GameService   game.Service
	Notifier      notifier.Notifier
	Messaging     messaging.Service
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

type OpenInput struct {
	ChatID string
	Owner  models.User
}

type OpenOutput struct {
	Lobby *models.Lobby
}

type ToggleInput struct {
	ChatID string
	User   models.User
}

type ToggleOutput struct {
	Lobby *models.Lobby

	// Joined is false when the user left the list
	Joined bool
}

type CancelInput struct {
	ChatID      string
	RequesterID string
}

type CancelOutput struct {
	Lobby *models.Lobby
}

type PromoteInput struct {
	ChatID      string
	RequesterID string
}

type PromoteOutput struct {
	Session *models.Session
}

type ExpireDueInput struct {
	Now time.Time
}

type ExpireDueOutput struct {
	// Expired counts the closed signups
	Expired int
}
