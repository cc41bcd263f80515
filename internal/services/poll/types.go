package poll

import (
	"github.com/KirkDiggler/mafiabot/internal/common/clock"
	"github.com/KirkDiggler/mafiabot/internal/common/uuid"
	"github.com/KirkDiggler/mafiabot/internal/models"
	pollRepo "github.com/KirkDiggler/mafiabot/internal/repositories/poll"
	"github.com/KirkDiggler/mafiabot/internal/services/game"
	"github.com/KirkDiggler/mafiabot/internal/services/messaging"
	"github.com/KirkDiggler/mafiabot/internal/services/notifier"
	"github.com/rs/zerolog"
)

// Config holds configuration for the poll service
type Config struct {
	Logger zerolog.Logger

	PollRepo pollRepo.Repository

	GameService   game.Service
	Notifier      notifier.Notifier
	Messaging     messaging.Service
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

type OpenInput struct {
	ChatID    string
	Type      models.PollType
	Initiator models.User
}

type OpenOutput struct {
	Poll *models.Poll

	// Passed is set when the initiator's vote alone reached quorum
	Passed bool
}

type VoteInput struct {
	ChatID string
	Type   models.PollType
	Voter  models.User
}

type VoteOutput struct {
	Poll   *models.Poll
	Passed bool
}
