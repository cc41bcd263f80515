package messaging

import (
	"time"

	"github.com/KirkDiggler/mafiabot/internal/models"
)

// LobbyClosedReason tells why a signup message is closed
type LobbyClosedReason string

const (
	LobbyClosedCancelled LobbyClosedReason = "cancelled"
	LobbyClosedExpired   LobbyClosedReason = "expired"
	LobbyClosedStarted   LobbyClosedReason = "started"
)

// ServiceConfig holds configuration for the messaging service
type ServiceConfig struct {
	// Optional seed for the flavour text picker
	Seed int64
}

// GetStageMessageInput contains parameters for the status message
type GetStageMessageInput struct {
	Session *models.Session

	// Resolution of the stage that just ended, nil for the first stage
	Resolution *models.Resolution
}

type GetStageMessageOutput struct {
	Text string
}

type GetGameOverMessageInput struct {
	Session *models.Session
}

type GetGameOverMessageOutput struct {
	Text string
}

// GetActionReplyInput describes an accepted action, read from the post-update session
type GetActionReplyInput struct {
	Kind    models.ActionKind
	Session *models.Session
	Actor   *models.Player
	Target  int
}

type GetActionReplyOutput struct {
	Text string

	// Alert marks replies holding secrets, shown as a popup
	Alert bool
}

type GetLobbyMessageInput struct {
	Lobby      *models.Lobby
	PlayersMin int
	PlayersMax int
}

type GetLobbyMessageOutput struct {
	Text string
}

type GetLobbyClosedMessageInput struct {
	Lobby  *models.Lobby
	Reason LobbyClosedReason
}

type GetLobbyClosedMessageOutput struct {
	Text string
}

type GetPollMessageInput struct {
	Poll *models.Poll
}

type GetPollMessageOutput struct {
	Text string
}

type GetStatsMessageInput struct {
	PlayerName string

	// Stats is nil when the player has no finished games in the chat
	Stats *models.PlayerStats
}

type GetStatsMessageOutput struct {
	Text string
}

type GetRatingMessageInput struct {
	Entries []*models.RatingEntry
}

type GetRatingMessageOutput struct {
	Text string
}

// GetErrorMessageInput contains the error to describe
type GetErrorMessageInput struct {
	Err error

	// Rejection marks errors whose text is meant for the acting player
	Rejection bool
}

type GetErrorMessageOutput struct {
	Text string
}

// deadlineLayout formats stage deadlines in status messages
const deadlineLayout = time.Kitchen
