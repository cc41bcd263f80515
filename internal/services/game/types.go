package game

import (
	"time"

	"github.com/KirkDiggler/mafiabot/internal/common/clock"
	"github.com/KirkDiggler/mafiabot/internal/common/uuid"
	"github.com/KirkDiggler/mafiabot/internal/deck"
	"github.com/KirkDiggler/mafiabot/internal/models"
	lobbyRepo "github.com/KirkDiggler/mafiabot/internal/repositories/lobby"
	sessionRepo "github.com/KirkDiggler/mafiabot/internal/repositories/session"
	statsRepo "github.com/KirkDiggler/mafiabot/internal/repositories/stats"
	"github.com/KirkDiggler/mafiabot/internal/services/messaging"
	"github.com/KirkDiggler/mafiabot/internal/services/notifier"
	"github.com/rs/zerolog"
)

// Trigger is what asked a stage to end
type Trigger string

const (
	// TriggerTimer is the scheduler noticing an elapsed deadline
	TriggerTimer Trigger = "timer"

	// TriggerCompletion is the last required participant acting
	TriggerCompletion Trigger = "completion"

	// TriggerPoll is a skip poll reaching quorum
	TriggerPoll Trigger = "poll"
)

// End reasons
const (
	ReasonForcedByVote   = "forced by vote"
	ReasonStateCorrupted = "state corruption"
	ReasonMafiaWins      = "mafia wins"
	ReasonPeaceWins      = "peace wins"
)

// DefaultDurations are the stage lengths used when no override is configured
var DefaultDurations = map[models.Stage]time.Duration{
	models.StageCardReveal:   60 * time.Second,
	models.StageAcquaintance: 20 * time.Second,
	models.StageDonOrder:     60 * time.Second,
	models.StageDay:          120 * time.Second,
	models.StageVote:         60 * time.Second,
	models.StageShooting:     30 * time.Second,
	models.StageDonCheck:     20 * time.Second,
	models.StageSheriffCheck: 20 * time.Second,
}

// Config holds configuration for the game service
type Config struct {
	// Durations overrides the default stage lengths
	Durations map[models.Stage]time.Duration

	// AdminID is the only user allowed to reset every game
	AdminID string

	Logger zerolog.Logger

	// Repository dependencies
	SessionRepo sessionRepo.Repository
	LobbyRepo   lobbyRepo.Repository
	StatsRepo   statsRepo.Repository

	// Service dependencies
	Notifier      notifier.Notifier
	Messaging     messaging.Service
	Dealer        deck.Dealer
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// NewSessionInput contains the signed up players of a lobby being promoted
type NewSessionInput struct {
	ID      string
	ChatID  string
	OwnerID string
	Players []models.User
}

type NewSessionOutput struct {
	Session *models.Session
}

// AnnounceInput contains the session whose current stage should be announced
type AnnounceInput struct {
	Session *models.Session
}

// ApplyActionInput contains a participant's action
type ApplyActionInput struct {
	ChatID string
	Actor  models.User
	Action models.Action
}

// ApplyActionOutput contains the reply to the actor
type ApplyActionOutput struct {
	// Reply is shown to the actor only
	Reply string

	// Alert marks replies holding secrets
	Alert bool

	// Session is the state after the action
	Session *models.Session
}

// AdvanceInput identifies the stage instance that should end
type AdvanceInput struct {
	ChatID   string
	StageSeq int
	Trigger  Trigger
}

// AdvanceOutput contains the result of a transition attempt
type AdvanceOutput struct {
	// Advanced is false when another trigger already ended the stage instance
	Advanced bool

	// Ended is set when the transition finished the game
	Ended bool

	Session    *models.Session
	Resolution *models.Resolution
}

type ExpireDueInput struct {
	Now time.Time
}

type ExpireDueOutput struct {
	// Advanced counts the sessions moved to their next stage
	Advanced int
}

type TerminateInput struct {
	ChatID string
	Reason string
}

type TerminateOutput struct {
	Session *models.Session
}

type ResetInput struct {
	RequesterID string
}

type ResetOutput struct {
	Sessions int
	Lobbies  int
}

type GetSessionInput struct {
	ChatID string
}

type GetSessionOutput struct {
	Session *models.Session
}
