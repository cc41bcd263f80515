package poll

import (
	"errors"

	"github.com/KirkDiggler/mafiabot/internal/services/game"
)

// Rejections
const (
	ErrPollRunning  game.GameError = "a poll like this is already running"
	ErrNoPoll       game.GameError = "this poll is already closed"
	ErrNotEligible  game.GameError = "polls are not available at the current stage"
	ErrAlreadyVoted game.GameError = "you already voted in this poll"
	ErrUnknownType  game.GameError = "unknown poll"
)

// Configuration errors
var (
	ErrNilConfig        = errors.New("config cannot be nil")
	ErrNilPollRepo      = errors.New("poll repository cannot be nil")
	ErrNilGameService   = errors.New("game service cannot be nil")
	ErrNilNotifier      = errors.New("notifier cannot be nil")
	ErrNilMessaging     = errors.New("messaging service cannot be nil")
	ErrNilClock         = errors.New("clock cannot be nil")
	ErrNilUUIDGenerator = errors.New("UUID generator cannot be nil")
)
