package game

import "errors"

// GameError is a rejection of a participant's request. Its text is shown to
// the acting participant only and it is never logged as a fault.
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Rejections
const (
	ErrNoSession       GameError = "no game is running in this chat"
	ErrWrongStage      GameError = "this is not available at the current stage"
	ErrNotAPlayer      GameError = "you are not playing in this game"
	ErrWrongRole       GameError = "your role cannot do this"
	ErrNotAlive        GameError = "you are out of the game"
	ErrAlreadyActed    GameError = "you already made your move this stage"
	ErrInvalidTarget   GameError = "that player cannot be chosen"
	ErrUnknownAction   GameError = "unknown action"
	ErrNotAdmin        GameError = "only the bot admin can do this"
	ErrAlreadyInOrder  GameError = "that player is already in the order"
	ErrTargetIsYou     GameError = "you cannot choose yourself"
	ErrSessionFinished GameError = "the game is already over"
)

// ErrStateCorruption marks a session whose invariants no longer hold. The
// session is terminated as soon as it is detected.
var ErrStateCorruption = errors.New("state corruption")

// Configuration errors
var (
	ErrNilConfig        = errors.New("config cannot be nil")
	ErrNilSessionRepo   = errors.New("session repository cannot be nil")
	ErrNilLobbyRepo     = errors.New("lobby repository cannot be nil")
	ErrNilStatsRepo     = errors.New("stats repository cannot be nil")
	ErrNilNotifier      = errors.New("notifier cannot be nil")
	ErrNilMessaging     = errors.New("messaging service cannot be nil")
	ErrNilDealer        = errors.New("dealer cannot be nil")
	ErrNilClock         = errors.New("clock cannot be nil")
	ErrNilUUIDGenerator = errors.New("UUID generator cannot be nil")
)

// IsRejection reports whether err rejects a request because a game rule or
// capacity limit does not allow it, as opposed to a system failure
func IsRejection(err error) bool {
	var gameErr GameError
	return errors.As(err, &gameErr)
}

// internal outcomes of a conditional transition that are not errors for the caller
var (
	errStageMoved  = errors.New("stage instance already resolved")
	errNotDue      = errors.New("stage deadline not reached")
	errNotComplete = errors.New("stage requirements not met")
)
