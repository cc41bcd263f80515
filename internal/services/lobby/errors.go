package lobby

import (
	"errors"

	"github.com/KirkDiggler/mafiabot/internal/services/game"
)

// Rejections
const (
	ErrLobbyExists      game.GameError = "a signup is already open in this chat"
	ErrGameRunning      game.GameError = "a game is already running in this chat"
	ErrNoLobby          game.GameError = "there is no open signup in this chat"
	ErrNotOwner         game.GameError = "only the organiser can do this"
	ErrOwnerCannotLeave game.GameError = "the organiser cannot leave, cancel the signup instead"
	ErrNotEnoughPlayers game.GameError = "not enough players to start"

	// ErrLobbyFull is the capacity rejection of a join
	ErrLobbyFull game.GameError = "the game is full"
)

// Configuration errors
var (
	ErrNilConfig        = errors.New("config cannot be nil")
	ErrNilLobbyRepo     = errors.New("lobby repository cannot be nil")
	ErrNilGameService   = errors.New("game service cannot be nil")
	ErrNilNotifier      = errors.New("notifier cannot be nil")
	ErrNilMessaging     = errors.New("messaging service cannot be nil")
	ErrNilClock         = errors.New("clock cannot be nil")
	ErrNilUUIDGenerator = errors.New("UUID generator cannot be nil")
	ErrInvalidLimits    = errors.New("player limits are invalid")
)

var errNotExpired = errors.New("lobby deadline was extended")
