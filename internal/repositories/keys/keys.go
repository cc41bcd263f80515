package keys

import (
	"fmt"

	"github.com/KirkDiggler/mafiabot/internal/models"
)

const (
	// SessionDeadlines is the sorted set of chat IDs scored by their next stage deadline
	SessionDeadlines = "session_deadlines"

	// LobbyDeadlines is the sorted set of chat IDs scored by their lobby expiry
	LobbyDeadlines = "lobby_deadlines"

	sessionKeyPrefix = "session:"
	lobbyKeyPrefix   = "lobby:"
	pollKeyPrefix    = "poll:"
	statsKeyPrefix   = "stats:"
)

// Session is the key of the running session of a chat
func Session(chatID string) string {
	return sessionKeyPrefix + chatID
}

// SessionPattern matches every session key
func SessionPattern() string {
	return sessionKeyPrefix + "*"
}

// Lobby is the key of the open lobby of a chat
func Lobby(chatID string) string {
	return lobbyKeyPrefix + chatID
}

// LobbyPattern matches every lobby key
func LobbyPattern() string {
	return lobbyKeyPrefix + "*"
}

// Poll is the key of the poll of the given type in a chat
func Poll(chatID string, pollType models.PollType) string {
	return fmt.Sprintf("%s%s:%s", pollKeyPrefix, chatID, pollType)
}

// Polls returns the keys of every poll type of a chat
func Polls(chatID string) []string {
	return []string{Poll(chatID, models.PollTypeSkip), Poll(chatID, models.PollTypeEnd)}
}

// PollPattern matches every poll key
func PollPattern() string {
	return pollKeyPrefix + "*"
}

// PlayerStats is the hash holding one player's record in a chat
func PlayerStats(chatID, playerID string) string {
	return fmt.Sprintf("%s%s:%s", statsKeyPrefix, chatID, playerID)
}

// ChatPlayers is the set of player IDs with a record in a chat
func ChatPlayers(chatID string) string {
	return fmt.Sprintf("%s%s:players", statsKeyPrefix, chatID)
}
