package stats

import "github.com/KirkDiggler/mafiabot/internal/models"

// RecordResultsInput contains the outcome of a finished session
type RecordResultsInput struct {
	ChatID  string
	Results []*models.PlayerResult
}

// GetPlayerStatsInput contains parameters for retrieving a player's record
type GetPlayerStatsInput struct {
	ChatID   string
	PlayerID string
}

// GetChatStatsInput contains parameters for retrieving a chat's records
type GetChatStatsInput struct {
	ChatID string
}

// GetChatStatsOutput contains every record of a chat
type GetChatStatsOutput struct {
	Stats []*models.PlayerStats
}
