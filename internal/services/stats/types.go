package stats

import (
	"github.com/KirkDiggler/mafiabot/internal/models"
	statsRepo "github.com/KirkDiggler/mafiabot/internal/repositories/stats"
	"github.com/rs/zerolog"
)

// DefaultRatingLimit is the length of the rating table
const DefaultRatingLimit = 5

// Config holds configuration for the stats service
type Config struct {
	Logger    zerolog.Logger
	StatsRepo statsRepo.Repository
}

type GetPlayerStatsInput struct {
	ChatID   string
	PlayerID string
}

type GetPlayerStatsOutput struct {
	// Stats is nil when the player never finished a game in the chat
	Stats *models.PlayerStats
}

type GetRatingInput struct {
	ChatID string

	// Limit defaults to DefaultRatingLimit
	Limit int
}

type GetRatingOutput struct {
	Entries []*models.RatingEntry
}
