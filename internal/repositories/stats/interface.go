package stats

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/mafiabot/internal/repositories/stats Repository

import (
	"context"

	"github.com/KirkDiggler/mafiabot/internal/models"
)

// Repository defines the interface for per-chat player records
type Repository interface {
	// RecordResults adds the outcome of a finished session to every player's record
	RecordResults(ctx context.Context, input *RecordResultsInput) error

	// GetPlayerStats retrieves one player's record in a chat
	GetPlayerStats(ctx context.Context, input *GetPlayerStatsInput) (*models.PlayerStats, error)

	// GetChatStats retrieves the records of every player of a chat
	GetChatStats(ctx context.Context, input *GetChatStatsInput) (*GetChatStatsOutput, error)
}
