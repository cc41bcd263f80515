package stats

import "context"

// Service reads the per-chat records of finished games
type Service interface {
	// GetPlayerStats returns one player's record, empty if they never finished a game
	GetPlayerStats(ctx context.Context, input *GetPlayerStatsInput) (*GetPlayerStatsOutput, error)

	// GetRating returns the best players of a chat by score
	GetRating(ctx context.Context, input *GetRatingInput) (*GetRatingOutput, error)
}
