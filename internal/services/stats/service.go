package stats

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/KirkDiggler/mafiabot/internal/models"
	statsRepo "github.com/KirkDiggler/mafiabot/internal/repositories/stats"
	"github.com/rs/zerolog"
)

// ErrNilStatsRepo is returned by New without a repository
var ErrNilStatsRepo = errors.New("stats repository cannot be nil")

// service implements the Service interface
type service struct {
	logger    zerolog.Logger
	statsRepo statsRepo.Repository
}

// New creates a new stats service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.StatsRepo == nil {
		return nil, ErrNilStatsRepo
	}

	return &service{
		logger:    cfg.Logger.With().Str("service", "stats").Logger(),
		statsRepo: cfg.StatsRepo,
	}, nil
}

// GetPlayerStats returns one player's record in a chat
func (s *service) GetPlayerStats(ctx context.Context, input *GetPlayerStatsInput) (*GetPlayerStatsOutput, error) {
	if input == nil || input.ChatID == "" || input.PlayerID == "" {
		return nil, errors.New("input, chat ID and player ID cannot be empty")
	}

	stats, err := s.statsRepo.GetPlayerStats(ctx, &statsRepo.GetPlayerStatsInput{
		ChatID:   input.ChatID,
		PlayerID: input.PlayerID,
	})
	if err != nil {
		if errors.Is(err, statsRepo.ErrStatsNotFound) {
			return &GetPlayerStatsOutput{}, nil
		}
		return nil, err
	}

	return &GetPlayerStatsOutput{
		Stats: stats,
	}, nil
}

// GetRating ranks the players of a chat by score. Equal scores share a place
// and are listed by name.
func (s *service) GetRating(ctx context.Context, input *GetRatingInput) (*GetRatingOutput, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultRatingLimit
	}

	out, err := s.statsRepo.GetChatStats(ctx, &statsRepo.GetChatStatsInput{
		ChatID: input.ChatID,
	})
	if err != nil {
		return nil, err
	}

	players := slices.Clone(out.Stats)
	slices.SortFunc(players, func(a, b *models.PlayerStats) int {
		if c := cmp.Compare(b.Score(), a.Score()); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerName, b.PlayerName)
	})

	if len(players) > limit {
		players = players[:limit]
	}

	entries := make([]*models.RatingEntry, len(players))
	for i, p := range players {
		place := i + 1
		if i > 0 && p.Score() == players[i-1].Score() {
			place = entries[i-1].Place
		}
		entries[i] = &models.RatingEntry{
			Place:      place,
			PlayerName: p.PlayerName,
			Score:      p.Score(),
		}
	}

	s.logger.Debug().Str("chat_id", input.ChatID).Int("entries", len(entries)).Msg("rating built")

	return &GetRatingOutput{
		Entries: entries,
	}, nil
}
