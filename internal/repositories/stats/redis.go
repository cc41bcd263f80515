package stats

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/mafiabot/internal/models"
	"github.com/KirkDiggler/mafiabot/internal/repositories/keys"
	"github.com/redis/go-redis/v9"
)

const (
	fieldName  = "name"
	fieldTotal = "total"
	fieldWins  = "wins"
	rolePrefix = "role:"
	roleTotal  = ":total"
	roleWins   = ":wins"
)

// ErrStatsNotFound is returned when a player has no record in a chat
var ErrStatsNotFound = errors.New("stats not found")

// Config holds configuration for the Redis stats repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis hashes
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed stats repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// RecordResults increments the counters of every player in one MULTI/EXEC block
func (r *redisRepository) RecordResults(ctx context.Context, input *RecordResultsInput) error {
	if input == nil || input.ChatID == "" {
		return errors.New("input and chat ID cannot be empty")
	}

	if len(input.Results) == 0 {
		return nil
	}

	pipe := r.client.TxPipeline()
	for _, result := range input.Results {
		if result.PlayerID == "" {
			return errors.New("player ID cannot be empty")
		}

		key := keys.PlayerStats(input.ChatID, result.PlayerID)
		pipe.HSet(ctx, key, fieldName, result.PlayerName)
		pipe.HIncrBy(ctx, key, fieldTotal, 1)
		pipe.HIncrBy(ctx, key, rolePrefix+string(result.Role)+roleTotal, 1)
		if result.Won {
			pipe.HIncrBy(ctx, key, fieldWins, 1)
			pipe.HIncrBy(ctx, key, rolePrefix+string(result.Role)+roleWins, 1)
		}
		pipe.SAdd(ctx, keys.ChatPlayers(input.ChatID), result.PlayerID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record results: %w", err)
	}

	return nil
}

// GetPlayerStats retrieves one player's record in a chat
func (r *redisRepository) GetPlayerStats(ctx context.Context, input *GetPlayerStatsInput) (*models.PlayerStats, error) {
	if input == nil || input.ChatID == "" || input.PlayerID == "" {
		return nil, errors.New("input, chat ID and player ID cannot be empty")
	}

	fields, err := r.client.HGetAll(ctx, keys.PlayerStats(input.ChatID, input.PlayerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrStatsNotFound
	}

	return parse(input.PlayerID, fields)
}

// GetChatStats retrieves every record of a chat using a single pipeline
func (r *redisRepository) GetChatStats(ctx context.Context, input *GetChatStatsInput) (*GetChatStatsOutput, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	playerIDs, err := r.client.SMembers(ctx, keys.ChatPlayers(input.ChatID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get chat players: %w", err)
	}

	if len(playerIDs) == 0 {
		return &GetChatStatsOutput{
			Stats: []*models.PlayerStats{},
		}, nil
	}

	pipe := r.client.Pipeline()
	commands := make(map[string]*redis.MapStringStringCmd, len(playerIDs))
	for _, playerID := range playerIDs {
		commands[playerID] = pipe.HGetAll(ctx, keys.PlayerStats(input.ChatID, playerID))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to get chat stats: %w", err)
	}

	out := make([]*models.PlayerStats, 0, len(playerIDs))
	for playerID, cmd := range commands {
		fields, err := cmd.Result()
		if err != nil {
			return nil, fmt.Errorf("failed to get stats for %s: %w", playerID, err)
		}
		if len(fields) == 0 {
			continue
		}

		stats, err := parse(playerID, fields)
		if err != nil {
			return nil, err
		}
		out = append(out, stats)
	}

	return &GetChatStatsOutput{
		Stats: out,
	}, nil
}

func parse(playerID string, fields map[string]string) (*models.PlayerStats, error) {
	stats := &models.PlayerStats{
		PlayerID:   playerID,
		PlayerName: fields[fieldName],
		ByRole:     map[models.Role]models.RoleStats{},
	}

	for field, raw := range fields {
		if field == fieldName {
			continue
		}

		value, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stats field %s: %w", field, err)
		}

		switch {
		case field == fieldTotal:
			stats.Total = value
		case field == fieldWins:
			stats.Wins = value
		case strings.HasPrefix(field, rolePrefix):
			rest := strings.TrimPrefix(field, rolePrefix)
			if role, ok := strings.CutSuffix(rest, roleTotal); ok {
				rs := stats.ByRole[models.Role(role)]
				rs.Total = value
				stats.ByRole[models.Role(role)] = rs
			} else if role, ok := strings.CutSuffix(rest, roleWins); ok {
				rs := stats.ByRole[models.Role(role)]
				rs.Wins = value
				stats.ByRole[models.Role(role)] = rs
			}
		}
	}

	return stats, nil
}
