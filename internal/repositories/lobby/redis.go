package lobby

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/KirkDiggler/mafiabot/internal/models"
	"github.com/KirkDiggler/mafiabot/internal/repositories/keys"
	"github.com/KirkDiggler/mafiabot/internal/repositories/session"
	"github.com/KirkDiggler/mafiabot/internal/store"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrLobbyNotFound is returned when a chat has no open lobby
	ErrLobbyNotFound = errors.New("lobby not found")

	// ErrLobbyExists is returned when a chat already has an open lobby
	ErrLobbyExists = errors.New("lobby already exists for this chat")
)

// Config holds configuration for the Redis lobby repository
type Config struct {
	Store *store.Store
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	store  *store.Store
	client *redis.Client
}

// NewRedis creates a new Redis-backed lobby repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Store == nil {
		return nil, errors.New("store cannot be nil")
	}

	return &redisRepository{
		store:  cfg.Store,
		client: cfg.Store.Client(),
	}, nil
}

func write(tx *store.Tx, lobby *models.Lobby) error {
	if err := tx.Set(keys.Lobby(lobby.ChatID), lobby); err != nil {
		return err
	}
	tx.ZAdd(keys.LobbyDeadlines, float64(lobby.Deadline.UnixMilli()), lobby.ChatID)
	return nil
}

func remove(tx *store.Tx, chatID string) {
	tx.Del(keys.Lobby(chatID))
	tx.ZRem(keys.LobbyDeadlines, chatID)
}

// CreateLobby inserts a lobby. A chat can hold either one lobby or one session.
func (r *redisRepository) CreateLobby(ctx context.Context, input *CreateLobbyInput) error {
	if input == nil || input.Lobby == nil {
		return errors.New("input and lobby cannot be nil")
	}

	if input.Lobby.ChatID == "" {
		return errors.New("chat ID cannot be empty")
	}

	lobbyKey := keys.Lobby(input.Lobby.ChatID)
	sessionKey := keys.Session(input.Lobby.ChatID)

	return r.store.Atomic(ctx, func(tx *store.Tx) error {
		exists, err := tx.Exists(lobbyKey)
		if err != nil {
			return err
		}
		if exists {
			return ErrLobbyExists
		}

		exists, err = tx.Exists(sessionKey)
		if err != nil {
			return err
		}
		if exists {
			return session.ErrSessionExists
		}

		return write(tx, input.Lobby)
	}, lobbyKey, sessionKey)
}

// GetLobby retrieves the lobby of a chat
func (r *redisRepository) GetLobby(ctx context.Context, input *GetLobbyInput) (*models.Lobby, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	var lobby models.Lobby
	found, err := r.store.Get(ctx, keys.Lobby(input.ChatID), &lobby)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrLobbyNotFound
	}

	return &lobby, nil
}

// UpdateLobby applies input.Apply to the current lobby as one conditional write
func (r *redisRepository) UpdateLobby(ctx context.Context, input *UpdateLobbyInput) (*models.Lobby, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	if input.Apply == nil {
		return nil, errors.New("apply function cannot be nil")
	}

	key := keys.Lobby(input.ChatID)
	var updated *models.Lobby

	err := r.store.Atomic(ctx, func(tx *store.Tx) error {
		updated = nil

		var lobby models.Lobby
		found, err := tx.Get(key, &lobby)
		if err != nil {
			return err
		}
		if !found {
			return ErrLobbyNotFound
		}

		if err := input.Apply(&lobby); err != nil {
			return err
		}

		if err := write(tx, &lobby); err != nil {
			return err
		}
		updated = &lobby
		return nil
	}, key)
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteLobby removes the lobby if input.Check accepts it and returns the removed lobby
func (r *redisRepository) DeleteLobby(ctx context.Context, input *DeleteLobbyInput) (*models.Lobby, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	key := keys.Lobby(input.ChatID)
	var deleted *models.Lobby

	err := r.store.Atomic(ctx, func(tx *store.Tx) error {
		deleted = nil

		var lobby models.Lobby
		found, err := tx.Get(key, &lobby)
		if err != nil {
			return err
		}
		if !found {
			return ErrLobbyNotFound
		}

		if input.Check != nil {
			if err := input.Check(&lobby); err != nil {
				return err
			}
		}

		remove(tx, input.ChatID)
		deleted = &lobby
		return nil
	}, key)
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

// PromoteLobby deletes the lobby and inserts the session built from it in one transaction
func (r *redisRepository) PromoteLobby(ctx context.Context, input *PromoteLobbyInput) (*models.Session, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	if input.Build == nil {
		return nil, errors.New("build function cannot be nil")
	}

	lobbyKey := keys.Lobby(input.ChatID)
	sessionKey := keys.Session(input.ChatID)
	var created *models.Session

	err := r.store.Atomic(ctx, func(tx *store.Tx) error {
		created = nil

		var lobby models.Lobby
		found, err := tx.Get(lobbyKey, &lobby)
		if err != nil {
			return err
		}
		if !found {
			return ErrLobbyNotFound
		}

		exists, err := tx.Exists(sessionKey)
		if err != nil {
			return err
		}
		if exists {
			return session.ErrSessionExists
		}

		sess, err := input.Build(&lobby)
		if err != nil {
			return err
		}
		if sess.ChatID != input.ChatID {
			return fmt.Errorf("session chat %q does not match lobby chat %q", sess.ChatID, input.ChatID)
		}

		remove(tx, input.ChatID)
		if err := session.Write(tx, sess); err != nil {
			return err
		}
		created = sess
		return nil
	}, lobbyKey, sessionKey)
	if err != nil {
		return nil, err
	}

	return created, nil
}

// GetExpiredLobbies lists the chats whose lobby deadline is not after input.Now
func (r *redisRepository) GetExpiredLobbies(ctx context.Context, input *GetExpiredLobbiesInput) (*GetExpiredLobbiesOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	chatIDs, err := r.client.ZRangeByScore(ctx, keys.LobbyDeadlines, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(input.Now.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get expired lobbies: %w", err)
	}

	return &GetExpiredLobbiesOutput{
		ChatIDs: chatIDs,
	}, nil
}

// DeleteAllLobbies removes every lobby and the expiry index
func (r *redisRepository) DeleteAllLobbies(ctx context.Context, input *DeleteAllLobbiesInput) (*DeleteAllLobbiesOutput, error) {
	var lobbyKeys []string
	iter := r.client.Scan(ctx, 0, keys.LobbyPattern(), 100).Iterator()
	for iter.Next(ctx) {
		lobbyKeys = append(lobbyKeys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan lobbies: %w", err)
	}

	pipe := r.client.TxPipeline()
	if len(lobbyKeys) > 0 {
		pipe.Del(ctx, lobbyKeys...)
	}
	pipe.Del(ctx, keys.LobbyDeadlines)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete lobbies: %w", err)
	}

	return &DeleteAllLobbiesOutput{
		Deleted: len(lobbyKeys),
	}, nil
}
