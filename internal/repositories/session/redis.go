package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/KirkDiggler/mafiabot/internal/models"
	"github.com/KirkDiggler/mafiabot/internal/repositories/keys"
	"github.com/KirkDiggler/mafiabot/internal/store"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrSessionNotFound is returned when a chat has no running session
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExists is returned when a chat already has a running session
	ErrSessionExists = errors.New("session already exists for this chat")
)

// Config holds configuration for the Redis session repository
type Config struct {
	Store *store.Store
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	store  *store.Store
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
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

// Write queues the session document and its deadline index entry on a transaction.
// Other repositories use it to create a session inside their own transaction.
func Write(tx *store.Tx, session *models.Session) error {
	if err := tx.Set(keys.Session(session.ChatID), session); err != nil {
		return err
	}
	tx.ZAdd(keys.SessionDeadlines, deadlineScore(session.NextStageDeadline), session.ChatID)
	return nil
}

// remove queues the deletion of the session together with its polls and deadline entry
func remove(tx *store.Tx, chatID string) {
	tx.Del(keys.Session(chatID))
	tx.Del(keys.Polls(chatID)...)
	tx.ZRem(keys.SessionDeadlines, chatID)
}

// CreateSession inserts a new session
func (r *redisRepository) CreateSession(ctx context.Context, input *CreateSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	if input.Session.ChatID == "" {
		return errors.New("chat ID cannot be empty")
	}

	key := keys.Session(input.Session.ChatID)
	return r.store.Atomic(ctx, func(tx *store.Tx) error {
		exists, err := tx.Exists(key)
		if err != nil {
			return err
		}
		if exists {
			return ErrSessionExists
		}
		return Write(tx, input.Session)
	}, key)
}

// GetSession retrieves the session of a chat
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	var session models.Session
	found, err := r.store.Get(ctx, keys.Session(input.ChatID), &session)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrSessionNotFound
	}

	return &session, nil
}

// UpdateSession applies input.Apply to the current session as one conditional write.
// Whatever Apply checks is the precondition of the write: if the session changes
// between the read and the commit, Apply is evaluated again on the new state.
func (r *redisRepository) UpdateSession(ctx context.Context, input *UpdateSessionInput) (*UpdateSessionOutput, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	if input.Apply == nil {
		return nil, errors.New("apply function cannot be nil")
	}

	key := keys.Session(input.ChatID)
	var output *UpdateSessionOutput

	err := r.store.Atomic(ctx, func(tx *store.Tx) error {
		output = nil

		var session models.Session
		found, err := tx.Get(key, &session)
		if err != nil {
			return err
		}
		if !found {
			return ErrSessionNotFound
		}

		seq := session.StageSeq
		if err := input.Apply(&session); err != nil {
			return err
		}
		if !input.Now.IsZero() {
			session.UpdatedAt = input.Now
		}

		if session.Ended() {
			remove(tx, input.ChatID)
			output = &UpdateSessionOutput{Session: &session, Removed: true}
			return nil
		}

		// a new stage instance supersedes every open poll
		if session.StageSeq != seq {
			tx.Del(keys.Polls(input.ChatID)...)
		}

		if err := Write(tx, &session); err != nil {
			return err
		}
		output = &UpdateSessionOutput{Session: &session}
		return nil
	}, key)
	if err != nil {
		return nil, err
	}

	return output, nil
}

// GetDueSessions lists the chats whose stage deadline is not after input.Now
func (r *redisRepository) GetDueSessions(ctx context.Context, input *GetDueSessionsInput) (*GetDueSessionsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	chatIDs, err := r.client.ZRangeByScore(ctx, keys.SessionDeadlines, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(input.Now.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get due sessions: %w", err)
	}

	return &GetDueSessionsOutput{
		ChatIDs: chatIDs,
	}, nil
}

// DeleteAllSessions removes every session, poll and deadline entry
func (r *redisRepository) DeleteAllSessions(ctx context.Context, input *DeleteAllSessionsInput) (*DeleteAllSessionsOutput, error) {
	sessionKeys, err := r.scan(ctx, keys.SessionPattern())
	if err != nil {
		return nil, err
	}

	pollKeys, err := r.scan(ctx, keys.PollPattern())
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	if len(sessionKeys) > 0 {
		pipe.Del(ctx, sessionKeys...)
	}
	if len(pollKeys) > 0 {
		pipe.Del(ctx, pollKeys...)
	}
	pipe.Del(ctx, keys.SessionDeadlines)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete sessions: %w", err)
	}

	return &DeleteAllSessionsOutput{
		Deleted: len(sessionKeys),
	}, nil
}

func (r *redisRepository) scan(ctx context.Context, pattern string) ([]string, error) {
	var found []string
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		found = append(found, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", pattern, err)
	}
	return found, nil
}

func deadlineScore(t time.Time) float64 {
	return float64(t.UnixMilli())
}
