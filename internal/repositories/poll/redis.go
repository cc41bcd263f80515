package poll

import (
	"context"
	"errors"

	"github.com/KirkDiggler/mafiabot/internal/models"
	"github.com/KirkDiggler/mafiabot/internal/repositories/keys"
	"github.com/KirkDiggler/mafiabot/internal/store"
)

var (
	// ErrPollNotFound is returned when a chat has no poll of the requested type
	ErrPollNotFound = errors.New("poll not found")

	// ErrPollExists is returned when a chat already has a poll of the requested type
	ErrPollExists = errors.New("poll already exists for this chat")
)

// Config holds configuration for the Redis poll repository
type Config struct {
	Store *store.Store
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	store *store.Store
}

// NewRedis creates a new Redis-backed poll repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Store == nil {
		return nil, errors.New("store cannot be nil")
	}

	return &redisRepository{
		store: cfg.Store,
	}, nil
}

func validate(chatID string, pollType models.PollType) error {
	if chatID == "" {
		return errors.New("chat ID cannot be empty")
	}
	if !pollType.Valid() {
		return errors.New("invalid poll type")
	}
	return nil
}

// readSession loads the running session of the chat inside the transaction, or nil
func readSession(tx *store.Tx, chatID string) (*models.Session, error) {
	var session models.Session
	found, err := tx.Get(keys.Session(chatID), &session)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &session, nil
}

// CreatePoll inserts a poll. The session is watched together with the poll so
// a stage transition racing with the creation makes Build run again.
func (r *redisRepository) CreatePoll(ctx context.Context, input *CreatePollInput) (*models.Poll, error) {
	if input == nil || input.Build == nil {
		return nil, errors.New("input and build function cannot be nil")
	}

	if err := validate(input.ChatID, input.Type); err != nil {
		return nil, err
	}

	pollKey := keys.Poll(input.ChatID, input.Type)
	sessionKey := keys.Session(input.ChatID)
	var created *models.Poll

	err := r.store.Atomic(ctx, func(tx *store.Tx) error {
		created = nil

		exists, err := tx.Exists(pollKey)
		if err != nil {
			return err
		}
		if exists {
			return ErrPollExists
		}

		session, err := readSession(tx, input.ChatID)
		if err != nil {
			return err
		}

		poll, err := input.Build(session)
		if err != nil {
			return err
		}

		if !poll.Passed {
			if err := tx.Set(pollKey, poll); err != nil {
				return err
			}
		}
		created = poll
		return nil
	}, pollKey, sessionKey)
	if err != nil {
		return nil, err
	}

	return created, nil
}

// GetPoll retrieves a poll of a chat by type
func (r *redisRepository) GetPoll(ctx context.Context, input *GetPollInput) (*models.Poll, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if err := validate(input.ChatID, input.Type); err != nil {
		return nil, err
	}

	var poll models.Poll
	found, err := r.store.Get(ctx, keys.Poll(input.ChatID, input.Type), &poll)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrPollNotFound
	}

	return &poll, nil
}

// VotePoll applies a vote as one conditional write over the poll and the session
func (r *redisRepository) VotePoll(ctx context.Context, input *VotePollInput) (*models.Poll, error) {
	if input == nil || input.Apply == nil {
		return nil, errors.New("input and apply function cannot be nil")
	}

	if err := validate(input.ChatID, input.Type); err != nil {
		return nil, err
	}

	pollKey := keys.Poll(input.ChatID, input.Type)
	sessionKey := keys.Session(input.ChatID)
	var updated *models.Poll

	err := r.store.Atomic(ctx, func(tx *store.Tx) error {
		updated = nil

		var poll models.Poll
		found, err := tx.Get(pollKey, &poll)
		if err != nil {
			return err
		}
		if !found {
			return ErrPollNotFound
		}

		session, err := readSession(tx, input.ChatID)
		if err != nil {
			return err
		}

		if err := input.Apply(&poll, session); err != nil {
			return err
		}

		if poll.Passed {
			tx.Del(pollKey)
		} else if err := tx.Set(pollKey, &poll); err != nil {
			return err
		}
		updated = &poll
		return nil
	}, pollKey, sessionKey)
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// UpdatePollMessage stores the message handle on the poll if it is still open
func (r *redisRepository) UpdatePollMessage(ctx context.Context, input *UpdatePollMessageInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	if err := validate(input.ChatID, input.Type); err != nil {
		return err
	}

	pollKey := keys.Poll(input.ChatID, input.Type)
	return r.store.Atomic(ctx, func(tx *store.Tx) error {
		var poll models.Poll
		found, err := tx.Get(pollKey, &poll)
		if err != nil {
			return err
		}
		if !found {
			return ErrPollNotFound
		}

		poll.MessageRef = input.MessageRef
		return tx.Set(pollKey, &poll)
	}, pollKey)
}
