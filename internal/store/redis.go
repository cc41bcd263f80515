package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts   = 100
	defaultRetryInterval = time.Millisecond
)

// ErrConflict is returned when an atomic update kept losing to concurrent writers
var ErrConflict = errors.New("too many concurrent updates")

// Config holds configuration for the Redis store
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// MaxAttempts bounds how often a conflicting transaction is re-evaluated
	MaxAttempts uint

	// RetryInterval is the pause between re-evaluations
	RetryInterval time.Duration
}

// Store runs conditional read-modify-write transactions against Redis.
// Keys are watched while the callback reads them; queued writes are committed
// with MULTI/EXEC only if none of the watched keys changed in between.
type Store struct {
	client        *redis.Client
	maxAttempts   uint
	retryInterval time.Duration
}

// New creates a new Redis-backed store
func New(cfg *Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	s := &Store{
		client:        cfg.RedisClient,
		maxAttempts:   cfg.MaxAttempts,
		retryInterval: cfg.RetryInterval,
	}
	if s.maxAttempts == 0 {
		s.maxAttempts = defaultMaxAttempts
	}
	if s.retryInterval <= 0 {
		s.retryInterval = defaultRetryInterval
	}

	return s, nil
}

// Client exposes the underlying client for plain reads
func (s *Store) Client() *redis.Client {
	return s.client
}

// Get reads a JSON document outside of a transaction.
// It reports false when the key does not exist.
func (s *Store) Get(ctx context.Context, key string, out any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}

	return true, nil
}

// Atomic runs fn as one conditional transaction over the given keys.
//
// fn may run more than once: when another writer touches a watched key between
// the reads and the commit, the transaction is discarded and fn is evaluated
// again against the fresh state. Any error returned by fn aborts without writing.
func (s *Store) Atomic(ctx context.Context, fn func(tx *Tx) error, keys ...string) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := s.client.Watch(ctx, func(rtx *redis.Tx) error {
			tx := &Tx{ctx: ctx, rtx: rtx}
			if err := fn(tx); err != nil {
				return err
			}
			if len(tx.ops) == 0 {
				return nil
			}
			_, err := rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				for _, op := range tx.ops {
					op(pipe)
				}
				return nil
			})
			return err
		}, keys...)
		if errors.Is(err, redis.TxFailedErr) {
			return struct{}{}, err
		}
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, nil
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(s.retryInterval)),
		backoff.WithMaxTries(s.maxAttempts),
	)

	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		return permanent.Unwrap()
	}
	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

// Tx is the view of one transaction attempt
type Tx struct {
	ctx context.Context
	rtx *redis.Tx
	ops []func(redis.Pipeliner)
}

// Get reads a JSON document into out. It reports false when the key does not exist.
func (t *Tx) Get(key string, out any) (bool, error) {
	data, err := t.rtx.Get(t.ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}

	return true, nil
}

// Exists reports whether the key exists
func (t *Tx) Exists(key string) (bool, error) {
	n, err := t.rtx.Exists(t.ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", key, err)
	}
	return n > 0, nil
}

// Set queues a JSON write of v to key
func (t *Tx) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	t.ops = append(t.ops, func(pipe redis.Pipeliner) {
		pipe.Set(t.ctx, key, data, 0)
	})
	return nil
}

// Del queues the deletion of keys
func (t *Tx) Del(keys ...string) {
	if len(keys) == 0 {
		return
	}
	t.ops = append(t.ops, func(pipe redis.Pipeliner) {
		pipe.Del(t.ctx, keys...)
	})
}

// ZAdd queues adding member to the sorted set with the given score
func (t *Tx) ZAdd(key string, score float64, member string) {
	t.ops = append(t.ops, func(pipe redis.Pipeliner) {
		pipe.ZAdd(t.ctx, key, redis.Z{Score: score, Member: member})
	})
}

// ZRem queues removing member from the sorted set
func (t *Tx) ZRem(key string, member string) {
	t.ops = append(t.ops, func(pipe redis.Pipeliner) {
		pipe.ZRem(t.ctx, key, member)
	})
}
