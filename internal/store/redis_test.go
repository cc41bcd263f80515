package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type counter struct {
	Value int
}

type StoreTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	store  *Store
	ctx    context.Context
}

func (s *StoreTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	store, err := New(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.store = store
	s.ctx = context.Background()
}

func (s *StoreTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.Error(err)

	_, err = New(&Config{})
	s.Error(err)
}

func (s *StoreTestSuite) TestAtomicWritesQueuedOps() {
	err := s.store.Atomic(s.ctx, func(tx *Tx) error {
		var c counter
		found, err := tx.Get("counter", &c)
		if err != nil {
			return err
		}
		s.False(found)

		tx.ZAdd("index", 10, "counter")
		return tx.Set("counter", &counter{Value: 1})
	}, "counter")
	s.Require().NoError(err)

	s.True(s.mr.Exists("counter"))
	score, err := s.mr.ZScore("index", "counter")
	s.Require().NoError(err)
	s.Equal(float64(10), score)
}

func (s *StoreTestSuite) TestAtomicCallbackErrorAbortsWithoutWriting() {
	errRule := errors.New("rule violated")

	err := s.store.Atomic(s.ctx, func(tx *Tx) error {
		if err := tx.Set("counter", &counter{Value: 1}); err != nil {
			return err
		}
		return errRule
	}, "counter")

	s.ErrorIs(err, errRule)
	s.False(s.mr.Exists("counter"))
}

func (s *StoreTestSuite) TestAtomicRetriesOnConflict() {
	s.Require().NoError(s.mr.Set("counter", `{"Value":1}`))

	attempts := 0
	err := s.store.Atomic(s.ctx, func(tx *Tx) error {
		attempts++

		var c counter
		if _, err := tx.Get("counter", &c); err != nil {
			return err
		}

		if attempts == 1 {
			// a concurrent writer sneaks in between read and commit
			s.Require().NoError(s.client.Set(s.ctx, "counter", `{"Value":5}`, 0).Err())
		}

		c.Value++
		return tx.Set("counter", &c)
	}, "counter")
	s.Require().NoError(err)

	s.Equal(2, attempts)
	got, err := s.mr.Get("counter")
	s.Require().NoError(err)
	s.JSONEq(`{"Value":6}`, got)
}

func (s *StoreTestSuite) TestAtomicSerializesConcurrentIncrements() {
	const workers = 20

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.Atomic(s.ctx, func(tx *Tx) error {
				var c counter
				if _, err := tx.Get("counter", &c); err != nil {
					return err
				}
				c.Value++
				return tx.Set("counter", &c)
			}, "counter")
			s.NoError(err)
		}()
	}
	wg.Wait()

	got, err := s.mr.Get("counter")
	s.Require().NoError(err)
	s.JSONEq(`{"Value":20}`, got)
}

func (s *StoreTestSuite) TestAtomicDelete() {
	s.Require().NoError(s.mr.Set("a", `{}`))
	s.Require().NoError(s.mr.Set("b", `{}`))

	err := s.store.Atomic(s.ctx, func(tx *Tx) error {
		exists, err := tx.Exists("a")
		if err != nil {
			return err
		}
		s.True(exists)
		tx.Del("a", "b")
		return nil
	}, "a", "b")
	s.Require().NoError(err)

	s.False(s.mr.Exists("a"))
	s.False(s.mr.Exists("b"))
}
