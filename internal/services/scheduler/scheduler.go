package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/KirkDiggler/mafiabot/internal/common/clock"
	"github.com/rs/zerolog"
)

// DefaultInterval is the pause between two sweeps
const DefaultInterval = 5 * time.Second

// SweepFunc handles everything that became due at now
type SweepFunc func(ctx context.Context, now time.Time) error

// Task is a named sweep
type Task struct {
	Name  string
	Sweep SweepFunc
}

// Config holds configuration for the scheduler
type Config struct {
	Interval time.Duration
	Logger   zerolog.Logger
	Clock    clock.Clock
	Tasks    []Task
}

// Scheduler runs every task on a fixed interval. Firing is best effort and
// at least once: a deadline missed by one sweep is picked up by the next.
type Scheduler struct {
	interval time.Duration
	logger   zerolog.Logger
	clock    clock.Clock
	tasks    []Task
}

// New creates a new scheduler
func New(cfg *Config) (*Scheduler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	for _, task := range cfg.Tasks {
		if task.Sweep == nil {
			return nil, errors.New("task " + task.Name + " has no sweep function")
		}
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Scheduler{
		interval: interval,
		logger:   cfg.Logger.With().Str("service", "scheduler").Logger(),
		clock:    cfg.Clock,
		tasks:    cfg.Tasks,
	}, nil
}

// Run sweeps once right away and then on every tick until ctx is cancelled
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Int("tasks", len(s.tasks)).Msg("scheduler started")

	s.SweepOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("scheduler stopped")
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce runs every task one time. A failing task does not stop the others.
func (s *Scheduler) SweepOnce(ctx context.Context) {
	now := s.clock.Now()
	for _, task := range s.tasks {
		if ctx.Err() != nil {
			return
		}
		if err := task.Sweep(ctx, now); err != nil {
			s.logger.Warn().Err(err).Str("task", task.Name).Msg("sweep failed")
		}
	}
}
