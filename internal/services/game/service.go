package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/mafiabot/internal/common/clock"
	"github.com/KirkDiggler/mafiabot/internal/common/uuid"
	"github.com/KirkDiggler/mafiabot/internal/deck"
	"github.com/KirkDiggler/mafiabot/internal/models"
	lobbyRepo "github.com/KirkDiggler/mafiabot/internal/repositories/lobby"
	sessionRepo "github.com/KirkDiggler/mafiabot/internal/repositories/session"
	statsRepo "github.com/KirkDiggler/mafiabot/internal/repositories/stats"
	"github.com/KirkDiggler/mafiabot/internal/services/messaging"
	"github.com/KirkDiggler/mafiabot/internal/services/notifier"
	"github.com/rs/zerolog"
)

// service implements the Service interface
type service struct {
	durations map[models.Stage]time.Duration
	adminID   string
	logger    zerolog.Logger

	sessionRepo sessionRepo.Repository
	lobbyRepo   lobbyRepo.Repository
	statsRepo   statsRepo.Repository

	notifier      notifier.Notifier
	messaging     messaging.Service
	dealer        deck.Dealer
	clock         clock.Clock
	uuidGenerator uuid.UUID
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}

	if cfg.LobbyRepo == nil {
		return nil, ErrNilLobbyRepo
	}

	if cfg.StatsRepo == nil {
		return nil, ErrNilStatsRepo
	}

	if cfg.Notifier == nil {
		return nil, ErrNilNotifier
	}

	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}

	if cfg.Dealer == nil {
		return nil, ErrNilDealer
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	durations := make(map[models.Stage]time.Duration, len(DefaultDurations))
	for stage, d := range DefaultDurations {
		durations[stage] = d
	}
	for stage, d := range cfg.Durations {
		if d <= 0 {
			return nil, fmt.Errorf("duration of stage %s must be positive", stage)
		}
		durations[stage] = d
	}

	return &service{
		durations:     durations,
		adminID:       cfg.AdminID,
		logger:        cfg.Logger.With().Str("service", "game").Logger(),
		sessionRepo:   cfg.SessionRepo,
		lobbyRepo:     cfg.LobbyRepo,
		statsRepo:     cfg.StatsRepo,
		notifier:      cfg.Notifier,
		messaging:     cfg.Messaging,
		dealer:        cfg.Dealer,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
	}, nil
}

// NewSession builds the first stage of a session. The deck is dealt here and
// never changes afterwards.
func (s *service) NewSession(ctx context.Context, input *NewSessionInput) (*NewSessionOutput, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	if len(input.Players) == 0 {
		return nil, errors.New("a session needs players")
	}

	players := make([]*models.Player, len(input.Players))
	for i, u := range input.Players {
		players[i] = models.NewPlayer(u)
	}

	id := input.ID
	if id == "" {
		id = s.uuidGenerator.NewUUID()
	}

	now := s.clock.Now()
	sess := &models.Session{
		ID:                id,
		ChatID:            input.ChatID,
		OwnerID:           input.OwnerID,
		Stage:             models.FirstStage,
		StageSeq:          1,
		Players:           players,
		RoleDeck:          s.dealer.Deal(len(players)),
		Votes:             map[int][]int{},
		NextStageDeadline: now.Add(s.durations[models.FirstStage]),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := validateSession(sess); err != nil {
		return nil, err
	}

	return &NewSessionOutput{
		Session: sess,
	}, nil
}

// Announce posts the status message of the session's current stage
func (s *service) Announce(ctx context.Context, input *AnnounceInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	s.announce(ctx, input.Session, nil)
	return nil
}

// ApplyAction applies a participant action. The stage, role and "not yet
// acted" checks run inside the same conditional update as the mutation.
func (s *service) ApplyAction(ctx context.Context, input *ApplyActionInput) (*ApplyActionOutput, error) {
	if input == nil || input.ChatID == "" || input.Actor.ID == "" {
		return nil, errors.New("input, chat ID and actor cannot be empty")
	}

	logger := s.logger.With().
		Str("chat_id", input.ChatID).
		Str("actor_id", input.Actor.ID).
		Str("action", string(input.Action.Kind)).
		Logger()

	rule, ok := actionRules[input.Action.Kind]
	if !ok {
		return nil, s.reject(logger, ErrUnknownAction)
	}

	var (
		post      *models.Session
		actorIdx  int
		completed bool
	)

	if rule.readOnly {
		sess, err := s.getSession(ctx, input.ChatID)
		if err != nil {
			return nil, s.reject(logger, err)
		}
		idx, err := rule.authorize(sess, input.Actor.ID)
		if err != nil {
			return nil, s.reject(logger, err)
		}
		post, actorIdx = sess, idx
	} else {
		out, err := s.sessionRepo.UpdateSession(ctx, &sessionRepo.UpdateSessionInput{
			ChatID: input.ChatID,
			Now:    s.clock.Now(),
			Apply: func(sess *models.Session) error {
				completed = false

				idx, err := rule.authorize(sess, input.Actor.ID)
				if err != nil {
					return err
				}
				if err := rule.checkTarget(sess, idx, input.Action.Target); err != nil {
					return err
				}
				if rule.apply != nil {
					if err := rule.apply(sess, idx, input.Action.Target); err != nil {
						return err
					}
				}
				if rule.marks {
					sess.MarkActed(sess.Players[idx].ID)
				}

				actorIdx, completed = idx, stageComplete(sess)
				return nil
			},
		})
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				return nil, s.reject(logger, ErrNoSession)
			}
			if errors.Is(err, ErrStateCorruption) {
				logger.Error().Err(err).Msg("session state corrupted, terminating")
				s.terminate(ctx, input.ChatID, ReasonStateCorrupted)
				return nil, s.reject(logger, ErrSessionFinished)
			}
			return nil, s.reject(logger, err)
		}
		post = out.Session
	}

	logger.Debug().
		Str("stage", post.Stage.String()).
		Int("stage_seq", post.StageSeq).
		Msg("action applied")

	if input.Action.Kind == models.ActionVote {
		s.refresh(ctx, post)
	}

	if completed {
		if _, err := s.Advance(ctx, &AdvanceInput{
			ChatID:   input.ChatID,
			StageSeq: post.StageSeq,
			Trigger:  TriggerCompletion,
		}); err != nil {
			logger.Warn().Err(err).Msg("completion transition failed")
		}
	}

	// The action is committed at this point; a reply failure only loses the reply
	out := &ApplyActionOutput{Session: post}
	reply, err := s.messaging.GetActionReply(ctx, &messaging.GetActionReplyInput{
		Kind:    input.Action.Kind,
		Session: post,
		Actor:   post.Players[actorIdx],
		Target:  input.Action.Target,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to build action reply")
		return out, nil
	}
	out.Reply, out.Alert = reply.Text, reply.Alert

	return out, nil
}
