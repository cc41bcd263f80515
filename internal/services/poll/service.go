package poll

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/mafiabot/internal/common/clock"
	"github.com/KirkDiggler/mafiabot/internal/common/uuid"
	"github.com/KirkDiggler/mafiabot/internal/models"
	pollRepo "github.com/KirkDiggler/mafiabot/internal/repositories/poll"
	"github.com/KirkDiggler/mafiabot/internal/services/game"
	"github.com/KirkDiggler/mafiabot/internal/services/messaging"
	"github.com/KirkDiggler/mafiabot/internal/services/notifier"
	"github.com/rs/zerolog"
)

// service implements the Service interface
type service struct {
	logger        zerolog.Logger
	pollRepo      pollRepo.Repository
	gameService   game.Service
	notifier      notifier.Notifier
	messaging     messaging.Service
	clock         clock.Clock
	uuidGenerator uuid.UUID
}

// New creates a new poll service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.PollRepo == nil {
		return nil, ErrNilPollRepo
	}

	if cfg.GameService == nil {
		return nil, ErrNilGameService
	}

	if cfg.Notifier == nil {
		return nil, ErrNilNotifier
	}

	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		logger:        cfg.Logger.With().Str("service", "poll").Logger(),
		pollRepo:      cfg.PollRepo,
		gameService:   cfg.GameService,
		notifier:      cfg.Notifier,
		messaging:     cfg.Messaging,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
	}, nil
}

// Open starts a poll against the current stage instance of the chat's session
func (s *service) Open(ctx context.Context, input *OpenInput) (*OpenOutput, error) {
	if input == nil || input.ChatID == "" || input.Initiator.ID == "" {
		return nil, errors.New("input, chat ID and initiator cannot be empty")
	}

	if !input.Type.Valid() {
		return nil, ErrUnknownType
	}

	logger := s.logger.With().
		Str("chat_id", input.ChatID).
		Str("actor_id", input.Initiator.ID).
		Str("poll", string(input.Type)).
		Logger()

	id := s.uuidGenerator.NewUUID()
	now := s.clock.Now()

	poll, err := s.pollRepo.CreatePoll(ctx, &pollRepo.CreatePollInput{
		ChatID: input.ChatID,
		Type:   input.Type,
		Build: func(sess *models.Session) (*models.Poll, error) {
			if sess == nil {
				return nil, game.ErrNoSession
			}
			if !eligible[sess.Stage] {
				return nil, ErrNotEligible
			}
			idx, err := voterIndex(sess, input.Initiator.ID)
			if err != nil {
				return nil, err
			}

			poll := &models.Poll{
				ID:          id,
				ChatID:      input.ChatID,
				Type:        input.Type,
				StageSeq:    sess.StageSeq,
				CreatorName: input.Initiator.Name,
				CreatedAt:   now,
			}
			thresholds(poll, sess)
			count(poll, sess, idx)
			return poll, nil
		},
	})
	if err != nil {
		if errors.Is(err, pollRepo.ErrPollExists) {
			err = ErrPollRunning
		}
		return nil, s.reject(logger, err)
	}

	logger.Info().
		Int("stage_seq", poll.StageSeq).
		Bool("role_aware", poll.RoleAware).
		Msg("poll opened")

	if poll.Passed {
		s.resolve(ctx, poll)
		return &OpenOutput{Poll: poll, Passed: true}, nil
	}

	s.announce(ctx, poll)

	return &OpenOutput{
		Poll: poll,
	}, nil
}

// Vote records a vote. The poll and the session are read in the same
// transaction, so a vote never counts against a stage that already ended.
func (s *service) Vote(ctx context.Context, input *VoteInput) (*VoteOutput, error) {
	if input == nil || input.ChatID == "" || input.Voter.ID == "" {
		return nil, errors.New("input, chat ID and voter cannot be empty")
	}

	if !input.Type.Valid() {
		return nil, ErrUnknownType
	}

	logger := s.logger.With().
		Str("chat_id", input.ChatID).
		Str("actor_id", input.Voter.ID).
		Str("poll", string(input.Type)).
		Logger()

	poll, err := s.pollRepo.VotePoll(ctx, &pollRepo.VotePollInput{
		ChatID: input.ChatID,
		Type:   input.Type,
		Apply: func(poll *models.Poll, sess *models.Session) error {
			if sess == nil || sess.StageSeq != poll.StageSeq {
				return ErrNoPoll
			}
			if poll.HasVoted(input.Voter.ID) {
				return ErrAlreadyVoted
			}
			idx, err := voterIndex(sess, input.Voter.ID)
			if err != nil {
				return err
			}

			count(poll, sess, idx)
			return nil
		},
	})
	if err != nil {
		if errors.Is(err, pollRepo.ErrPollNotFound) {
			err = ErrNoPoll
		}
		return nil, s.reject(logger, err)
	}

	if poll.Passed {
		s.resolve(ctx, poll)
		return &VoteOutput{Poll: poll, Passed: true}, nil
	}

	s.refresh(ctx, poll)

	return &VoteOutput{
		Poll: poll,
	}, nil
}

// voterIndex returns the index of a living player of the session
func voterIndex(sess *models.Session, userID string) (int, error) {
	idx := sess.PlayerIndex(userID)
	if idx < 0 {
		return -1, game.ErrNotAPlayer
	}
	if !sess.Players[idx].Alive {
		return -1, game.ErrNotAlive
	}
	return idx, nil
}

// resolve applies the effect of a passed poll. The poll is already gone from
// the store at this point.
func (s *service) resolve(ctx context.Context, poll *models.Poll) {
	logger := s.logger.With().
		Str("chat_id", poll.ChatID).
		Str("poll", string(poll.Type)).
		Int("stage_seq", poll.StageSeq).
		Logger()

	logger.Info().Msg("poll passed")
	s.refresh(ctx, poll)

	switch poll.Type {
	case models.PollTypeSkip:
		out, err := s.gameService.Advance(ctx, &game.AdvanceInput{
			ChatID:   poll.ChatID,
			StageSeq: poll.StageSeq,
			Trigger:  game.TriggerPoll,
		})
		if err != nil {
			logger.Error().Err(err).Msg("failed to skip stage")
			return
		}
		if !out.Advanced {
			logger.Debug().Msg("stage already moved on")
		}

	case models.PollTypeEnd:
		if _, err := s.gameService.Terminate(ctx, &game.TerminateInput{
			ChatID: poll.ChatID,
			Reason: game.ReasonForcedByVote,
		}); err != nil && !errors.Is(err, game.ErrNoSession) {
			logger.Error().Err(err).Msg("failed to end game")
		}
	}
}

// announce posts the poll message and stores its handle
func (s *service) announce(ctx context.Context, poll *models.Poll) {
	logger := s.logger.With().Str("chat_id", poll.ChatID).Str("poll", string(poll.Type)).Logger()

	msg, err := s.messaging.GetPollMessage(ctx, &messaging.GetPollMessageInput{Poll: poll})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to build poll message")
		return
	}

	sent, err := s.notifier.SendMessage(ctx, &notifier.SendMessageInput{
		ChatID:   poll.ChatID,
		Text:     msg.Text,
		Keyboard: Keyboard(poll),
	})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to send poll message")
		return
	}

	err = s.pollRepo.UpdatePollMessage(ctx, &pollRepo.UpdatePollMessageInput{
		ChatID:     poll.ChatID,
		Type:       poll.Type,
		MessageRef: sent.MessageRef,
	})
	if err != nil && !errors.Is(err, pollRepo.ErrPollNotFound) {
		logger.Warn().Err(err).Msg("failed to store poll message ref")
		return
	}
	poll.MessageRef = sent.MessageRef
}

// refresh re-renders the poll message with the current counts
func (s *service) refresh(ctx context.Context, poll *models.Poll) {
	if poll.MessageRef == "" {
		return
	}

	logger := s.logger.With().Str("chat_id", poll.ChatID).Str("poll", string(poll.Type)).Logger()

	msg, err := s.messaging.GetPollMessage(ctx, &messaging.GetPollMessageInput{Poll: poll})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to build poll message")
		return
	}

	var kb *models.Keyboard
	if !poll.Passed {
		kb = Keyboard(poll)
	}

	if err := s.notifier.EditMessage(ctx, &notifier.EditMessageInput{
		ChatID:     poll.ChatID,
		MessageRef: poll.MessageRef,
		Text:       msg.Text,
		Keyboard:   kb,
	}); err != nil {
		logger.Warn().Err(err).Msg("failed to edit poll message")
	}
}

// Keyboard is the single vote button of a poll message
func Keyboard(poll *models.Poll) *models.Keyboard {
	return &models.Keyboard{Rows: [][]models.Button{{{
		Label:  fmt.Sprintf("I agree (%s)", poll.Type),
		Action: models.Action{Kind: models.ActionPollVote, PollType: poll.Type},
	}}}}
}

// reject logs a failed request at the level its class deserves
func (s *service) reject(logger zerolog.Logger, err error) error {
	if game.IsRejection(err) {
		logger.Debug().Err(err).Msg("poll request rejected")
	} else {
		logger.Error().Err(err).Msg("poll request failed")
	}
	return err
}
