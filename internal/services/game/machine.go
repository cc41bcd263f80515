package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/mafiabot/internal/models"
	lobbyRepo "github.com/KirkDiggler/mafiabot/internal/repositories/lobby"
	sessionRepo "github.com/KirkDiggler/mafiabot/internal/repositories/session"
	"github.com/KirkDiggler/mafiabot/internal/tally"
)

// Advance ends the stage instance identified by input.StageSeq. The sequence
// check is part of the conditional update, so when a timer and a completion
// race only the first one moves the session.
func (s *service) Advance(ctx context.Context, input *AdvanceInput) (*AdvanceOutput, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	logger := s.logger.With().
		Str("chat_id", input.ChatID).
		Int("stage_seq", input.StageSeq).
		Str("trigger", string(input.Trigger)).
		Logger()

	now := s.clock.Now()
	var (
		res        *models.Resolution
		corruption error
	)

	out, err := s.sessionRepo.UpdateSession(ctx, &sessionRepo.UpdateSessionInput{
		ChatID: input.ChatID,
		Now:    now,
		Apply: func(sess *models.Session) error {
			res, corruption = nil, nil

			if sess.StageSeq != input.StageSeq {
				return errStageMoved
			}

			switch input.Trigger {
			case TriggerTimer:
				if now.Before(sess.NextStageDeadline) {
					return errNotDue
				}
			case TriggerCompletion:
				if !stageComplete(sess) {
					return errNotComplete
				}
			}

			if err := validateSession(sess); err != nil {
				corruption = err
				sess.EndReason = ReasonStateCorrupted
				return nil
			}

			res = s.transition(sess, now)
			return nil
		},
	})
	if err != nil {
		if errors.Is(err, errStageMoved) || errors.Is(err, errNotDue) ||
			errors.Is(err, errNotComplete) || errors.Is(err, sessionRepo.ErrSessionNotFound) {
			logger.Debug().Err(err).Msg("transition skipped")
			return &AdvanceOutput{Advanced: false}, nil
		}
		return nil, fmt.Errorf("failed to advance session: %w", err)
	}

	sess := out.Session
	if corruption != nil {
		logger.Error().Err(corruption).Msg("session state corrupted, terminating")
		s.announceEnd(ctx, sess)
		return &AdvanceOutput{
			Advanced: true,
			Ended:    true,
			Session:  sess,
		}, nil
	}

	if out.Removed {
		logger.Info().Str("winner", string(sess.Winner)).Msg("session finished")
		s.recordResults(ctx, sess)
		s.announceEnd(ctx, sess)
		return &AdvanceOutput{
			Advanced:   true,
			Ended:      true,
			Session:    sess,
			Resolution: res,
		}, nil
	}

	logger.Info().
		Str("from", res.From.String()).
		Str("stage", sess.Stage.String()).
		Int("day", sess.DayCount).
		Msg("stage advanced")
	s.announce(ctx, sess, res)

	return &AdvanceOutput{
		Advanced:   true,
		Session:    sess,
		Resolution: res,
	}, nil
}

// transition resolves the current stage and enters the next one. It sets the
// winner instead when an elimination decided the game.
func (s *service) transition(sess *models.Session, now time.Time) *models.Resolution {
	res := &models.Resolution{From: sess.Stage}
	var next models.Stage

	switch sess.Stage {
	case models.StageCardReveal:
		if sess.AllRevealed() {
			next = models.StageDonOrder
			break
		}
		// nobody may stay without a card once the stage is over
		for _, number := range sess.Unrevealed() {
			sess.Players[number-1].Role = sess.RoleDeck[number-1]
		}
		res.AutoRevealed = true
		next = models.StageAcquaintance

	case models.StageAcquaintance:
		next = models.StageDonOrder

	case models.StageDonOrder:
		next = models.StageDay

	case models.StageDay:
		next = models.StageVote

	case models.StageVote:
		summary := tally.Votes(sess.Votes)
		if target, ok := summary.Unique(); ok {
			if p, found := sess.PlayerByNumber(target); found && p.Alive {
				p.Alive = false
				res.Eliminated = target
			}
		} else if len(summary.Leaders) > 1 {
			res.Tied = true
		}
		next = models.StageShooting

	case models.StageShooting:
		if target, ok := nightKill(sess); ok {
			sess.Players[target-1].Alive = false
			res.Killed = target
		}
		next = models.StageDonCheck

	case models.StageDonCheck:
		next = models.StageSheriffCheck

	case models.StageSheriffCheck:
		next = models.StageDay
		sess.DayCount++

	default:
		next = models.StageDay
	}

	if res.Eliminated > 0 || res.Killed > 0 {
		switch winner(sess) {
		case models.TeamMafia:
			sess.Winner = models.TeamMafia
			sess.EndReason = ReasonMafiaWins
			return res
		case models.TeamPeace:
			sess.Winner = models.TeamPeace
			sess.EndReason = ReasonPeaceWins
			return res
		}
	}

	// night checks without a living checker are skipped
	for {
		if _, ok := sess.LivingRole(models.RoleDon); next == models.StageDonCheck && !ok {
			next = models.StageSheriffCheck
			continue
		}
		if _, ok := sess.LivingRole(models.RoleSheriff); next == models.StageSheriffCheck && !ok {
			next = models.StageDay
			sess.DayCount++
			continue
		}
		break
	}

	s.enter(sess, next, now)
	return res
}

// enter starts a new stage instance
func (s *service) enter(sess *models.Session, stage models.Stage, now time.Time) {
	sess.Stage = stage
	sess.StageSeq++
	sess.ActedThisStage = nil
	sess.MessageRef = ""
	sess.NextStageDeadline = now.Add(s.durations[stage])

	switch stage {
	case models.StageVote:
		sess.Votes = map[int][]int{}
	case models.StageShooting:
		sess.Shots = nil
	case models.StageDonOrder:
		sess.KillOrder = nil
	}
}

// ExpireDue advances every session whose deadline is not after input.Now
func (s *service) ExpireDue(ctx context.Context, input *ExpireDueInput) (*ExpireDueOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	due, err := s.sessionRepo.GetDueSessions(ctx, &sessionRepo.GetDueSessionsInput{
		Now: input.Now,
	})
	if err != nil {
		return nil, err
	}

	advanced := 0
	for _, chatID := range due.ChatIDs {
		sess, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{ChatID: chatID})
		if err != nil {
			if !errors.Is(err, sessionRepo.ErrSessionNotFound) {
				s.logger.Warn().Err(err).Str("chat_id", chatID).Msg("failed to load due session")
			}
			continue
		}

		out, err := s.Advance(ctx, &AdvanceInput{
			ChatID:   chatID,
			StageSeq: sess.StageSeq,
			Trigger:  TriggerTimer,
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("chat_id", chatID).Msg("failed to advance due session")
			continue
		}
		if out.Advanced {
			advanced++
		}
	}

	return &ExpireDueOutput{
		Advanced: advanced,
	}, nil
}

// Terminate ends a session without a winner
func (s *service) Terminate(ctx context.Context, input *TerminateInput) (*TerminateOutput, error) {
	if input == nil || input.ChatID == "" || input.Reason == "" {
		return nil, errors.New("input, chat ID and reason cannot be empty")
	}

	sess, err := s.terminate(ctx, input.ChatID, input.Reason)
	if err != nil {
		return nil, err
	}

	return &TerminateOutput{
		Session: sess,
	}, nil
}

func (s *service) terminate(ctx context.Context, chatID, reason string) (*models.Session, error) {
	out, err := s.sessionRepo.UpdateSession(ctx, &sessionRepo.UpdateSessionInput{
		ChatID: chatID,
		Now:    s.clock.Now(),
		Apply: func(sess *models.Session) error {
			sess.EndReason = reason
			return nil
		},
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrNoSession
		}
		s.logger.Error().Err(err).Str("chat_id", chatID).Msg("failed to terminate session")
		return nil, err
	}

	s.logger.Info().Str("chat_id", chatID).Str("reason", reason).Msg("session terminated")
	s.announceEnd(ctx, out.Session)
	return out.Session, nil
}

// Reset removes every session and lobby. Only the configured admin may do it.
func (s *service) Reset(ctx context.Context, input *ResetInput) (*ResetOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if s.adminID == "" || input.RequesterID != s.adminID {
		return nil, ErrNotAdmin
	}

	sessions, err := s.sessionRepo.DeleteAllSessions(ctx, &sessionRepo.DeleteAllSessionsInput{})
	if err != nil {
		return nil, err
	}

	lobbies, err := s.lobbyRepo.DeleteAllLobbies(ctx, &lobbyRepo.DeleteAllLobbiesInput{})
	if err != nil {
		return nil, err
	}

	s.logger.Warn().
		Int("sessions", sessions.Deleted).
		Int("lobbies", lobbies.Deleted).
		Str("requester_id", input.RequesterID).
		Msg("all games reset")

	return &ResetOutput{
		Sessions: sessions.Deleted,
		Lobbies:  lobbies.Deleted,
	}, nil
}
