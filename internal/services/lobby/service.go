package lobby

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/KirkDiggler/mafiabot/internal/common/clock"
	"github.com/KirkDiggler/mafiabot/internal/common/uuid"
	"github.com/KirkDiggler/mafiabot/internal/models"
	lobbyRepo "github.com/KirkDiggler/mafiabot/internal/repositories/lobby"
	sessionRepo "github.com/KirkDiggler/mafiabot/internal/repositories/session"
	"github.com/KirkDiggler/mafiabot/internal/services/game"
	"github.com/KirkDiggler/mafiabot/internal/services/messaging"
	"github.com/KirkDiggler/mafiabot/internal/services/notifier"
	"github.com/rs/zerolog"
)

// service implements the Service interface
type service struct {
	playersMin int
	playersMax int
	ttl        time.Duration
	logger     zerolog.Logger

	lobbyRepo lobbyRepo.Repository

	gameService   game.Service
	notifier      notifier.Notifier
	messaging     messaging.Service
	clock         clock.Clock
	uuidGenerator uuid.UUID
}

// New creates a new lobby service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.LobbyRepo == nil {
		return nil, ErrNilLobbyRepo
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

	svc := &service{
		playersMin:    cfg.PlayersMin,
		playersMax:    cfg.PlayersMax,
		ttl:           cfg.TTL,
		logger:        cfg.Logger.With().Str("service", "lobby").Logger(),
		lobbyRepo:     cfg.LobbyRepo,
		gameService:   cfg.GameService,
		notifier:      cfg.Notifier,
		messaging:     cfg.Messaging,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
	}

	if svc.playersMin == 0 {
		svc.playersMin = DefaultPlayersMin
	}
	if svc.playersMax == 0 {
		svc.playersMax = DefaultPlayersMax
	}
	if svc.ttl <= 0 {
		svc.ttl = DefaultTTL
	}
	if svc.playersMin < DefaultPlayersMin || svc.playersMax < svc.playersMin || svc.playersMax > PlayersLimit {
		return nil, ErrInvalidLimits
	}

	return svc, nil
}

// Open starts a signup. A chat holds either one signup or one running game.
func (s *service) Open(ctx context.Context, input *OpenInput) (*OpenOutput, error) {
	if input == nil || input.ChatID == "" || input.Owner.ID == "" {
		return nil, errors.New("input, chat ID and owner cannot be empty")
	}

	logger := s.logger.With().Str("chat_id", input.ChatID).Str("actor_id", input.Owner.ID).Logger()

	now := s.clock.Now()
	lobby := &models.Lobby{
		ID:        s.uuidGenerator.NewUUID(),
		ChatID:    input.ChatID,
		Owner:     input.Owner,
		Players:   []models.User{input.Owner},
		Deadline:  now.Add(s.ttl),
		CreatedAt: now,
	}

	err := s.lobbyRepo.CreateLobby(ctx, &lobbyRepo.CreateLobbyInput{Lobby: lobby})
	if err != nil {
		return nil, s.reject(logger, translate(err))
	}

	logger.Info().Str("lobby_id", lobby.ID).Msg("signup opened")

	s.announce(ctx, lobby)

	return &OpenOutput{
		Lobby: lobby,
	}, nil
}

// Toggle adds or removes a player. Every join pushes the deadline back.
func (s *service) Toggle(ctx context.Context, input *ToggleInput) (*ToggleOutput, error) {
	if input == nil || input.ChatID == "" || input.User.ID == "" {
		return nil, errors.New("input, chat ID and user cannot be empty")
	}

	logger := s.logger.With().Str("chat_id", input.ChatID).Str("actor_id", input.User.ID).Logger()

	now := s.clock.Now()
	var joined bool

	lobby, err := s.lobbyRepo.UpdateLobby(ctx, &lobbyRepo.UpdateLobbyInput{
		ChatID: input.ChatID,
		Apply: func(lobby *models.Lobby) error {
			joined = false

			if idx := lobby.Index(input.User.ID); idx >= 0 {
				if input.User.ID == lobby.Owner.ID {
					return ErrOwnerCannotLeave
				}
				lobby.Players = slices.Delete(lobby.Players, idx, idx+1)
				return nil
			}

			if len(lobby.Players) >= s.playersMax {
				return ErrLobbyFull
			}
			lobby.Players = append(lobby.Players, input.User)
			lobby.Deadline = now.Add(s.ttl)
			joined = true
			return nil
		},
	})
	if err != nil {
		return nil, s.reject(logger, translate(err))
	}

	logger.Debug().Bool("joined", joined).Int("players", len(lobby.Players)).Msg("signup changed")

	s.refresh(ctx, lobby)

	return &ToggleOutput{
		Lobby:  lobby,
		Joined: joined,
	}, nil
}

// Cancel closes the signup on the owner's request
func (s *service) Cancel(ctx context.Context, input *CancelInput) (*CancelOutput, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	logger := s.logger.With().Str("chat_id", input.ChatID).Str("actor_id", input.RequesterID).Logger()

	lobby, err := s.lobbyRepo.DeleteLobby(ctx, &lobbyRepo.DeleteLobbyInput{
		ChatID: input.ChatID,
		Check: func(lobby *models.Lobby) error {
			if lobby.Owner.ID != input.RequesterID {
				return ErrNotOwner
			}
			return nil
		},
	})
	if err != nil {
		return nil, s.reject(logger, translate(err))
	}

	logger.Info().Msg("signup cancelled")
	s.close(ctx, lobby, messaging.LobbyClosedCancelled)

	return &CancelOutput{
		Lobby: lobby,
	}, nil
}

// Promote turns the signup into a session. The lobby is removed and the
// session inserted in the same transaction.
func (s *service) Promote(ctx context.Context, input *PromoteInput) (*PromoteOutput, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	logger := s.logger.With().Str("chat_id", input.ChatID).Str("actor_id", input.RequesterID).Logger()

	var promoted models.Lobby
	sess, err := s.lobbyRepo.PromoteLobby(ctx, &lobbyRepo.PromoteLobbyInput{
		ChatID: input.ChatID,
		Build: func(lobby *models.Lobby) (*models.Session, error) {
			if lobby.Owner.ID != input.RequesterID {
				return nil, ErrNotOwner
			}
			if len(lobby.Players) < s.playersMin {
				return nil, ErrNotEnoughPlayers
			}

			out, err := s.gameService.NewSession(ctx, &game.NewSessionInput{
				ID:      lobby.ID,
				ChatID:  lobby.ChatID,
				OwnerID: lobby.Owner.ID,
				Players: lobby.Players,
			})
			if err != nil {
				return nil, err
			}
			promoted = *lobby
			return out.Session, nil
		},
	})
	if err != nil {
		return nil, s.reject(logger, translate(err))
	}

	logger.Info().
		Str("session_id", sess.ID).
		Int("players", len(sess.Players)).
		Msg("game started")

	s.close(ctx, &promoted, messaging.LobbyClosedStarted)
	if err := s.gameService.Announce(ctx, &game.AnnounceInput{Session: sess}); err != nil {
		logger.Warn().Err(err).Msg("failed to announce first stage")
	}

	return &PromoteOutput{
		Session: sess,
	}, nil
}

// ExpireDue closes the signups whose deadline is not after input.Now
func (s *service) ExpireDue(ctx context.Context, input *ExpireDueInput) (*ExpireDueOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	due, err := s.lobbyRepo.GetExpiredLobbies(ctx, &lobbyRepo.GetExpiredLobbiesInput{
		Now: input.Now,
	})
	if err != nil {
		return nil, err
	}

	expired := 0
	for _, chatID := range due.ChatIDs {
		lobby, err := s.lobbyRepo.DeleteLobby(ctx, &lobbyRepo.DeleteLobbyInput{
			ChatID: chatID,
			Check: func(lobby *models.Lobby) error {
				if lobby.Deadline.After(input.Now) {
					return errNotExpired
				}
				return nil
			},
		})
		if err != nil {
			if !errors.Is(err, errNotExpired) && !errors.Is(err, lobbyRepo.ErrLobbyNotFound) {
				s.logger.Warn().Err(err).Str("chat_id", chatID).Msg("failed to expire signup")
			}
			continue
		}

		s.logger.Info().Str("chat_id", chatID).Msg("signup expired")
		s.close(ctx, lobby, messaging.LobbyClosedExpired)
		expired++
	}

	return &ExpireDueOutput{
		Expired: expired,
	}, nil
}

// translate maps repository conflicts to rejections
func translate(err error) error {
	switch {
	case errors.Is(err, lobbyRepo.ErrLobbyExists):
		return ErrLobbyExists
	case errors.Is(err, lobbyRepo.ErrLobbyNotFound):
		return ErrNoLobby
	case errors.Is(err, sessionRepo.ErrSessionExists):
		return ErrGameRunning
	default:
		return err
	}
}

// Keyboard is the button row of an open signup
func Keyboard() *models.Keyboard {
	return &models.Keyboard{Rows: [][]models.Button{{
		{Label: "Join / Leave", Action: models.Action{Kind: models.ActionLobbyToggle}},
		{Label: "Start", Action: models.Action{Kind: models.ActionLobbyPromote}},
		{Label: "Cancel", Action: models.Action{Kind: models.ActionLobbyCancel}},
	}}}
}

func (s *service) announce(ctx context.Context, lobby *models.Lobby) {
	logger := s.logger.With().Str("chat_id", lobby.ChatID).Logger()

	msg, err := s.messaging.GetLobbyMessage(ctx, &messaging.GetLobbyMessageInput{
		Lobby:      lobby,
		PlayersMin: s.playersMin,
		PlayersMax: s.playersMax,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to build signup message")
		return
	}

	sent, err := s.notifier.SendMessage(ctx, &notifier.SendMessageInput{
		ChatID:   lobby.ChatID,
		Text:     msg.Text,
		Keyboard: Keyboard(),
	})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to send signup message")
		return
	}

	_, err = s.lobbyRepo.UpdateLobby(ctx, &lobbyRepo.UpdateLobbyInput{
		ChatID: lobby.ChatID,
		Apply: func(cur *models.Lobby) error {
			if cur.ID != lobby.ID {
				return lobbyRepo.ErrLobbyNotFound
			}
			cur.MessageRef = sent.MessageRef
			return nil
		},
	})
	if err != nil && !errors.Is(err, lobbyRepo.ErrLobbyNotFound) {
		logger.Warn().Err(err).Msg("failed to store signup message ref")
		return
	}
	lobby.MessageRef = sent.MessageRef
}

func (s *service) refresh(ctx context.Context, lobby *models.Lobby) {
	if lobby.MessageRef == "" {
		return
	}

	logger := s.logger.With().Str("chat_id", lobby.ChatID).Logger()

	msg, err := s.messaging.GetLobbyMessage(ctx, &messaging.GetLobbyMessageInput{
		Lobby:      lobby,
		PlayersMin: s.playersMin,
		PlayersMax: s.playersMax,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to build signup message")
		return
	}

	if err := s.notifier.EditMessage(ctx, &notifier.EditMessageInput{
		ChatID:     lobby.ChatID,
		MessageRef: lobby.MessageRef,
		Text:       msg.Text,
		Keyboard:   Keyboard(),
	}); err != nil {
		logger.Warn().Err(err).Msg("failed to edit signup message")
	}
}

// close replaces the signup message and drops its buttons
func (s *service) close(ctx context.Context, lobby *models.Lobby, reason messaging.LobbyClosedReason) {
	if lobby.MessageRef == "" {
		return
	}

	logger := s.logger.With().Str("chat_id", lobby.ChatID).Logger()

	msg, err := s.messaging.GetLobbyClosedMessage(ctx, &messaging.GetLobbyClosedMessageInput{
		Lobby:  lobby,
		Reason: reason,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to build closed signup message")
		return
	}

	if err := s.notifier.EditMessage(ctx, &notifier.EditMessageInput{
		ChatID:     lobby.ChatID,
		MessageRef: lobby.MessageRef,
		Text:       msg.Text,
	}); err != nil {
		logger.Warn().Err(err).Msg("failed to edit signup message")
	}
}

// reject logs a failed request at the level its class deserves
func (s *service) reject(logger zerolog.Logger, err error) error {
	if game.IsRejection(err) {
		logger.Debug().Err(err).Msg("signup request rejected")
	} else {
		logger.Error().Err(err).Msg("signup request failed")
	}
	return err
}
