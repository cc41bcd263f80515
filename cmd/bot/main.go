package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/mafiabot/internal/common/clock"
	"github.com/KirkDiggler/mafiabot/internal/common/uuid"
	"github.com/KirkDiggler/mafiabot/internal/config"
	"github.com/KirkDiggler/mafiabot/internal/deck"
	"github.com/KirkDiggler/mafiabot/internal/handlers/discord"
	"github.com/KirkDiggler/mafiabot/internal/observability"
	lobbyRepo "github.com/KirkDiggler/mafiabot/internal/repositories/lobby"
	pollRepo "github.com/KirkDiggler/mafiabot/internal/repositories/poll"
	sessionRepo "github.com/KirkDiggler/mafiabot/internal/repositories/session"
	statsRepo "github.com/KirkDiggler/mafiabot/internal/repositories/stats"
	"github.com/KirkDiggler/mafiabot/internal/services/game"
	"github.com/KirkDiggler/mafiabot/internal/services/lobby"
	"github.com/KirkDiggler/mafiabot/internal/services/messaging"
	"github.com/KirkDiggler/mafiabot/internal/services/poll"
	"github.com/KirkDiggler/mafiabot/internal/services/scheduler"
	"github.com/KirkDiggler/mafiabot/internal/services/stats"
	"github.com/KirkDiggler/mafiabot/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger := observability.InitLogger("mafiabot", cfg.LogLevel)

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = redisClient.Ping(pingCtx).Err()
	pingCancel()
	if err != nil {
		logger.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to connect to redis")
	}

	st, err := store.New(&store.Config{RedisClient: redisClient})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create store")
	}

	// Initialize repositories
	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{Store: st})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create session repository")
	}

	lobbies, err := lobbyRepo.NewRedis(&lobbyRepo.Config{Store: st})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create lobby repository")
	}

	polls, err := pollRepo.NewRedis(&pollRepo.Config{Store: st})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create poll repository")
	}

	records, err := statsRepo.NewRedis(&statsRepo.Config{RedisClient: redisClient})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create stats repository")
	}

	msgs, err := messaging.NewService(&messaging.ServiceConfig{})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create messaging service")
	}

	// The session is shared by the notifier and the bot
	discordSession, err := discord.NewSession(cfg.DiscordToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create discord session")
	}

	notifier, err := discord.NewNotifier(discordSession)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create notifier")
	}

	clk := &clock.DefaultClock{}
	ids := uuid.New()

	// Initialize services
	gameSvc, err := game.New(&game.Config{
		Durations:     cfg.Stages,
		AdminID:       cfg.AdminID,
		Logger:        logger,
		SessionRepo:   sessions,
		LobbyRepo:     lobbies,
		StatsRepo:     records,
		Notifier:      notifier,
		Messaging:     msgs,
		Dealer:        deck.New(&deck.Config{}),
		Clock:         clk,
		UUIDGenerator: ids,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create game service")
	}

	lobbySvc, err := lobby.New(&lobby.Config{
		PlayersMin:    cfg.PlayersMin,
		PlayersMax:    cfg.PlayersMax,
		TTL:           cfg.LobbyTTL,
		Logger:        logger,
		LobbyRepo:     lobbies,
		GameService:   gameSvc,
		Notifier:      notifier,
		Messaging:     msgs,
		Clock:         clk,
		UUIDGenerator: ids,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create lobby service")
	}

	pollSvc, err := poll.New(&poll.Config{
		Logger:        logger,
		PollRepo:      polls,
		GameService:   gameSvc,
		Notifier:      notifier,
		Messaging:     msgs,
		Clock:         clk,
		UUIDGenerator: ids,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create poll service")
	}

	statsSvc, err := stats.New(&stats.Config{
		Logger:    logger,
		StatsRepo: records,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create stats service")
	}

	sweeper, err := scheduler.New(&scheduler.Config{
		Interval: cfg.SweepInterval,
		Logger:   logger,
		Clock:    clk,
		Tasks: []scheduler.Task{
			{
				Name: "stage deadlines",
				Sweep: func(ctx context.Context, now time.Time) error {
					_, err := gameSvc.ExpireDue(ctx, &game.ExpireDueInput{Now: now})
					return err
				},
			},
			{
				Name: "signup deadlines",
				Sweep: func(ctx context.Context, now time.Time) error {
					_, err := lobbySvc.ExpireDue(ctx, &lobby.ExpireDueInput{Now: now})
					return err
				},
			},
		},
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create scheduler")
	}

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Session:       discordSession,
		ApplicationID: cfg.ApplicationID,
		GuildID:       cfg.GuildID,
		Logger:        logger,
		GameService:   gameSvc,
		LobbyService:  lobbySvc,
		PollService:   pollSvc,
		StatsService:  statsSvc,
		Messaging:     msgs,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create discord bot")
	}

	if err := bot.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start discord bot")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		sweeper.Run(ctx)
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	cancel()
	<-done

	if err := bot.Stop(); err != nil {
		logger.Error().Err(err).Msg("failed to stop bot")
	}

	if err := redisClient.Close(); err != nil {
		logger.Error().Err(err).Msg("failed to close redis client")
	}

	logger.Info().Msg("bot has been shut down")
}
