package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/mafiabot/internal/models"
	"github.com/KirkDiggler/mafiabot/internal/services/game"
	"github.com/KirkDiggler/mafiabot/internal/services/lobby"
	"github.com/KirkDiggler/mafiabot/internal/services/messaging"
	"github.com/KirkDiggler/mafiabot/internal/services/poll"
	"github.com/KirkDiggler/mafiabot/internal/services/stats"
)

// interactionTimeout bounds the work done for a single interaction
const interactionTimeout = 10 * time.Second

// Bot represents the Discord bot instance
type Bot struct {
	session      *discordgo.Session
	logger       zerolog.Logger
	commands     map[string]CommandHandler
	commandIDs   map[string]string // Maps command name to command ID
	gameService  game.Service
	lobbyService lobby.Service
	pollService  poll.Service
	messaging    messaging.Service
	config       *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Session is the Discord session shared with the notifier
	Session *discordgo.Session

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	Logger zerolog.Logger

	GameService  game.Service
	LobbyService lobby.Service
	PollService  poll.Service
	StatsService stats.Service
	Messaging    messaging.Service
}

// NewSession creates a Discord session for a bot token
func NewSession(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, errors.New("token cannot be empty")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	return session, nil
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, errors.New("session cannot be nil")
	}

	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	if cfg.LobbyService == nil {
		return nil, errors.New("lobby service cannot be nil")
	}

	if cfg.PollService == nil {
		return nil, errors.New("poll service cannot be nil")
	}

	if cfg.StatsService == nil {
		return nil, errors.New("stats service cannot be nil")
	}

	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	bot := &Bot{
		session:      cfg.Session,
		logger:       cfg.Logger.With().Str("component", "discord").Logger(),
		commands:     make(map[string]CommandHandler),
		commandIDs:   make(map[string]string),
		gameService:  cfg.GameService,
		lobbyService: cfg.LobbyService,
		pollService:  cfg.PollService,
		messaging:    cfg.Messaging,
		config:       cfg,
	}

	// Register the interaction handler
	bot.session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.RegisterCommand(NewMafiaCommand(b.config)); err != nil {
		return fmt.Errorf("failed to register mafia command: %w", err)
	}

	b.logger.Info().Msg("bot is running")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	appID := b.appID()
	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn().Err(err).Str("command", cmdName).Msg("failed to delete command")
		} else {
			b.logger.Debug().Str("command", cmdName).Msg("deleted command")
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord. Without a guild ID the
// command is registered globally.
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info().
		Str("command", cmd.GetName()).
		Str("command_id", createdCmd.ID).
		Str("guild_id", b.config.GuildID).
		Msg("registered command")

	return nil
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(ctx, s, i); err != nil {
				b.logger.Error().Err(err).Str("command", name).Msg("failed to handle command")
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(ctx, s, i); err != nil {
			b.logger.Error().Err(err).Msg("failed to handle component interaction")
		}
	}
}

// handleComponentInteraction routes a button press to the service owning its action
func (b *Bot) handleComponentInteraction(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID

	action, err := DecodeAction(customID)
	if err != nil {
		if errors.Is(err, ErrForeignCustomID) {
			return nil
		}
		b.logger.Warn().Err(err).Str("custom_id", customID).Msg("rejected custom ID")
		return RespondWithEphemeralMessage(s, i, errorReply(ctx, b.messaging, game.ErrUnknownAction))
	}

	channelID := i.ChannelID
	user := interactionUser(i)

	logger := b.logger.With().
		Str("chat_id", channelID).
		Str("actor_id", user.ID).
		Str("action", string(action.Kind)).
		Logger()

	reply, err := b.dispatch(ctx, channelID, user, action)
	if err != nil {
		if !game.IsRejection(err) {
			logger.Error().Err(err).Msg("action failed")
		}
		return RespondWithEphemeralMessage(s, i, errorReply(ctx, b.messaging, err))
	}

	if reply == "" {
		return RespondWithDeferredUpdate(s, i)
	}
	return RespondWithEphemeralMessage(s, i, reply)
}

// dispatch applies an action and returns the private reply to the actor
func (b *Bot) dispatch(ctx context.Context, channelID string, user models.User, action models.Action) (string, error) {
	switch action.Kind {
	case models.ActionPollVote:
		out, err := b.pollService.Vote(ctx, &poll.VoteInput{
			ChatID: channelID,
			Type:   action.PollType,
			Voter:  user,
		})
		if err != nil {
			return "", err
		}
		if out.Passed {
			return "Your vote was counted and the poll has passed.", nil
		}
		return "Your vote was counted.", nil

	case models.ActionLobbyToggle:
		out, err := b.lobbyService.Toggle(ctx, &lobby.ToggleInput{ChatID: channelID, User: user})
		if err != nil {
			return "", err
		}
		if out.Joined {
			return "You are signed up.", nil
		}
		return "You left the signup.", nil

	case models.ActionLobbyPromote:
		_, err := b.lobbyService.Promote(ctx, &lobby.PromoteInput{ChatID: channelID, RequesterID: user.ID})
		return "", err

	case models.ActionLobbyCancel:
		_, err := b.lobbyService.Cancel(ctx, &lobby.CancelInput{ChatID: channelID, RequesterID: user.ID})
		return "", err

	default:
		out, err := b.gameService.ApplyAction(ctx, &game.ApplyActionInput{
			ChatID: channelID,
			Actor:  user,
			Action: action,
		})
		if err != nil {
			return "", err
		}
		return out.Reply, nil
	}
}
