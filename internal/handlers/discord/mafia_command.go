package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/mafiabot/internal/models"
	"github.com/KirkDiggler/mafiabot/internal/services/game"
	"github.com/KirkDiggler/mafiabot/internal/services/lobby"
	"github.com/KirkDiggler/mafiabot/internal/services/messaging"
	"github.com/KirkDiggler/mafiabot/internal/services/poll"
	"github.com/KirkDiggler/mafiabot/internal/services/stats"
)

// Subcommands of /mafia
const (
	SubcommandCreate = "create"
	SubcommandStart  = "start"
	SubcommandCancel = "cancel"
	SubcommandSkip   = "skip"
	SubcommandEnd    = "end"
	SubcommandStats  = "stats"
	SubcommandRating = "rating"
	SubcommandReset  = "reset"
)

// MafiaCommand handles the /mafia command
type MafiaCommand struct {
	BaseCommand
	logger       zerolog.Logger
	gameService  game.Service
	lobbyService lobby.Service
	pollService  poll.Service
	statsService stats.Service
	messaging    messaging.Service
}

// NewMafiaCommand creates the /mafia command handler from the bot's services
func NewMafiaCommand(cfg *Config) *MafiaCommand {
	return &MafiaCommand{
		BaseCommand: BaseCommand{
			Name:        "mafia",
			Description: "Play mafia in this channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandCreate,
					Description: "Open a signup for a new game",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandStart,
					Description: "Start the game with everyone signed up",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandCancel,
					Description: "Cancel the open signup",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandSkip,
					Description: "Start a vote to skip the current stage",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandEnd,
					Description: "Start a vote to end the game",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandStats,
					Description: "Show a player's record in this channel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "player",
							Description: "Whose record to show, yourself by default",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandRating,
					Description: "Show the best players of this channel",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandReset,
					Description: "Remove every game and signup (admin only)",
				},
			},
		},
		logger:       cfg.Logger.With().Str("command", "mafia").Logger(),
		gameService:  cfg.GameService,
		lobbyService: cfg.LobbyService,
		pollService:  cfg.PollService,
		statsService: cfg.StatsService,
		messaging:    cfg.Messaging,
	}
}

// Handle processes a Discord interaction for the mafia command
func (c *MafiaCommand) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	channelID := i.ChannelID
	user := interactionUser(i)
	sub := data.Options[0]

	logger := c.logger.With().
		Str("chat_id", channelID).
		Str("actor_id", user.ID).
		Str("subcommand", sub.Name).
		Logger()

	var (
		reply  string
		public bool
		err    error
	)

	switch sub.Name {
	case SubcommandCreate:
		_, err = c.lobbyService.Open(ctx, &lobby.OpenInput{ChatID: channelID, Owner: user})
		reply = "Signup opened."
	case SubcommandStart:
		_, err = c.lobbyService.Promote(ctx, &lobby.PromoteInput{ChatID: channelID, RequesterID: user.ID})
		reply = "The game has started."
	case SubcommandCancel:
		_, err = c.lobbyService.Cancel(ctx, &lobby.CancelInput{ChatID: channelID, RequesterID: user.ID})
		reply = "Signup cancelled."
	case SubcommandSkip:
		reply, err = c.openPoll(ctx, channelID, user, models.PollTypeSkip)
	case SubcommandEnd:
		reply, err = c.openPoll(ctx, channelID, user, models.PollTypeEnd)
	case SubcommandStats:
		reply, err = c.playerStats(ctx, s, channelID, user, sub.Options)
		public = true
	case SubcommandRating:
		reply, err = c.rating(ctx, channelID)
		public = true
	case SubcommandReset:
		var out *game.ResetOutput
		out, err = c.gameService.Reset(ctx, &game.ResetInput{RequesterID: user.ID})
		if err == nil {
			reply = fmt.Sprintf("Removed %d games and %d signups.", out.Sessions, out.Lobbies)
		}
	default:
		err = errors.New("unknown subcommand")
	}

	if err != nil {
		if !game.IsRejection(err) {
			logger.Error().Err(err).Msg("command failed")
		}
		return RespondWithEphemeralMessage(s, i, errorReply(ctx, c.messaging, err))
	}

	if public {
		return RespondWithMessage(s, i, reply)
	}
	return RespondWithEphemeralMessage(s, i, reply)
}

func (c *MafiaCommand) openPoll(ctx context.Context, channelID string, user models.User, pollType models.PollType) (string, error) {
	out, err := c.pollService.Open(ctx, &poll.OpenInput{
		ChatID:    channelID,
		Type:      pollType,
		Initiator: user,
	})
	if err != nil {
		return "", err
	}
	if out.Passed {
		return "Your vote was enough, the poll has passed.", nil
	}
	return "Poll opened, your vote is counted.", nil
}

func (c *MafiaCommand) playerStats(ctx context.Context, s *discordgo.Session, channelID string, user models.User, options []*discordgo.ApplicationCommandInteractionDataOption) (string, error) {
	playerID, playerName := user.ID, user.Name
	for _, opt := range options {
		if opt.Name == "player" {
			if u := opt.UserValue(s); u != nil {
				playerID, playerName = u.ID, u.Username
			}
		}
	}

	out, err := c.statsService.GetPlayerStats(ctx, &stats.GetPlayerStatsInput{
		ChatID:   channelID,
		PlayerID: playerID,
	})
	if err != nil {
		return "", err
	}

	msg, err := c.messaging.GetStatsMessage(ctx, &messaging.GetStatsMessageInput{
		PlayerName: playerName,
		Stats:      out.Stats,
	})
	if err != nil {
		return "", err
	}
	return msg.Text, nil
}

func (c *MafiaCommand) rating(ctx context.Context, channelID string) (string, error) {
	out, err := c.statsService.GetRating(ctx, &stats.GetRatingInput{ChatID: channelID})
	if err != nil {
		return "", err
	}

	msg, err := c.messaging.GetRatingMessage(ctx, &messaging.GetRatingMessageInput{Entries: out.Entries})
	if err != nil {
		return "", err
	}
	return msg.Text, nil
}

// errorReply turns a failed request into the text shown to the actor
func errorReply(ctx context.Context, msgs messaging.Service, err error) string {
	out, msgErr := msgs.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		Err:       err,
		Rejection: game.IsRejection(err),
	})
	if msgErr != nil {
		return "Something went wrong."
	}
	return out.Text
}
