package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/mafiabot/internal/models"
	"github.com/KirkDiggler/mafiabot/internal/tally"
)

// service implements the Service interface
type service struct {
	// Random number generator for selecting flavour lines
	mu   sync.Mutex
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	seed := time.Now().UnixNano()
	if config != nil && config.Seed != 0 {
		seed = config.Seed
	}

	return &service{
		rand: rand.New(rand.NewSource(seed)),
	}, nil
}

func (s *service) pick(messages []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return messages[s.rand.Intn(len(messages))]
}

// GetStageMessage returns the status message of the session's current stage
func (s *service) GetStageMessage(ctx context.Context, input *GetStageMessageInput) (*GetStageMessageOutput, error) {
	if input == nil || input.Session == nil {
		return nil, errors.New("input and session cannot be nil")
	}

	sess := input.Session
	var b strings.Builder

	if summary := s.resolutionText(sess, input.Resolution); summary != "" {
		b.WriteString(summary)
		b.WriteString("\n\n")
	}

	switch sess.Stage {
	case models.StageCardReveal:
		b.WriteString("The cards are on the table. Everyone draws one and keeps it to themselves.")
	case models.StageAcquaintance:
		b.WriteString(s.pick([]string{
			"The mafia opens its eyes and gets to know each other.",
			"Lights out. The mafia team takes a quiet look around the room.",
		}))
	case models.StageDonOrder:
		b.WriteString("Night falls. The don decides in which order the mafia shoots.")
	case models.StageDay:
		fmt.Fprintf(&b, "Day %d. ", sess.DayCount+1)
		b.WriteString(s.pick([]string{
			"The town wakes up and looks for the mafia.",
			"Morning comes. Time to talk and point fingers.",
			"The sun is up. Someone in this room is lying.",
		}))
	case models.StageVote:
		b.WriteString("Time to vote. Choose the player the town should get rid of.")
		if votes := voteLines(sess); votes != "" {
			b.WriteString("\n\n")
			b.WriteString(votes)
		}
	case models.StageShooting:
		b.WriteString(s.pick([]string{
			"Night. The mafia goes hunting: shoot the same player or miss.",
			"The town sleeps and the mafia loads up. Agree on a target or miss.",
		}))
	case models.StageDonCheck:
		b.WriteString("The don is looking for the sheriff.")
	case models.StageSheriffCheck:
		b.WriteString("The sheriff is looking for the mafia.")
	}

	b.WriteString("\n\n")
	b.WriteString(playerLines(sess, false))
	fmt.Fprintf(&b, "\n\nNext stage at %s UTC.", sess.NextStageDeadline.UTC().Format(deadlineLayout))

	return &GetStageMessageOutput{
		Text: b.String(),
	}, nil
}

func (s *service) resolutionText(sess *models.Session, res *models.Resolution) string {
	if res == nil {
		return ""
	}

	switch res.From {
	case models.StageCardReveal:
		if res.AutoRevealed {
			return "Time is up. The cards nobody drew were handed out anyway."
		}
	case models.StageVote:
		if res.Eliminated > 0 {
			return fmt.Sprintf("The town voted out %s.", playerName(sess, res.Eliminated))
		}
		if res.Tied {
			return "The vote ended in a tie. Nobody leaves the town today."
		}
		return "Nobody was voted out."
	case models.StageShooting:
		if res.Killed > 0 {
			return s.pick([]string{
				fmt.Sprintf("Shots in the night. %s did not wake up.", playerName(sess, res.Killed)),
				fmt.Sprintf("The mafia got %s tonight.", playerName(sess, res.Killed)),
			})
		}
		return s.pick([]string{
			"The mafia missed tonight. Everyone wakes up alive.",
			"Shots were fired, but nobody was hit.",
		})
	}
	return ""
}

// GetGameOverMessage returns the message announcing the end of a session
func (s *service) GetGameOverMessage(ctx context.Context, input *GetGameOverMessageInput) (*GetGameOverMessageOutput, error) {
	if input == nil || input.Session == nil {
		return nil, errors.New("input and session cannot be nil")
	}

	sess := input.Session
	var b strings.Builder
	switch sess.Winner {
	case models.TeamMafia:
		b.WriteString(s.pick([]string{
			"Game over. The mafia takes the town!",
			"Game over. The mafia outnumbers the town and wins.",
		}))
	case models.TeamPeace:
		b.WriteString(s.pick([]string{
			"Game over. The town caught every last mafioso!",
			"Game over. Peace returns to the town.",
		}))
	default:
		fmt.Fprintf(&b, "The game was ended: %s.", sess.EndReason)
	}

	b.WriteString("\n\n")
	b.WriteString(playerLines(sess, true))

	return &GetGameOverMessageOutput{
		Text: b.String(),
	}, nil
}

// GetActionReply returns the private reply to a player's accepted action
func (s *service) GetActionReply(ctx context.Context, input *GetActionReplyInput) (*GetActionReplyOutput, error) {
	if input == nil || input.Session == nil || input.Actor == nil {
		return nil, errors.New("input, session and actor cannot be nil")
	}

	sess := input.Session
	target, _ := sess.PlayerByNumber(input.Target)

	switch input.Kind {
	case models.ActionRevealCard:
		return &GetActionReplyOutput{
			Text:  fmt.Sprintf("Your role is %s.", input.Actor.Role.Title()),
			Alert: true,
		}, nil

	case models.ActionAppendOrder:
		return &GetActionReplyOutput{
			Text: fmt.Sprintf("Player %d added to the order.", input.Target),
		}, nil

	case models.ActionEndOrder:
		return &GetActionReplyOutput{
			Text: "The order is set and will be passed to the mafia team.",
		}, nil

	case models.ActionVote:
		if input.Target == tally.Abstain {
			return &GetActionReplyOutput{Text: "You abstained."}, nil
		}
		return &GetActionReplyOutput{
			Text: fmt.Sprintf("You voted against player %d.", input.Target),
		}, nil

	case models.ActionShoot:
		return &GetActionReplyOutput{
			Text: fmt.Sprintf("You shot at player %d.", input.Target),
		}, nil

	case models.ActionCheckDon:
		if target == nil {
			return nil, fmt.Errorf("no player %d", input.Target)
		}
		verdict := "is not"
		if target.Role == models.RoleSheriff {
			verdict = "is"
		}
		return &GetActionReplyOutput{
			Text:  fmt.Sprintf("Player %d %s the %s.", input.Target, verdict, models.RoleSheriff.Title()),
			Alert: true,
		}, nil

	case models.ActionCheckSheriff:
		if target == nil {
			return nil, fmt.Errorf("no player %d", input.Target)
		}
		text := fmt.Sprintf("Player %d is not in the mafia.", input.Target)
		switch target.Role {
		case models.RoleDon:
			text = fmt.Sprintf("Player %d is the %s!", input.Target, models.RoleDon.Title())
		case models.RoleMafia:
			text = fmt.Sprintf("Player %d is in the %s.", input.Target, models.RoleMafia.Title())
		}
		return &GetActionReplyOutput{
			Text:  text,
			Alert: true,
		}, nil

	case models.ActionViewTeam:
		var lines []string
		for i, p := range sess.Players {
			if p.Role.IsMafiaTeam() {
				lines = append(lines, fmt.Sprintf("%d. %s - %s", i+1, p.Name, p.Role.Title()))
			}
		}
		return &GetActionReplyOutput{
			Text:  "Your team:\n" + strings.Join(lines, "\n"),
			Alert: true,
		}, nil

	case models.ActionViewOrder:
		if len(sess.KillOrder) == 0 {
			return &GetActionReplyOutput{
				Text:  fmt.Sprintf("No order tonight, improvise. Just shoot the same player or we miss. ~ %s", models.RoleDon.Title()),
				Alert: true,
			}, nil
		}
		order := make([]string, len(sess.KillOrder))
		for i, n := range sess.KillOrder {
			order[i] = fmt.Sprint(n)
		}
		return &GetActionReplyOutput{
			Text:  fmt.Sprintf("The order is %s. We shoot in this order, otherwise we miss. ~ %s", strings.Join(order, ", "), models.RoleDon.Title()),
			Alert: true,
		}, nil
	}

	return nil, fmt.Errorf("no reply for action %q", input.Kind)
}

// GetLobbyMessage returns the signup message of an open lobby
func (s *service) GetLobbyMessage(ctx context.Context, input *GetLobbyMessageInput) (*GetLobbyMessageOutput, error) {
	if input == nil || input.Lobby == nil {
		return nil, errors.New("input and lobby cannot be nil")
	}

	lobby := input.Lobby
	var b strings.Builder
	fmt.Fprintf(&b, "%s is gathering players for a game of mafia.\n\n", lobby.Owner.Name)
	fmt.Fprintf(&b, "Players (%d/%d):\n", len(lobby.Players), input.PlayersMax)
	for i, p := range lobby.Players {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p.Name)
	}

	if missing := input.PlayersMin - len(lobby.Players); missing > 0 {
		fmt.Fprintf(&b, "\n%d more needed to start.", missing)
	} else {
		fmt.Fprintf(&b, "\n%s can start the game now.", lobby.Owner.Name)
	}

	return &GetLobbyMessageOutput{
		Text: b.String(),
	}, nil
}

// GetLobbyClosedMessage returns the message replacing the signup message once the lobby is gone
func (s *service) GetLobbyClosedMessage(ctx context.Context, input *GetLobbyClosedMessageInput) (*GetLobbyClosedMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var text string
	switch input.Reason {
	case LobbyClosedCancelled:
		text = "The signup was cancelled by its owner."
	case LobbyClosedExpired:
		text = s.pick([]string{
			"Nobody showed up in time. The signup has expired.",
			"The signup has expired. Maybe next time.",
		})
	case LobbyClosedStarted:
		text = "The game has started."
	default:
		text = "The signup is closed."
	}

	return &GetLobbyClosedMessageOutput{
		Text: text,
	}, nil
}

// GetPollMessage returns the message of an open quorum poll
func (s *service) GetPollMessage(ctx context.Context, input *GetPollMessageInput) (*GetPollMessageOutput, error) {
	if input == nil || input.Poll == nil {
		return nil, errors.New("input and poll cannot be nil")
	}

	poll := input.Poll
	var b strings.Builder
	switch poll.Type {
	case models.PollTypeSkip:
		fmt.Fprintf(&b, "%s suggests skipping the current stage.", poll.CreatorName)
	case models.PollTypeEnd:
		fmt.Fprintf(&b, "%s suggests ending the game.", poll.CreatorName)
	}

	if poll.RoleAware {
		fmt.Fprintf(&b, "\n\nMafia votes: %d of %d needed\nTown votes: %d of %d needed",
			poll.MafiaCount, poll.MafiaRequired+1, poll.PeaceCount, poll.PeaceRequired)
	} else {
		fmt.Fprintf(&b, "\n\nVotes: %d of %d needed", poll.Count, poll.Required+1)
	}

	if poll.Passed {
		b.WriteString("\n\nThe poll has passed.")
	}

	return &GetPollMessageOutput{
		Text: b.String(),
	}, nil
}

// GetStatsMessage returns a player's record in a chat
func (s *service) GetStatsMessage(ctx context.Context, input *GetStatsMessageInput) (*GetStatsMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	stats := input.Stats
	if stats == nil || stats.Total == 0 {
		return &GetStatsMessageOutput{
			Text: fmt.Sprintf("%s has not finished a game in this chat yet.", input.PlayerName),
		}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Mafia record of %s: score %d\n", input.PlayerName, stats.Score())
	fmt.Fprintf(&b, "Wins: %d/%d (%d%%)", stats.Wins, stats.Total, 100*stats.Wins/stats.Total)
	for _, role := range models.Roles {
		rs, ok := stats.ByRole[role]
		if !ok || rs.Total == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n- %s: %d/%d (%d%%)", role.Title(), rs.Wins, rs.Total, 100*rs.Wins/rs.Total)
	}

	return &GetStatsMessageOutput{
		Text: b.String(),
	}, nil
}

// GetRatingMessage returns the rating table of a chat
func (s *service) GetRatingMessage(ctx context.Context, input *GetRatingMessageInput) (*GetRatingMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if len(input.Entries) == 0 {
		return &GetRatingMessageOutput{
			Text: "Nobody has finished a game in this chat yet.",
		}, nil
	}

	var b strings.Builder
	b.WriteString("Mafia rating:")
	for _, entry := range input.Entries {
		fmt.Fprintf(&b, "\n%d. %s: %d", entry.Place, entry.PlayerName, entry.Score)
	}

	return &GetRatingMessageOutput{
		Text: b.String(),
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.Rejection && input.Err != nil && input.Err.Error() != "" {
		text := input.Err.Error()
		return &GetErrorMessageOutput{
			Text: strings.ToUpper(text[:1]) + text[1:] + ".",
		}, nil
	}

	return &GetErrorMessageOutput{
		Text: s.pick([]string{
			"Something went wrong. Try again in a moment.",
			"The town clerk lost your paperwork. Try again.",
			"Technical difficulties. Please try again.",
		}),
	}, nil
}

func playerName(sess *models.Session, number int) string {
	p, ok := sess.PlayerByNumber(number)
	if !ok {
		return fmt.Sprintf("player %d", number)
	}
	return fmt.Sprintf("player %d, %s", number, p.Name)
}

// playerLines lists the players by number. Roles are only shown when reveal is set.
func playerLines(sess *models.Session, reveal bool) string {
	lines := make([]string, 0, len(sess.Players))
	for i, p := range sess.Players {
		line := fmt.Sprintf("%d. %s", i+1, p.Name)
		if reveal {
			role := p.Role
			if role == models.RoleNone && i < len(sess.RoleDeck) {
				role = sess.RoleDeck[i]
			}
			line += " - " + role.Title()
		}
		if !p.Alive {
			line += " (out)"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func voteLines(sess *models.Session) string {
	summary := tally.Votes(sess.Votes)
	if summary.Total == 0 {
		return ""
	}

	var lines []string
	for _, target := range summary.Targets() {
		lines = append(lines, fmt.Sprintf("Against %d: %d %s", target, summary.Counts[target], numbers(summary.Voters[target])))
	}
	if len(summary.Abstained) > 0 {
		lines = append(lines, fmt.Sprintf("Abstained: %d %s", len(summary.Abstained), numbers(summary.Abstained)))
	}
	return strings.Join(lines, "\n")
}

func numbers(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
