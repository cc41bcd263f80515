package discord

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/mafiabot/internal/models"
)

// customIDPrefix marks components owned by this bot
const customIDPrefix = "mafia"

var (
	ErrForeignCustomID = errors.New("custom ID does not belong to this bot")
	ErrUnknownKind     = errors.New("unknown action kind")
	ErrBadTarget       = errors.New("invalid action target")
)

// targetKind describes what follows the action kind in a custom ID
type targetKind int

const (
	targetNone targetKind = iota
	targetPlayer
	targetVote
	targetPoll
)

var actionTargets = map[models.ActionKind]targetKind{
	models.ActionRevealCard:   targetNone,
	models.ActionAppendOrder:  targetPlayer,
	models.ActionEndOrder:     targetNone,
	models.ActionVote:         targetVote,
	models.ActionShoot:        targetPlayer,
	models.ActionCheckDon:     targetPlayer,
	models.ActionCheckSheriff: targetPlayer,
	models.ActionViewTeam:     targetNone,
	models.ActionViewOrder:    targetNone,

	models.ActionPollVote:     targetPoll,
	models.ActionLobbyToggle:  targetNone,
	models.ActionLobbyPromote: targetNone,
	models.ActionLobbyCancel:  targetNone,
}

// EncodeAction renders an action as a component custom ID, mafia:<kind>[:<target>]
func EncodeAction(action models.Action) string {
	parts := []string{customIDPrefix, string(action.Kind)}
	switch actionTargets[action.Kind] {
	case targetPlayer, targetVote:
		parts = append(parts, strconv.Itoa(action.Target))
	case targetPoll:
		parts = append(parts, string(action.PollType))
	}
	return strings.Join(parts, ":")
}

// DecodeAction parses a custom ID produced by EncodeAction
func DecodeAction(customID string) (models.Action, error) {
	parts := strings.Split(customID, ":")
	if len(parts) < 2 || parts[0] != customIDPrefix {
		return models.Action{}, ErrForeignCustomID
	}

	kind := models.ActionKind(parts[1])
	target, ok := actionTargets[kind]
	if !ok {
		return models.Action{}, fmt.Errorf("%w: %q", ErrUnknownKind, parts[1])
	}

	args := parts[2:]
	action := models.Action{Kind: kind}

	if target == targetNone {
		if len(args) != 0 {
			return models.Action{}, fmt.Errorf("%w: %s takes no target", ErrBadTarget, kind)
		}
		return action, nil
	}

	if len(args) != 1 || args[0] == "" {
		return models.Action{}, fmt.Errorf("%w: %s takes exactly one target", ErrBadTarget, kind)
	}

	switch target {
	case targetPoll:
		action.PollType = models.PollType(args[0])
		if !action.PollType.Valid() {
			return models.Action{}, fmt.Errorf("%w: unknown poll type %q", ErrBadTarget, args[0])
		}
	default:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return models.Action{}, fmt.Errorf("%w: %v", ErrBadTarget, err)
		}
		lowest := 1
		if target == targetVote {
			lowest = 0
		}
		if n < lowest {
			return models.Action{}, fmt.Errorf("%w: player number %d", ErrBadTarget, n)
		}
		action.Target = n
	}

	return action, nil
}
