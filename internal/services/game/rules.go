package game

import (
	"fmt"
	"slices"

	"github.com/KirkDiggler/mafiabot/internal/deck"
	"github.com/KirkDiggler/mafiabot/internal/models"
	"github.com/KirkDiggler/mafiabot/internal/tally"
)

type targetRule int

const (
	targetNone targetRule = iota
	targetAny
	targetLiving
	targetLivingOrAbstain
)

// actionRule is the schema of one action kind: where it is allowed, who may
// use it, what target it takes and how it changes the session
type actionRule struct {
	stage    models.Stage
	anyStage bool
	roles    []models.Role
	alive    bool

	// oneShot rejects a second use in the same stage instance
	oneShot bool

	// marks records the actor in ActedThisStage
	marks bool

	// readOnly actions never write the session
	readOnly bool

	target  targetRule
	notSelf bool

	apply func(sess *models.Session, actor int, target int) error
}

var mafiaTeam = []models.Role{models.RoleDon, models.RoleMafia}

var actionRules = map[models.ActionKind]actionRule{
	models.ActionRevealCard: {
		stage:   models.StageCardReveal,
		alive:   true,
		oneShot: true,
		marks:   true,
		apply:   revealCard,
	},
	models.ActionAppendOrder: {
		stage:  models.StageDonOrder,
		roles:  []models.Role{models.RoleDon},
		alive:  true,
		target: targetLiving,
		apply:  appendOrder,
	},
	models.ActionEndOrder: {
		stage:   models.StageDonOrder,
		roles:   []models.Role{models.RoleDon},
		alive:   true,
		oneShot: true,
		marks:   true,
	},
	models.ActionVote: {
		stage:  models.StageVote,
		alive:  true,
		marks:  true,
		target: targetLivingOrAbstain,
		apply:  castVote,
	},
	models.ActionShoot: {
		stage:   models.StageShooting,
		roles:   mafiaTeam,
		alive:   true,
		oneShot: true,
		marks:   true,
		target:  targetLiving,
		apply:   shoot,
	},
	models.ActionCheckDon: {
		stage:   models.StageDonCheck,
		roles:   []models.Role{models.RoleDon},
		alive:   true,
		oneShot: true,
		marks:   true,
		target:  targetAny,
		notSelf: true,
	},
	models.ActionCheckSheriff: {
		stage:   models.StageSheriffCheck,
		roles:   []models.Role{models.RoleSheriff},
		alive:   true,
		oneShot: true,
		marks:   true,
		target:  targetAny,
		notSelf: true,
	},
	models.ActionViewTeam: {
		anyStage: true,
		roles:    mafiaTeam,
		readOnly: true,
	},
	models.ActionViewOrder: {
		anyStage: true,
		roles:    mafiaTeam,
		readOnly: true,
	},
}

// authorize returns the 0-based index of the actor if the rule lets them act now
func (r actionRule) authorize(sess *models.Session, actorID string) (int, error) {
	if !r.anyStage && sess.Stage != r.stage {
		return -1, ErrWrongStage
	}

	idx := sess.PlayerIndex(actorID)
	if idx < 0 {
		return -1, ErrNotAPlayer
	}

	actor := sess.Players[idx]
	if r.alive && !actor.Alive {
		return -1, ErrNotAlive
	}
	if len(r.roles) > 0 && !slices.Contains(r.roles, actor.Role) {
		return -1, ErrWrongRole
	}
	if r.oneShot && sess.HasActed(actor.ID) {
		return -1, ErrAlreadyActed
	}

	return idx, nil
}

func (r actionRule) checkTarget(sess *models.Session, actor int, target int) error {
	if r.target == targetNone {
		if target != 0 {
			return ErrInvalidTarget
		}
		return nil
	}

	if r.target == targetLivingOrAbstain && target == tally.Abstain {
		return nil
	}

	player, ok := sess.PlayerByNumber(target)
	if !ok {
		return ErrInvalidTarget
	}
	if r.target != targetAny && !player.Alive {
		return ErrInvalidTarget
	}
	if r.notSelf && target == actor+1 {
		return ErrTargetIsYou
	}

	return nil
}

func revealCard(sess *models.Session, actor int, _ int) error {
	if actor >= len(sess.RoleDeck) || !sess.RoleDeck[actor].Valid() {
		return fmt.Errorf("%w: no card for player %d", ErrStateCorruption, actor+1)
	}
	sess.Players[actor].Role = sess.RoleDeck[actor]
	return nil
}

func appendOrder(sess *models.Session, _ int, target int) error {
	if slices.Contains(sess.KillOrder, target) {
		return ErrAlreadyInOrder
	}
	sess.KillOrder = append(sess.KillOrder, target)
	return nil
}

// castVote records the actor's vote, retracting any earlier vote of the same stage
func castVote(sess *models.Session, actor int, target int) error {
	voter := actor + 1
	if sess.Votes == nil {
		sess.Votes = map[int][]int{}
	}

	for t, voters := range sess.Votes {
		kept := slices.DeleteFunc(slices.Clone(voters), func(v int) bool { return v == voter })
		if len(kept) == 0 {
			delete(sess.Votes, t)
			continue
		}
		sess.Votes[t] = kept
	}

	sess.Votes[target] = append(sess.Votes[target], voter)
	return nil
}

func shoot(sess *models.Session, _ int, target int) error {
	sess.Shots = append(sess.Shots, target)
	return nil
}

// stageComplete reports whether every participant the stage waits for has acted
func stageComplete(sess *models.Session) bool {
	switch sess.Stage {
	case models.StageCardReveal:
		return sess.AllRevealed()
	case models.StageDonOrder:
		for _, p := range sess.Players {
			if p.Role == models.RoleDon {
				return sess.HasActed(p.ID)
			}
		}
		return false
	case models.StageVote:
		return allActed(sess, sess.Living(nil))
	case models.StageShooting:
		return allActed(sess, sess.Living(func(p *models.Player) bool { return p.Role.IsMafiaTeam() }))
	case models.StageDonCheck:
		don, ok := sess.LivingRole(models.RoleDon)
		return ok && sess.HasActed(don.ID)
	case models.StageSheriffCheck:
		sheriff, ok := sess.LivingRole(models.RoleSheriff)
		return ok && sess.HasActed(sheriff.ID)
	default:
		return false
	}
}

func allActed(sess *models.Session, players []*models.Player) bool {
	if len(players) == 0 {
		return false
	}
	for _, p := range players {
		if !sess.HasActed(p.ID) {
			return false
		}
	}
	return true
}

// validateSession checks the invariants a transition relies on
func validateSession(sess *models.Session) error {
	if !slices.Contains(models.Stages, sess.Stage) {
		return fmt.Errorf("%w: unknown stage %d", ErrStateCorruption, int(sess.Stage))
	}

	if err := deck.Validate(sess.RoleDeck, len(sess.Players)); err != nil {
		return fmt.Errorf("%w: %v", ErrStateCorruption, err)
	}

	seen := make(map[string]bool, len(sess.Players))
	for i, p := range sess.Players {
		if seen[p.ID] {
			return fmt.Errorf("%w: player %s seated twice", ErrStateCorruption, p.ID)
		}
		seen[p.ID] = true

		if p.Role != models.RoleNone && p.Role != sess.RoleDeck[i] {
			return fmt.Errorf("%w: player %d holds %s but drew %s", ErrStateCorruption, i+1, p.Role, sess.RoleDeck[i])
		}
	}

	return nil
}

// winner returns the team that has won, or TeamNone while the game goes on
func winner(sess *models.Session) models.Team {
	mafia, peace := sess.TeamCounts()
	switch {
	case mafia == 0:
		return models.TeamPeace
	case mafia >= peace:
		return models.TeamMafia
	default:
		return models.TeamNone
	}
}

// nightKill returns the victim if every living mafia member shot the same living player
func nightKill(sess *models.Session) (int, bool) {
	shooters := sess.Living(func(p *models.Player) bool { return p.Role.IsMafiaTeam() })
	if len(shooters) == 0 || len(sess.Shots) != len(shooters) {
		return 0, false
	}

	target, ok := tally.Shots(sess.Shots).Unanimous()
	if !ok {
		return 0, false
	}

	victim, found := sess.PlayerByNumber(target)
	if !found || !victim.Alive {
		return 0, false
	}
	return target, true
}
