package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/mafiabot/internal/models"
	"github.com/KirkDiggler/mafiabot/internal/tally"
)

func sessionOf(roles ...models.Role) *models.Session {
	sess := &models.Session{
		Stage:    models.StageDay,
		RoleDeck: roles,
		Votes:    map[int][]int{},
	}
	for i, r := range roles {
		sess.Players = append(sess.Players, &models.Player{
			ID:    string(rune('a' + i)),
			Alive: true,
			Role:  r,
		})
	}
	return sess
}

func TestWinner(t *testing.T) {
	testCases := []struct {
		name string
		dead []int
		want models.Team
	}{
		{name: "game goes on", want: models.TeamNone},
		{name: "mafia gone", dead: []int{1, 2}, want: models.TeamPeace},
		{name: "mafia equals peace", dead: []int{4, 5}, want: models.TeamMafia},
		{name: "don dead, mafia outnumbered", dead: []int{1}, want: models.TeamNone},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sess := sessionOf(models.RoleDon, models.RoleMafia, models.RoleSheriff, models.RolePeace, models.RolePeace, models.RolePeace)
			for _, n := range tc.dead {
				sess.Players[n-1].Alive = false
			}
			assert.Equal(t, tc.want, winner(sess))
		})
	}
}

func TestNightKill(t *testing.T) {
	testCases := []struct {
		name   string
		dead   []int
		shots  []int
		want   int
		killed bool
	}{
		{name: "unanimous", shots: []int{4, 4}, want: 4, killed: true},
		{name: "split", shots: []int{4, 5}},
		{name: "one shooter missing", shots: []int{4}},
		{name: "no shots"},
		{name: "dead shooter is not waited for", dead: []int{2}, shots: []int{5}, want: 5, killed: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sess := sessionOf(models.RoleDon, models.RoleMafia, models.RoleSheriff, models.RolePeace, models.RolePeace)
			for _, n := range tc.dead {
				sess.Players[n-1].Alive = false
			}
			sess.Shots = tc.shots

			got, ok := nightKill(sess)
			assert.Equal(t, tc.killed, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCastVoteRetractsEarlierVote(t *testing.T) {
	sess := sessionOf(models.RoleDon, models.RoleMafia, models.RoleSheriff, models.RolePeace)

	assert.NoError(t, castVote(sess, 0, 3))
	assert.NoError(t, castVote(sess, 1, 3))
	assert.NoError(t, castVote(sess, 0, tally.Abstain))

	assert.Equal(t, map[int][]int{3: {2}, 0: {1}}, sess.Votes)
}

func TestCheckTarget(t *testing.T) {
	sess := sessionOf(models.RoleDon, models.RoleMafia, models.RoleSheriff, models.RolePeace)
	sess.Players[3].Alive = false

	vote := actionRules[models.ActionVote]
	assert.NoError(t, vote.checkTarget(sess, 0, tally.Abstain))
	assert.NoError(t, vote.checkTarget(sess, 0, 3))
	assert.ErrorIs(t, vote.checkTarget(sess, 0, 4), ErrInvalidTarget)
	assert.ErrorIs(t, vote.checkTarget(sess, 0, 5), ErrInvalidTarget)

	check := actionRules[models.ActionCheckSheriff]
	assert.NoError(t, check.checkTarget(sess, 2, 4))
	assert.ErrorIs(t, check.checkTarget(sess, 2, 3), ErrTargetIsYou)
	assert.ErrorIs(t, check.checkTarget(sess, 2, 0), ErrInvalidTarget)

	reveal := actionRules[models.ActionRevealCard]
	assert.ErrorIs(t, reveal.checkTarget(sess, 0, 2), ErrInvalidTarget)
}

func TestValidateSession(t *testing.T) {
	sess := sessionOf(models.RoleDon, models.RoleSheriff, models.RolePeace)
	assert.NoError(t, validateSession(sess))

	sess.Players[2].Role = models.RoleMafia
	assert.ErrorIs(t, validateSession(sess), ErrStateCorruption)

	sess = sessionOf(models.RoleDon, models.RoleSheriff, models.RolePeace)
	sess.Stage = models.Stage(3)
	assert.ErrorIs(t, validateSession(sess), ErrStateCorruption)

	sess = sessionOf(models.RoleDon, models.RoleSheriff, models.RolePeace)
	sess.Players[1].ID = sess.Players[0].ID
	assert.ErrorIs(t, validateSession(sess), ErrStateCorruption)
}

func TestStageKeyboard(t *testing.T) {
	sess := sessionOf(models.RoleDon, models.RoleMafia, models.RoleSheriff, models.RolePeace)
	sess.Players[1].Alive = false
	sess.Stage = models.StageVote

	kb := StageKeyboard(sess)
	assert.Len(t, kb.Rows, 2)
	assert.Equal(t, []string{"1", "3", "4"}, labels(kb.Rows[0]))
	assert.Equal(t, models.Action{Kind: models.ActionVote, Target: tally.Abstain}, kb.Rows[1][0].Action)

	sess.Stage = models.StageCardReveal
	assert.Equal(t, models.ActionRevealCard, StageKeyboard(sess).Rows[0][0].Action.Kind)
}

func labels(row []models.Button) []string {
	out := make([]string, len(row))
	for i, b := range row {
		out[i] = b.Label
	}
	return out
}
