package discord

import (
	"fmt"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/mafiabot/internal/models"
	"github.com/KirkDiggler/mafiabot/internal/services/game"
)

func playerRow(n int) []models.Button {
	row := make([]models.Button, n)
	for i := range row {
		row[i] = models.Button{
			Label:  fmt.Sprint(i + 1),
			Action: models.Action{Kind: models.ActionVote, Target: i + 1},
		}
	}
	return row
}

func TestRenderKeyboardWrapsRows(t *testing.T) {
	kb := &models.Keyboard{Rows: [][]models.Button{
		playerRow(12),
		{{Label: "Abstain", Action: models.Action{Kind: models.ActionVote}}},
	}}

	components := renderKeyboard(kb)
	require.Len(t, components, 4)

	sizes := make([]int, len(components))
	for i, c := range components {
		sizes[i] = len(c.(discordgo.ActionsRow).Components)
	}
	assert.Equal(t, []int{5, 5, 2, 1}, sizes)

	first := components[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	assert.Equal(t, "1", first.Label)
	assert.Equal(t, "mafia:vote:1", first.CustomID)

	abstain := components[3].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	assert.Equal(t, "mafia:vote:0", abstain.CustomID)
}

func TestRenderKeyboardCapsRows(t *testing.T) {
	components := renderKeyboard(&models.Keyboard{Rows: [][]models.Button{playerRow(30)}})
	assert.Len(t, components, maxRows)
}

func customIDs(components []discordgo.MessageComponent) []string {
	var ids []string
	for _, c := range components {
		for _, b := range c.(discordgo.ActionsRow).Components {
			ids = append(ids, b.(discordgo.Button).CustomID)
		}
	}
	return ids
}

func TestRenderStageKeyboardKeepsControls(t *testing.T) {
	testCases := []struct {
		name    string
		players int
		stage   models.Stage
		control string
		buttons int
	}{
		{name: "vote with 20 players", players: 20, stage: models.StageVote, control: "mafia:vote:0", buttons: 21},
		{name: "vote with 21 players", players: 21, stage: models.StageVote, control: "mafia:vote:0", buttons: 22},
		{name: "vote with 24 players", players: 24, stage: models.StageVote, control: "mafia:vote:0", buttons: 25},
		{name: "don order with 21 players", players: 21, stage: models.StageDonOrder, control: "mafia:end_order", buttons: 22},
		{name: "vote past the message limit", players: 30, stage: models.StageVote, control: "mafia:vote:0", buttons: 25},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sess := &models.Session{Stage: tc.stage}
			for i := 0; i < tc.players; i++ {
				sess.Players = append(sess.Players, &models.Player{ID: fmt.Sprint(i), Alive: true})
			}

			components := renderKeyboard(game.StageKeyboard(sess))
			assert.LessOrEqual(t, len(components), maxRows)

			ids := customIDs(components)
			assert.Len(t, ids, tc.buttons)
			assert.Equal(t, tc.control, ids[len(ids)-1])
		})
	}
}

func TestRenderKeyboardEmpty(t *testing.T) {
	assert.Empty(t, renderKeyboard(nil))
	assert.Empty(t, renderKeyboard(&models.Keyboard{Rows: [][]models.Button{{}}}))
}

func TestRenderEditClearsButtons(t *testing.T) {
	edit := renderEdit("chan-1", "msg-1", "The poll has passed.", nil)

	require.NotNil(t, edit.Content)
	assert.Equal(t, "The poll has passed.", *edit.Content)
	require.NotNil(t, edit.Components)
	assert.Empty(t, *edit.Components)
	assert.Equal(t, "chan-1", edit.Channel)
	assert.Equal(t, "msg-1", edit.ID)
}
