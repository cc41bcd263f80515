package game

import (
	"fmt"

	"github.com/KirkDiggler/mafiabot/internal/models"
	"github.com/KirkDiggler/mafiabot/internal/tally"
)

// StageKeyboard returns the buttons attached to the status message of the current stage
func StageKeyboard(sess *models.Session) *models.Keyboard {
	switch sess.Stage {
	case models.StageCardReveal:
		return single(button("Draw a card", models.ActionRevealCard, 0))
	case models.StageAcquaintance:
		return single(button("Meet the team", models.ActionViewTeam, 0))
	case models.StageDonOrder:
		return &models.Keyboard{Rows: [][]models.Button{
			numbers(sess, models.ActionAppendOrder),
			{button("Done", models.ActionEndOrder, 0)},
		}}
	case models.StageDay:
		return single(button("Don's order", models.ActionViewOrder, 0))
	case models.StageVote:
		return &models.Keyboard{Rows: [][]models.Button{
			numbers(sess, models.ActionVote),
			{button("Abstain", models.ActionVote, tally.Abstain)},
		}}
	case models.StageShooting:
		return &models.Keyboard{Rows: [][]models.Button{
			numbers(sess, models.ActionShoot),
			{button("Don's order", models.ActionViewOrder, 0)},
		}}
	case models.StageDonCheck:
		return &models.Keyboard{Rows: [][]models.Button{numbers(sess, models.ActionCheckDon)}}
	case models.StageSheriffCheck:
		return &models.Keyboard{Rows: [][]models.Button{numbers(sess, models.ActionCheckSheriff)}}
	default:
		return nil
	}
}

// numbers is one button per living player, labelled with the player number
func numbers(sess *models.Session, kind models.ActionKind) []models.Button {
	var row []models.Button
	for i, p := range sess.Players {
		if p.Alive {
			row = append(row, button(fmt.Sprint(i+1), kind, i+1))
		}
	}
	return row
}

func button(label string, kind models.ActionKind, target int) models.Button {
	return models.Button{
		Label:  label,
		Action: models.Action{Kind: kind, Target: target},
	}
}

func single(b models.Button) *models.Keyboard {
	return &models.Keyboard{Rows: [][]models.Button{{b}}}
}
