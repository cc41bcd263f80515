package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/mafiabot/internal/models"
)

const (
	// Discord limits
	maxButtonsPerRow = 5
	maxRows          = 5
	maxLabelLength   = 80
)

// renderKeyboard turns a keyboard into action rows, wrapping long rows. When
// the wrapped rows do not fit, the buttons are packed five to a row; if even
// that overflows, player buttons are dropped so the last row of the keyboard,
// which holds the stage controls, is always shown.
func renderKeyboard(kb *models.Keyboard) []discordgo.MessageComponent {
	components := []discordgo.MessageComponent{}
	if kb.Empty() {
		return components
	}

	var rows [][]models.Button
	for _, row := range kb.Rows {
		rows = append(rows, wrap(row)...)
	}

	if len(rows) > maxRows {
		rows = wrap(packed(kb))
	}

	for _, row := range rows {
		buttons := make([]discordgo.MessageComponent, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, renderButton(b))
		}
		components = append(components, discordgo.ActionsRow{Components: buttons})
	}

	return components
}

// wrap splits a row into chunks of at most maxButtonsPerRow
func wrap(row []models.Button) [][]models.Button {
	var rows [][]models.Button
	for start := 0; start < len(row); start += maxButtonsPerRow {
		rows = append(rows, row[start:min(start+maxButtonsPerRow, len(row))])
	}
	return rows
}

// packed flattens a keyboard into at most maxRows*maxButtonsPerRow buttons,
// keeping the last row whole
func packed(kb *models.Keyboard) []models.Button {
	var buttons []models.Button
	for _, row := range kb.Rows {
		buttons = append(buttons, row...)
	}

	limit := maxRows * maxButtonsPerRow
	if len(buttons) <= limit {
		return buttons
	}

	controls := kb.Rows[len(kb.Rows)-1]
	if len(controls) >= limit {
		return controls[:limit]
	}
	kept := append([]models.Button{}, buttons[:limit-len(controls)]...)
	return append(kept, controls...)
}

func renderButton(b models.Button) discordgo.Button {
	label := b.Label
	if len(label) > maxLabelLength {
		label = label[:maxLabelLength]
	}
	return discordgo.Button{
		Label:    label,
		Style:    buttonStyle(b.Action.Kind),
		CustomID: EncodeAction(b.Action),
	}
}

func buttonStyle(kind models.ActionKind) discordgo.ButtonStyle {
	switch kind {
	case models.ActionShoot:
		return discordgo.DangerButton
	case models.ActionLobbyPromote, models.ActionPollVote, models.ActionRevealCard:
		return discordgo.SuccessButton
	case models.ActionLobbyCancel, models.ActionEndOrder, models.ActionViewTeam, models.ActionViewOrder:
		return discordgo.SecondaryButton
	default:
		return discordgo.PrimaryButton
	}
}

// renderSend builds a new channel message
func renderSend(text string, kb *models.Keyboard) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content:    text,
		Components: renderKeyboard(kb),
	}
}

// renderEdit builds an edit that replaces both the text and the buttons.
// A nil keyboard clears the buttons.
func renderEdit(channelID, messageID, text string, kb *models.Keyboard) *discordgo.MessageEdit {
	components := renderKeyboard(kb)
	return &discordgo.MessageEdit{
		Channel:    channelID,
		ID:         messageID,
		Content:    &text,
		Components: &components,
	}
}
