package poll

import "github.com/KirkDiggler/mafiabot/internal/models"

// eligible stages accept polls; the rest are short enough to wait out
var eligible = map[models.Stage]bool{
	models.StageCardReveal: true,
	models.StageDay:        true,
}

// thresholds sets the poll mode and the counts that must be exceeded.
// Before the cards are revealed every player counts the same. Afterwards
// each team has its own threshold so neither side can force a skip alone.
func thresholds(poll *models.Poll, sess *models.Session) {
	if !sess.Stage.RolesPublic() {
		poll.RoleAware = false
		poll.Required = 2 * len(sess.Players) / 3
		return
	}

	mafia, peace := sess.TeamCounts()
	poll.RoleAware = true
	poll.MafiaRequired = 2 * mafia / 3
	poll.PeaceRequired = 2 * peace / 3
}

// count records the vote of the player at idx and evaluates quorum
func count(poll *models.Poll, sess *models.Session, idx int) {
	voter := sess.Players[idx]
	poll.Voters = append(poll.Voters, voter.ID)

	if !poll.RoleAware {
		poll.Count++
	} else if sess.RoleDeck[idx].IsMafiaTeam() {
		poll.MafiaCount++
	} else {
		poll.PeaceCount++
	}

	poll.Passed = poll.QuorumReached()
}
