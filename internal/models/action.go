package models

// ActionKind enumerates everything a participant can press
type ActionKind string

const (
	ActionRevealCard   ActionKind = "reveal_card"
	ActionAppendOrder  ActionKind = "append_order"
	ActionEndOrder     ActionKind = "end_order"
	ActionVote         ActionKind = "vote"
	ActionShoot        ActionKind = "shoot"
	ActionCheckDon     ActionKind = "check_don"
	ActionCheckSheriff ActionKind = "check_sheriff"
	ActionViewTeam     ActionKind = "view_team"
	ActionViewOrder    ActionKind = "view_order"

	ActionPollVote     ActionKind = "poll_vote"
	ActionLobbyToggle  ActionKind = "lobby_toggle"
	ActionLobbyPromote ActionKind = "lobby_promote"
	ActionLobbyCancel  ActionKind = "lobby_cancel"
)

// Action is a typed participant action with its optional target player number
type Action struct {
	Kind ActionKind

	// Target is a 1-based player number; vote uses 0 for abstain.
	// Poll votes carry the poll type in PollType instead.
	Target int

	PollType PollType
}
