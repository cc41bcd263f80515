package models

import (
	"time"
)

// Session is the authoritative state of one running mafia game in a chat
type Session struct {
	// ID is the unique identifier of this session
	ID string

	// ChatID is the conversation that owns the session. At most one session exists per chat.
	ChatID string

	// OwnerID is the user who promoted the lobby
	OwnerID string

	// Stage is the current phase of the day/night cycle
	Stage Stage

	// StageSeq identifies the stage instance and increments on every transition.
	// Transitions are conditioned on it so that racing triggers apply once.
	StageSeq int

	// DayCount is the number of completed day/night cycles
	DayCount int

	// Players is fixed at creation. Player numbers are 1-based positions into it.
	Players []*Player

	// RoleDeck is the shuffled role assignment parallel to Players
	RoleDeck []Role

	// ActedThisStage holds the IDs of players that used this stage's action
	ActedThisStage []string

	// Votes maps a target player number (0 = abstain) to voter player numbers
	Votes map[int][]int

	// Shots holds the target player numbers of every night shot
	Shots []int

	// KillOrder is the don's queued sequence of target player numbers
	KillOrder []int

	// NextStageDeadline is when the scheduler forces a transition
	NextStageDeadline time.Time

	// MessageRef is the notifier handle of the status message
	MessageRef string

	// CreatedAt is when the session was created
	CreatedAt time.Time

	// UpdatedAt is when the session was last written
	UpdatedAt time.Time

	// Winner is set when a win condition was reached
	Winner Team

	// EndReason is set when the session is over; an ended session is removed on write
	EndReason string
}

// Ended reports whether the session has been terminated
func (s *Session) Ended() bool {
	return s.EndReason != ""
}

// PlayerIndex returns the 0-based index of the player with the given ID, or -1
func (s *Session) PlayerIndex(playerID string) int {
	for i, p := range s.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// Player returns the player with the given ID
func (s *Session) Player(playerID string) (*Player, bool) {
	idx := s.PlayerIndex(playerID)
	if idx < 0 {
		return nil, false
	}
	return s.Players[idx], true
}

// PlayerByNumber returns the player at the given 1-based position
func (s *Session) PlayerByNumber(number int) (*Player, bool) {
	if number < 1 || number > len(s.Players) {
		return nil, false
	}
	return s.Players[number-1], true
}

// HasActed reports whether the player already used this stage's action
func (s *Session) HasActed(playerID string) bool {
	for _, id := range s.ActedThisStage {
		if id == playerID {
			return true
		}
	}
	return false
}

// MarkActed records that the player used this stage's action
func (s *Session) MarkActed(playerID string) {
	if !s.HasActed(playerID) {
		s.ActedThisStage = append(s.ActedThisStage, playerID)
	}
}

// Living returns the living players matching the filter, or all living players for a nil filter
func (s *Session) Living(filter func(*Player) bool) []*Player {
	var out []*Player
	for _, p := range s.Players {
		if p.Alive && (filter == nil || filter(p)) {
			out = append(out, p)
		}
	}
	return out
}

// LivingRole returns the first living player holding the role
func (s *Session) LivingRole(role Role) (*Player, bool) {
	for _, p := range s.Players {
		if p.Alive && p.Role == role {
			return p, true
		}
	}
	return nil, false
}

// TeamCounts returns the number of living players on each team.
// Unrevealed players count for the team of their dealt card.
func (s *Session) TeamCounts() (mafia, peace int) {
	for i, p := range s.Players {
		if !p.Alive {
			continue
		}
		role := p.Role
		if role == RoleNone && i < len(s.RoleDeck) {
			role = s.RoleDeck[i]
		}
		if role.IsMafiaTeam() {
			mafia++
		} else {
			peace++
		}
	}
	return mafia, peace
}

// AllRevealed reports whether every player drew a card
func (s *Session) AllRevealed() bool {
	for _, p := range s.Players {
		if p.Role == RoleNone {
			return false
		}
	}
	return true
}

// Unrevealed returns the 1-based numbers of players without a role
func (s *Session) Unrevealed() []int {
	var out []int
	for i, p := range s.Players {
		if p.Role == RoleNone {
			out = append(out, i+1)
		}
	}
	return out
}
