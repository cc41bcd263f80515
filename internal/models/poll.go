package models

import "time"

// PollType is the effect a quorum poll has once it passes
type PollType string

const (
	// PollTypeSkip moves the session to the next stage
	PollTypeSkip PollType = "skip"

	// PollTypeEnd terminates the session
	PollTypeEnd PollType = "end"
)

// Valid reports whether t is a known poll type
func (t PollType) Valid() bool {
	return t == PollTypeSkip || t == PollTypeEnd
}

// Poll is a participant-driven vote to skip the current stage or end the game
type Poll struct {
	ID     string
	ChatID string
	Type   PollType

	// StageSeq is the stage instance the poll was opened in
	StageSeq int

	// CreatorName is the display name of the initiator
	CreatorName string

	// RoleAware polls count mafia and peace votes separately
	RoleAware bool

	// Voters holds the IDs of everyone who voted, the initiator included
	Voters []string

	// Count and Required are used by role-blind polls
	Count    int
	Required int

	// MafiaCount, MafiaRequired, PeaceCount and PeaceRequired are used by role-aware polls
	MafiaCount    int
	MafiaRequired int
	PeaceCount    int
	PeaceRequired int

	// Passed is set once quorum is reached; a passed poll is removed on write
	Passed bool

	MessageRef string
	CreatedAt  time.Time
}

// HasVoted reports whether the user already voted in the poll
func (p *Poll) HasVoted(userID string) bool {
	for _, id := range p.Voters {
		if id == userID {
			return true
		}
	}
	return false
}

// QuorumReached evaluates the poll thresholds
func (p *Poll) QuorumReached() bool {
	if p.RoleAware {
		return p.MafiaCount > p.MafiaRequired && p.PeaceCount >= p.PeaceRequired
	}
	return p.Count > p.Required
}
