package models

import "fmt"

// Stage is the stored tag of a phase in the day/night cycle.
// Negative stages are setup and night phases, non-negative ones are day phases.
type Stage int

const (
	StageCardReveal   Stage = -4
	StageAcquaintance Stage = -3
	StageDonOrder     Stage = -2
	StageDay          Stage = 0
	StageVote         Stage = 1
	StageShooting     Stage = 4
	StageDonCheck     Stage = 5
	StageSheriffCheck Stage = 6
)

// Stages lists every stage in cycle order
var Stages = []Stage{
	StageCardReveal,
	StageAcquaintance,
	StageDonOrder,
	StageDay,
	StageVote,
	StageShooting,
	StageDonCheck,
	StageSheriffCheck,
}

// FirstStage is the stage every new session starts in
const FirstStage = StageCardReveal

// String returns the snake_case stage name used in config files and logs
func (s Stage) String() string {
	switch s {
	case StageCardReveal:
		return "card_reveal"
	case StageAcquaintance:
		return "acquaintance"
	case StageDonOrder:
		return "don_order"
	case StageDay:
		return "day"
	case StageVote:
		return "vote"
	case StageShooting:
		return "shooting"
	case StageDonCheck:
		return "don_check"
	case StageSheriffCheck:
		return "sheriff_check"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// ParseStage resolves a stage name as returned by String
func ParseStage(name string) (Stage, error) {
	for _, s := range Stages {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown stage %q", name)
}

// IsNight reports whether the stage belongs to the setup or night part of the cycle
func (s Stage) IsNight() bool {
	return s < 0 || s >= StageShooting
}

// RolesPublic reports whether roles are already known to their owners,
// which makes quorum polls count the two teams separately
func (s Stage) RolesPublic() bool {
	return s != StageCardReveal
}
