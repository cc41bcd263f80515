package models

// Role is the card a player draws at the start of a session
type Role string

const (
	// RoleNone marks a player whose card has not been revealed yet
	RoleNone Role = ""

	// RoleDon leads the mafia team and investigates for the sheriff
	RoleDon Role = "don"

	// RoleMafia shoots at night together with the don
	RoleMafia Role = "mafia"

	// RoleSheriff investigates for the mafia team at night
	RoleSheriff Role = "sheriff"

	// RolePeace is a plain citizen
	RolePeace Role = "peace"
)

// Roles lists every role in deck order
var Roles = []Role{RoleDon, RoleMafia, RoleSheriff, RolePeace}

// Team is the side a role plays for
type Team string

const (
	TeamNone  Team = ""
	TeamMafia Team = "mafia"
	TeamPeace Team = "peace"
)

// Team returns the side the role plays for
func (r Role) Team() Team {
	switch r {
	case RoleDon, RoleMafia:
		return TeamMafia
	case RoleSheriff, RolePeace:
		return TeamPeace
	default:
		return TeamNone
	}
}

// IsMafiaTeam reports whether the role shoots at night
func (r Role) IsMafiaTeam() bool {
	return r.Team() == TeamMafia
}

// Valid reports whether r is a dealt role
func (r Role) Valid() bool {
	return r.Team() != TeamNone
}

// Title returns the human readable role name
func (r Role) Title() string {
	switch r {
	case RoleDon:
		return "Don"
	case RoleMafia:
		return "Mafia"
	case RoleSheriff:
		return "Sheriff"
	case RolePeace:
		return "Peaceful citizen"
	default:
		return "Unknown"
	}
}
