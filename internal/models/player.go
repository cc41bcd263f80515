package models

// Player represents a participant of a running session
type Player struct {
	// ID is the chat user ID of the player
	ID string

	// Name is the short display name (handle or first name)
	Name string

	// FullName is the first and last name of the player
	FullName string

	// Alive is false once the player has been eliminated or shot
	Alive bool

	// Role is RoleNone until the player reveals their card
	Role Role
}

// User is the minimal identity of a chat participant
type User struct {
	ID       string
	Name     string
	FullName string
}

// NewPlayer creates a living player without a role
func NewPlayer(u User) *Player {
	return &Player{
		ID:       u.ID,
		Name:     u.Name,
		FullName: u.FullName,
		Alive:    true,
	}
}
