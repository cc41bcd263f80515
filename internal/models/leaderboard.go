package models

// RoleStats counts games played and won with one role
type RoleStats struct {
	Total int
	Wins  int
}

// PlayerStats represents a player's record in one chat
type PlayerStats struct {
	// PlayerID is the chat user ID of the player
	PlayerID string

	// PlayerName is the last known display name of the player
	PlayerName string

	// Total is the number of finished games played
	Total int

	// Wins is the number of games won
	Wins int

	// ByRole breaks the record down by dealt role
	ByRole map[Role]RoleStats
}

// Score is the rating score of the player: two points per win minus one per game
func (p *PlayerStats) Score() int {
	return 2*p.Wins - p.Total
}

// PlayerResult is one player's outcome of a finished session
type PlayerResult struct {
	PlayerID   string
	PlayerName string
	Role       Role
	Won        bool
}

// RatingEntry is a line of the chat rating
type RatingEntry struct {
	Place      int
	PlayerName string
	Score      int
}
