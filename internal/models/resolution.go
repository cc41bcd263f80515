package models

// Resolution describes what happened when a session left a stage
type Resolution struct {
	// From is the stage that was resolved
	From Stage

	// Eliminated is the number of the player voted out, 0 if nobody
	Eliminated int

	// Killed is the number of the player shot at night, 0 if nobody
	Killed int

	// Tied is set when the vote leaders were tied
	Tied bool

	// AutoRevealed is set when the timer revealed the remaining cards
	AutoRevealed bool
}
