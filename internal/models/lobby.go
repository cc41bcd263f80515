package models

import "time"

// Lobby is the signup list of a chat before a session starts
type Lobby struct {
	// ID is the unique identifier of the lobby, carried over to the session
	ID string

	// ChatID is the conversation the lobby was opened in
	ChatID string

	// Owner is the user who opened the lobby and may start or cancel it
	Owner User

	// Players are the signed up participants in join order
	Players []User

	// Deadline is when the lobby expires unless promoted
	Deadline time.Time

	// MessageRef is the notifier handle of the signup message
	MessageRef string

	// CreatedAt is when the lobby was opened
	CreatedAt time.Time
}

// Index returns the position of the user in the signup list, or -1
func (l *Lobby) Index(userID string) int {
	for i, p := range l.Players {
		if p.ID == userID {
			return i
		}
	}
	return -1
}
