package session

import (
	"time"

	"github.com/KirkDiggler/mafiabot/internal/models"
)

type CreateSessionInput struct {
	Session *models.Session
}

type GetSessionInput struct {
	ChatID string
}

type UpdateSessionInput struct {
	ChatID string

	// Now stamps UpdatedAt on the written session
	Now time.Time

	// Apply mutates the current session in place. Returning an error aborts
	// the update without writing. Apply may run more than once under contention
	// and must not have side effects outside the session it is given.
	Apply func(session *models.Session) error
}

type UpdateSessionOutput struct {
	// Session is the post-image of the update
	Session *models.Session

	// Removed is true when the session ended and was deleted by this update
	Removed bool
}

type GetDueSessionsInput struct {
	Now time.Time
}

type GetDueSessionsOutput struct {
	ChatIDs []string
}

type DeleteAllSessionsInput struct {
}

type DeleteAllSessionsOutput struct {
	Deleted int
}
