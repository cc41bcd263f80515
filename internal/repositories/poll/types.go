package poll

import "github.com/KirkDiggler/mafiabot/internal/models"

type CreatePollInput struct {
	ChatID string
	Type   models.PollType

	// Build creates the poll from the running session, which is nil if the chat has none
	Build func(session *models.Session) (*models.Poll, error)
}

type GetPollInput struct {
	ChatID string
	Type   models.PollType
}

type VotePollInput struct {
	ChatID string
	Type   models.PollType

	// Apply records the vote; the session is nil if the chat has none.
	// A poll left with Passed set is removed instead of written.
	Apply func(poll *models.Poll, session *models.Session) error
}

type UpdatePollMessageInput struct {
	ChatID     string
	Type       models.PollType
	MessageRef string
}
