package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/mafiabot/internal/common/uuid UUID

// UUID generates identifiers for lobbies, sessions and polls
type UUID interface {
	NewUUID() string
	NewShortID() string
}

// DefaultUUID implements the UUID interface using the uuid package
type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new random UUID
func (d *DefaultUUID) NewUUID() string {
	return uuid.New().String()
}

// NewShortID returns the first eight hex characters of a random UUID
func (d *DefaultUUID) NewShortID() string {
	return uuid.New().String()[:8]
}
