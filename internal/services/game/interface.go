package game

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/mafiabot/internal/services/game Service

import "context"

// Service runs the stage machine and the action gateway of mafia sessions
type Service interface {
	// NewSession builds the first stage of a session from the players of a lobby
	NewSession(ctx context.Context, input *NewSessionInput) (*NewSessionOutput, error)

	// Announce posts the status message of the session's current stage
	Announce(ctx context.Context, input *AnnounceInput) error

	// ApplyAction applies a participant action as one conditional update
	ApplyAction(ctx context.Context, input *ApplyActionInput) (*ApplyActionOutput, error)

	// Advance ends the given stage instance; a repeated trigger is a no-op
	Advance(ctx context.Context, input *AdvanceInput) (*AdvanceOutput, error)

	// ExpireDue advances every session whose deadline has passed
	ExpireDue(ctx context.Context, input *ExpireDueInput) (*ExpireDueOutput, error)

	// Terminate ends a session without a winner
	Terminate(ctx context.Context, input *TerminateInput) (*TerminateOutput, error)

	// Reset removes every session and lobby
	Reset(ctx context.Context, input *ResetInput) (*ResetOutput, error)

	// GetSession returns the running session of a chat
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)
}
