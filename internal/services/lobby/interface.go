package lobby

import "context"

// Service manages signup lists and turns them into sessions
type Service interface {
	// Open starts a signup in a chat with the owner as its first player
	Open(ctx context.Context, input *OpenInput) (*OpenOutput, error)

	// Toggle signs a user up, or takes them off the list if already signed up
	Toggle(ctx context.Context, input *ToggleInput) (*ToggleOutput, error)

	// Cancel closes the signup without starting a game
	Cancel(ctx context.Context, input *CancelInput) (*CancelOutput, error)

	// Promote replaces the signup with a new session
	Promote(ctx context.Context, input *PromoteInput) (*PromoteOutput, error)

	// ExpireDue closes every signup whose deadline has passed
	ExpireDue(ctx context.Context, input *ExpireDueInput) (*ExpireDueOutput, error)
}
