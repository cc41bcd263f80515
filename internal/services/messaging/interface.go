package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetStageMessage returns the status message of the session's current stage
	GetStageMessage(ctx context.Context, input *GetStageMessageInput) (*GetStageMessageOutput, error)

	// GetGameOverMessage returns the message announcing the end of a session
	GetGameOverMessage(ctx context.Context, input *GetGameOverMessageInput) (*GetGameOverMessageOutput, error)

	// GetActionReply returns the private reply to a player's accepted action
	GetActionReply(ctx context.Context, input *GetActionReplyInput) (*GetActionReplyOutput, error)

	// GetLobbyMessage returns the signup message of an open lobby
	GetLobbyMessage(ctx context.Context, input *GetLobbyMessageInput) (*GetLobbyMessageOutput, error)

	// GetLobbyClosedMessage returns the message replacing the signup message once the lobby is gone
	GetLobbyClosedMessage(ctx context.Context, input *GetLobbyClosedMessageInput) (*GetLobbyClosedMessageOutput, error)

	// GetPollMessage returns the message of an open quorum poll
	GetPollMessage(ctx context.Context, input *GetPollMessageInput) (*GetPollMessageOutput, error)

	// GetStatsMessage returns a player's record in a chat
	GetStatsMessage(ctx context.Context, input *GetStatsMessageInput) (*GetStatsMessageOutput, error)

	// GetRatingMessage returns the rating table of a chat
	GetRatingMessage(ctx context.Context, input *GetRatingMessageInput) (*GetRatingMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
