package poll

import "context"

// Service runs quorum polls that skip the current stage or end the game early
type Service interface {
	// Open starts a poll and records the initiator's vote
	Open(ctx context.Context, input *OpenInput) (*OpenOutput, error)

	// Vote adds a participant's vote to a running poll
	Vote(ctx context.Context, input *VoteInput) (*VoteOutput, error)
}
