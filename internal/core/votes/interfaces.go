package votes

import "context"

// Repository defines vote persistence.
// Implementations are bound to a single store transaction.
type Repository interface {
	// Create inserts a vote. Returns ErrVoteAlreadyExists on a duplicate (post, member).
	Create(ctx context.Context, vote *Vote) error

	// GetByPostAndMember returns the member's vote on a post or ErrVoteNotFound
	GetByPostAndMember(ctx context.Context, postID, memberID int64) (*Vote, error)

	// Delete removes one vote
	Delete(ctx context.Context, id int64) error

	// CountByPost counts live votes on a post
	CountByPost(ctx context.Context, postID int64) (int, error)

	// DeleteByPost removes every vote on a post and returns how many were removed
	DeleteByPost(ctx context.Context, postID int64) (int64, error)
}
