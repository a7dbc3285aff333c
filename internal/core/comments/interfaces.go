package comments

import "context"

// Repository defines comment persistence.
// Implementations are bound to a single store transaction.
type Repository interface {
	// Create inserts a comment and fills in ID and timestamps
	Create(ctx context.Context, comment *Comment) error

	// GetByID loads a comment joined with its author. Returns ErrCommentNotFound.
	GetByID(ctx context.Context, id int64) (*Comment, error)

	// ListByPost returns every comment of a post, newest first
	ListByPost(ctx context.Context, postID int64) ([]*Comment, error)

	// UpdateContent persists new content and refreshes UpdatedAt
	UpdateContent(ctx context.Context, comment *Comment) error

	// MarkSelected sets the selected flag of a comment
	MarkSelected(ctx context.Context, id int64) error

	// Delete removes one comment
	Delete(ctx context.Context, id int64) error

	// DeleteByPost removes every comment of a post and returns how many were removed
	DeleteByPost(ctx context.Context, postID int64) (int64, error)
}
