package posts

import "context"

// Repository defines post persistence.
// Implementations are bound to a single store transaction.
type Repository interface {
	// Create inserts a post and fills in ID, timestamps and UpvoteCount
	Create(ctx context.Context, post *Post) error

	// GetByID loads a post joined with its author. Returns ErrNotFound.
	GetByID(ctx context.Context, id int64) (*Post, error)

	// GetByIDForUpdate is GetByID plus a row lock held until the transaction ends.
	// Concurrent writers on the same post serialize on this lock.
	GetByIDForUpdate(ctx context.Context, id int64) (*Post, error)

	// List returns every post in store order (ascending id)
	List(ctx context.Context) ([]*Post, error)

	// ListByAuthor returns the posts owned by a member in store order
	ListByAuthor(ctx context.Context, memberID int64) ([]*Post, error)

	// Update persists title, content and recruitment fields and refreshes UpdatedAt
	Update(ctx context.Context, post *Post) error

	// AdjustUpvoteCount adds delta to the cached counter and returns the new value
	AdjustUpvoteCount(ctx context.Context, id int64, delta int) (int, error)

	// Delete removes the post row. Children must already be gone.
	Delete(ctx context.Context, id int64) error
}
