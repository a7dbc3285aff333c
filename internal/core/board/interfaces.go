package board

import (
	"context"

	"Coveloper/internal/core/comments"
	"Coveloper/internal/core/members"
	"Coveloper/internal/core/posts"
	"Coveloper/internal/core/votes"
)

// Service is the sole mutator of post, comment and vote state.
// Every method runs as one store transaction.
type Service interface {
	CreatePost(ctx context.Context, in posts.PostInput, actor members.Member) (*posts.PostView, error)

	// UpdatePost overwrites title and content, plus the recruitment fields of a
	// RECRUITMENT post. The category never changes. Ownership is checked by email.
	UpdatePost(ctx context.Context, postID int64, in posts.PostInput, actor members.Member) (*posts.PostView, error)

	GetPost(ctx context.Context, postID int64) (*posts.PostView, error)

	ListPosts(ctx context.Context) ([]*posts.PostView, error)

	// DeletePost removes the post together with its votes and comments.
	// Ownership is checked by email.
	DeletePost(ctx context.Context, postID int64, actor members.Member) error

	ListPostsByMember(ctx context.Context, member members.Member) ([]*posts.PostView, error)

	AddComment(ctx context.Context, postID int64, in comments.CommentInput, actor members.Member) (*comments.CommentView, error)

	// ListComments returns the comments of a post, newest first
	ListComments(ctx context.Context, postID int64) ([]*comments.CommentView, error)

	GetComment(ctx context.Context, commentID int64) (*comments.CommentView, error)

	// UpdateComment replaces the content. Ownership is checked by member id.
	UpdateComment(ctx context.Context, commentID int64, in comments.CommentInput, actor members.Member) (*comments.CommentView, error)

	// DeleteComment removes a comment. Ownership is checked by member id.
	DeleteComment(ctx context.Context, commentID int64, actor members.Member) error

	// SelectAnswer marks a comment as the accepted answer of a QNA post.
	// A post has at most one selected answer and selection is never undone.
	SelectAnswer(ctx context.Context, postID, commentID int64, actor members.Member) error

	// VoteOnPost toggles the actor's upvote and returns the new count
	VoteOnPost(ctx context.Context, postID int64, actor members.Member) (*votes.VoteView, error)

	// HasVoted reports whether the member currently upvotes the post
	HasVoted(ctx context.Context, postID int64, member members.Member) (bool, error)
}

// Tx exposes the repositories bound to one open store transaction
type Tx interface {
	Posts() posts.Repository
	Comments() comments.Repository
	Votes() votes.Repository
}

// TxOptions configures a store transaction
type TxOptions struct {
	ReadOnly bool
}

// Store is the durable entity store consumed by the Service.
// InTx commits when fn returns nil and rolls back on error or panic, so no
// partial state of a failed operation is ever visible.
type Store interface {
	InTx(ctx context.Context, opts TxOptions, fn func(tx Tx) error) error
}
