package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"Coveloper/internal/core/comments"
	"Coveloper/internal/core/members"
	"Coveloper/internal/core/posts"
	"Coveloper/internal/core/votes"
)

var (
	readWrite = TxOptions{}
	readOnly  = TxOptions{ReadOnly: true}
)

type boardService struct {
	store  Store
	logger *slog.Logger
}

// NewBoardService creates the board service on top of an entity store
func NewBoardService(store Store, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &boardService{
		store:  store,
		logger: logger,
	}
}

// CreatePost stores a new post owned by actor
func (s *boardService) CreatePost(ctx context.Context, in posts.PostInput, actor members.Member) (*posts.PostView, error) {
	if !in.Category.Valid() {
		return nil, posts.NewValidationError("category", fmt.Sprintf("unknown category %q", in.Category))
	}

	post := &posts.Post{
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
		Author:   actor,
	}
	post.ApplyRecruitment(in)

	err := s.store.InTx(ctx, readWrite, func(tx Tx) error {
		if err := tx.Posts().Create(ctx, post); err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("post created", "post_id", post.ID, "member_id", actor.ID, "category", post.Category)
	return post.ToView(), nil
}

// UpdatePost overwrites the editable fields of a post owned by actor
func (s *boardService) UpdatePost(ctx context.Context, postID int64, in posts.PostInput, actor members.Member) (*posts.PostView, error) {
	var post *posts.Post

	err := s.store.InTx(ctx, readWrite, func(tx Tx) error {
		var err error
		post, err = loadPost(ctx, tx, postID, true)
		if err != nil {
			return err
		}

		// Post ownership is compared by email, unlike comments which compare ids.
		if post.Author.Email != actor.Email {
			return ErrNotPostOwner
		}

		post.Title = in.Title
		post.Content = in.Content
		post.ApplyRecruitment(in)

		if err := tx.Posts().Update(ctx, post); err != nil {
			return fmt.Errorf("failed to update post: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("post updated", "post_id", postID, "member_id", actor.ID)
	return post.ToView(), nil
}

// GetPost returns a single post
func (s *boardService) GetPost(ctx context.Context, postID int64) (*posts.PostView, error) {
	var post *posts.Post

	err := s.store.InTx(ctx, readOnly, func(tx Tx) error {
		var err error
		post, err = loadPost(ctx, tx, postID, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	return post.ToView(), nil
}

// ListPosts returns every post in store order
func (s *boardService) ListPosts(ctx context.Context) ([]*posts.PostView, error) {
	var list []*posts.Post

	err := s.store.InTx(ctx, readOnly, func(tx Tx) error {
		var err error
		list, err = tx.Posts().List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list posts: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return postViews(list), nil
}

// DeletePost removes a post owned by actor along with its votes and comments
func (s *boardService) DeletePost(ctx context.Context, postID int64, actor members.Member) error {
	var removedVotes, removedComments int64

	err := s.store.InTx(ctx, readWrite, func(tx Tx) error {
		post, err := loadPost(ctx, tx, postID, true)
		if err != nil {
			return err
		}

		if post.Author.Email != actor.Email {
			return ErrNotPostOwner
		}

		// Children first: the schema refuses to drop a post that still has any.
		removedVotes, err = tx.Votes().DeleteByPost(ctx, postID)
		if err != nil {
			return fmt.Errorf("failed to delete votes of post: %w", err)
		}

		removedComments, err = tx.Comments().DeleteByPost(ctx, postID)
		if err != nil {
			return fmt.Errorf("failed to delete comments of post: %w", err)
		}

		if err := tx.Posts().Delete(ctx, postID); err != nil {
			if errors.Is(err, posts.ErrNotFound) {
				return ErrPostNotFound
			}
			return fmt.Errorf("failed to delete post: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("post deleted",
		"post_id", postID,
		"member_id", actor.ID,
		"votes_removed", removedVotes,
		"comments_removed", removedComments)
	return nil
}

// ListPostsByMember returns the posts owned by member
func (s *boardService) ListPostsByMember(ctx context.Context, member members.Member) ([]*posts.PostView, error) {
	var list []*posts.Post

	err := s.store.InTx(ctx, readOnly, func(tx Tx) error {
		var err error
		list, err = tx.Posts().ListByAuthor(ctx, member.ID)
		if err != nil {
			return fmt.Errorf("failed to list posts by member: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return postViews(list), nil
}

// AddComment attaches a new, unselected comment to a post
func (s *boardService) AddComment(ctx context.Context, postID int64, in comments.CommentInput, actor members.Member) (*comments.CommentView, error) {
	comment := &comments.Comment{
		PostID:   postID,
		Content:  in.Content,
		Author:   actor,
		Selected: false,
	}

	err := s.store.InTx(ctx, readWrite, func(tx Tx) error {
		if _, err := loadPost(ctx, tx, postID, false); err != nil {
			return err
		}

		if err := tx.Comments().Create(ctx, comment); err != nil {
			// The post can disappear between the lookup and the insert.
			if errors.Is(err, posts.ErrNotFound) {
				return ErrPostNotFound
			}
			return fmt.Errorf("failed to create comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("comment added", "comment_id", comment.ID, "post_id", postID, "member_id", actor.ID)
	return comment.ToView(), nil
}

// ListComments returns the comments of a post, newest first
func (s *boardService) ListComments(ctx context.Context, postID int64) ([]*comments.CommentView, error) {
	var list []*comments.Comment

	err := s.store.InTx(ctx, readOnly, func(tx Tx) error {
		if _, err := loadPost(ctx, tx, postID, false); err != nil {
			return err
		}

		var err error
		list, err = tx.Comments().ListByPost(ctx, postID)
		if err != nil {
			return fmt.Errorf("failed to list comments: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	comments.SortNewestFirst(list)

	views := make([]*comments.CommentView, 0, len(list))
	for _, c := range list {
		views = append(views, c.ToView())
	}
	return views, nil
}

// GetComment returns a single comment
func (s *boardService) GetComment(ctx context.Context, commentID int64) (*comments.CommentView, error) {
	var comment *comments.Comment

	err := s.store.InTx(ctx, readOnly, func(tx Tx) error {
		var err error
		comment, err = loadComment(ctx, tx, commentID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return comment.ToView(), nil
}

// UpdateComment replaces the content of a comment owned by actor
func (s *boardService) UpdateComment(ctx context.Context, commentID int64, in comments.CommentInput, actor members.Member) (*comments.CommentView, error) {
	var comment *comments.Comment

	err := s.store.InTx(ctx, readWrite, func(tx Tx) error {
		var err error
		comment, err = loadComment(ctx, tx, commentID)
		if err != nil {
			return err
		}

		if comment.Author.ID != actor.ID {
			return ErrNotCommentOwner
		}

		comment.Content = in.Content
		if err := tx.Comments().UpdateContent(ctx, comment); err != nil {
			if errors.Is(err, comments.ErrCommentNotFound) {
				return ErrCommentNotFound
			}
			return fmt.Errorf("failed to update comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("comment updated", "comment_id", commentID, "member_id", actor.ID)
	return comment.ToView(), nil
}

// DeleteComment removes a comment owned by actor
func (s *boardService) DeleteComment(ctx context.Context, commentID int64, actor members.Member) error {
	err := s.store.InTx(ctx, readWrite, func(tx Tx) error {
		comment, err := loadComment(ctx, tx, commentID)
		if err != nil {
			return err
		}

		if comment.Author.ID != actor.ID {
			return ErrNotCommentOwner
		}

		if err := tx.Comments().Delete(ctx, commentID); err != nil {
			if errors.Is(err, comments.ErrCommentNotFound) {
				return ErrCommentNotFound
			}
			return fmt.Errorf("failed to delete comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("comment deleted", "comment_id", commentID, "member_id", actor.ID)
	return nil
}

// SelectAnswer marks commentID as the accepted answer of a QNA post owned by actor.
// The post row stays locked from the selected-answer scan until the flag is written.
func (s *boardService) SelectAnswer(ctx context.Context, postID, commentID int64, actor members.Member) error {
	err := s.store.InTx(ctx, readWrite, func(tx Tx) error {
		post, err := loadPost(ctx, tx, postID, true)
		if err != nil {
			return err
		}

		if post.Category != posts.CategoryQnA {
			return ErrNotQnAPost
		}

		if post.Author.ID != actor.ID {
			return ErrNotPostOwner
		}

		existing, err := tx.Comments().ListByPost(ctx, postID)
		if err != nil {
			return fmt.Errorf("failed to list comments: %w", err)
		}
		for _, c := range existing {
			if c.Selected {
				return ErrAnswerAlreadySelected
			}
		}

		comment, err := loadComment(ctx, tx, commentID)
		if err != nil {
			return err
		}
		if comment.PostID != postID {
			return ErrCommentNotFound
		}

		if err := tx.Comments().MarkSelected(ctx, commentID); err != nil {
			switch {
			case errors.Is(err, comments.ErrCommentNotFound):
				return ErrCommentNotFound
			case IsConflict(err):
				return err
			}
			return fmt.Errorf("failed to select answer: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("answer selected", "post_id", postID, "comment_id", commentID, "member_id", actor.ID)
	return nil
}

// VoteOnPost toggles actor's upvote on a post.
// The vote row and the cached counter change in the same transaction, under the post row lock.
func (s *boardService) VoteOnPost(ctx context.Context, postID int64, actor members.Member) (*votes.VoteView, error) {
	var (
		count int
		delta int
	)

	err := s.store.InTx(ctx, readWrite, func(tx Tx) error {
		if _, err := loadPost(ctx, tx, postID, true); err != nil {
			return err
		}

		existing, err := tx.Votes().GetByPostAndMember(ctx, postID, actor.ID)
		switch {
		case err == nil:
			if err := tx.Votes().Delete(ctx, existing.ID); err != nil {
				if errors.Is(err, votes.ErrVoteNotFound) {
					return ErrVoteConflict
				}
				return fmt.Errorf("failed to delete vote: %w", err)
			}
			delta = -1

		case errors.Is(err, votes.ErrVoteNotFound):
			vote := &votes.Vote{PostID: postID, MemberID: actor.ID}
			if err := tx.Votes().Create(ctx, vote); err != nil {
				if errors.Is(err, votes.ErrVoteAlreadyExists) {
					return ErrVoteConflict
				}
				return fmt.Errorf("failed to create vote: %w", err)
			}
			delta = 1

		default:
			return fmt.Errorf("failed to look up vote: %w", err)
		}

		count, err = tx.Posts().AdjustUpvoteCount(ctx, postID, delta)
		if err != nil {
			if errors.Is(err, posts.ErrNotFound) {
				return ErrPostNotFound
			}
			return fmt.Errorf("failed to adjust upvote count: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("vote toggled", "post_id", postID, "member_id", actor.ID, "delta", delta, "upvote_count", count)
	return &votes.VoteView{PostID: postID, UpvoteCount: count}, nil
}

// HasVoted reports whether member currently upvotes the post
func (s *boardService) HasVoted(ctx context.Context, postID int64, member members.Member) (bool, error) {
	var voted bool

	err := s.store.InTx(ctx, readOnly, func(tx Tx) error {
		if _, err := loadPost(ctx, tx, postID, false); err != nil {
			return err
		}

		_, err := tx.Votes().GetByPostAndMember(ctx, postID, member.ID)
		switch {
		case err == nil:
			voted = true
		case errors.Is(err, votes.ErrVoteNotFound):
			voted = false
		default:
			return fmt.Errorf("failed to look up vote: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	return voted, nil
}

func loadPost(ctx context.Context, tx Tx, postID int64, forUpdate bool) (*posts.Post, error) {
	var (
		post *posts.Post
		err  error
	)
	if forUpdate {
		post, err = tx.Posts().GetByIDForUpdate(ctx, postID)
	} else {
		post, err = tx.Posts().GetByID(ctx, postID)
	}
	if err != nil {
		if errors.Is(err, posts.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	return post, nil
}

func loadComment(ctx context.Context, tx Tx, commentID int64) (*comments.Comment, error) {
	comment, err := tx.Comments().GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, comments.ErrCommentNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}
	return comment, nil
}

func postViews(list []*posts.Post) []*posts.PostView {
	views := make([]*posts.PostView, 0, len(list))
	for _, p := range list {
		views = append(views, p.ToView())
	}
	return views
}
