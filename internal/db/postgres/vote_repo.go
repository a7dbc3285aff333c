package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"Coveloper/internal/core/members"
	"Coveloper/internal/core/posts"
	"Coveloper/internal/core/votes"
)

type postgresVoteRepo struct {
	q querier
}

// Create inserts a vote.
// unique_member_post turns a duplicate (post, member) pair into ErrVoteAlreadyExists.
func (r *postgresVoteRepo) Create(ctx context.Context, vote *votes.Vote) error {
	query := `
		INSERT INTO votes (post_id, member_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.q.QueryRowContext(ctx, query, vote.PostID, vote.MemberID).Scan(&vote.ID, &vote.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err, "unique_member_post"):
			return votes.ErrVoteAlreadyExists
		case isForeignKeyViolation(err, "votes_post_id_fkey"):
			return posts.ErrNotFound
		case isForeignKeyViolation(err, "votes_member_id_fkey"):
			return members.ErrMemberNotFound
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	return nil
}

// GetByPostAndMember returns a member's vote on a post
func (r *postgresVoteRepo) GetByPostAndMember(ctx context.Context, postID, memberID int64) (*votes.Vote, error) {
	query := `
		SELECT id, post_id, member_id, created_at
		FROM votes
		WHERE post_id = $1 AND member_id = $2`

	var vote votes.Vote
	err := r.q.QueryRowContext(ctx, query, postID, memberID).
		Scan(&vote.ID, &vote.PostID, &vote.MemberID, &vote.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, votes.ErrVoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vote by post and member: %w", err)
	}

	return &vote, nil
}

// Delete removes one vote
func (r *postgresVoteRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM votes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return votes.ErrVoteNotFound
	}

	return nil
}

// CountByPost counts the votes on a post
func (r *postgresVoteRepo) CountByPost(ctx context.Context, postID int64) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes WHERE post_id = $1`, postID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}

// DeleteByPost removes every vote on a post
func (r *postgresVoteRepo) DeleteByPost(ctx context.Context, postID int64) (int64, error) {
	result, err := r.q.ExecContext(ctx, `DELETE FROM votes WHERE post_id = $1`, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete votes of post: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check delete result: %w", err)
	}
	return n, nil
}
