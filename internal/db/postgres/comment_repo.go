package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"Coveloper/internal/core/board"
	"Coveloper/internal/core/comments"
	"Coveloper/internal/core/members"
	"Coveloper/internal/core/posts"
)

type postgresCommentRepo struct {
	q querier
}

const commentSelect = `
	SELECT
		c.id, c.post_id, c.content, c.selected,
		c.created_at, c.updated_at,
		m.id, m.email, m.nickname, m.created_at
	FROM comments c
	JOIN members m ON m.id = c.member_id`

// Create inserts an unselected comment
func (r *postgresCommentRepo) Create(ctx context.Context, comment *comments.Comment) error {
	query := `
		INSERT INTO comments (post_id, member_id, content, selected)
		VALUES ($1, $2, $3, FALSE)
		RETURNING id, selected, created_at, updated_at`

	err := r.q.QueryRowContext(ctx, query, comment.PostID, comment.Author.ID, comment.Content).
		Scan(&comment.ID, &comment.Selected, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		switch {
		case isForeignKeyViolation(err, "comments_post_id_fkey"):
			return posts.ErrNotFound
		case isForeignKeyViolation(err, "comments_member_id_fkey"):
			return members.ErrMemberNotFound
		}
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

// GetByID loads a comment joined with its author
func (r *postgresCommentRepo) GetByID(ctx context.Context, id int64) (*comments.Comment, error) {
	comment, err := scanComment(r.q.QueryRowContext(ctx, commentSelect+` WHERE c.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, comments.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return comment, nil
}

// ListByPost returns a post's comments newest first
func (r *postgresCommentRepo) ListByPost(ctx context.Context, postID int64) ([]*comments.Comment, error) {
	query := commentSelect + `
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC, c.id DESC`

	rows, err := r.q.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*comments.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		result = append(result, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return result, nil
}

// UpdateContent persists new content and refreshes updated_at
func (r *postgresCommentRepo) UpdateContent(ctx context.Context, comment *comments.Comment) error {
	query := `
		UPDATE comments
		SET content = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.q.QueryRowContext(ctx, query, comment.ID, comment.Content).Scan(&comment.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return comments.ErrCommentNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	return nil
}

// MarkSelected flags a comment as the accepted answer.
// uq_comments_selected_per_post rejects a second selection on the same post.
func (r *postgresCommentRepo) MarkSelected(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, `UPDATE comments SET selected = TRUE WHERE id = $1`, id)
	if err != nil {
		if isUniqueViolation(err, "uq_comments_selected_per_post") {
			return board.ErrAnswerAlreadySelected
		}
		return fmt.Errorf("failed to select comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check select result: %w", err)
	}
	if rowsAffected == 0 {
		return comments.ErrCommentNotFound
	}

	return nil
}

// Delete removes one comment
func (r *postgresCommentRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return comments.ErrCommentNotFound
	}

	return nil
}

// DeleteByPost removes every comment of a post
func (r *postgresCommentRepo) DeleteByPost(ctx context.Context, postID int64) (int64, error) {
	result, err := r.q.ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete comments of post: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check delete result: %w", err)
	}
	return n, nil
}

func scanComment(row rowScanner) (*comments.Comment, error) {
	var comment comments.Comment
	err := row.Scan(
		&comment.ID, &comment.PostID, &comment.Content, &comment.Selected,
		&comment.CreatedAt, &comment.UpdatedAt,
		&comment.Author.ID, &comment.Author.Email, &comment.Author.Nickname, &comment.Author.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}
