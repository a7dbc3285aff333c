package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"Coveloper/internal/core/members"
	"Coveloper/internal/core/posts"
)

type postgresPostRepo struct {
	q querier
}

const postSelect = `
	SELECT
		p.id, p.title, p.content, p.category, p.upvote_count,
		p.project_type, p.team_size, p.current_members,
		p.created_at, p.updated_at,
		m.id, m.email, m.nickname, m.created_at
	FROM posts p
	JOIN members m ON m.id = p.member_id`

// Create inserts a post and fills in its id, counter and timestamps
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	query := `
		INSERT INTO posts (
			member_id, title, content, category,
			project_type, team_size, current_members
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, upvote_count, created_at, updated_at`

	err := r.q.QueryRowContext(ctx, query,
		post.Author.ID, post.Title, post.Content, string(post.Category),
		nullString(post.ProjectType), nullInt(post.TeamSize), nullInt(post.CurrentMembers),
	).Scan(&post.ID, &post.UpvoteCount, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err, "posts_member_id_fkey") {
			return members.ErrMemberNotFound
		}
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// GetByID loads a post joined with its author
func (r *postgresPostRepo) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	return r.getOne(ctx, postSelect+` WHERE p.id = $1`, id)
}

// GetByIDForUpdate loads a post and locks its row until the transaction ends.
// Only the post row is locked; the author row stays free.
func (r *postgresPostRepo) GetByIDForUpdate(ctx context.Context, id int64) (*posts.Post, error) {
	return r.getOne(ctx, postSelect+` WHERE p.id = $1 FOR UPDATE OF p`, id)
}

func (r *postgresPostRepo) getOne(ctx context.Context, query string, id int64) (*posts.Post, error) {
	post, err := scanPost(r.q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// List returns every post by ascending id
func (r *postgresPostRepo) List(ctx context.Context) ([]*posts.Post, error) {
	return r.list(ctx, postSelect+` ORDER BY p.id`)
}

// ListByAuthor returns a member's posts by ascending id
func (r *postgresPostRepo) ListByAuthor(ctx context.Context, memberID int64) ([]*posts.Post, error) {
	return r.list(ctx, postSelect+` WHERE p.member_id = $1 ORDER BY p.id`, memberID)
}

func (r *postgresPostRepo) list(ctx context.Context, query string, args ...any) ([]*posts.Post, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*posts.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return result, nil
}

// Update persists the editable fields. Category and counter are left alone.
func (r *postgresPostRepo) Update(ctx context.Context, post *posts.Post) error {
	query := `
		UPDATE posts
		SET title = $2, content = $3,
		    project_type = $4, team_size = $5, current_members = $6,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.q.QueryRowContext(ctx, query,
		post.ID, post.Title, post.Content,
		nullString(post.ProjectType), nullInt(post.TeamSize), nullInt(post.CurrentMembers),
	).Scan(&post.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return posts.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	return nil
}

// AdjustUpvoteCount applies delta in place and returns the new count.
// The chk_posts_upvote_count constraint rejects a negative result.
func (r *postgresPostRepo) AdjustUpvoteCount(ctx context.Context, id int64, delta int) (int, error) {
	query := `
		UPDATE posts
		SET upvote_count = upvote_count + $2
		WHERE id = $1
		RETURNING upvote_count`

	var count int
	err := r.q.QueryRowContext(ctx, query, id, delta).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, posts.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to adjust upvote count: %w", err)
	}

	return count, nil
}

// Delete removes the post row. Comments and votes must be removed first.
func (r *postgresPostRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return posts.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*posts.Post, error) {
	var (
		post           posts.Post
		category       string
		projectType    sql.NullString
		teamSize       sql.NullInt64
		currentMembers sql.NullInt64
	)

	err := row.Scan(
		&post.ID, &post.Title, &post.Content, &category, &post.UpvoteCount,
		&projectType, &teamSize, &currentMembers,
		&post.CreatedAt, &post.UpdatedAt,
		&post.Author.ID, &post.Author.Email, &post.Author.Nickname, &post.Author.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	post.Category = posts.Category(category)
	if projectType.Valid {
		post.ProjectType = &projectType.String
	}
	if teamSize.Valid {
		v := int(teamSize.Int64)
		post.TeamSize = &v
	}
	if currentMembers.Valid {
		v := int(currentMembers.Int64)
		post.CurrentMembers = &v
	}

	return &post, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}
