package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"Coveloper/internal/core/members"
)

type postgresMemberRepo struct {
	db *sql.DB
}

// NewMemberRepository creates a new PostgreSQL member repository
func NewMemberRepository(db *sql.DB) members.Repository {
	return &postgresMemberRepo{db: db}
}

// Create inserts a new member into the members table
func (r *postgresMemberRepo) Create(ctx context.Context, member *members.Member) (*members.Member, error) {
	query := `
		INSERT INTO members (email, nickname)
		VALUES ($1, $2)
		RETURNING id, email, nickname, created_at`

	err := r.db.QueryRowContext(ctx, query, member.Email, member.Nickname).
		Scan(&member.ID, &member.Email, &member.Nickname, &member.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "members_email_key") {
			return nil, members.ErrEmailAlreadyTaken
		}
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return member, nil
}

// GetByID retrieves a member by id
func (r *postgresMemberRepo) GetByID(ctx context.Context, id int64) (*members.Member, error) {
	return r.getOne(ctx, `SELECT id, email, nickname, created_at FROM members WHERE id = $1`, id)
}

// GetByEmail retrieves a member by email
func (r *postgresMemberRepo) GetByEmail(ctx context.Context, email string) (*members.Member, error) {
	return r.getOne(ctx, `SELECT id, email, nickname, created_at FROM members WHERE email = $1`, email)
}

func (r *postgresMemberRepo) getOne(ctx context.Context, query string, arg any) (*members.Member, error) {
	member := &members.Member{}
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&member.ID, &member.Email, &member.Nickname, &member.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, members.ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}
