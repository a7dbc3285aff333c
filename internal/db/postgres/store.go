package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"Coveloper/internal/core/board"
	"Coveloper/internal/core/comments"
	"Coveloper/internal/core/posts"
	"Coveloper/internal/core/votes"
)

// querier is the subset of *sql.DB and *sql.Tx the repositories need
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type postgresStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewStore creates the transactional board store backed by PostgreSQL
func NewStore(db *sql.DB, logger *slog.Logger) board.Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &postgresStore{db: db, logger: logger}
}

// InTx runs fn inside one READ COMMITTED transaction.
// Row locks taken with SELECT ... FOR UPDATE are held until commit or rollback.
func (s *postgresStore) InTx(ctx context.Context, opts board.TxOptions, fn func(tx board.Tx) error) (err error) {
	sqlTx, err := s.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
		ReadOnly:  opts.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
		if err != nil {
			if rollbackErr := sqlTx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				s.logger.Error("failed to rollback transaction", "error", rollbackErr)
			}
		}
	}()

	if err = fn(&postgresTx{q: sqlTx}); err != nil {
		return err
	}

	if err = sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type postgresTx struct {
	q querier
}

func (t *postgresTx) Posts() posts.Repository       { return &postgresPostRepo{q: t.q} }
func (t *postgresTx) Comments() comments.Repository { return &postgresCommentRepo{q: t.q} }
func (t *postgresTx) Votes() votes.Repository       { return &postgresVoteRepo{q: t.q} }
