package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/usuario-service/internal/domain"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// PgxPool is the part of *pgxpool.Pool the repository depends on.
type PgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type postgresUserRepository struct {
	pool PgxPool
}

// NewPostgresUserRepository returns a Postgres-backed implementation.
func NewPostgresUserRepository(pool PgxPool) UserRepository {
	return &postgresUserRepository{pool: pool}
}

// withTx runs fn inside a transaction that is committed on success and rolled
// back on every error path.
func (r *postgresUserRepository) withTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *postgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	query, args := BuildInsertQuery(DialectPostgres, user)
	return r.withTx(ctx, func(tx pgx.Tx) error {
		return mapPgError(tx.QueryRow(ctx, query, args...).Scan(&user.ID))
	})
}

func (r *postgresUserRepository) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	query, args := BuildListQuery(DialectPostgres, filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}

func (r *postgresUserRepository) Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	query, args := BuildUpdateQuery(DialectPostgres, id, patch)
	return r.returningOne(ctx, query, args)
}

func (r *postgresUserRepository) Deactivate(ctx context.Context, id int64) (*domain.User, error) {
	query, args := BuildDeactivateQuery(DialectPostgres, id)
	return r.returningOne(ctx, query, args)
}

func (r *postgresUserRepository) returningOne(ctx context.Context, query string, args []any) (*domain.User, error) {
	var user domain.User
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		var scanErr error
		user, scanErr = scanUser(tx.QueryRow(ctx, query, args...))
		return mapPgError(scanErr)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %w", ErrEmailTaken, err)
	}
	return err
}
