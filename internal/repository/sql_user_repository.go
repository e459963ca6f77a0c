package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/spec-kit/usuario-service/internal/domain"
)

type sqlUserRepository struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLUserRepository returns a database/sql implementation; used with SQLite.
func NewSQLUserRepository(db *sql.DB, dialect Dialect) UserRepository {
	return &sqlUserRepository{db: db, dialect: dialect}
}

func (r *sqlUserRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *sqlUserRepository) Create(ctx context.Context, user *domain.User) error {
	query, args := BuildInsertQuery(r.dialect, user)
	return r.withTx(ctx, func(tx *sql.Tx) error {
		return mapSQLError(tx.QueryRowContext(ctx, query, args...).Scan(&user.ID))
	})
}

func (r *sqlUserRepository) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	query, args := BuildListQuery(r.dialect, filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
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

func (r *sqlUserRepository) Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	query, args := BuildUpdateQuery(r.dialect, id, patch)
	return r.returningOne(ctx, query, args)
}

func (r *sqlUserRepository) Deactivate(ctx context.Context, id int64) (*domain.User, error) {
	query, args := BuildDeactivateQuery(r.dialect, id)
	return r.returningOne(ctx, query, args)
}

func (r *sqlUserRepository) returningOne(ctx context.Context, query string, args []any) (*domain.User, error) {
	var user domain.User
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var scanErr error
		user, scanErr = scanUser(tx.QueryRowContext(ctx, query, args...))
		return mapSQLError(scanErr)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func mapSQLError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%w: %w", ErrEmailTaken, err)
	}
	return err
}
