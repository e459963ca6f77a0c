package repository

import (
	"context"
	"errors"

	"github.com/spec-kit/usuario-service/internal/domain"
)

var (
	// ErrNotFound is returned when no row matches the identifier.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when the email unique constraint rejects a write.
	ErrEmailTaken = errors.New("email already registered")
)

// UserRepository defines persistence access for usuarios.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	List(ctx context.Context, filter domain.UserFilter) ([]domain.User, error)
	Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)
	Deactivate(ctx context.Context, id int64) (*domain.User, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Active)
	return user, err
}
