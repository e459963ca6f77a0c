package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/usuario-service/internal/domain"
	"github.com/spec-kit/usuario-service/internal/events"
	"github.com/spec-kit/usuario-service/internal/repository"
	apperrors "github.com/spec-kit/usuario-service/pkg/util/errorutil"
)

// UserService coordinates the usuario lifecycle.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// CreateUserInput describes a new user. Active defaults to 1 when nil.
type CreateUserInput struct {
	Name   string
	Email  string
	Active *int
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// CreateUser inserts a user and returns it with the assigned identifier.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	user := &domain.User{
		Name:   input.Name,
		Email:  input.Email,
		Active: domain.UserActive,
	}
	if input.Active != nil {
		user.Active = *input.Active
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, s.storeError("create", map[string]any{"email": user.Email}, err)
	}

	s.publishEvent(ctx, events.NewEvent(events.EventUserCreated, user.ID, snapshot(user, nil)))
	return user, nil
}

// ListUsers returns the users matching filter. Zero matches is a Not-Found.
func (s *UserService) ListUsers(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, s.storeError("list", nil, err)
	}
	if len(users) == 0 {
		return nil, apperrors.NewNotFoundMessage("no users found")
	}
	return users, nil
}

// UpdateUser applies the fields set in patch and returns the stored row.
func (s *UserService) UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	if patch.Empty() {
		return nil, apperrors.NewValidationError("nothing to update", map[string]any{
			"body": "at least one of nome, email, ativo is required",
		})
	}

	user, err := s.users.Update(ctx, id, patch)
	if err != nil {
		return nil, s.storeError("update", map[string]any{"id": id}, err)
	}

	s.publishEvent(ctx, events.NewEvent(events.EventUserUpdated, user.ID, snapshot(user, patchedFields(patch))))
	return user, nil
}

// DeactivateUser soft-deletes a user. Deactivating an inactive user succeeds.
func (s *UserService) DeactivateUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.Deactivate(ctx, id)
	if err != nil {
		return nil, s.storeError("deactivate", map[string]any{"id": id}, err)
	}

	s.publishEvent(ctx, events.NewEvent(events.EventUserDeactivated, user.ID, snapshot(user, nil)))
	return user, nil
}

func (s *UserService) storeError(op string, details map[string]any, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound("user", details)
	case errors.Is(err, repository.ErrEmailTaken):
		return apperrors.NewConflict("email already registered", details, err)
	default:
		s.logger.Warn("store operation failed", zap.String("op", op), zap.Error(err))
		return apperrors.NewBadRequest(err)
	}
}

func (s *UserService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event delivery failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
}

func snapshot(user *domain.User, fields []string) events.UserSnapshot {
	return events.UserSnapshot{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Active: user.Active,
		Fields: fields,
	}
}

func patchedFields(patch domain.UserPatch) []string {
	var fields []string
	if patch.Name != nil {
		fields = append(fields, "nome")
	}
	if patch.Email != nil {
		fields = append(fields, "email")
	}
	if patch.Active != nil {
		fields = append(fields, "ativo")
	}
	return fields
}
