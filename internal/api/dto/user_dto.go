package dto

import (
	"strings"

	"github.com/spec-kit/usuario-service/internal/domain"
)

// CreateUserRequest payload for POST /usuarios. Any id in the body is ignored.
type CreateUserRequest struct {
	Name   string `json:"nome" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Active *int   `json:"ativo" validate:"omitnil,oneof=0 1"`
}

// Normalize trims surrounding whitespace.
func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

// Validate checks presence and formats.
func (r *CreateUserRequest) Validate() error {
	return validateStruct(r)
}

// UpdateUserRequest payload for PATCH /usuarios. Unset fields stay untouched.
type UpdateUserRequest struct {
	ID     *int64  `json:"id" validate:"required"`
	Name   *string `json:"nome" validate:"omitnil,min=1"`
	Email  *string `json:"email" validate:"omitnil,email"`
	Active *int    `json:"ativo" validate:"omitnil,oneof=0 1"`
}

// Normalize trims surrounding whitespace on the set string fields.
func (r *UpdateUserRequest) Normalize() {
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		r.Name = &trimmed
	}
	if r.Email != nil {
		trimmed := strings.TrimSpace(*r.Email)
		r.Email = &trimmed
	}
}

// Validate checks the set fields.
func (r *UpdateUserRequest) Validate() error {
	return validateStruct(r)
}

// Patch converts the request into a domain patch; the id is never part of it.
func (r *UpdateUserRequest) Patch() domain.UserPatch {
	return domain.UserPatch{Name: r.Name, Email: r.Email, Active: r.Active}
}

// UserIDRequest payload for DELETE /usuarios.
type UserIDRequest struct {
	ID *int64 `json:"id" validate:"required"`
}

// Validate checks the identifier.
func (r *UserIDRequest) Validate() error {
	return validateStruct(r)
}

// ListUsersQuery captures GET /usuarios query parameters.
type ListUsersQuery struct {
	ID      *int64 `json:"id"`
	Active  int    `json:"ativo" validate:"oneof=-1 0 1"`
	Name    string `json:"nome"`
	OrderBy string `json:"ordenador"`
}

// Validate checks the parsed parameters.
func (q *ListUsersQuery) Validate() error {
	return validateStruct(q)
}

// Filter converts the query into a domain filter.
func (q ListUsersQuery) Filter() domain.UserFilter {
	return domain.UserFilter{
		ID:      q.ID,
		Active:  q.Active,
		Name:    strings.TrimSpace(q.Name),
		OrderBy: q.OrderBy,
	}
}

// UserResponse is the wire representation of a user.
type UserResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"nome"`
	Email  string `json:"email"`
	Active int    `json:"ativo"`
}

// NewUserResponse maps a domain user to its wire form.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Active: user.Active,
	}
}

// NewUserListResponse maps a slice of users.
func NewUserListResponse(users []domain.User) []UserResponse {
	items := make([]UserResponse, 0, len(users))
	for i := range users {
		items = append(items, NewUserResponse(&users[i]))
	}
	return items
}
