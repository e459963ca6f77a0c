package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/usuario-service/internal/api/dto"
	"github.com/spec-kit/usuario-service/internal/domain"
	"github.com/spec-kit/usuario-service/internal/service"
	apperrors "github.com/spec-kit/usuario-service/pkg/util/errorutil"
)

// UsersHandler exposes the /usuarios resource.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Create handles POST /usuarios.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	user, err := h.users.CreateUser(c.UserContext(), service.CreateUserInput{
		Name:   req.Name,
		Email:  req.Email,
		Active: req.Active,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user))
}

// List handles GET /usuarios.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	query, err := parseListQuery(c)
	if err != nil {
		return err
	}
	if err := query.Validate(); err != nil {
		return err
	}

	users, err := h.users.ListUsers(c.UserContext(), query.Filter())
	if err != nil {
		return err
	}

	return c.JSON(dto.NewUserListResponse(users))
}

// Update handles PATCH /usuarios and PATCH /usuarios/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return err
		}
	}
	if c.Params("id") != "" {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		req.ID = &id
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	user, err := h.users.UpdateUser(c.UserContext(), *req.ID, req.Patch())
	if err != nil {
		return err
	}

	return c.JSON(dto.NewUserResponse(user))
}

// Delete handles DELETE /usuarios and DELETE /usuarios/:id. The record is
// deactivated, never removed.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	var req dto.UserIDRequest
	if c.Params("id") != "" {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		req.ID = &id
	} else if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	user, err := h.users.DeactivateUser(c.UserContext(), *req.ID)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewUserResponse(user))
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", map[string]any{"body": err.Error()})
	}
	return nil
}

func pathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid id", map[string]any{"id": "must be an integer"})
	}
	return id, nil
}

func parseListQuery(c *fiber.Ctx) (dto.ListUsersQuery, error) {
	defaults := domain.NewUserFilter()
	query := dto.ListUsersQuery{
		Active:  defaults.Active,
		Name:    c.Query("nome"),
		OrderBy: c.Query("ordenador", defaults.OrderBy),
	}
	details := map[string]any{}

	if raw := strings.TrimSpace(c.Query("id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			details["id"] = "must be an integer"
		} else {
			query.ID = &id
		}
	}
	if raw := strings.TrimSpace(c.Query("ativo")); raw != "" {
		active, err := strconv.Atoi(raw)
		if err != nil {
			details["ativo"] = "must be an integer"
		} else {
			query.Active = active
		}
	}

	if len(details) > 0 {
		return query, apperrors.NewValidationError("invalid query parameters", details)
	}
	return query, nil
}
