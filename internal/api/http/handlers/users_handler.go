package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/audit-tracker/internal/api/dto"
	"github.com/spec-kit/audit-tracker/internal/domain"
	"github.com/spec-kit/audit-tracker/internal/service"
)

// UsersHandler exposes administrator account management.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// List GET /settings/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.auth.ListUsers(c.UserContext(), actor(c))
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.ToUserResponses(users))
}

// Create POST /settings/users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.auth.CreateUser(c.UserContext(), actor(c), service.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return data(c, fiber.StatusCreated, dto.ToUserResponse(user))
}

// Update PUT /settings/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.auth.UpdateUser(c.UserContext(), actor(c), c.Params("id"), service.UserUpdateInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.ToUserResponse(user))
}

// Delete DELETE /settings/users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.auth.DeleteUser(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
