package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/audit-tracker/internal/api/dto"
	"github.com/spec-kit/audit-tracker/internal/auth"
	"github.com/spec-kit/audit-tracker/internal/service"
)

// AuthHandler exposes sign-in, sign-up, sign-out and profile endpoints.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *auth.SessionManager
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, sessions *auth.SessionManager) *AuthHandler {
	return &AuthHandler{auth: authService, sessions: sessions}
}

// LoginForm handles GET /login.
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return data(c, fiber.StatusOK, fiber.Map{"action": auth.LoginPath, "fields": []string{"email", "password"}})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	if err := h.sessions.Create(c, user); err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.ToUserResponse(user))
}

// RegisterForm handles GET /register.
func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return data(c, fiber.StatusOK, fiber.Map{"action": "/register", "fields": []string{"name", "email", "password"}})
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	if err := h.sessions.Create(c, user); err != nil {
		return err
	}
	return data(c, fiber.StatusCreated, dto.ToUserResponse(user))
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Destroy(c)
	return c.SendStatus(fiber.StatusNoContent)
}

// Settings handles GET /settings.
func (h *AuthHandler) Settings(c *fiber.Ctx) error {
	user, err := h.auth.Profile(c.UserContext(), actor(c))
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.ToUserResponse(user))
}

// UpdateProfile handles PUT /settings/profile.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.ProfileUpdateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.auth.UpdateProfile(c.UserContext(), actor(c), req.Name)
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.ToUserResponse(user))
}
