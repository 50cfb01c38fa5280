package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/audit-tracker/internal/api/dto"
	"github.com/spec-kit/audit-tracker/internal/auth"
	"github.com/spec-kit/audit-tracker/internal/domain"
	apperrors "github.com/spec-kit/audit-tracker/pkg/util/errorutil"
)

// actor returns the session the route guard resolved for this request.
func actor(c *fiber.Ctx) domain.Session {
	session, _ := auth.SessionFromContext(c)
	return session
}

// bind parses and validates the request body into req.
func bind(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return dto.Validate(req)
}

func data(c *fiber.Ctx, status int, payload any) error {
	return c.Status(status).JSON(fiber.Map{"data": payload})
}
