package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/audit-tracker/internal/api/dto"
	"github.com/spec-kit/audit-tracker/internal/domain"
	"github.com/spec-kit/audit-tracker/internal/service"
	apperrors "github.com/spec-kit/audit-tracker/pkg/util/errorutil"
)

// AuditsHandler manages audit endpoints.
type AuditsHandler struct {
	audits *service.AuditService
}

// NewAuditsHandler constructs handler.
func NewAuditsHandler(audits *service.AuditService) *AuditsHandler {
	return &AuditsHandler{audits: audits}
}

// List GET /audits.
func (h *AuditsHandler) List(c *fiber.Ctx) error {
	audits, err := h.audits.List(c.UserContext(), actor(c))
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.ToAuditResponses(audits))
}

// Create POST /audits.
func (h *AuditsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAuditRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	start, err := dto.ParseDate(req.StartDate)
	if err != nil {
		return apperrors.NewValidationError("invalid payload", map[string]any{"start_date": "is invalid"})
	}
	end, err := dto.ParseDate(req.EndDate)
	if err != nil {
		return apperrors.NewValidationError("invalid payload", map[string]any{"end_date": "is invalid"})
	}

	audit, err := h.audits.Create(c.UserContext(), actor(c), service.AuditCreateInput{
		Name:        req.Name,
		AuditorName: req.Auditor,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		return err
	}
	return data(c, fiber.StatusCreated, dto.ToAuditResponse(audit))
}

// UpdateStatus PATCH /audits/:id/status.
func (h *AuditsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateAuditStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	audit, err := h.audits.UpdateStatus(c.UserContext(), actor(c), c.Params("id"), domain.AuditStatus(req.Status))
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.ToAuditResponse(audit))
}
