package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/audit-tracker/internal/api/dto"
	"github.com/spec-kit/audit-tracker/internal/service"
)

// RiskHandler serves the AI risk assessment tool.
type RiskHandler struct {
	risk *service.RiskService
}

// NewRiskHandler constructs handler.
func NewRiskHandler(risk *service.RiskService) *RiskHandler {
	return &RiskHandler{risk: risk}
}

// Form GET /risk-assessment.
func (h *RiskHandler) Form(c *fiber.Ctx) error {
	return data(c, fiber.StatusOK, fiber.Map{
		"available": h.risk.Available(),
		"fields":    []string{"historical_data", "regulatory_changes", "industry_trends"},
	})
}

// Assess POST /risk-assessment.
func (h *RiskHandler) Assess(c *fiber.Ctx) error {
	var req dto.RiskAssessmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	result, err := h.risk.Assess(c.UserContext(), actor(c), req.ToInput())
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, result)
}
