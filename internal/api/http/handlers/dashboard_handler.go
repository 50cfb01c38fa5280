package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/audit-tracker/internal/api/dto"
	"github.com/spec-kit/audit-tracker/internal/service"
)

// DashboardHandler serves the landing page.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Show GET /.
func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	overview, err := h.dashboard.Overview(c.UserContext(), actor(c))
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.ToDashboardResponse(overview.Counts, overview.Upcoming, overview.Recent))
}
