package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/audit-tracker/internal/api/dto"
	"github.com/spec-kit/audit-tracker/internal/service"
)

// ChecklistsHandler manages checklist endpoints.
type ChecklistsHandler struct {
	checklists *service.ChecklistService
}

// NewChecklistsHandler constructs handler.
func NewChecklistsHandler(checklists *service.ChecklistService) *ChecklistsHandler {
	return &ChecklistsHandler{checklists: checklists}
}

// List GET /checklists.
func (h *ChecklistsHandler) List(c *fiber.Ctx) error {
	checklists, err := h.checklists.List(c.UserContext(), actor(c))
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.ToChecklistResponses(checklists))
}

// Create POST /checklists.
func (h *ChecklistsHandler) Create(c *fiber.Ctx) error {
	var req dto.ChecklistRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	checklist, err := h.checklists.Create(c.UserContext(), actor(c), service.ChecklistInput{Name: req.Name, Category: req.Category})
	if err != nil {
		return err
	}
	return data(c, fiber.StatusCreated, dto.ToChecklistResponse(checklist))
}

// Update PUT /checklists/:id.
func (h *ChecklistsHandler) Update(c *fiber.Ctx) error {
	var req dto.ChecklistRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	checklist, err := h.checklists.Update(c.UserContext(), actor(c), c.Params("id"), service.ChecklistInput{Name: req.Name, Category: req.Category})
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.ToChecklistResponse(checklist))
}

// Duplicate POST /checklists/:id/duplicate.
func (h *ChecklistsHandler) Duplicate(c *fiber.Ctx) error {
	checklist, err := h.checklists.Duplicate(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, fiber.StatusCreated, dto.ToChecklistResponse(checklist))
}

// Delete DELETE /checklists/:id.
func (h *ChecklistsHandler) Delete(c *fiber.Ctx) error {
	if err := h.checklists.Delete(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
