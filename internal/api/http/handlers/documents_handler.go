package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/audit-tracker/internal/api/dto"
	"github.com/spec-kit/audit-tracker/internal/service"
)

// DocumentsHandler manages document endpoints.
type DocumentsHandler struct {
	documents *service.DocumentService
}

// NewDocumentsHandler constructs handler.
func NewDocumentsHandler(documents *service.DocumentService) *DocumentsHandler {
	return &DocumentsHandler{documents: documents}
}

// List GET /documents.
func (h *DocumentsHandler) List(c *fiber.Ctx) error {
	docs, err := h.documents.List(c.UserContext(), actor(c))
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.ToDocumentResponses(docs))
}

// Create POST /documents.
func (h *DocumentsHandler) Create(c *fiber.Ctx) error {
	var req dto.DocumentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	doc, err := h.documents.Create(c.UserContext(), actor(c), service.DocumentInput{Title: req.Title, Type: req.Type})
	if err != nil {
		return err
	}
	return data(c, fiber.StatusCreated, dto.ToDocumentResponse(doc))
}

// Update PUT /documents/:id.
func (h *DocumentsHandler) Update(c *fiber.Ctx) error {
	var req dto.DocumentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	doc, err := h.documents.Update(c.UserContext(), actor(c), c.Params("id"), service.DocumentInput{Title: req.Title, Type: req.Type})
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.ToDocumentResponse(doc))
}

// Duplicate POST /documents/:id/duplicate.
func (h *DocumentsHandler) Duplicate(c *fiber.Ctx) error {
	doc, err := h.documents.Duplicate(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, fiber.StatusCreated, dto.ToDocumentResponse(doc))
}

// Delete DELETE /documents/:id.
func (h *DocumentsHandler) Delete(c *fiber.Ctx) error {
	if err := h.documents.Delete(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
