package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/audit-tracker/internal/api/dto"
	"github.com/spec-kit/audit-tracker/internal/service"
)

// ReportsHandler manages report endpoints.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

// List GET /reports.
func (h *ReportsHandler) List(c *fiber.Ctx) error {
	reports, err := h.reports.List(c.UserContext(), actor(c))
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.ToReportSummaries(reports))
}

// Get GET /reports/:id.
func (h *ReportsHandler) Get(c *fiber.Ctx) error {
	report, err := h.reports.Get(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.ToReportDetail(report))
}

// Create POST /reports.
func (h *ReportsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReportRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	input := service.ReportCreateInput{
		AuditID: req.AuditID,
		Title:   req.Title,
		Summary: req.Summary,
	}
	if req.Compliance != nil {
		score, details := req.Compliance.Score, req.Compliance.Details
		input.ComplianceScore = &score
		input.ComplianceDetails = &details
	}
	for _, f := range req.Findings {
		input.Findings = append(input.Findings, service.FindingInput{Title: f.Title, Recommendation: f.Recommendation})
	}

	report, err := h.reports.Create(c.UserContext(), actor(c), input)
	if err != nil {
		return err
	}
	return data(c, fiber.StatusCreated, dto.ToReportDetail(report))
}

// AddFinding POST /reports/:id/findings.
func (h *ReportsHandler) AddFinding(c *fiber.Ctx) error {
	var req dto.FindingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	finding, err := h.reports.AddFinding(c.UserContext(), actor(c), c.Params("id"),
		service.FindingInput{Title: req.Title, Recommendation: req.Recommendation})
	if err != nil {
		return err
	}
	return data(c, fiber.StatusCreated, dto.ToFindingResponse(finding))
}

// Finalize POST /reports/:id/finalize.
func (h *ReportsHandler) Finalize(c *fiber.Ctx) error {
	report, err := h.reports.Finalize(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.ToReportDetail(report))
}
