package dto

import "github.com/spec-kit/audit-tracker/internal/domain"

// FindingRequest payload.
type FindingRequest struct {
	Title          string `json:"title" validate:"required,min=3"`
	Recommendation string `json:"recommendation" validate:"required"`
}

// ComplianceRequest is the optional compliance block of a report.
type ComplianceRequest struct {
	Score   int    `json:"score" validate:"gte=0,lte=100"`
	Details string `json:"details"`
}

// CreateReportRequest payload.
type CreateReportRequest struct {
	AuditID    string             `json:"audit_id" validate:"required"`
	Title      string             `json:"title" validate:"required,min=3"`
	Summary    *string            `json:"summary"`
	Compliance *ComplianceRequest `json:"compliance"`
	Findings   []FindingRequest   `json:"findings" validate:"dive"`
}

// ComplianceResponse response.
type ComplianceResponse struct {
	Score   int    `json:"score"`
	Details string `json:"details"`
}

// FindingResponse response.
type FindingResponse struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Recommendation string `json:"recommendation"`
}

// ReportSummary is the list view of a report.
type ReportSummary struct {
	ID          string              `json:"id"`
	AuditID     string              `json:"audit_id"`
	Title       string              `json:"title"`
	GeneratedBy string              `json:"generated_by"`
	Date        string              `json:"date"`
	Status      domain.ReportStatus `json:"status"`
}

// ReportDetailResponse includes summary, compliance and findings.
type ReportDetailResponse struct {
	ReportSummary
	Summary    *string             `json:"summary"`
	Compliance *ComplianceResponse `json:"compliance"`
	Findings   []FindingResponse   `json:"findings"`
}

// ToReportSummary maps a domain report.
func ToReportSummary(report *domain.Report) ReportSummary {
	return ReportSummary{
		ID:          report.ID,
		AuditID:     report.AuditID,
		Title:       report.Title,
		GeneratedBy: report.GeneratedByName,
		Date:        report.Date.Format(DateLayout),
		Status:      report.Status,
	}
}

// ToReportSummaries maps a list of reports.
func ToReportSummaries(reports []domain.Report) []ReportSummary {
	out := make([]ReportSummary, 0, len(reports))
	for i := range reports {
		out = append(out, ToReportSummary(&reports[i]))
	}
	return out
}

// ToReportDetail maps a report with its findings.
func ToReportDetail(report *domain.Report) ReportDetailResponse {
	resp := ReportDetailResponse{
		ReportSummary: ToReportSummary(report),
		Summary:       report.Summary,
		Findings:      make([]FindingResponse, 0, len(report.Findings)),
	}
	if report.ComplianceScore != nil {
		resp.Compliance = &ComplianceResponse{Score: *report.ComplianceScore}
		if report.ComplianceDetails != nil {
			resp.Compliance.Details = *report.ComplianceDetails
		}
	}
	for _, f := range report.Findings {
		resp.Findings = append(resp.Findings, ToFindingResponse(&f))
	}
	return resp
}

// ToFindingResponse maps a finding.
func ToFindingResponse(finding *domain.ReportFinding) FindingResponse {
	return FindingResponse{ID: finding.ID, Title: finding.Title, Recommendation: finding.Recommendation}
}
