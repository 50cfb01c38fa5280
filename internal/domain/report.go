package domain

import "time"

// ReportStatus distinguishes drafts from published reports.
type ReportStatus string

const (
	ReportStatusDraft     ReportStatus = "Draft"
	ReportStatusFinalized ReportStatus = "Finalized"
)

// Report summarizes the outcome of an audit.
type Report struct {
	ID                string
	AuditID           string
	Title             string
	GeneratedByID     string
	GeneratedByName   string
	Date              time.Time
	Status            ReportStatus
	Summary           *string
	ComplianceScore   *int
	ComplianceDetails *string
	Findings          []ReportFinding
}

// ReportFinding is a single issue raised by a report.
type ReportFinding struct {
	ID             int64
	ReportID       string
	Title          string
	Recommendation string
}
