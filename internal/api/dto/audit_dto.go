package dto

import (
	"time"

	"github.com/spec-kit/audit-tracker/internal/domain"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// CreateAuditRequest payload.
type CreateAuditRequest struct {
	Name      string `json:"name" validate:"required,min=3"`
	Auditor   string `json:"auditor" validate:"required,min=3"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// UpdateAuditStatusRequest payload.
type UpdateAuditStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Scheduled 'In Progress' Completed"`
}

// AuditResponse response.
type AuditResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Auditor   string             `json:"auditor"`
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
	Status    domain.AuditStatus `json:"status"`
}

// ToAuditResponse maps a domain audit.
func ToAuditResponse(audit *domain.Audit) AuditResponse {
	return AuditResponse{
		ID:        audit.ID,
		Name:      audit.Name,
		Auditor:   audit.AuditorName,
		StartDate: audit.StartDate.Format(DateLayout),
		EndDate:   audit.EndDate.Format(DateLayout),
		Status:    audit.Status,
	}
}

// ToAuditResponses maps a list of audits.
func ToAuditResponses(audits []domain.Audit) []AuditResponse {
	out := make([]AuditResponse, 0, len(audits))
	for i := range audits {
		out = append(out, ToAuditResponse(&audits[i]))
	}
	return out
}

// ParseDate parses a validated calendar date in UTC.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}
