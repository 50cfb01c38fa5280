package dto

import "github.com/spec-kit/audit-tracker/internal/domain"

// DashboardCards are the headline counters.
type DashboardCards struct {
	OngoingAudits    int64 `json:"ongoing_audits"`
	Checklists       int64 `json:"checklists"`
	OpenFindings     int64 `json:"open_findings"`
	GeneratedReports int64 `json:"generated_reports"`
}

// ActivityResponse is one feed entry.
type ActivityResponse struct {
	ID          int64               `json:"id"`
	Type        domain.ActivityType `json:"type"`
	Date        string              `json:"date"`
	Description string              `json:"description"`
}

// DashboardResponse is the landing page payload.
type DashboardResponse struct {
	Cards          DashboardCards     `json:"cards"`
	Upcoming       []AuditResponse    `json:"upcoming_deadlines"`
	RecentActivity []ActivityResponse `json:"recent_activity"`
}

// ToDashboardResponse maps the dashboard overview pieces.
func ToDashboardResponse(counts domain.DashboardCounts, upcoming []domain.Audit, recent []domain.Activity) DashboardResponse {
	resp := DashboardResponse{
		Cards: DashboardCards{
			OngoingAudits:    counts.OngoingAudits,
			Checklists:       counts.Checklists,
			OpenFindings:     counts.OpenFindings,
			GeneratedReports: counts.GeneratedReports,
		},
		Upcoming:       ToAuditResponses(upcoming),
		RecentActivity: make([]ActivityResponse, 0, len(recent)),
	}
	for _, a := range recent {
		resp.RecentActivity = append(resp.RecentActivity, ActivityResponse{
			ID:          a.ID,
			Type:        a.Type,
			Date:        a.Date.Format(DateLayout),
			Description: a.Description,
		})
	}
	return resp
}
