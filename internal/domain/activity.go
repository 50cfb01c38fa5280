package domain

import "time"

// ActivityType groups feed entries by the record they describe.
type ActivityType string

const (
	ActivityTypeAudit     ActivityType = "Audit"
	ActivityTypeChecklist ActivityType = "Checklist"
	ActivityTypeReport    ActivityType = "Report"
)

// Activity is one entry of the dashboard activity feed.
type Activity struct {
	ID          int64
	Type        ActivityType
	Date        time.Time
	Description string
	CreatedAt   time.Time
}

// DashboardCounts are the headline numbers on the dashboard.
type DashboardCounts struct {
	OngoingAudits    int64
	Checklists       int64
	OpenFindings     int64
	GeneratedReports int64
}
