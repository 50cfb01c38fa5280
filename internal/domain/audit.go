package domain

import "time"

// AuditStatus tracks where an audit is in its lifecycle.
type AuditStatus string

const (
	AuditStatusScheduled  AuditStatus = "Scheduled"
	AuditStatusInProgress AuditStatus = "In Progress"
	AuditStatusCompleted  AuditStatus = "Completed"
)

// Valid reports whether s is a known status.
func (s AuditStatus) Valid() bool {
	switch s {
	case AuditStatusScheduled, AuditStatusInProgress, AuditStatusCompleted:
		return true
	}
	return false
}

// Audit is a scheduled examination of a bank function.
type Audit struct {
	ID          string
	Name        string
	AuditorName string
	StartDate   time.Time
	EndDate     time.Time
	Status      AuditStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
