package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/audit-tracker/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAuditScheduled   EventType = "audit_scheduled"
	EventChecklistCreated EventType = "checklist_created"
	EventChecklistDeleted EventType = "checklist_deleted"
	EventReportDrafted    EventType = "report_drafted"
	EventReportFinalized  EventType = "report_finalized"
)

// Actor identifies who caused an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// ActorFromSession copies the acting session into an Actor.
func ActorFromSession(session domain.Session) Actor {
	return Actor{UserID: session.SubjectID, Role: session.Role}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	ResourceID string      `json:"resource_id"`
	Actor      Actor       `json:"actor"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, resourceID string, actor Actor, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		ResourceID: resourceID,
		Actor:      actor,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	}
}

// AuditScheduledPayload payload.
type AuditScheduledPayload struct {
	Name    string    `json:"name"`
	EndDate time.Time `json:"end_date"`
}

// ChecklistPayload payload for checklist creation and deletion.
type ChecklistPayload struct {
	Name string `json:"name"`
}

// ReportPayload payload for report drafting and finalization.
type ReportPayload struct {
	Title   string `json:"title"`
	AuditID string `json:"audit_id"`
}
