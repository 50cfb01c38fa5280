package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/audit-tracker/internal/auth"
	"github.com/spec-kit/audit-tracker/internal/domain"
	"github.com/spec-kit/audit-tracker/internal/events"
	"github.com/spec-kit/audit-tracker/internal/repository"
)

// ActivityService turns domain events into dashboard activity entries.
type ActivityService struct {
	activities repository.ActivityRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewActivityService creates the service.
func NewActivityService(activities repository.ActivityRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{
		activities: activities,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (s *ActivityService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventAuditScheduled, s.handleAuditScheduled)
	s.dispatcher.Subscribe(events.EventChecklistCreated, s.handleChecklistCreated)
	s.dispatcher.Subscribe(events.EventChecklistDeleted, s.handleChecklistDeleted)
	s.dispatcher.Subscribe(events.EventReportDrafted, s.handleReportDrafted)
	s.dispatcher.Subscribe(events.EventReportFinalized, s.handleReportFinalized)
}

// Recent returns the newest feed entries.
func (s *ActivityService) Recent(ctx context.Context, actor domain.Session, limit int) ([]domain.Activity, error) {
	if err := auth.Authorize(actor, auth.PermViewRecords...); err != nil {
		return nil, err
	}
	return s.activities.ListRecent(ctx, limit)
}

func (s *ActivityService) handleAuditScheduled(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AuditScheduledPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	return s.record(ctx, event, domain.ActivityTypeAudit, fmt.Sprintf("Audit \"%s\" scheduled.", payload.Name))
}

func (s *ActivityService) handleChecklistCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ChecklistPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	return s.record(ctx, event, domain.ActivityTypeChecklist, fmt.Sprintf("Checklist \"%s\" created.", payload.Name))
}

func (s *ActivityService) handleChecklistDeleted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ChecklistPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	return s.record(ctx, event, domain.ActivityTypeChecklist, fmt.Sprintf("Checklist \"%s\" deleted.", payload.Name))
}

func (s *ActivityService) handleReportDrafted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ReportPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	return s.record(ctx, event, domain.ActivityTypeReport, fmt.Sprintf("Report \"%s\" was drafted.", payload.Title))
}

func (s *ActivityService) handleReportFinalized(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ReportPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	return s.record(ctx, event, domain.ActivityTypeReport, fmt.Sprintf("Report \"%s\" was finalized.", payload.Title))
}

func (s *ActivityService) record(ctx context.Context, event events.Event, kind domain.ActivityType, description string) error {
	date := event.Timestamp
	if date.IsZero() {
		date = time.Now().UTC()
	}
	activity := &domain.Activity{Type: kind, Date: date, Description: description}
	if err := s.activities.Create(ctx, activity); err != nil {
		return err
	}
	s.logger.Debug("activity recorded",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("resource_id", event.ResourceID))
	return nil
}
