package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/audit-tracker/internal/auth"
	"github.com/spec-kit/audit-tracker/internal/domain"
	"github.com/spec-kit/audit-tracker/internal/events"
	"github.com/spec-kit/audit-tracker/internal/repository"
	apperrors "github.com/spec-kit/audit-tracker/pkg/util/errorutil"
)

// AuditService schedules audits and tracks their status.
type AuditService struct {
	audits     repository.AuditRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AuditCreateInput describes a new audit.
type AuditCreateInput struct {
	Name        string
	AuditorName string
	StartDate   time.Time
	EndDate     time.Time
}

// NewAuditService creates the service.
func NewAuditService(audits repository.AuditRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{audits: audits, dispatcher: dispatcher, logger: logger}
}

// List returns audits, newest start date first.
func (s *AuditService) List(ctx context.Context, actor domain.Session) ([]domain.Audit, error) {
	if err := auth.Authorize(actor, auth.PermViewRecords...); err != nil {
		return nil, err
	}
	return s.audits.List(ctx)
}

// Create schedules a new audit.
func (s *AuditService) Create(ctx context.Context, actor domain.Session, input AuditCreateInput) (*domain.Audit, error) {
	if err := auth.Authorize(actor, auth.PermScheduleAudits...); err != nil {
		return nil, err
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, apperrors.NewValidationError("end date must be after start date", map[string]any{
			"end_date": "must be after start_date",
		})
	}

	audit := &domain.Audit{
		ID:          "AUD-" + shortID(8),
		Name:        strings.TrimSpace(input.Name),
		AuditorName: strings.TrimSpace(input.AuditorName),
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      domain.AuditStatusScheduled,
	}
	if err := s.audits.Create(ctx, audit); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewEvent(events.EventAuditScheduled, audit.ID, events.ActorFromSession(actor),
		events.AuditScheduledPayload{Name: audit.Name, EndDate: audit.EndDate}))
	return audit, nil
}

// UpdateStatus moves an audit to status.
func (s *AuditService) UpdateStatus(ctx context.Context, actor domain.Session, id string, status domain.AuditStatus) (*domain.Audit, error) {
	if err := auth.Authorize(actor, auth.PermScheduleAudits...); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(status)})
	}
	if err := s.audits.UpdateStatus(ctx, id, status); err != nil {
		return nil, notFound(err, "audit", id)
	}
	audit, err := s.audits.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "audit", id)
	}
	return audit, nil
}

func (s *AuditService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
