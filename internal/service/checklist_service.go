package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/audit-tracker/internal/auth"
	"github.com/spec-kit/audit-tracker/internal/domain"
	"github.com/spec-kit/audit-tracker/internal/events"
	"github.com/spec-kit/audit-tracker/internal/repository"
)

// ChecklistService manages audit checklists.
type ChecklistService struct {
	checklists repository.ChecklistRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// ChecklistInput carries editable checklist fields.
type ChecklistInput struct {
	Name     string
	Category string
}

// NewChecklistService creates the service.
func NewChecklistService(checklists repository.ChecklistRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ChecklistService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChecklistService{
		checklists: checklists,
		dispatcher: dispatcher,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// List returns checklists, most recently updated first.
func (s *ChecklistService) List(ctx context.Context, actor domain.Session) ([]domain.Checklist, error) {
	if err := auth.Authorize(actor, auth.PermViewRecords...); err != nil {
		return nil, err
	}
	return s.checklists.List(ctx)
}

// Create stores a new checklist.
func (s *ChecklistService) Create(ctx context.Context, actor domain.Session, input ChecklistInput) (*domain.Checklist, error) {
	if err := auth.Authorize(actor, auth.PermEditChecklists...); err != nil {
		return nil, err
	}
	checklist := &domain.Checklist{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		Category:    strings.TrimSpace(input.Category),
		LastUpdated: s.now(),
	}
	if err := s.checklists.Create(ctx, checklist); err != nil {
		return nil, err
	}
	s.publish(ctx, events.NewEvent(events.EventChecklistCreated, checklist.ID, events.ActorFromSession(actor),
		events.ChecklistPayload{Name: checklist.Name}))
	return checklist, nil
}

// Update edits a checklist and refreshes its last-updated time.
func (s *ChecklistService) Update(ctx context.Context, actor domain.Session, id string, input ChecklistInput) (*domain.Checklist, error) {
	if err := auth.Authorize(actor, auth.PermEditChecklists...); err != nil {
		return nil, err
	}
	checklist := &domain.Checklist{
		ID:          id,
		Name:        strings.TrimSpace(input.Name),
		Category:    strings.TrimSpace(input.Category),
		LastUpdated: s.now(),
	}
	if err := s.checklists.Update(ctx, checklist); err != nil {
		return nil, notFound(err, "checklist", id)
	}
	return checklist, nil
}

// Duplicate copies a checklist under a "(Copy)" name.
func (s *ChecklistService) Duplicate(ctx context.Context, actor domain.Session, id string) (*domain.Checklist, error) {
	if err := auth.Authorize(actor, auth.PermEditChecklists...); err != nil {
		return nil, err
	}
	original, err := s.checklists.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "checklist", id)
	}
	return s.Create(ctx, actor, ChecklistInput{Name: copyName(original.Name), Category: original.Category})
}

// Delete removes a checklist.
func (s *ChecklistService) Delete(ctx context.Context, actor domain.Session, id string) error {
	if err := auth.Authorize(actor, auth.PermDeleteRecords...); err != nil {
		return err
	}
	checklist, err := s.checklists.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "checklist", id)
	}
	if err := s.checklists.Delete(ctx, id); err != nil {
		return notFound(err, "checklist", id)
	}
	s.publish(ctx, events.NewEvent(events.EventChecklistDeleted, id, events.ActorFromSession(actor),
		events.ChecklistPayload{Name: checklist.Name}))
	return nil
}

func (s *ChecklistService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
