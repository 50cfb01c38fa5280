package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/audit-tracker/internal/auth"
	"github.com/spec-kit/audit-tracker/internal/domain"
	"github.com/spec-kit/audit-tracker/internal/events"
	"github.com/spec-kit/audit-tracker/internal/repository"
	apperrors "github.com/spec-kit/audit-tracker/pkg/util/errorutil"
)

// ReportService drafts, extends and finalizes audit reports.
type ReportService struct {
	reports    repository.ReportRepository
	audits     repository.AuditRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// ReportDependencies bundles repositories for the report service.
type ReportDependencies struct {
	ReportRepo repository.ReportRepository
	AuditRepo  repository.AuditRepository
	Dispatcher events.Dispatcher
}

// FindingInput describes a finding.
type FindingInput struct {
	Title          string
	Recommendation string
}

// ReportCreateInput describes a new draft report.
type ReportCreateInput struct {
	AuditID           string
	Title             string
	Summary           *string
	ComplianceScore   *int
	ComplianceDetails *string
	Findings          []FindingInput
}

// NewReportService creates the service.
func NewReportService(deps ReportDependencies, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		reports:    deps.ReportRepo,
		audits:     deps.AuditRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// List returns reports, newest first.
func (s *ReportService) List(ctx context.Context, actor domain.Session) ([]domain.Report, error) {
	if err := auth.Authorize(actor, auth.PermViewRecords...); err != nil {
		return nil, err
	}
	return s.reports.List(ctx)
}

// Get returns a report with its findings.
func (s *ReportService) Get(ctx context.Context, actor domain.Session, id string) (*domain.Report, error) {
	if err := auth.Authorize(actor, auth.PermViewRecords...); err != nil {
		return nil, err
	}
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "report", id)
	}
	return report, nil
}

// Create drafts a report for an existing audit, authored by actor.
func (s *ReportService) Create(ctx context.Context, actor domain.Session, input ReportCreateInput) (*domain.Report, error) {
	if err := auth.Authorize(actor, auth.PermDraftReports...); err != nil {
		return nil, err
	}
	if _, err := s.audits.GetByID(ctx, input.AuditID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("unknown audit", map[string]any{"audit_id": input.AuditID})
		}
		return nil, err
	}

	now := s.now()
	report := &domain.Report{
		ID:                fmt.Sprintf("RPT-%d-%s", now.Year(), shortID(6)),
		AuditID:           input.AuditID,
		Title:             strings.TrimSpace(input.Title),
		GeneratedByID:     actor.SubjectID,
		Date:              now,
		Status:            domain.ReportStatusDraft,
		Summary:           input.Summary,
		ComplianceScore:   input.ComplianceScore,
		ComplianceDetails: input.ComplianceDetails,
	}
	for _, f := range input.Findings {
		report.Findings = append(report.Findings, domain.ReportFinding{
			Title:          strings.TrimSpace(f.Title),
			Recommendation: strings.TrimSpace(f.Recommendation),
		})
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewEvent(events.EventReportDrafted, report.ID, events.ActorFromSession(actor),
		events.ReportPayload{Title: report.Title, AuditID: report.AuditID}))
	return report, nil
}

// AddFinding appends a finding to a draft report.
func (s *ReportService) AddFinding(ctx context.Context, actor domain.Session, id string, input FindingInput) (*domain.ReportFinding, error) {
	if err := auth.Authorize(actor, auth.PermDraftReports...); err != nil {
		return nil, err
	}
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "report", id)
	}
	if report.Status == domain.ReportStatusFinalized {
		return nil, apperrors.NewConflict("report is finalized", map[string]any{"id": id})
	}

	finding := &domain.ReportFinding{
		ReportID:       id,
		Title:          strings.TrimSpace(input.Title),
		Recommendation: strings.TrimSpace(input.Recommendation),
	}
	if err := s.reports.AddFinding(ctx, finding); err != nil {
		return nil, err
	}
	return finding, nil
}

// Finalize publishes a draft report.
func (s *ReportService) Finalize(ctx context.Context, actor domain.Session, id string) (*domain.Report, error) {
	if err := auth.Authorize(actor, auth.PermFinalizeReports...); err != nil {
		return nil, err
	}
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "report", id)
	}
	if report.Status == domain.ReportStatusFinalized {
		return nil, apperrors.NewConflict("report is already finalized", map[string]any{"id": id})
	}
	if err := s.reports.UpdateStatus(ctx, id, domain.ReportStatusFinalized); err != nil {
		return nil, notFound(err, "report", id)
	}
	report.Status = domain.ReportStatusFinalized

	s.publish(ctx, events.NewEvent(events.EventReportFinalized, report.ID, events.ActorFromSession(actor),
		events.ReportPayload{Title: report.Title, AuditID: report.AuditID}))
	return report, nil
}

func (s *ReportService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
