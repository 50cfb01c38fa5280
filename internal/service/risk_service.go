package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/audit-tracker/internal/auth"
	"github.com/spec-kit/audit-tracker/internal/domain"
	apperrors "github.com/spec-kit/audit-tracker/pkg/util/errorutil"
)

// RiskAssessor produces a risk assessment from free-text inputs.
type RiskAssessor interface {
	Assess(ctx context.Context, input domain.RiskAssessmentInput) (*domain.RiskAssessment, error)
}

// RiskService runs AI-assisted risk assessments.
type RiskService struct {
	assessor RiskAssessor
	logger   *zap.Logger
}

// NewRiskService creates the service. A nil assessor leaves the feature unavailable.
func NewRiskService(assessor RiskAssessor, logger *zap.Logger) *RiskService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RiskService{assessor: assessor, logger: logger}
}

// Available reports whether an assessor is configured.
func (s *RiskService) Available() bool {
	return s.assessor != nil
}

// Assess runs the assessment for an administrator.
func (s *RiskService) Assess(ctx context.Context, actor domain.Session, input domain.RiskAssessmentInput) (*domain.RiskAssessment, error) {
	if err := auth.Authorize(actor, auth.PermRiskAssessment...); err != nil {
		return nil, err
	}
	if s.assessor == nil {
		return nil, apperrors.NewUnavailable("risk assessment is not configured")
	}
	input.HistoricalData = strings.TrimSpace(input.HistoricalData)
	input.RegulatoryChanges = strings.TrimSpace(input.RegulatoryChanges)
	input.IndustryTrends = strings.TrimSpace(input.IndustryTrends)

	result, err := s.assessor.Assess(ctx, input)
	if err != nil {
		s.logger.Error("risk assessment failed", zap.String("subject_id", actor.SubjectID), zap.Error(err))
		return nil, apperrors.NewUpstreamError("risk assessment failed", err)
	}
	return result, nil
}
