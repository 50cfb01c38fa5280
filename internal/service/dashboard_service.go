package service

import (
	"context"

	"github.com/spec-kit/audit-tracker/internal/auth"
	"github.com/spec-kit/audit-tracker/internal/domain"
	"github.com/spec-kit/audit-tracker/internal/repository"
)

const dashboardListLimit = 5

// DashboardOverview is everything the landing page shows.
type DashboardOverview struct {
	Counts   domain.DashboardCounts
	Upcoming []domain.Audit
	Recent   []domain.Activity
}

// DashboardService assembles the dashboard.
type DashboardService struct {
	dashboard  repository.DashboardRepository
	audits     repository.AuditRepository
	activities repository.ActivityRepository
}

// NewDashboardService creates the service.
func NewDashboardService(dashboard repository.DashboardRepository, audits repository.AuditRepository, activities repository.ActivityRepository) *DashboardService {
	return &DashboardService{dashboard: dashboard, audits: audits, activities: activities}
}

// Overview returns counts, upcoming deadlines and recent activity.
func (s *DashboardService) Overview(ctx context.Context, actor domain.Session) (*DashboardOverview, error) {
	if err := auth.Authorize(actor, auth.PermViewRecords...); err != nil {
		return nil, err
	}
	counts, err := s.dashboard.Counts(ctx)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.audits.ListUpcoming(ctx, dashboardListLimit)
	if err != nil {
		return nil, err
	}
	recent, err := s.activities.ListRecent(ctx, dashboardListLimit)
	if err != nil {
		return nil, err
	}
	return &DashboardOverview{Counts: counts, Upcoming: upcoming, Recent: recent}, nil
}
