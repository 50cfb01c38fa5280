package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/audit-tracker/internal/domain"
)

// DashboardRepository computes dashboard aggregates.
type DashboardRepository interface {
	Counts(ctx context.Context) (domain.DashboardCounts, error)
}

type dashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository instantiates repository.
func NewDashboardRepository(pool *pgxpool.Pool) DashboardRepository {
	return &dashboardRepository{pool: pool}
}

func (r *dashboardRepository) Counts(ctx context.Context) (domain.DashboardCounts, error) {
	const query = `
        SELECT
            (SELECT COUNT(*) FROM audits WHERE status = $1),
            (SELECT COUNT(*) FROM checklists),
            (SELECT COUNT(*) FROM report_findings f JOIN reports r ON r.id = f.report_id WHERE r.status = $2),
            (SELECT COUNT(*) FROM reports)`
	var counts domain.DashboardCounts
	err := r.pool.QueryRow(ctx, query, domain.AuditStatusInProgress, domain.ReportStatusFinalized).Scan(
		&counts.OngoingAudits,
		&counts.Checklists,
		&counts.OpenFindings,
		&counts.GeneratedReports,
	)
	return counts, err
}
