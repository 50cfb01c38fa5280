package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/audit-tracker/internal/domain"
)

// ReportRepository encapsulates reports and their findings.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	Upsert(ctx context.Context, report *domain.Report) error
	AddFinding(ctx context.Context, finding *domain.ReportFinding) error
	UpdateStatus(ctx context.Context, id string, status domain.ReportStatus) error
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	List(ctx context.Context) ([]domain.Report, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

const reportSelect = `
        SELECT r.id, r.audit_id, r.title, COALESCE(r.generated_by::text, ''), COALESCE(u.name, ''),
               r.date, r.status, r.summary, r.compliance_score, r.compliance_details
        FROM reports r LEFT JOIN users u ON u.id = r.generated_by`

// Create inserts the report and its initial findings in one transaction.
func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		const query = `
            INSERT INTO reports (id, audit_id, title, generated_by, date, status, summary, compliance_score, compliance_details)
            VALUES ($1,$2,$3,NULLIF($4,'')::uuid,$5,$6,$7,$8,$9)`
		if _, err := tx.Exec(ctx, query,
			report.ID,
			report.AuditID,
			report.Title,
			report.GeneratedByID,
			report.Date,
			report.Status,
			report.Summary,
			report.ComplianceScore,
			report.ComplianceDetails,
		); err != nil {
			return err
		}
		return insertFindings(ctx, tx, report)
	})
}

// Upsert replaces a report and its findings; used by seeding.
func (r *reportRepository) Upsert(ctx context.Context, report *domain.Report) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		const query = `
            INSERT INTO reports (id, audit_id, title, generated_by, date, status, summary, compliance_score, compliance_details)
            VALUES ($1,$2,$3,NULLIF($4,'')::uuid,$5,$6,$7,$8,$9)
            ON CONFLICT (id) DO UPDATE SET audit_id=EXCLUDED.audit_id, title=EXCLUDED.title,
                generated_by=EXCLUDED.generated_by, date=EXCLUDED.date, status=EXCLUDED.status,
                summary=EXCLUDED.summary, compliance_score=EXCLUDED.compliance_score,
                compliance_details=EXCLUDED.compliance_details`
		if _, err := tx.Exec(ctx, query,
			report.ID,
			report.AuditID,
			report.Title,
			report.GeneratedByID,
			report.Date,
			report.Status,
			report.Summary,
			report.ComplianceScore,
			report.ComplianceDetails,
		); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM report_findings WHERE report_id=$1`, report.ID); err != nil {
			return err
		}
		return insertFindings(ctx, tx, report)
	})
}

func insertFindings(ctx context.Context, tx pgx.Tx, report *domain.Report) error {
	for i := range report.Findings {
		finding := &report.Findings[i]
		finding.ReportID = report.ID
		if err := tx.QueryRow(ctx,
			`INSERT INTO report_findings (report_id, title, recommendation) VALUES ($1,$2,$3) RETURNING id`,
			finding.ReportID, finding.Title, finding.Recommendation,
		).Scan(&finding.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *reportRepository) AddFinding(ctx context.Context, finding *domain.ReportFinding) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO report_findings (report_id, title, recommendation) VALUES ($1,$2,$3) RETURNING id`,
		finding.ReportID, finding.Title, finding.Recommendation,
	).Scan(&finding.ID)
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id string, status domain.ReportStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE reports SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	report, err := scanReport(r.pool.QueryRow(ctx, reportSelect+` WHERE r.id=$1`, id))
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, report_id, title, recommendation FROM report_findings WHERE report_id=$1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var finding domain.ReportFinding
		if err := rows.Scan(&finding.ID, &finding.ReportID, &finding.Title, &finding.Recommendation); err != nil {
			return nil, err
		}
		report.Findings = append(report.Findings, finding)
	}
	return report, rows.Err()
}

func (r *reportRepository) List(ctx context.Context) ([]domain.Report, error) {
	rows, err := r.pool.Query(ctx, reportSelect+` ORDER BY r.date DESC, r.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	return reports, rows.Err()
}

func scanReport(row pgx.Row) (*domain.Report, error) {
	var report domain.Report
	if err := row.Scan(
		&report.ID,
		&report.AuditID,
		&report.Title,
		&report.GeneratedByID,
		&report.GeneratedByName,
		&report.Date,
		&report.Status,
		&report.Summary,
		&report.ComplianceScore,
		&report.ComplianceDetails,
	); err != nil {
		return nil, err
	}
	return &report, nil
}
