package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/audit-tracker/internal/domain"
)

// AuditRepository encapsulates audit persistence.
type AuditRepository interface {
	Create(ctx context.Context, audit *domain.Audit) error
	Upsert(ctx context.Context, audit *domain.Audit) error
	UpdateStatus(ctx context.Context, id string, status domain.AuditStatus) error
	GetByID(ctx context.Context, id string) (*domain.Audit, error)
	List(ctx context.Context) ([]domain.Audit, error)
	ListUpcoming(ctx context.Context, limit int) ([]domain.Audit, error)
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository instantiates repository.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

const auditColumns = `id, name, auditor_name, start_date, end_date, status, created_at, updated_at`

func (r *auditRepository) Create(ctx context.Context, audit *domain.Audit) error {
	const query = `
        INSERT INTO audits (id, name, auditor_name, start_date, end_date, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		audit.ID,
		audit.Name,
		audit.AuditorName,
		audit.StartDate,
		audit.EndDate,
		audit.Status,
	).Scan(&audit.CreatedAt, &audit.UpdatedAt)
}

func (r *auditRepository) Upsert(ctx context.Context, audit *domain.Audit) error {
	const query = `
        INSERT INTO audits (id, name, auditor_name, start_date, end_date, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, auditor_name=EXCLUDED.auditor_name,
            start_date=EXCLUDED.start_date, end_date=EXCLUDED.end_date, status=EXCLUDED.status, updated_at=NOW()
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		audit.ID,
		audit.Name,
		audit.AuditorName,
		audit.StartDate,
		audit.EndDate,
		audit.Status,
	).Scan(&audit.CreatedAt, &audit.UpdatedAt)
}

func (r *auditRepository) UpdateStatus(ctx context.Context, id string, status domain.AuditStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE audits SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *auditRepository) GetByID(ctx context.Context, id string) (*domain.Audit, error) {
	query := `SELECT ` + auditColumns + ` FROM audits WHERE id=$1`
	return scanAudit(r.pool.QueryRow(ctx, query, id))
}

func (r *auditRepository) List(ctx context.Context) ([]domain.Audit, error) {
	query := `SELECT ` + auditColumns + ` FROM audits ORDER BY start_date DESC`
	return r.fetchMany(ctx, query)
}

func (r *auditRepository) ListUpcoming(ctx context.Context, limit int) ([]domain.Audit, error) {
	if limit <= 0 {
		limit = 5
	}
	query := `SELECT ` + auditColumns + ` FROM audits WHERE status <> $1 ORDER BY end_date ASC LIMIT $2`
	return r.fetchMany(ctx, query, domain.AuditStatusCompleted, limit)
}

func (r *auditRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.Audit, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var audits []domain.Audit
	for rows.Next() {
		audit, err := scanAudit(rows)
		if err != nil {
			return nil, err
		}
		audits = append(audits, *audit)
	}
	return audits, rows.Err()
}

func scanAudit(row pgx.Row) (*domain.Audit, error) {
	var audit domain.Audit
	if err := row.Scan(
		&audit.ID,
		&audit.Name,
		&audit.AuditorName,
		&audit.StartDate,
		&audit.EndDate,
		&audit.Status,
		&audit.CreatedAt,
		&audit.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &audit, nil
}
