package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/audit-tracker/internal/domain"
)

// ChecklistRepository encapsulates checklist persistence.
type ChecklistRepository interface {
	Create(ctx context.Context, checklist *domain.Checklist) error
	Upsert(ctx context.Context, checklist *domain.Checklist) error
	Update(ctx context.Context, checklist *domain.Checklist) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Checklist, error)
	List(ctx context.Context) ([]domain.Checklist, error)
}

type checklistRepository struct {
	pool *pgxpool.Pool
}

// NewChecklistRepository instantiates repository.
func NewChecklistRepository(pool *pgxpool.Pool) ChecklistRepository {
	return &checklistRepository{pool: pool}
}

func (r *checklistRepository) Create(ctx context.Context, checklist *domain.Checklist) error {
	const query = `
        INSERT INTO checklists (id, name, category, last_updated)
        VALUES ($1,$2,$3,$4)`
	_, err := r.pool.Exec(ctx, query, checklist.ID, checklist.Name, checklist.Category, checklist.LastUpdated)
	return err
}

func (r *checklistRepository) Upsert(ctx context.Context, checklist *domain.Checklist) error {
	const query = `
        INSERT INTO checklists (id, name, category, last_updated)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, category=EXCLUDED.category, last_updated=EXCLUDED.last_updated`
	_, err := r.pool.Exec(ctx, query, checklist.ID, checklist.Name, checklist.Category, checklist.LastUpdated)
	return err
}

func (r *checklistRepository) Update(ctx context.Context, checklist *domain.Checklist) error {
	const query = `UPDATE checklists SET name=$1, category=$2, last_updated=$3 WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query, checklist.Name, checklist.Category, checklist.LastUpdated, checklist.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *checklistRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM checklists WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *checklistRepository) GetByID(ctx context.Context, id string) (*domain.Checklist, error) {
	var checklist domain.Checklist
	err := r.pool.QueryRow(ctx, `SELECT id, name, category, last_updated FROM checklists WHERE id=$1`, id).
		Scan(&checklist.ID, &checklist.Name, &checklist.Category, &checklist.LastUpdated)
	if err != nil {
		return nil, err
	}
	return &checklist, nil
}

func (r *checklistRepository) List(ctx context.Context) ([]domain.Checklist, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, category, last_updated FROM checklists ORDER BY last_updated DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checklists []domain.Checklist
	for rows.Next() {
		var checklist domain.Checklist
		if err := rows.Scan(&checklist.ID, &checklist.Name, &checklist.Category, &checklist.LastUpdated); err != nil {
			return nil, err
		}
		checklists = append(checklists, checklist)
	}
	return checklists, rows.Err()
}
