package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/audit-tracker/internal/domain"
)

// ActivityRepository stores the dashboard activity feed.
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) error
	ListRecent(ctx context.Context, limit int) ([]domain.Activity, error)
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository instantiates repository.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	const query = `
        INSERT INTO activities (type, date, description)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, activity.Type, activity.Date, activity.Description).
		Scan(&activity.ID, &activity.CreatedAt)
}

func (r *activityRepository) ListRecent(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, type, date, description, created_at FROM activities ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		var activity domain.Activity
		if err := rows.Scan(&activity.ID, &activity.Type, &activity.Date, &activity.Description, &activity.CreatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}
