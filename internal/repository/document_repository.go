package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/audit-tracker/internal/domain"
)

// DocumentRepository encapsulates document metadata persistence.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	Upsert(ctx context.Context, doc *domain.Document) error
	Update(ctx context.Context, doc *domain.Document) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context) ([]domain.Document, error)
}

type documentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository instantiates repository.
func NewDocumentRepository(pool *pgxpool.Pool) DocumentRepository {
	return &documentRepository{pool: pool}
}

const documentColumns = `id, title, type, version, upload_date`

func (r *documentRepository) Create(ctx context.Context, doc *domain.Document) error {
	const query = `INSERT INTO documents (` + documentColumns + `) VALUES ($1,$2,$3,$4,$5)`
	_, err := r.pool.Exec(ctx, query, doc.ID, doc.Title, doc.Type, doc.Version, doc.UploadDate)
	return err
}

func (r *documentRepository) Upsert(ctx context.Context, doc *domain.Document) error {
	const query = `
        INSERT INTO documents (` + documentColumns + `) VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, type=EXCLUDED.type,
            version=EXCLUDED.version, upload_date=EXCLUDED.upload_date`
	_, err := r.pool.Exec(ctx, query, doc.ID, doc.Title, doc.Type, doc.Version, doc.UploadDate)
	return err
}

func (r *documentRepository) Update(ctx context.Context, doc *domain.Document) error {
	const query = `UPDATE documents SET title=$1, type=$2, version=$3, upload_date=$4 WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query, doc.Title, doc.Type, doc.Version, doc.UploadDate, doc.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	var doc domain.Document
	err := r.pool.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id=$1`, id).
		Scan(&doc.ID, &doc.Title, &doc.Type, &doc.Version, &doc.UploadDate)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) List(ctx context.Context) ([]domain.Document, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+documentColumns+` FROM documents ORDER BY upload_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var doc domain.Document
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Type, &doc.Version, &doc.UploadDate); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
