package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/audit-tracker/internal/auth"
	"github.com/spec-kit/audit-tracker/internal/domain"
	"github.com/spec-kit/audit-tracker/internal/repository"
)

// DocumentService manages the document library.
type DocumentService struct {
	documents repository.DocumentRepository
	now       func() time.Time
}

// DocumentInput carries editable document fields.
type DocumentInput struct {
	Title string
	Type  string
}

// NewDocumentService creates the service.
func NewDocumentService(documents repository.DocumentRepository) *DocumentService {
	return &DocumentService{
		documents: documents,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// List returns documents, newest upload first.
func (s *DocumentService) List(ctx context.Context, actor domain.Session) ([]domain.Document, error) {
	if err := auth.Authorize(actor, auth.PermViewRecords...); err != nil {
		return nil, err
	}
	return s.documents.List(ctx)
}

// Create stores a new document at the initial version.
func (s *DocumentService) Create(ctx context.Context, actor domain.Session, input DocumentInput) (*domain.Document, error) {
	if err := auth.Authorize(actor, auth.PermEditDocuments...); err != nil {
		return nil, err
	}
	doc := &domain.Document{
		ID:         "DOC-" + shortID(8),
		Title:      strings.TrimSpace(input.Title),
		Type:       strings.TrimSpace(input.Type),
		Version:    domain.InitialDocumentVersion,
		UploadDate: s.now(),
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Update edits a document and bumps its minor version.
func (s *DocumentService) Update(ctx context.Context, actor domain.Session, id string, input DocumentInput) (*domain.Document, error) {
	if err := auth.Authorize(actor, auth.PermEditDocuments...); err != nil {
		return nil, err
	}
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "document", id)
	}
	doc.Title = strings.TrimSpace(input.Title)
	doc.Type = strings.TrimSpace(input.Type)
	doc.Version = domain.NextDocumentVersion(doc.Version)
	doc.UploadDate = s.now()
	if err := s.documents.Update(ctx, doc); err != nil {
		return nil, notFound(err, "document", id)
	}
	return doc, nil
}

// Duplicate copies a document as a new record at the initial version.
func (s *DocumentService) Duplicate(ctx context.Context, actor domain.Session, id string) (*domain.Document, error) {
	if err := auth.Authorize(actor, auth.PermEditDocuments...); err != nil {
		return nil, err
	}
	original, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "document", id)
	}
	return s.Create(ctx, actor, DocumentInput{Title: copyName(original.Title), Type: original.Type})
}

// Delete removes a document.
func (s *DocumentService) Delete(ctx context.Context, actor domain.Session, id string) error {
	if err := auth.Authorize(actor, auth.PermDeleteRecords...); err != nil {
		return err
	}
	if err := s.documents.Delete(ctx, id); err != nil {
		return notFound(err, "document", id)
	}
	return nil
}
