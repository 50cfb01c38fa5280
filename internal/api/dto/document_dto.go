package dto

import "github.com/spec-kit/audit-tracker/internal/domain"

// DocumentRequest payload for create and update.
type DocumentRequest struct {
	Title string `json:"title" validate:"required,min=3"`
	Type  string `json:"type" validate:"required"`
}

// DocumentResponse response.
type DocumentResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Type       string `json:"type"`
	Version    string `json:"version"`
	UploadDate string `json:"upload_date"`
}

// ToDocumentResponse maps a domain document.
func ToDocumentResponse(doc *domain.Document) DocumentResponse {
	return DocumentResponse{
		ID:         doc.ID,
		Title:      doc.Title,
		Type:       doc.Type,
		Version:    doc.Version,
		UploadDate: doc.UploadDate.Format(DateLayout),
	}
}

// ToDocumentResponses maps a list of documents.
func ToDocumentResponses(docs []domain.Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for i := range docs {
		out = append(out, ToDocumentResponse(&docs[i]))
	}
	return out
}
