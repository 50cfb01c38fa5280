package dto

import "github.com/spec-kit/audit-tracker/internal/domain"

// ChecklistRequest payload for create and update.
type ChecklistRequest struct {
	Name     string `json:"name" validate:"required,min=3"`
	Category string `json:"category" validate:"required,min=3"`
}

// ChecklistResponse response.
type ChecklistResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	LastUpdated string `json:"last_updated"`
}

// ToChecklistResponse maps a domain checklist.
func ToChecklistResponse(checklist *domain.Checklist) ChecklistResponse {
	return ChecklistResponse{
		ID:          checklist.ID,
		Name:        checklist.Name,
		Category:    checklist.Category,
		LastUpdated: checklist.LastUpdated.Format(DateLayout),
	}
}

// ToChecklistResponses maps a list of checklists.
func ToChecklistResponses(checklists []domain.Checklist) []ChecklistResponse {
	out := make([]ChecklistResponse, 0, len(checklists))
	for i := range checklists {
		out = append(out, ToChecklistResponse(&checklists[i]))
	}
	return out
}
