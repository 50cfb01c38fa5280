package dto

import "github.com/spec-kit/audit-tracker/internal/domain"

// RiskAssessmentRequest payload.
type RiskAssessmentRequest struct {
	HistoricalData    string `json:"historical_data" validate:"required"`
	RegulatoryChanges string `json:"regulatory_changes" validate:"required"`
	IndustryTrends    string `json:"industry_trends" validate:"required"`
}

// ToInput maps the request to the domain input.
func (r RiskAssessmentRequest) ToInput() domain.RiskAssessmentInput {
	return domain.RiskAssessmentInput{
		HistoricalData:    r.HistoricalData,
		RegulatoryChanges: r.RegulatoryChanges,
		IndustryTrends:    r.IndustryTrends,
	}
}
