package domain

// RiskAssessmentInput is the material handed to the risk assessor.
type RiskAssessmentInput struct {
	HistoricalData    string
	RegulatoryChanges string
	IndustryTrends    string
}

// RiskAssessment is the structured assessment returned by the assessor.
type RiskAssessment struct {
	Summary         string   `json:"riskSummary"`
	Details         []string `json:"riskDetails"`
	Recommendations []string `json:"recommendations"`
}
