package compareleads

import "leadflow/internal/models"

type Input struct {
	Leads    []models.Lead `json:"leads"`
	Criteria string        `json:"criteria"`
	Persona  string        `json:"persona,omitempty"`
}

type ComparisonPoint struct {
	Aspect string `json:"aspect"`
	Winner string `json:"winner,omitempty"`
	Detail string `json:"detail,omitempty"`
}

type Output struct {
	WinnerID         string            `json:"winnerId"`
	Recommendation   string            `json:"recommendation"`
	Reasoning        string            `json:"reasoning"`
	ComparisonPoints []ComparisonPoint `json:"comparisonPoints"`
}
