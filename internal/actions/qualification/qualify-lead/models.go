package qualifylead

import "leadflow/internal/models"

type Input struct {
	Lead     models.Lead `json:"lead"`
	Criteria string      `json:"criteria,omitempty"`
}

type Output struct {
	Score     float64 `json:"score"`
	Verdict   string  `json:"verdict"`
	Reasoning string  `json:"reasoning"`
}
