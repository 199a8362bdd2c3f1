package batchqualify

import "leadflow/internal/models"

type Input struct {
	Leads []models.Lead `json:"leads"`
	Rules string        `json:"rules"`
}

// Result is one per-lead qualification entry; the caller merges results back
// into its lead list by id.
type Result struct {
	ID                     string  `json:"id"`
	QualificationCategory  string  `json:"qualificationCategory"`
	QualificationScore     float64 `json:"qualificationScore"`
	QualificationReasoning string  `json:"qualificationReasoning"`
}
