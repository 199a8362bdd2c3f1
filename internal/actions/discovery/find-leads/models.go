package findleads

import "leadflow/internal/models"

type Input struct {
	Niche    string `json:"niche"`
	Location string `json:"location"`
	RadiusKm int    `json:"radiusKm,omitempty"`
	Count    int    `json:"count,omitempty"`
}

type Output struct {
	Leads []models.Lead `json:"leads"`
}
