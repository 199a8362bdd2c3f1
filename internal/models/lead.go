package models

// Lead lifecycle status values.
const (
	LeadStatusNew       = "new"
	LeadStatusEnriching = "enriching"
	LeadStatusAnalyzed  = "analyzed"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
)

// SourceTypeGoogleMaps marks leads produced by a discovery search.
const SourceTypeGoogleMaps = "google_maps"

// Lead is the business record the actions consume and produce. The service
// never creates a lead outside findLeads and never mutates one outside a
// handler's declared output.
type Lead struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Industry    string `json:"industry,omitempty"`
	Location    string `json:"location,omitempty"`
	Website     string `json:"website,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Description string `json:"description,omitempty"`

	Status     string `json:"status,omitempty"`
	LeadStatus string `json:"leadStatus,omitempty"`
	SourceType string `json:"sourceType,omitempty"`

	ContactName string   `json:"contactName,omitempty"`
	Leadership  []string `json:"leadership,omitempty"`

	QualificationScore     float64 `json:"qualificationScore,omitempty"`
	QualificationCategory  string  `json:"qualificationCategory,omitempty"`
	QualificationReasoning string  `json:"qualificationReasoning,omitempty"`
}
