package enrichlead

import "leadflow/internal/models"

type Input struct {
	Lead models.Lead `json:"lead"`
}

// rawResult is the document the model is asked for.
type rawResult struct {
	Summary      string                 `json:"summary"`
	EnrichedData map[string]interface{} `json:"enrichedData"`
	Suggestions  []string               `json:"suggestions"`
}

// Output is the repackaged enrichment report the UI consumes. PainPoints,
// Strategy and Sources are reserved slots the UI fills in later stages; they
// are always present and empty here.
type Output struct {
	Summary      string                 `json:"summary"`
	PainPoints   []string               `json:"painPoints"`
	Strategy     string                 `json:"strategy"`
	Sources      []string               `json:"sources"`
	EnrichedData map[string]interface{} `json:"enrichedData"`
	Suggestions  []string               `json:"suggestions"`
}
