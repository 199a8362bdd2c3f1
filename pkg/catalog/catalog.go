// Package catalog defines the closed set of actions the service implements,
// together with the JSON schema every model response must satisfy. The router
// consults it to reject unknown actions before any upstream cost is incurred;
// handlers consult it to validate model output.
package catalog

// Action is a named operation mapping one payload shape to one result shape.
type Action string

const (
	FindLeads       Action = "findLeads"
	QuickValidate   Action = "quickValidate"
	QuickSummary    Action = "quickSummary"
	QualifyLead     Action = "qualifyLead"
	EnrichLead      Action = "enrichLead"
	SuggestCriteria Action = "suggestCriteria"
	BatchQualify    Action = "batchQualify"
	GenerateEmail   Action = "generateEmail"
	VerifyContact   Action = "verifyContact"
	CompareLeads    Action = "compareLeads"
	SearchStrategy  Action = "searchStrategy"
)

// ModelTier selects the upstream model class a handler requests.
type ModelTier string

const (
	TierFast ModelTier = "fast"
	TierDeep ModelTier = "deep"
)

// Entry describes one action in the catalog.
type Entry struct {
	Action         Action    `json:"action"`
	DisplayName    string    `json:"displayName"`
	Category       string    `json:"category"`
	Tier           ModelTier `json:"tier"`
	PlainText      bool      `json:"plainText"`
	ResponseSchema string    `json:"responseSchema,omitempty"`
}

var entries = map[Action]Entry{
	FindLeads: {
		Action:         FindLeads,
		DisplayName:    "Find Leads",
		Category:       "discovery",
		Tier:           TierFast,
		ResponseSchema: FindLeadsSchema,
	},
	QuickValidate: {
		Action:      QuickValidate,
		DisplayName: "Quick Validate",
		Category:    "qualification",
		Tier:        TierFast,
		PlainText:   true,
	},
	QuickSummary: {
		Action:      QuickSummary,
		DisplayName: "Quick Summary",
		Category:    "enrichment",
		Tier:        TierFast,
		PlainText:   true,
	},
	QualifyLead: {
		Action:         QualifyLead,
		DisplayName:    "Qualify Lead",
		Category:       "qualification",
		Tier:           TierFast,
		ResponseSchema: QualifyLeadSchema,
	},
	EnrichLead: {
		Action:         EnrichLead,
		DisplayName:    "Enrich Lead",
		Category:       "enrichment",
		Tier:           TierDeep,
		ResponseSchema: EnrichLeadSchema,
	},
	SuggestCriteria: {
		Action:         SuggestCriteria,
		DisplayName:    "Suggest Criteria",
		Category:       "qualification",
		Tier:           TierFast,
		ResponseSchema: SuggestCriteriaSchema,
	},
	BatchQualify: {
		Action:         BatchQualify,
		DisplayName:    "Batch Qualify",
		Category:       "qualification",
		Tier:           TierFast,
		ResponseSchema: BatchQualifySchema,
	},
	GenerateEmail: {
		Action:         GenerateEmail,
		DisplayName:    "Generate Email",
		Category:       "outreach",
		Tier:           TierFast,
		ResponseSchema: GenerateEmailSchema,
	},
	VerifyContact: {
		Action:         VerifyContact,
		DisplayName:    "Verify Contact",
		Category:       "enrichment",
		Tier:           TierFast,
		ResponseSchema: VerifyContactSchema,
	},
	CompareLeads: {
		Action:         CompareLeads,
		DisplayName:    "Compare Leads",
		Category:       "qualification",
		Tier:           TierDeep,
		ResponseSchema: CompareLeadsSchema,
	},
	SearchStrategy: {
		Action:         SearchStrategy,
		DisplayName:    "Search Strategy",
		Category:       "discovery",
		Tier:           TierFast,
		ResponseSchema: SearchStrategySchema,
	},
}

// Lookup returns the catalog entry for an action name.
func Lookup(name string) (Entry, bool) {
	e, ok := entries[Action(name)]
	return e, ok
}

// Actions returns every action in the catalog.
func Actions() []Action {
	out := make([]Action, 0, len(entries))
	for a := range entries {
		out = append(out, a)
	}
	return out
}
