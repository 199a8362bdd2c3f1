package catalog

// JSON schemas for the structured action responses. Schema validation rejects
// a mismatching model response instead of coercing it, so a bad shape fails
// loudly and is attributable to a specific action.

const FindLeadsSchema = `{
	"type": "object",
	"required": ["leads"],
	"properties": {
		"leads": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name"],
				"properties": {
					"name":     {"type": "string", "minLength": 1},
					"industry": {"type": "string"},
					"location": {"type": "string"},
					"website":  {"type": "string"},
					"phone":    {"type": "string"},
					"email":    {"type": "string"},
					"description": {"type": "string"}
				}
			}
		}
	}
}`

const QualifyLeadSchema = `{
	"type": "object",
	"required": ["score", "verdict", "reasoning"],
	"properties": {
		"score":     {"type": "number", "minimum": 0, "maximum": 100},
		"verdict":   {"type": "string", "enum": ["Fit", "Partial Fit", "No Fit"]},
		"reasoning": {"type": "string"}
	}
}`

const EnrichLeadSchema = `{
	"type": "object",
	"required": ["summary", "enrichedData"],
	"properties": {
		"summary":      {"type": "string"},
		"enrichedData": {"type": "object"},
		"suggestions":  {"type": "array", "items": {"type": "string"}}
	}
}`

const SuggestCriteriaSchema = `{
	"type": "object",
	"required": ["rules", "description"],
	"properties": {
		"rules":       {"type": "array", "items": {"type": "string"}, "minItems": 1},
		"description": {"type": "string"}
	}
}`

const BatchQualifySchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "qualificationCategory", "qualificationScore", "qualificationReasoning"],
		"properties": {
			"id":                     {"type": "string", "minLength": 1},
			"qualificationCategory":  {"type": "string"},
			"qualificationScore":     {"type": "number", "minimum": 0, "maximum": 100},
			"qualificationReasoning": {"type": "string"}
		}
	}
}`

const GenerateEmailSchema = `{
	"type": "object",
	"required": ["subject", "body"],
	"properties": {
		"subject": {"type": "string", "minLength": 1},
		"body":    {"type": "string", "minLength": 1}
	}
}`

const VerifyContactSchema = `{
	"type": "object",
	"required": ["valid", "riskScore", "classification"],
	"properties": {
		"valid":            {"type": "boolean"},
		"riskScore":        {"type": "number", "minimum": 0, "maximum": 100},
		"classification":   {"type": "string"},
		"technicalDetails": {"type": "object"},
		"enrichedData":     {"type": "object"}
	}
}`

const CompareLeadsSchema = `{
	"type": "object",
	"required": ["winnerId", "recommendation", "reasoning"],
	"properties": {
		"winnerId":       {"type": "string", "minLength": 1},
		"recommendation": {"type": "string"},
		"reasoning":      {"type": "string"},
		"comparisonPoints": {
			"type": "array",
			"items": {"type": "object"}
		}
	}
}`

const SearchStrategySchema = `{
	"type": "object",
	"required": ["refinedQuery", "industries", "roles", "reasoning"],
	"properties": {
		"refinedQuery": {"type": "string", "minLength": 1},
		"industries":   {"type": "array", "items": {"type": "string"}},
		"roles":        {"type": "array", "items": {"type": "string"}},
		"reasoning":    {"type": "string"}
	}
}`
