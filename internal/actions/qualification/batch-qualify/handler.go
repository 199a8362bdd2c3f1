package batchqualify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"leadflow/internal/actions"
	apperrors "leadflow/internal/common/errors"
	"leadflow/internal/common/llmjson"
	"leadflow/internal/common/logger"
	"leadflow/internal/models"
	"leadflow/pkg/catalog"
)

const systemPrompt = "You are a sales qualification analyst scoring a batch of leads against fixed rules. Respond with a JSON array only: [{\"id\", \"qualificationCategory\", \"qualificationScore\": 0-100, \"qualificationReasoning\"}]. Keep each lead's original id unchanged."

type Handler struct {
	gateway actions.Completer
	logger  logger.Logger
}

func NewHandler(gw actions.Completer, log logger.Logger) *Handler {
	return &Handler{
		gateway: gw,
		logger: log.With(map[string]interface{}{
			"action": string(catalog.BatchQualify),
		}),
	}
}

func (h *Handler) Name() catalog.Action { return catalog.BatchQualify }

func (h *Handler) Handle(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var input Input
	if err := json.Unmarshal(payload, &input); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	return h.Execute(ctx, &input)
}

func (h *Handler) Execute(ctx context.Context, input *Input) ([]Result, error) {
	if len(input.Leads) == 0 {
		return nil, apperrors.NewBadRequestError("leads must not be empty")
	}

	leadsJSON, _ := json.MarshalIndent(input.Leads, "", "  ")

	var b strings.Builder
	fmt.Fprintf(&b, "Score each of these %d leads:\n", len(input.Leads))
	b.Write(leadsJSON)
	b.WriteString("\n")
	if input.Rules != "" {
		fmt.Fprintf(&b, "Qualification rules:\n%s\n", input.Rules)
	}
	b.WriteString("Return one entry per lead, in any order, keyed by the lead's id.")

	entry, _ := catalog.Lookup(string(catalog.BatchQualify))
	raw, err := h.gateway.Complete(ctx, h.gateway.ModelFor(entry.Tier), systemPrompt, b.String())
	if err != nil {
		return nil, err
	}

	var parsed []Result
	if err := llmjson.Decode(string(catalog.BatchQualify), raw, entry.ResponseSchema, &parsed); err != nil {
		return nil, err
	}

	h.logger.Info("batch qualified", map[string]interface{}{
		"leads":   len(input.Leads),
		"results": len(parsed),
	})

	return parsed, nil
}

// Merge applies qualification results to a lead list by id. Leads without a
// matching result are returned untouched; results without a matching lead are
// dropped.
func Merge(leads []models.Lead, results []Result) []models.Lead {
	byID := make(map[string]Result, len(results))
	for _, r := range results {
		byID[r.ID] = r
	}

	merged := make([]models.Lead, len(leads))
	for i, lead := range leads {
		merged[i] = lead
		if r, ok := byID[lead.ID]; ok {
			merged[i].QualificationCategory = r.QualificationCategory
			merged[i].QualificationScore = r.QualificationScore
			merged[i].QualificationReasoning = r.QualificationReasoning
		}
	}
	return merged
}
