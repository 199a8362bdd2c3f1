package qualifylead

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"leadflow/internal/actions"
	apperrors "leadflow/internal/common/errors"
	"leadflow/internal/common/llmjson"
	"leadflow/internal/common/logger"
	"leadflow/pkg/catalog"
)

const systemPrompt = "You are a sales qualification analyst. Score how well a business lead fits the seller's offer. Respond with JSON only: {\"score\": 0-100, \"verdict\": \"Fit\"|\"Partial Fit\"|\"No Fit\", \"reasoning\"}."

type Handler struct {
	gateway actions.Completer
	logger  logger.Logger
}

func NewHandler(gw actions.Completer, log logger.Logger) *Handler {
	return &Handler{
		gateway: gw,
		logger: log.With(map[string]interface{}{
			"action": string(catalog.QualifyLead),
		}),
	}
}

func (h *Handler) Name() catalog.Action { return catalog.QualifyLead }

func (h *Handler) Handle(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var input Input
	if err := json.Unmarshal(payload, &input); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	return h.Execute(ctx, &input)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.Lead.Name) == "" {
		return nil, apperrors.NewBadRequestError("lead.name is required")
	}

	leadJSON, _ := json.MarshalIndent(input.Lead, "", "  ")

	var b strings.Builder
	b.WriteString("Qualify the following lead:\n")
	b.Write(leadJSON)
	b.WriteString("\n")
	if input.Criteria != "" {
		fmt.Fprintf(&b, "Qualification criteria:\n%s\n", input.Criteria)
	}
	b.WriteString("Score 0-100, verdict Fit / Partial Fit / No Fit, and a short reasoning.")

	entry, _ := catalog.Lookup(string(catalog.QualifyLead))
	raw, err := h.gateway.Complete(ctx, h.gateway.ModelFor(entry.Tier), systemPrompt, b.String())
	if err != nil {
		return nil, err
	}

	var parsed Output
	if err := llmjson.Decode(string(catalog.QualifyLead), raw, entry.ResponseSchema, &parsed); err != nil {
		return nil, err
	}

	h.logger.Info("lead qualified", map[string]interface{}{
		"leadId":  input.Lead.ID,
		"score":   parsed.Score,
		"verdict": parsed.Verdict,
	})

	return &parsed, nil
}
