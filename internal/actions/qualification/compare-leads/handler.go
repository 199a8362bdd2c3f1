package compareleads

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

const defaultPersona = "an experienced B2B sales director"

const systemPromptFmt = "You are %s. Judge a set of leads against the given criteria and pick the single best one. Respond with JSON only: {\"winnerId\", \"recommendation\", \"reasoning\", \"comparisonPoints\": [{\"aspect\", \"winner\", \"detail\"}]}. winnerId must be one of the provided lead ids."

type Handler struct {
	gateway actions.Completer
	logger  logger.Logger
}

func NewHandler(gw actions.Completer, log logger.Logger) *Handler {
	return &Handler{
		gateway: gw,
		logger: log.With(map[string]interface{}{
			"action": string(catalog.CompareLeads),
		}),
	}
}

func (h *Handler) Name() catalog.Action { return catalog.CompareLeads }

func (h *Handler) Handle(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var input Input
	if err := json.Unmarshal(payload, &input); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	return h.Execute(ctx, &input)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if len(input.Leads) < 2 {
		return nil, apperrors.NewBadRequestError("at least two leads are required")
	}

	persona := input.Persona
	if persona == "" {
		persona = defaultPersona
	}

	leadsJSON, _ := json.MarshalIndent(input.Leads, "", "  ")

	var b strings.Builder
	fmt.Fprintf(&b, "Compare these %d leads:\n", len(input.Leads))
	b.Write(leadsJSON)
	b.WriteString("\n")
	if input.Criteria != "" {
		fmt.Fprintf(&b, "Decision criteria:\n%s\n", input.Criteria)
	}
	b.WriteString("Pick the winner, recommend next steps, and break the comparison down point by point.")

	entry, _ := catalog.Lookup(string(catalog.CompareLeads))
	raw, err := h.gateway.Complete(ctx, h.gateway.ModelFor(entry.Tier), fmt.Sprintf(systemPromptFmt, persona), b.String())
	if err != nil {
		return nil, err
	}

	var parsed Output
	if err := llmjson.Decode(string(catalog.CompareLeads), raw, entry.ResponseSchema, &parsed); err != nil {
		return nil, err
	}

	h.logger.Info("leads compared", map[string]interface{}{
		"leads":    len(input.Leads),
		"winnerId": parsed.WinnerID,
	})

	return &parsed, nil
}
