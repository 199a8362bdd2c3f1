package searchstrategy

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

const systemPrompt = "You are a B2B prospecting strategist. You turn vague lead-generation goals into precise, searchable queries. Respond with JSON only: {\"refinedQuery\", \"industries\": [], \"roles\": [], \"reasoning\"}."

type Handler struct {
	gateway actions.Completer
	logger  logger.Logger
}

func NewHandler(gw actions.Completer, log logger.Logger) *Handler {
	return &Handler{
		gateway: gw,
		logger: log.With(map[string]interface{}{
			"action": string(catalog.SearchStrategy),
		}),
	}
}

func (h *Handler) Name() catalog.Action { return catalog.SearchStrategy }

func (h *Handler) Handle(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var input Input
	if err := json.Unmarshal(payload, &input); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	return h.Execute(ctx, &input)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.Goal) == "" {
		return nil, apperrors.NewBadRequestError("goal is required")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Refine this lead-generation goal into a structured search query: %q\n", input.Goal)
	if input.Context != "" {
		fmt.Fprintf(&b, "Additional context about the seller: %s\n", input.Context)
	}
	b.WriteString("List the industries worth targeting, the decision-maker roles to contact, and explain the refinement.")

	entry, _ := catalog.Lookup(string(catalog.SearchStrategy))
	raw, err := h.gateway.Complete(ctx, h.gateway.ModelFor(entry.Tier), systemPrompt, b.String())
	if err != nil {
		return nil, err
	}

	var parsed Output
	if err := llmjson.Decode(string(catalog.SearchStrategy), raw, entry.ResponseSchema, &parsed); err != nil {
		return nil, err
	}

	h.logger.Info("search strategy refined", map[string]interface{}{
		"industries": len(parsed.Industries),
		"roles":      len(parsed.Roles),
	})

	return &parsed, nil
}
