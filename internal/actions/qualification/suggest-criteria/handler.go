package suggestcriteria

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

const systemPrompt = "You are a sales operations consultant. Propose exactly 5 concrete, checkable qualification rules for the seller's context. Respond with JSON only: {\"rules\": [5 strings], \"description\"}."

type Handler struct {
	gateway actions.Completer
	logger  logger.Logger
}

func NewHandler(gw actions.Completer, log logger.Logger) *Handler {
	return &Handler{
		gateway: gw,
		logger: log.With(map[string]interface{}{
			"action": string(catalog.SuggestCriteria),
		}),
	}
}

func (h *Handler) Name() catalog.Action { return catalog.SuggestCriteria }

func (h *Handler) Handle(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var input Input
	if err := json.Unmarshal(payload, &input); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	return h.Execute(ctx, &input)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.Business) == "" {
		return nil, apperrors.NewBadRequestError("business is required")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The seller's business: %s\n", input.Business)
	if input.Niche != "" {
		fmt.Fprintf(&b, "Target niche: %s\n", input.Niche)
	}
	b.WriteString("Propose 5 qualification rules a junior rep could apply from a lead record alone, plus a one-paragraph description of the ideal customer profile.")

	entry, _ := catalog.Lookup(string(catalog.SuggestCriteria))
	raw, err := h.gateway.Complete(ctx, h.gateway.ModelFor(entry.Tier), systemPrompt, b.String())
	if err != nil {
		return nil, err
	}

	var parsed Output
	if err := llmjson.Decode(string(catalog.SuggestCriteria), raw, entry.ResponseSchema, &parsed); err != nil {
		return nil, err
	}

	h.logger.Info("criteria suggested", map[string]interface{}{
		"rules": len(parsed.Rules),
	})

	return &parsed, nil
}
