// Package quicksummary returns a two-sentence strategic summary of a lead.
// The response is plain text, not a structured document.
package quicksummary

import (
	"context"
	"encoding/json"
	"strings"

	"leadflow/internal/actions"
	apperrors "leadflow/internal/common/errors"
	"leadflow/internal/common/llmjson"
	"leadflow/internal/common/logger"
	"leadflow/internal/models"
	"leadflow/pkg/catalog"
)

const systemPrompt = "You are a sales strategist. Summarize this business lead in exactly two sentences: what they do, and the most promising angle for approaching them. Reply with the two sentences only."

type Input struct {
	Lead models.Lead `json:"lead"`
}

type Handler struct {
	gateway actions.Completer
	logger  logger.Logger
}

func NewHandler(gw actions.Completer, log logger.Logger) *Handler {
	return &Handler{
		gateway: gw,
		logger: log.With(map[string]interface{}{
			"action": string(catalog.QuickSummary),
		}),
	}
}

func (h *Handler) Name() catalog.Action { return catalog.QuickSummary }

func (h *Handler) Handle(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var input Input
	if err := json.Unmarshal(payload, &input); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	return h.Execute(ctx, &input)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (string, error) {
	if strings.TrimSpace(input.Lead.Name) == "" {
		return "", apperrors.NewBadRequestError("lead.name is required")
	}

	leadJSON, _ := json.Marshal(input.Lead)

	entry, _ := catalog.Lookup(string(catalog.QuickSummary))
	raw, err := h.gateway.Complete(ctx, h.gateway.ModelFor(entry.Tier), systemPrompt, "Lead:\n"+string(leadJSON))
	if err != nil {
		return "", err
	}

	summary := llmjson.DecodeText(raw)
	h.logger.Debug("lead summarized", map[string]interface{}{
		"leadId": input.Lead.ID,
	})
	return summary, nil
}
