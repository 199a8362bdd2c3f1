// Package quickvalidate returns a one-sentence quality verdict on a lead.
// The response is plain text, not a structured document.
package quickvalidate

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

const systemPrompt = "You are a sales assistant. Give a single-sentence verdict on whether this business lead looks worth pursuing. Reply with the sentence only."

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
			"action": string(catalog.QuickValidate),
		}),
	}
}

func (h *Handler) Name() catalog.Action { return catalog.QuickValidate }

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

	entry, _ := catalog.Lookup(string(catalog.QuickValidate))
	raw, err := h.gateway.Complete(ctx, h.gateway.ModelFor(entry.Tier), systemPrompt, "Lead:\n"+string(leadJSON))
	if err != nil {
		return "", err
	}

	verdict := llmjson.DecodeText(raw)
	h.logger.Debug("lead validated", map[string]interface{}{
		"leadId": input.Lead.ID,
	})
	return verdict, nil
}
