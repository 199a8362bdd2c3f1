package generateemail

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

const systemPrompt = "You are an outreach copywriter. Draft a short, personalized cold email to the given lead. Respond with JSON only: {\"subject\", \"body\"}. No placeholders left unfilled."

type Handler struct {
	gateway actions.Completer
	logger  logger.Logger
}

func NewHandler(gw actions.Completer, log logger.Logger) *Handler {
	return &Handler{
		gateway: gw,
		logger: log.With(map[string]interface{}{
			"action": string(catalog.GenerateEmail),
		}),
	}
}

func (h *Handler) Name() catalog.Action { return catalog.GenerateEmail }

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
	b.WriteString("Write outreach for this lead:\n")
	b.Write(leadJSON)
	b.WriteString("\n")
	if input.Offer != "" {
		fmt.Fprintf(&b, "What the sender offers: %s\n", input.Offer)
	}
	if input.Tone != "" {
		fmt.Fprintf(&b, "Tone: %s\n", input.Tone)
	}
	if input.SenderName != "" {
		fmt.Fprintf(&b, "Sign off as: %s\n", input.SenderName)
	}
	b.WriteString("Keep the body under 120 words.")

	entry, _ := catalog.Lookup(string(catalog.GenerateEmail))
	raw, err := h.gateway.Complete(ctx, h.gateway.ModelFor(entry.Tier), systemPrompt, b.String())
	if err != nil {
		return nil, err
	}

	var parsed Output
	if err := llmjson.Decode(string(catalog.GenerateEmail), raw, entry.ResponseSchema, &parsed); err != nil {
		return nil, err
	}

	h.logger.Info("email generated", map[string]interface{}{
		"leadId": input.Lead.ID,
	})

	return &parsed, nil
}
