package verifycontact

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

const emailSystemPrompt = "You are an email deliverability analyst. Assess the given address: syntax, domain plausibility, role-account vs personal, disposable-domain risk. Respond with JSON only: {\"valid\": bool, \"riskScore\": 0-100, \"classification\", \"technicalDetails\": {}, \"enrichedData\": {}}."

const phoneSystemPrompt = "You are a phone number verification analyst. Assess the given number: format validity, likely region and carrier class, landline vs mobile vs VoIP. Respond with JSON only: {\"valid\": bool, \"riskScore\": 0-100, \"classification\", \"technicalDetails\": {}, \"enrichedData\": {}}."

type Handler struct {
	gateway actions.Completer
	logger  logger.Logger
}

func NewHandler(gw actions.Completer, log logger.Logger) *Handler {
	return &Handler{
		gateway: gw,
		logger: log.With(map[string]interface{}{
			"action": string(catalog.VerifyContact),
		}),
	}
}

func (h *Handler) Name() catalog.Action { return catalog.VerifyContact }

func (h *Handler) Handle(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var input Input
	if err := json.Unmarshal(payload, &input); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	return h.Execute(ctx, &input)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (Output, error) {
	if strings.TrimSpace(input.Input) == "" {
		return nil, apperrors.NewBadRequestError("input is required")
	}

	var systemPrompt, noun string
	switch input.Type {
	case TypeEmail:
		systemPrompt, noun = emailSystemPrompt, "email address"
	case TypePhone:
		systemPrompt, noun = phoneSystemPrompt, "phone number"
	default:
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("type must be %q or %q", TypeEmail, TypePhone))
	}

	entry, _ := catalog.Lookup(string(catalog.VerifyContact))
	raw, err := h.gateway.Complete(ctx, h.gateway.ModelFor(entry.Tier), systemPrompt,
		fmt.Sprintf("Verify this %s: %s", noun, input.Input))
	if err != nil {
		return nil, err
	}

	var report map[string]interface{}
	if err := llmjson.Decode(string(catalog.VerifyContact), raw, entry.ResponseSchema, &report); err != nil {
		return nil, err
	}

	// Re-attach what was verified so the report is self-describing.
	report["input"] = input.Input
	report["type"] = input.Type

	h.logger.Info("contact verified", map[string]interface{}{
		"type": input.Type,
	})

	return Output(report), nil
}
