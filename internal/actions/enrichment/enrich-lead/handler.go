package enrichlead

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

const systemPrompt = "You are a deep company research analyst. Research the given business: leadership team, revenue history, recent projects, main competitors, technology stack and contact channels. Respond with JSON only: {\"summary\", \"enrichedData\": {\"contactName\", \"leadership\": [], \"revenueHistory\", \"projects\": [], \"competitors\": [], \"techStack\": [], \"contactChannels\": []}, \"suggestions\": []}."

type Handler struct {
	gateway actions.Completer
	logger  logger.Logger
}

func NewHandler(gw actions.Completer, log logger.Logger) *Handler {
	return &Handler{
		gateway: gw,
		logger: log.With(map[string]interface{}{
			"action": string(catalog.EnrichLead),
		}),
	}
}

func (h *Handler) Name() catalog.Action { return catalog.EnrichLead }

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

	entry, _ := catalog.Lookup(string(catalog.EnrichLead))
	raw, err := h.gateway.Complete(ctx, h.gateway.ModelFor(entry.Tier), systemPrompt, "Research this company in depth:\n"+string(leadJSON))
	if err != nil {
		return nil, err
	}

	var parsed rawResult
	if err := llmjson.Decode(string(catalog.EnrichLead), raw, entry.ResponseSchema, &parsed); err != nil {
		return nil, err
	}

	if parsed.EnrichedData == nil {
		parsed.EnrichedData = map[string]interface{}{}
	}
	// Enrichment always moves the lead to analyzed, whatever the model said.
	parsed.EnrichedData["status"] = models.LeadStatusAnalyzed
	parsed.EnrichedData["leadStatus"] = models.LeadStatusAnalyzed

	if parsed.Suggestions == nil {
		parsed.Suggestions = []string{}
	}

	h.logger.Info("lead enriched", map[string]interface{}{
		"leadId":      input.Lead.ID,
		"suggestions": len(parsed.Suggestions),
	})

	return &Output{
		Summary:      parsed.Summary,
		PainPoints:   []string{},
		Strategy:     "",
		Sources:      []string{},
		EnrichedData: parsed.EnrichedData,
		Suggestions:  parsed.Suggestions,
	}, nil
}
