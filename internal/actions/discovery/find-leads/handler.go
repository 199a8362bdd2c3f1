package findleads

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"leadflow/internal/actions"
	apperrors "leadflow/internal/common/errors"
	"leadflow/internal/common/llmjson"
	"leadflow/internal/common/logger"
	"leadflow/internal/models"
	"leadflow/pkg/catalog"
)

const systemPrompt = "You are a local business research assistant. You enumerate real-sounding businesses matching a niche within a geographic area. Respond with JSON only, no prose, in the exact shape: {\"leads\": [{\"name\", \"industry\", \"location\", \"website\", \"phone\", \"email\", \"description\"}]}."

type Handler struct {
	config  *Config
	gateway actions.Completer
	logger  logger.Logger
}

func NewHandler(config *Config, gw actions.Completer, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		gateway: gw,
		logger: log.With(map[string]interface{}{
			"action": string(catalog.FindLeads),
		}),
	}
}

func (h *Handler) Name() catalog.Action { return catalog.FindLeads }

func (h *Handler) Handle(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var input Input
	if err := json.Unmarshal(payload, &input); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	return h.Execute(ctx, &input)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.Niche) == "" {
		return nil, apperrors.NewBadRequestError("niche is required")
	}
	count := input.Count
	if count <= 0 {
		count = h.config.DefaultCount
	}
	if count > h.config.MaxCount {
		count = h.config.MaxCount
	}

	entry, _ := catalog.Lookup(string(catalog.FindLeads))
	raw, err := h.gateway.Complete(ctx, h.gateway.ModelFor(entry.Tier), systemPrompt, h.buildPrompt(input, count))
	if err != nil {
		return nil, err
	}

	var parsed Output
	if err := llmjson.Decode(string(catalog.FindLeads), raw, entry.ResponseSchema, &parsed); err != nil {
		return nil, err
	}

	// Stamp each discovered lead: generated id, fresh lifecycle, source tag.
	for i := range parsed.Leads {
		parsed.Leads[i].ID = uuid.NewString()
		parsed.Leads[i].Status = models.LeadStatusNew
		parsed.Leads[i].LeadStatus = models.LeadStatusNew
		parsed.Leads[i].SourceType = models.SourceTypeGoogleMaps
		if parsed.Leads[i].Location == "" {
			parsed.Leads[i].Location = input.Location
		}
	}

	h.logger.Info("leads discovered", map[string]interface{}{
		"niche":    input.Niche,
		"location": input.Location,
		"count":    len(parsed.Leads),
	})

	return &parsed, nil
}

func (h *Handler) buildPrompt(input *Input, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Find %d businesses in the niche %q", count, input.Niche)
	if input.Location != "" {
		fmt.Fprintf(&b, " located in or around %q", input.Location)
	}
	if input.RadiusKm > 0 {
		fmt.Fprintf(&b, " within a %d km radius", input.RadiusKm)
	}
	b.WriteString(".\n")
	b.WriteString("For each business include name, industry, location, website, phone, email and a one-line description.\n")
	b.WriteString("Return only the JSON object.")
	return b.String()
}
