package compareleads

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "leadflow/internal/common/errors"
	"leadflow/internal/common/logger"
	"leadflow/internal/models"
	"leadflow/pkg/catalog"
)

type mockGateway struct {
	response   string
	err        error
	calls      int
	lastModel  string
	lastSystem string
}

func (m *mockGateway) ModelFor(tier catalog.ModelTier) string {
	if tier == catalog.TierDeep {
		return "deep-model"
	}
	return "fast-model"
}

func (m *mockGateway) Complete(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	m.calls++
	m.lastModel = model
	m.lastSystem = systemPrompt
	return m.response, m.err
}

func twoLeads() []models.Lead {
	return []models.Lead{
		{ID: "L1", Name: "Bean There"},
		{ID: "L2", Name: "Roast Haus"},
	}
}

func TestExecute_Success(t *testing.T) {
	gw := &mockGateway{response: `{
		"winnerId": "L2",
		"recommendation": "Reach out this week.",
		"reasoning": "Larger team, active site.",
		"comparisonPoints": [{"aspect": "web presence", "winner": "L2", "detail": "fresh content"}]
	}`}
	handler := NewHandler(gw, logger.NewTestLogger(t))

	out, err := handler.Execute(context.Background(), &Input{Leads: twoLeads()})

	require.NoError(t, err)
	assert.Equal(t, "L2", out.WinnerID)
	assert.Equal(t, "Reach out this week.", out.Recommendation)
	require.Len(t, out.ComparisonPoints, 1)
	assert.Equal(t, "web presence", out.ComparisonPoints[0].Aspect)

	// Comparison is a deep-model action.
	assert.Equal(t, "deep-model", gw.lastModel)
}

func TestExecute_PersonaInSystemPrompt(t *testing.T) {
	tests := []struct {
		name     string
		persona  string
		expected string
	}{
		{name: "default persona", persona: "", expected: defaultPersona},
		{name: "custom persona", persona: "a skeptical CFO", expected: "a skeptical CFO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &mockGateway{response: `{"winnerId": "L1", "recommendation": "r", "reasoning": "r"}`}
			handler := NewHandler(gw, logger.NewTestLogger(t))

			_, err := handler.Execute(context.Background(), &Input{Leads: twoLeads(), Persona: tt.persona})

			require.NoError(t, err)
			assert.Contains(t, gw.lastSystem, tt.expected)
		})
	}
}

func TestExecute_RequiresTwoLeads(t *testing.T) {
	gw := &mockGateway{}
	handler := NewHandler(gw, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{Leads: []models.Lead{{ID: "L1", Name: "A"}}})

	require.Error(t, err)
	assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))
	assert.Zero(t, gw.calls)
}

func TestExecute_MissingWinnerRejected(t *testing.T) {
	gw := &mockGateway{response: `{"recommendation": "r", "reasoning": "r"}`}
	handler := NewHandler(gw, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{Leads: twoLeads()})

	require.Error(t, err)
	assert.Equal(t, apperrors.KindMalformed, apperrors.KindOf(err))
}
