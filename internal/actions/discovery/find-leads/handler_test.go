package findleads

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

// ==========================
// Test Helper Functions
// ==========================

type mockGateway struct {
	response   string
	err        error
	calls      int
	lastModel  string
	lastSystem string
	lastUser   string
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
	m.lastUser = userPrompt
	return m.response, m.err
}

func newTestHandler(t *testing.T, gw *mockGateway) *Handler {
	return NewHandler(LoadConfig(), gw, logger.NewTestLogger(t))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestExecute_StampsDiscoveredLeads(t *testing.T) {
	gw := &mockGateway{response: `{
		"leads": [
			{"name": "Bean There", "industry": "coffee", "website": "https://beanthere.example"},
			{"name": "Roast Haus", "industry": "coffee", "location": "Portland, OR"},
			{"name": "Drip City", "industry": "coffee"}
		]
	}`}
	handler := newTestHandler(t, gw)

	out, err := handler.Execute(context.Background(), &Input{
		Niche:    "coffee shops",
		Location: "Seattle, WA",
	})

	require.NoError(t, err)
	require.Len(t, out.Leads, 3)

	seen := map[string]bool{}
	for _, lead := range out.Leads {
		assert.NotEmpty(t, lead.ID)
		assert.False(t, seen[lead.ID], "lead ids must be unique")
		seen[lead.ID] = true
		assert.Equal(t, models.LeadStatusNew, lead.Status)
		assert.Equal(t, models.LeadStatusNew, lead.LeadStatus)
		assert.Equal(t, models.SourceTypeGoogleMaps, lead.SourceType)
	}

	// Location falls back to the search location only where the model left it blank.
	assert.Equal(t, "Seattle, WA", out.Leads[0].Location)
	assert.Equal(t, "Portland, OR", out.Leads[1].Location)
}

func TestExecute_UsesFastModel(t *testing.T) {
	gw := &mockGateway{response: `{"leads": []}`}
	handler := newTestHandler(t, gw)

	_, err := handler.Execute(context.Background(), &Input{Niche: "bakeries"})

	require.NoError(t, err)
	assert.Equal(t, 1, gw.calls)
	assert.Equal(t, "fast-model", gw.lastModel)
	assert.Contains(t, gw.lastUser, "bakeries")
}

// ==========================
// Validation Tests
// ==========================

func TestExecute_MissingNiche(t *testing.T) {
	gw := &mockGateway{}
	handler := newTestHandler(t, gw)

	_, err := handler.Execute(context.Background(), &Input{Location: "Seattle"})

	require.Error(t, err)
	assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))
	assert.Zero(t, gw.calls, "validation failures must not reach the gateway")
}

func TestExecute_CountClamping(t *testing.T) {
	tests := []struct {
		name          string
		count         int
		expectedInMsg string
	}{
		{name: "default applied", count: 0, expectedInMsg: "Find 10 businesses"},
		{name: "cap applied", count: 500, expectedInMsg: "Find 25 businesses"},
		{name: "explicit kept", count: 5, expectedInMsg: "Find 5 businesses"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &mockGateway{response: `{"leads": []}`}
			handler := newTestHandler(t, gw)

			_, err := handler.Execute(context.Background(), &Input{Niche: "gyms", Count: tt.count})

			require.NoError(t, err)
			assert.Contains(t, gw.lastUser, tt.expectedInMsg)
		})
	}
}

// ==========================
// Failure Propagation Tests
// ==========================

func TestExecute_MalformedResponse(t *testing.T) {
	gw := &mockGateway{response: `{"leads": [{"industry": "no name here"}]}`}
	handler := newTestHandler(t, gw)

	_, err := handler.Execute(context.Background(), &Input{Niche: "gyms"})

	require.Error(t, err)
	assert.Equal(t, apperrors.KindMalformed, apperrors.KindOf(err))
}

func TestExecute_GatewayErrorPassthrough(t *testing.T) {
	gw := &mockGateway{err: apperrors.NewRateLimitedError("slow down")}
	handler := newTestHandler(t, gw)

	_, err := handler.Execute(context.Background(), &Input{Niche: "gyms"})

	require.Error(t, err)
	assert.Equal(t, apperrors.KindRateLimited, apperrors.KindOf(err))
}

// ==========================
// Dispatch Tests
// ==========================

func TestHandle_BadPayload(t *testing.T) {
	handler := newTestHandler(t, &mockGateway{})

	_, err := handler.Handle(context.Background(), []byte(`{"niche": 42}`))

	require.Error(t, err)
	assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))
}
