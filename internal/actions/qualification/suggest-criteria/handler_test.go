package suggestcriteria

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "leadflow/internal/common/errors"
	"leadflow/internal/common/logger"
	"leadflow/pkg/catalog"
)

type mockGateway struct {
	response string
	err      error
	calls    int
}

func (m *mockGateway) ModelFor(tier catalog.ModelTier) string {
	if tier == catalog.TierDeep {
		return "deep-model"
	}
	return "fast-model"
}

func (m *mockGateway) Complete(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	m.calls++
	return m.response, m.err
}

func TestExecute_Success(t *testing.T) {
	gw := &mockGateway{response: `{
		"rules": [
			"Has a working website",
			"More than 5 employees",
			"Located within the service area",
			"No existing vendor listed",
			"Industry matches the offer"
		],
		"description": "Small local businesses actively investing in their storefront."
	}`}
	handler := NewHandler(gw, logger.NewTestLogger(t))

	out, err := handler.Execute(context.Background(), &Input{
		Business: "commercial cleaning services",
		Niche:    "dental clinics",
	})

	require.NoError(t, err)
	assert.Len(t, out.Rules, 5)
	assert.NotEmpty(t, out.Description)
}

func TestExecute_MissingBusiness(t *testing.T) {
	gw := &mockGateway{}
	handler := NewHandler(gw, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{Niche: "dental clinics"})

	require.Error(t, err)
	assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))
	assert.Zero(t, gw.calls)
}

func TestExecute_EmptyRulesRejected(t *testing.T) {
	gw := &mockGateway{response: `{"rules": [], "description": "d"}`}
	handler := NewHandler(gw, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{Business: "cleaning"})

	require.Error(t, err)
	assert.Equal(t, apperrors.KindMalformed, apperrors.KindOf(err))
}
