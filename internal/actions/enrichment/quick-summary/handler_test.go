package quicksummary

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

func TestExecute_PlainTextSummary(t *testing.T) {
	gw := &mockGateway{response: `"Bean There roasts specialty coffee. Lead with their wholesale expansion."`}
	handler := NewHandler(gw, logger.NewTestLogger(t))

	summary, err := handler.Execute(context.Background(), &Input{Lead: models.Lead{Name: "Bean There"}})

	require.NoError(t, err)
	assert.Equal(t, "Bean There roasts specialty coffee. Lead with their wholesale expansion.", summary)
}

func TestExecute_MissingLeadName(t *testing.T) {
	gw := &mockGateway{}
	handler := NewHandler(gw, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{})

	require.Error(t, err)
	assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))
	assert.Zero(t, gw.calls)
}

func TestExecute_GatewayErrorPassthrough(t *testing.T) {
	gw := &mockGateway{err: apperrors.NewQuotaExceededError("")}
	handler := NewHandler(gw, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{Lead: models.Lead{Name: "Bean There"}})

	require.Error(t, err)
	assert.Equal(t, apperrors.KindQuotaExceeded, apperrors.KindOf(err))
}
