package verifycontact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "leadflow/internal/common/errors"
	"leadflow/internal/common/logger"
	"leadflow/pkg/catalog"
)

// ==========================
// Test Helper Functions
// ==========================

type mockGateway struct {
	response   string
	err        error
	calls      int
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
	m.lastSystem = systemPrompt
	return m.response, m.err
}

const validReport = `{"valid": true, "riskScore": 12, "classification": "personal"}`

// ==========================
// Core Functionality Tests
// ==========================

func TestExecute_ReattachesInputAndType(t *testing.T) {
	gw := &mockGateway{response: validReport}
	handler := NewHandler(gw, logger.NewTestLogger(t))

	out, err := handler.Execute(context.Background(), &Input{
		Input: "dana@beanthere.example",
		Type:  TypeEmail,
	})

	require.NoError(t, err)
	assert.Equal(t, true, out["valid"])
	assert.Equal(t, 12.0, out["riskScore"])
	assert.Equal(t, "dana@beanthere.example", out["input"])
	assert.Equal(t, TypeEmail, out["type"])
}

func TestExecute_PromptBranchPerType(t *testing.T) {
	tests := []struct {
		name        string
		contactType string
		wantInSys   string
	}{
		{name: "email branch", contactType: TypeEmail, wantInSys: "email deliverability"},
		{name: "phone branch", contactType: TypePhone, wantInSys: "phone number verification"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &mockGateway{response: validReport}
			handler := NewHandler(gw, logger.NewTestLogger(t))

			_, err := handler.Execute(context.Background(), &Input{Input: "x", Type: tt.contactType})

			require.NoError(t, err)
			assert.Contains(t, gw.lastSystem, tt.wantInSys)
		})
	}
}

// ==========================
// Validation Tests
// ==========================

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		input Input
	}{
		{name: "empty input", input: Input{Type: TypeEmail}},
		{name: "unknown type", input: Input{Input: "x", Type: "fax"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &mockGateway{}
			handler := NewHandler(gw, logger.NewTestLogger(t))

			_, err := handler.Execute(context.Background(), &tt.input)

			require.Error(t, err)
			assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))
			assert.Zero(t, gw.calls)
		})
	}
}

func TestExecute_MissingRequiredFields(t *testing.T) {
	gw := &mockGateway{response: `{"valid": true}`}
	handler := NewHandler(gw, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{Input: "x", Type: TypePhone})

	require.Error(t, err)
	assert.Equal(t, apperrors.KindMalformed, apperrors.KindOf(err))
}
