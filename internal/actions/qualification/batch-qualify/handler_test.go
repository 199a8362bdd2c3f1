package batchqualify

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

// ==========================
// Core Functionality Tests
// ==========================

func TestExecute_Success(t *testing.T) {
	gw := &mockGateway{response: `[
		{"id": "L1", "qualificationCategory": "hot", "qualificationScore": 90, "qualificationReasoning": "strong"},
		{"id": "L2", "qualificationCategory": "cold", "qualificationScore": 20, "qualificationReasoning": "weak"}
	]`}
	handler := NewHandler(gw, logger.NewTestLogger(t))

	results, err := handler.Execute(context.Background(), &Input{
		Leads: []models.Lead{{ID: "L1", Name: "A"}, {ID: "L2", Name: "B"}},
		Rules: "prefer businesses with websites",
	})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "L1", results[0].ID)
	assert.Equal(t, 90.0, results[0].QualificationScore)
}

func TestExecute_EmptyLeads(t *testing.T) {
	gw := &mockGateway{}
	handler := NewHandler(gw, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{})

	require.Error(t, err)
	assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))
	assert.Zero(t, gw.calls)
}

func TestExecute_RejectsObjectResponse(t *testing.T) {
	// The contract is a top-level array; a wrapped object must not pass.
	gw := &mockGateway{response: `{"results": []}`}
	handler := NewHandler(gw, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{
		Leads: []models.Lead{{ID: "L1", Name: "A"}},
	})

	require.Error(t, err)
	assert.Equal(t, apperrors.KindMalformed, apperrors.KindOf(err))
}

// ==========================
// Merge Tests
// ==========================

func TestMerge(t *testing.T) {
	leads := []models.Lead{
		{ID: "L1", Name: "A"},
		{ID: "L2", Name: "B", QualificationCategory: "stale"},
	}
	results := []Result{
		{ID: "L1", QualificationCategory: "hot", QualificationScore: 88, QualificationReasoning: "looks great"},
		{ID: "L9", QualificationCategory: "orphan", QualificationScore: 10},
	}

	merged := Merge(leads, results)

	require.Len(t, merged, 2)

	// L1 picked up its result.
	assert.Equal(t, "hot", merged[0].QualificationCategory)
	assert.Equal(t, 88.0, merged[0].QualificationScore)
	assert.Equal(t, "looks great", merged[0].QualificationReasoning)

	// L2 had no result and is untouched; the orphan result L9 is dropped.
	assert.Equal(t, "stale", merged[1].QualificationCategory)
	assert.Zero(t, merged[1].QualificationScore)
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	leads := []models.Lead{{ID: "L1", Name: "A"}}
	results := []Result{{ID: "L1", QualificationScore: 50}}

	_ = Merge(leads, results)

	assert.Zero(t, leads[0].QualificationScore)
}
