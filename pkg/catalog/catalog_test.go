package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	entry, ok := Lookup("qualifyLead")
	require.True(t, ok)
	assert.Equal(t, QualifyLead, entry.Action)
	assert.Equal(t, TierFast, entry.Tier)
	assert.NotEmpty(t, entry.ResponseSchema)

	_, ok = Lookup("frobnicate")
	assert.False(t, ok)

	// Action names are case-sensitive.
	_, ok = Lookup("QualifyLead")
	assert.False(t, ok)
}

func TestActions_ClosedSet(t *testing.T) {
	assert.Len(t, Actions(), 11)
}

func TestDeepTierActions(t *testing.T) {
	// Only the two research-heavy actions pay for the deep model.
	for action, entry := range entries {
		expected := TierFast
		if action == EnrichLead || action == CompareLeads {
			expected = TierDeep
		}
		assert.Equal(t, expected, entry.Tier, "tier for %s", action)
	}
}

func TestPlainTextActionsHaveNoSchema(t *testing.T) {
	for action, entry := range entries {
		if entry.PlainText {
			assert.Empty(t, entry.ResponseSchema, "plain-text action %s must not carry a schema", action)
		} else {
			assert.NotEmpty(t, entry.ResponseSchema, "structured action %s must carry a schema", action)
		}
	}
}

func TestSchemasAreValidJSON(t *testing.T) {
	for action, entry := range entries {
		if entry.ResponseSchema == "" {
			continue
		}
		var doc map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(entry.ResponseSchema), &doc), "schema for %s", action)
	}
}
