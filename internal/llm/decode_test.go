package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"missioncopilot/internal/domain"
)

func TestDecodeResponse_Valid(t *testing.T) {
	reply := `{
		"summary": "Reconnaissance of the northern corridor.",
		"entities": [
			{"type": "Location", "name": "northern corridor", "span": "para 1"},
			{"type": "unit", "name": "2nd battalion"}
		],
		"risk_level": "low",
		"explanation": "Routine activity, no hostile contact expected."
	}`

	result, err := DecodeResponse(reply)
	require.NoError(t, err)

	assert.Equal(t, "Reconnaissance of the northern corridor.", result.Summary)
	assert.Equal(t, domain.RiskLow, result.RiskLevel)
	assert.False(t, result.RiskCoerced)
	assert.Empty(t, result.Warnings)
	require.Len(t, result.Entities, 2)
	assert.Equal(t, "location", result.Entities[0].Type)
	assert.Equal(t, "para 1", result.Entities[0].Span)
}

func TestDecodeResponse_UppercaseRiskNormalized(t *testing.T) {
	reply := `{"summary": "s", "risk_level": "LOW", "explanation": "e"}`

	result, err := DecodeResponse(reply)
	require.NoError(t, err)

	assert.Equal(t, domain.RiskLow, result.RiskLevel)
	assert.False(t, result.RiskCoerced)
}

func TestDecodeResponse_UnknownRiskCoercedToMedium(t *testing.T) {
	reply := `{"summary": "s", "risk_level": "catastrophic", "explanation": "e"}`

	result, err := DecodeResponse(reply)
	require.NoError(t, err)

	assert.Equal(t, domain.RiskMedium, result.RiskLevel)
	assert.True(t, result.RiskCoerced)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `"catastrophic"`)
}

func TestDecodeResponse_ToleratesMarkdownFences(t *testing.T) {
	reply := "Here you go:\n```json\n{\"summary\": \"s\", \"risk_level\": \"high\", \"explanation\": \"e\"}\n```\n"

	result, err := DecodeResponse(reply)
	require.NoError(t, err)
	assert.Equal(t, domain.RiskHigh, result.RiskLevel)
}

func TestDecodeResponse_MissingFields(t *testing.T) {
	cases := map[string]string{
		"no summary":     `{"risk_level": "low", "explanation": "e"}`,
		"no explanation": `{"summary": "s", "risk_level": "low"}`,
		"no risk":        `{"summary": "s", "explanation": "e"}`,
		"not json":       `the mission looks fine to me`,
		"broken json":    `{"summary": "s",`,
	}
	for name, reply := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeResponse(reply)
			assert.Error(t, err)
		})
	}
}

func TestDecodeResponse_EntityCleanup(t *testing.T) {
	reply := `{
		"summary": "s",
		"entities": [
			{"type": "", "name": "Bridge 7"},
			{"type": "person", "name": "   "}
		],
		"risk_level": "medium",
		"explanation": "e"
	}`

	result, err := DecodeResponse(reply)
	require.NoError(t, err)

	// Nameless entities are dropped; a missing type defaults to unknown.
	require.Len(t, result.Entities, 1)
	assert.Equal(t, "unknown", result.Entities[0].Type)
	assert.Equal(t, "Bridge 7", result.Entities[0].Name)
}
