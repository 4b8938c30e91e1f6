package confidence

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"missioncopilot/internal/domain"
	"missioncopilot/internal/llm"
)

func solidResult() *llm.StructuredResult {
	return &llm.StructuredResult{
		Summary:     strings.Repeat("A detailed mission summary. ", 8),
		Explanation: "Because of observed cross-border activity.",
		Entities: []domain.Entity{
			{Type: "location", Name: "Bridge 7"},
			{Type: "unit", Name: "2nd battalion"},
			{Type: "person", Name: "Maj. Rios"},
			{Type: "date", Name: "2025-03-04"},
		},
		RiskLevel: domain.RiskHigh,
	}
}

func TestScore_CapsBelowOne(t *testing.T) {
	score := Score(solidResult())

	assert.InDelta(t, 0.90, score, 1e-9)
	assert.LessOrEqual(t, score, 0.95)
}

func TestScore_Deterministic(t *testing.T) {
	assert.Equal(t, Score(solidResult()), Score(solidResult()))
}

func TestScore_BarePassingResult(t *testing.T) {
	result := &llm.StructuredResult{
		Summary:     "Short.",
		Explanation: "e",
		RiskLevel:   domain.RiskLow,
	}

	// base 0.50 + explanation 0.10
	assert.InDelta(t, 0.60, Score(result), 1e-9)
}

func TestScore_CoercionPenalty(t *testing.T) {
	clean := solidResult()
	coerced := solidResult()
	coerced.RiskCoerced = true

	assert.InDelta(t, Score(clean)-0.15, Score(coerced), 1e-9)
}

func TestScore_EntityCrowdPenalty(t *testing.T) {
	result := &llm.StructuredResult{
		Summary:     "Terse.",
		Explanation: "e",
		RiskLevel:   domain.RiskMedium,
	}
	for i := 0; i < 8; i++ {
		result.Entities = append(result.Entities, domain.Entity{Type: "unit", Name: "x"})
	}

	// base 0.50 + explanation 0.10 + entities 0.10 + >3 entities 0.05
	// - crowd penalty 0.10
	assert.InDelta(t, 0.65, Score(result), 1e-9)
}

func TestScore_AlwaysInRange(t *testing.T) {
	results := []*llm.StructuredResult{
		{},
		{RiskCoerced: true},
		solidResult(),
	}
	for _, r := range results {
		score := Score(r)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 0.95)
	}
}
