package llm

import "missioncopilot/internal/domain"

// StructuredResult is the validated, typed output of one extraction call.
// Every field is populated or the call fails; callers never see a partially
// decoded result.
type StructuredResult struct {
	Summary     string
	Entities    []domain.Entity
	RiskLevel   domain.RiskLevel
	Explanation string

	// RiskCoerced records that the model's risk string was not one of the
	// canonical values and was mapped to medium. The confidence heuristic
	// penalizes this.
	RiskCoerced bool
	Warnings    []string

	InputTokens  int
	OutputTokens int
	Model        string
}
