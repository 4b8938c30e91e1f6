// Package confidence derives a heuristic quality score from surface signals
// of a structured extraction. The score is deterministic and auditable; it is
// explicitly NOT a calibrated probability, and every presentation of it
// carries that disclaimer.
package confidence

import "missioncopilot/internal/llm"

// Disclaimer accompanies the score wherever it is shown.
const Disclaimer = "heuristic score from output-quality signals, not a calibrated probability"

const (
	baseScore = 0.50
	// maxScore caps the heuristic: model output never earns full confidence.
	maxScore = 0.95
)

// Score computes the heuristic confidence for a structured result. It is a
// pure function of its input: the same result always yields the same score.
//
// Signals, each explicit and auditable:
//   - summary present and substantive
//   - explanation present
//   - entities extracted
//   - risk level taken verbatim from the model (coercion is penalized)
//   - agreement between entity count and summary length (many entities
//     backing a one-line summary reads as confabulation)
func Score(result *llm.StructuredResult) float64 {
	score := baseScore

	if len(result.Summary) > 50 {
		score += 0.10
	}
	if len(result.Summary) > 150 {
		score += 0.05
	}
	if result.Explanation != "" {
		score += 0.10
	}
	if len(result.Entities) > 0 {
		score += 0.10
	}
	if len(result.Entities) > 3 {
		score += 0.05
	}

	if result.RiskCoerced {
		score -= 0.15
	}
	// Entity/summary agreement: a terse summary with a crowd of entities.
	if len(result.Entities) > 5 && len(result.Summary) < 80 {
		score -= 0.10
	}

	if score < 0 {
		score = 0
	}
	if score > maxScore {
		score = maxScore
	}
	return score
}
