package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"missioncopilot/internal/domain"
)

// rawResult mirrors the JSON shape the model is instructed to emit.
type rawResult struct {
	Summary   string `json:"summary"`
	Entities  []struct {
		Type string `json:"type"`
		Name string `json:"name"`
		Span string `json:"span"`
	} `json:"entities"`
	RiskLevel   string `json:"risk_level"`
	Explanation string `json:"explanation"`
}

// DecodeResponse validates a model reply into a StructuredResult. The decode
// is schema-strict: a reply missing summary, risk level, or explanation is a
// parse failure, never a partially populated result. The risk string is
// case-normalized onto the canonical values; anything unrecognized maps to
// medium with a recorded warning.
func DecodeResponse(reply string) (*StructuredResult, error) {
	payload := extractJSONObject(reply)
	if payload == "" {
		return nil, fmt.Errorf("no JSON object in model reply")
	}

	var raw rawResult
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("decoding model reply: %w", err)
	}

	raw.Summary = strings.TrimSpace(raw.Summary)
	raw.Explanation = strings.TrimSpace(raw.Explanation)
	if raw.Summary == "" {
		return nil, fmt.Errorf("model reply missing summary")
	}
	if raw.Explanation == "" {
		return nil, fmt.Errorf("model reply missing explanation")
	}
	if strings.TrimSpace(raw.RiskLevel) == "" {
		return nil, fmt.Errorf("model reply missing risk_level")
	}

	result := &StructuredResult{
		Summary:     raw.Summary,
		Explanation: raw.Explanation,
	}

	risk, coerced := domain.CoerceRiskLevel(raw.RiskLevel)
	result.RiskLevel = risk
	result.RiskCoerced = coerced
	if coerced {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("unrecognized risk level %q coerced to medium", raw.RiskLevel))
	}

	for _, e := range raw.Entities {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			continue
		}
		typ := strings.TrimSpace(e.Type)
		if typ == "" {
			typ = "unknown"
		}
		result.Entities = append(result.Entities, domain.Entity{
			Type: strings.ToLower(typ),
			Name: name,
			Span: strings.TrimSpace(e.Span),
		})
	}

	return result, nil
}

// extractJSONObject returns the outermost {...} block of a reply, tolerating
// markdown fences and prose around the object.
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
