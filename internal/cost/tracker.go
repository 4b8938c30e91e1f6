// Package cost computes dollar estimates from token counts against a static
// per-model rate table. Rates are kept in integer hundredths of a cent per
// million tokens so the arithmetic stays exact; the dollar value is derived
// once per estimate and stored, never re-summed elsewhere.
package cost

// rate holds per-million-token prices in hundredths of a cent, so $2.50 per
// million tokens is stored as 25_000.
type rate struct {
	inputPerMTok  int64
	outputPerMTok int64
}

// unitsPerDollar converts the integer rate unit back to dollars.
const unitsPerDollar = 10_000

// rateTable lists known models. Prices mirror the provider's published
// per-million-token rates.
var rateTable = map[string]rate{
	"gpt-4o":                 {inputPerMTok: 25_000, outputPerMTok: 100_000},  // $2.50 / $10.00
	"gpt-4o-mini":            {inputPerMTok: 1_500, outputPerMTok: 6_000},     // $0.15 / $0.60
	"gpt-4-turbo":            {inputPerMTok: 100_000, outputPerMTok: 300_000}, // $10.00 / $30.00
	"gpt-3.5-turbo":          {inputPerMTok: 5_000, outputPerMTok: 15_000},    // $0.50 / $1.50
	"text-embedding-3-small": {inputPerMTok: 200, outputPerMTok: 0},           // $0.02
	"text-embedding-3-large": {inputPerMTok: 1_300, outputPerMTok: 0},         // $0.13
}

// Estimate returns the dollar cost for a call. Unknown models cost zero and
// report known=false so the caller can flag the mission metadata instead of
// silently inventing a price.
func Estimate(model string, inputTokens, outputTokens int) (costUSD float64, known bool) {
	r, ok := rateTable[model]
	if !ok {
		return 0, false
	}
	if inputTokens < 0 {
		inputTokens = 0
	}
	if outputTokens < 0 {
		outputTokens = 0
	}
	units := int64(inputTokens)*r.inputPerMTok + int64(outputTokens)*r.outputPerMTok
	return float64(units) / (unitsPerDollar * 1_000_000), true
}

// KnownModels lists the models with a published rate, for diagnostics.
func KnownModels() []string {
	models := make([]string, 0, len(rateTable))
	for m := range rateTable {
		models = append(models, m)
	}
	return models
}
