package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"missioncopilot/internal/domain"
)

func TestNormalize_MergesMetadata(t *testing.T) {
	parsed := &ParseResult{
		Text:     "alpha  bravo\n\n\n\ncharlie",
		Metadata: domain.Metadata{"row_count": 3},
	}

	doc := Normalize(parsed, domain.SourceKindCSV)

	assert.Equal(t, "alpha bravo\n\ncharlie", doc.Content)
	assert.Equal(t, "csv", doc.Metadata["source_kind"])
	assert.Equal(t, 3, doc.Metadata["row_count"])
	assert.Equal(t, len(doc.Content), doc.Metadata["content_length"])
	assert.Equal(t, 3, doc.Metadata["word_count"])
	_, truncated := doc.Metadata["truncated"]
	assert.False(t, truncated)
}

func TestNormalize_Deterministic(t *testing.T) {
	parsed := &ParseResult{Text: "the same  input\nevery time"}

	first := Normalize(parsed, domain.SourceKindText)
	second := Normalize(parsed, domain.SourceKindText)

	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, first.Metadata, second.Metadata)
}

func TestNormalizeWithLimit_Truncates(t *testing.T) {
	parsed := &ParseResult{Text: strings.Repeat("word ", 100)}

	doc := NormalizeWithLimit(parsed, domain.SourceKindText, 60)

	require.True(t, strings.HasSuffix(doc.Content, TruncationMarker))
	assert.Equal(t, true, doc.Metadata["truncated"])
	assert.Equal(t, 499, doc.Metadata["original_length"])
	assert.LessOrEqual(t, len(doc.Content), 60+len(TruncationMarker))

	// Length metadata reflects what was actually stored, not the input.
	assert.Equal(t, len(doc.Content), doc.Metadata["content_length"])
	assert.Equal(t, len(strings.Fields(doc.Content)), doc.Metadata["word_count"])
}

func TestNormalizeWithLimit_NeverSplitsRune(t *testing.T) {
	// Multi-byte runes straddling the bound must not be cut in half.
	parsed := &ParseResult{Text: strings.Repeat("é", 50)}

	doc := NormalizeWithLimit(parsed, domain.SourceKindText, 5)

	cut := strings.TrimSuffix(doc.Content, TruncationMarker)
	assert.True(t, len(cut) <= 5)
	assert.True(t, strings.HasPrefix(strings.Repeat("é", 50), cut))
}
