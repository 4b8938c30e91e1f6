package ingest

import (
	"strings"
	"unicode/utf8"

	"missioncopilot/internal/domain"
)

// DefaultMaxContentLength bounds the canonical text of a mission. Inputs over
// the bound are truncated with an explicit marker rather than silently cut.
const DefaultMaxContentLength = 100_000

// TruncationMarker is appended to canonical text that was cut at the length
// bound.
const TruncationMarker = "\n[truncated]"

// CanonicalDocument is the normalized representation every source kind
// reduces to.
type CanonicalDocument struct {
	Content  string
	Metadata domain.Metadata
}

// Normalize converts any parser output into the canonical document form:
// whitespace collapsed, length bounded, parser metadata merged. It is
// deterministic: the same parse result always yields the same document.
func Normalize(parsed *ParseResult, kind domain.SourceKind) CanonicalDocument {
	return NormalizeWithLimit(parsed, kind, DefaultMaxContentLength)
}

// NormalizeWithLimit is Normalize with an explicit content length bound.
func NormalizeWithLimit(parsed *ParseResult, kind domain.SourceKind, maxLen int) CanonicalDocument {
	content := cleanWhitespace(parsed.Text)

	meta := domain.Metadata{"source_kind": string(kind)}
	for k, v := range parsed.Metadata {
		meta[k] = v
	}
	if maxLen > 0 && len(content) > maxLen {
		meta["truncated"] = true
		meta["original_length"] = len(content)
		cut := maxLen
		// Never split a multi-byte rune at the bound.
		for cut > 0 && !utf8.RuneStart(content[cut]) {
			cut--
		}
		content = content[:cut] + TruncationMarker
	}

	// Length and word count describe the stored content, so they are taken
	// after any truncation; original_length preserves the pre-cut size.
	meta["content_length"] = len(content)
	meta["word_count"] = len(strings.Fields(content))

	return CanonicalDocument{Content: content, Metadata: meta}
}
