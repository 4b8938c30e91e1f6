package ingest

import (
	"fmt"

	"missioncopilot/internal/domain"
)

// ParseResult carries raw extracted text plus format-specific metadata out of
// a parser. Parsers are pure transforms: no I/O beyond the input bytes, and
// every failure is a typed error the ingestion boundary can record.
type ParseResult struct {
	Text     string
	Metadata domain.Metadata
}

// Parse dispatches to the format-specific parser for the declared kind.
func Parse(raw []byte, kind domain.SourceKind) (*ParseResult, error) {
	switch kind {
	case domain.SourceKindPDF:
		return ParsePDF(raw)
	case domain.SourceKindCSV:
		return ParseCSV(raw)
	case domain.SourceKindText:
		return ParseText(raw)
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedKind, kind)
}
