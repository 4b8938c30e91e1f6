package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"missioncopilot/internal/domain"
)

func TestParsePDF_GarbageInput(t *testing.T) {
	_, err := ParsePDF([]byte("this is not a pdf at all"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestParsePDF_TruncatedHeader(t *testing.T) {
	// Valid magic bytes but nothing behind them.
	_, err := ParsePDF([]byte("%PDF-1.7\n"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestParse_DispatchesUnknownKind(t *testing.T) {
	_, err := Parse([]byte("x"), domain.SourceKind("docx"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedKind)
}
