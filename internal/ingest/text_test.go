package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"missioncopilot/internal/domain"
)

func TestParseText_CleansWhitespace(t *testing.T) {
	raw := []byte("Operation  Falcon\r\n\r\n\r\n\r\nPhase one:\tsecure the bridge.  ")

	result, err := ParseText(raw)
	require.NoError(t, err)

	assert.Equal(t, "Operation Falcon\n\nPhase one: secure the bridge.", result.Text)
	assert.Equal(t, 7, result.Metadata["word_count"])
	assert.Equal(t, 3, result.Metadata["line_count"])
}

func TestParseText_InvalidUTF8(t *testing.T) {
	_, err := ParseText([]byte{0xff, 0xfe, 0x00})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestParseText_Empty(t *testing.T) {
	_, err := ParseText([]byte("   \n\t "))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}
