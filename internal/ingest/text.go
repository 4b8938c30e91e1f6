package ingest

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"missioncopilot/internal/domain"
)

var (
	multiNewline = regexp.MustCompile(`\n{3,}`)
	spaceRun     = regexp.MustCompile(`[ \t]+`)
)

// ParseText passes free text through with trivial whitespace normalization.
func ParseText(raw []byte) (*ParseResult, error) {
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: input is not valid utf-8 text", domain.ErrUnsupportedFormat)
	}
	cleaned := cleanWhitespace(string(raw))
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty text input", domain.ErrUnsupportedFormat)
	}

	return &ParseResult{
		Text: cleaned,
		Metadata: domain.Metadata{
			"character_count": len(cleaned),
			"word_count":      len(strings.Fields(cleaned)),
			"line_count":      strings.Count(cleaned, "\n") + 1,
		},
	}, nil
}

func cleanWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = multiNewline.ReplaceAllString(s, "\n\n")
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
