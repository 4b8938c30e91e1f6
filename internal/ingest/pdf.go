package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"missioncopilot/internal/domain"
)

// documentInfoKeys are the document-properties entries carried into mission
// metadata when the PDF declares them.
var documentInfoKeys = []string{"Title", "Author", "Subject", "Creator"}

// ParsePDF extracts the text layer of a PDF in page order. Pages are joined
// with an explicit page marker so downstream chunking keeps page context.
// A PDF with no extractable text (e.g. a pure scan) fails with
// ErrUnsupportedFormat rather than producing an empty mission.
func ParsePDF(raw []byte) (result *ParseResult, err error) {
	// The pdf package panics on some malformed inputs; treat those the same
	// as any other unextractable document.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: malformed pdf: %v", domain.ErrUnsupportedFormat, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedFormat, err)
	}

	pageCount := reader.NumPage()
	var parts []string
	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single damaged page is not fatal; the remaining pages may
			// still carry usable text.
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("[Page %d]\n%s", i, strings.TrimSpace(text)))
	}

	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: pdf has no text layer", domain.ErrUnsupportedFormat)
	}

	meta := domain.Metadata{"page_count": pageCount}
	if info := reader.Trailer().Key("Info"); !info.IsNull() {
		props := map[string]string{}
		for _, key := range documentInfoKeys {
			if v := info.Key(key); v.Kind() == pdf.String {
				if s := strings.TrimSpace(v.RawString()); s != "" {
					props[strings.ToLower(key)] = s
				}
			}
		}
		if len(props) > 0 {
			meta["document_properties"] = props
		}
	}

	return &ParseResult{
		Text:     strings.Join(parts, "\n\n"),
		Metadata: meta,
	}, nil
}
