package ingest

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"missioncopilot/internal/domain"
)

const (
	// typeSampleRows caps how many data rows feed column type inference.
	typeSampleRows = 50
	// renderedRowCap caps how many rows appear in the canonical text.
	renderedRowCap = 50
)

var delimiterCandidates = []rune{',', ';', '\t', '|'}

var dateLayouts = []string{
	"2006-01-02", "02/01/2006", "01/02/2006", "2006/01/02",
	time.RFC3339, "02-Jan-2006",
}

// ParseCSV auto-detects the delimiter and header row, infers column types by
// majority vote over a bounded sample, and renders the table as readable text
// rather than passing raw CSV bytes downstream.
func ParseCSV(raw []byte) (*ParseResult, error) {
	content := string(raw)
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: empty csv input", domain.ErrUnsupportedFormat)
	}

	delim := sniffDelimiter(content)
	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading csv: %v", domain.ErrUnsupportedFormat, err)
	}

	// Drop fully empty rows.
	var rows [][]string
	for _, rec := range records {
		if rowHasContent(rec) {
			rows = append(rows, rec)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: csv contains no data", domain.ErrUnsupportedFormat)
	}

	headers, dataRows := splitHeader(rows)
	types := inferColumnTypes(headers, dataRows)

	meta := domain.Metadata{
		"delimiter":    string(delim),
		"columns":      headers,
		"column_count": len(headers),
		"row_count":    len(dataRows),
		"column_types": types,
	}

	return &ParseResult{
		Text:     renderTable(headers, dataRows, delim),
		Metadata: meta,
	}, nil
}

// sniffDelimiter picks the candidate delimiter occurring most often in the
// first line. Comma wins ties via candidate order.
func sniffDelimiter(content string) rune {
	firstLine := content
	if idx := strings.IndexByte(content, '\n'); idx >= 0 {
		firstLine = content[:idx]
	}
	best := ','
	bestCount := 0
	for _, cand := range delimiterCandidates {
		if n := strings.Count(firstLine, string(cand)); n > bestCount {
			best = cand
			bestCount = n
		}
	}
	return best
}

func rowHasContent(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return true
		}
	}
	return false
}

// splitHeader treats the first row as the header when none of its cells look
// like numbers or dates; otherwise synthetic column names are produced so no
// data row is lost.
func splitHeader(rows [][]string) (headers []string, dataRows [][]string) {
	first := rows[0]
	headerLike := true
	for _, cell := range first {
		v := strings.TrimSpace(cell)
		if v == "" {
			continue
		}
		if cellType(v) != "string" {
			headerLike = false
			break
		}
	}
	if headerLike && len(rows) > 1 {
		return trimAll(first), rows[1:]
	}
	headers = make([]string, len(first))
	for i := range first {
		headers[i] = "column_" + strconv.Itoa(i+1)
	}
	return headers, rows
}

func trimAll(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}

func cellType(v string) string {
	if _, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64); err == nil {
		return "number"
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return "date"
		}
	}
	return "string"
}

// inferColumnTypes runs a majority vote per column over at most
// typeSampleRows data rows.
func inferColumnTypes(headers []string, dataRows [][]string) map[string]string {
	types := make(map[string]string, len(headers))
	sample := dataRows
	if len(sample) > typeSampleRows {
		sample = sample[:typeSampleRows]
	}
	for col, name := range headers {
		counts := map[string]int{}
		for _, row := range sample {
			if col >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[col])
			if v == "" {
				continue
			}
			counts[cellType(v)]++
		}
		winner := "string"
		best := 0
		for _, t := range []string{"string", "number", "date"} {
			if counts[t] > best {
				winner = t
				best = counts[t]
			}
		}
		types[name] = winner
	}
	return types
}

func renderTable(headers []string, dataRows [][]string, delim rune) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CSV data: %d rows, %d columns (delimiter %q)\n", len(dataRows), len(headers), delim)
	fmt.Fprintf(&b, "Columns: %s\n\n", strings.Join(headers, ", "))

	limit := len(dataRows)
	if limit > renderedRowCap {
		limit = renderedRowCap
	}
	for i := 0; i < limit; i++ {
		row := dataRows[i]
		cells := make([]string, 0, len(row))
		for j, cell := range row {
			name := "column_" + strconv.Itoa(j+1)
			if j < len(headers) {
				name = headers[j]
			}
			cells = append(cells, name+": "+strings.TrimSpace(cell))
		}
		fmt.Fprintf(&b, "Row %d: %s\n", i+1, strings.Join(cells, " | "))
	}
	if len(dataRows) > limit {
		fmt.Fprintf(&b, "... and %d more rows\n", len(dataRows)-limit)
	}
	return strings.TrimRight(b.String(), "\n")
}
