package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"missioncopilot/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row (13 columns).
var columns = []string{
	"Mission ID",
	"Filename",
	"Source Kind",
	"Status",
	"Ingested At",
	"Error Message",
	"Risk Level",
	"Summary",
	"Confidence",
	"Total Tokens",
	"Estimated Cost (USD)",
	"Model",
	"Analyzed At",
}

// Writer wraps csv.Writer for exporting mission analytics as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRows converts a batch of export rows and writes them.
func (w *Writer) WriteRows(rows []domain.ExportRow) error {
	for i := range rows {
		if err := w.csv.Write(rowToRecord(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// rowToRecord converts a single export row to a 13-element string slice.
// Analysis columns are left empty for missions that were never analyzed.
func rowToRecord(row *domain.ExportRow) []string {
	record := make([]string, len(columns))

	record[0] = row.MissionID.String()
	record[1] = row.Filename
	record[2] = string(row.SourceKind)
	record[3] = string(row.Status)
	record[4] = row.IngestedAt.Format(time.RFC3339)
	record[5] = row.ErrorMessage

	if row.RiskLevel != nil {
		record[6] = string(*row.RiskLevel)
	}
	if row.Summary != nil {
		record[7] = *row.Summary
	}
	if row.Confidence != nil {
		record[8] = strconv.FormatFloat(*row.Confidence, 'f', 2, 64)
	}
	if row.TotalTokens != nil {
		record[9] = strconv.Itoa(*row.TotalTokens)
	}
	if row.EstimatedCost != nil {
		record[10] = strconv.FormatFloat(*row.EstimatedCost, 'f', 6, 64)
	}
	if row.Model != nil {
		record[11] = *row.Model
	}
	if row.AnalyzedAt != nil {
		record[12] = row.AnalyzedAt.Format(time.RFC3339)
	}

	return record
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a label for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_label}_{YYYY-MM-DD}.{ext}
func BuildFilename(label, ext string) string {
	sanitized := SanitizeFilename(label)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
