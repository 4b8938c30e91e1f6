package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"missioncopilot/internal/domain"
)

const (
	missionsSheet = "Missions"
	summarySheet  = "Summary"
)

// WriteXLSX writes an analytics workbook with a mission sheet and a summary
// sheet to w.
func WriteXLSX(w io.Writer, rows []domain.ExportRow, summary *domain.StatsSummary, dist map[domain.RiskLevel]int) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", missionsSheet)
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("xlsx export: %w", err)
	}

	if err := writeMissionsSheet(f, rows); err != nil {
		return err
	}
	if err := writeSummarySheet(f, summary, dist); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx export: %w", err)
	}
	return nil
}

func writeMissionsSheet(f *excelize.File, rows []domain.ExportRow) error {
	for i, name := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("xlsx export: %w", err)
		}
		if err := f.SetCellValue(missionsSheet, cell, name); err != nil {
			return fmt.Errorf("xlsx export: %w", err)
		}
	}

	for i := range rows {
		record := rowToRecord(&rows[i])
		for j, value := range record {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return fmt.Errorf("xlsx export: %w", err)
			}
			if err := f.SetCellValue(missionsSheet, cell, value); err != nil {
				return fmt.Errorf("xlsx export: %w", err)
			}
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, summary *domain.StatsSummary, dist map[domain.RiskLevel]int) error {
	lines := [][2]any{
		{"Generated At", time.Now().Format(time.RFC3339)},
		{"Total Missions", summary.TotalMissions},
		{"Analyzed Missions", summary.AnalyzedMissions},
		{"Error Missions", summary.ErrorMissions},
		{"Total Analyses", summary.TotalAnalyses},
		{"Total Tokens", summary.TotalTokens},
		{"Total Cost (USD)", summary.TotalCost},
		{"Average Confidence", summary.AvgConfidence},
	}
	for _, level := range []domain.RiskLevel{
		domain.RiskLow, domain.RiskMedium, domain.RiskHigh, domain.RiskCritical,
	} {
		lines = append(lines, [2]any{fmt.Sprintf("Risk %s", level), dist[level]})
	}

	for i, line := range lines {
		row := i + 1
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), line[0]); err != nil {
			return fmt.Errorf("xlsx export: %w", err)
		}
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), line[1]); err != nil {
			return fmt.Errorf("xlsx export: %w", err)
		}
	}
	return nil
}
