package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"missioncopilot/internal/export"
	"missioncopilot/internal/service"
)

// StatsHandler handles analytics and export endpoints.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Summary handles GET /api/v1/stats/summary
func (h *StatsHandler) Summary(c *gin.Context) {
	summary, err := h.statsService.Summary(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, summary)
}

// RiskDistribution handles GET /api/v1/stats/risk-distribution
func (h *StatsHandler) RiskDistribution(c *gin.Context) {
	dist, err := h.statsService.RiskDistribution(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, dist)
}

// HighRisk handles GET /api/v1/stats/high-risk
func (h *StatsHandler) HighRisk(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	missions, err := h.statsService.HighRiskMissions(c.Request.Context(), limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, missions)
}

// Trends handles GET /api/v1/stats/trends
func (h *StatsHandler) Trends(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	report, err := h.statsService.Trends(c.Request.Context(), days)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// EntityBreakdown handles GET /api/v1/stats/entity-breakdown
func (h *StatsHandler) EntityBreakdown(c *gin.Context) {
	breakdown, err := h.statsService.EntityBreakdown(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, breakdown)
}

// ReviewStatus handles GET /api/v1/stats/review-status
func (h *StatsHandler) ReviewStatus(c *gin.Context) {
	counts, err := h.statsService.ReviewStatus(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, counts)
}

// ExportCSV handles GET /api/v1/stats/export/csv
func (h *StatsHandler) ExportCSV(c *gin.Context) {
	rows, err := h.statsService.ExportRows(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("missions", "csv")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	// BOM first so Excel detects UTF-8.
	if _, err := c.Writer.Write(export.BOM); err != nil {
		return
	}
	w := export.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteRows(rows); err != nil {
		return
	}
	w.Flush()
}

// ExportXLSX handles GET /api/v1/stats/export/xlsx
func (h *StatsHandler) ExportXLSX(c *gin.Context) {
	ctx := c.Request.Context()

	rows, err := h.statsService.ExportRows(ctx)
	if err != nil {
		HandleError(c, err)
		return
	}
	summary, err := h.statsService.Summary(ctx)
	if err != nil {
		HandleError(c, err)
		return
	}
	dist, err := h.statsService.RiskDistribution(ctx)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("missions", "xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if err := export.WriteXLSX(c.Writer, rows, summary, dist); err != nil {
		// Headers are already sent; nothing useful left to report.
		return
	}
}
