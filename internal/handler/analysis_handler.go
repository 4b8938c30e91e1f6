package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"missioncopilot/internal/service"
)

// AnalysisHandler handles analysis trigger and result endpoints.
type AnalysisHandler struct {
	analysisService service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// Analyze handles POST /api/v1/missions/:id/analyze
// The call blocks until the analysis completes; use_rag defaults to true.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	missionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid mission ID")
		return
	}

	var req struct {
		UseRAG *bool `json:"use_rag"`
	}
	// An empty body means defaults.
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "malformed request body")
		return
	}
	useRAG := true
	if req.UseRAG != nil {
		useRAG = *req.UseRAG
	}

	result, err := h.analysisService.Analyze(c.Request.Context(), missionID, useRAG)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// Latest handles GET /api/v1/missions/:id/analysis
func (h *AnalysisHandler) Latest(c *gin.Context) {
	missionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid mission ID")
		return
	}

	result, err := h.analysisService.Latest(c.Request.Context(), missionID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// History handles GET /api/v1/missions/:id/analysis/history
func (h *AnalysisHandler) History(c *gin.Context) {
	missionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid mission ID")
		return
	}

	results, err := h.analysisService.History(c.Request.Context(), missionID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, results)
}
