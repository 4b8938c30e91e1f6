package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"missioncopilot/internal/service"
)

// ReviewHandler handles analyst review endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Upsert handles PUT /api/v1/missions/:id/review
func (h *ReviewHandler) Upsert(c *gin.Context) {
	missionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid mission ID")
		return
	}

	var req struct {
		Notes    string `json:"notes"`
		Approved bool   `json:"approved"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "malformed request body")
		return
	}

	review, err := h.reviewService.Upsert(c.Request.Context(), &service.UpsertReviewInput{
		MissionID: missionID,
		Notes:     req.Notes,
		Approved:  req.Approved,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, review)
}

// GetByMission handles GET /api/v1/missions/:id/review
func (h *ReviewHandler) GetByMission(c *gin.Context) {
	missionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid mission ID")
		return
	}

	review, err := h.reviewService.GetByMission(c.Request.Context(), missionID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, review)
}

// Delete handles DELETE /api/v1/missions/:id/review
func (h *ReviewHandler) Delete(c *gin.Context) {
	missionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid mission ID")
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), missionID); err != nil {
		HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
