package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"missioncopilot/internal/domain"
	"missioncopilot/internal/service"
)

// MissionHandler handles mission ingestion and lifecycle endpoints.
type MissionHandler struct {
	missionService service.MissionService
	maxFileSize    int64
}

// NewMissionHandler creates a new MissionHandler.
func NewMissionHandler(missionService service.MissionService, maxFileSize int64) *MissionHandler {
	return &MissionHandler{missionService: missionService, maxFileSize: maxFileSize}
}

// Upload handles POST /api/v1/missions/upload
// Accepts a multipart file; the source kind is taken from the "kind" form
// field or inferred from the file extension.
func (h *MissionHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "multipart 'file' field is required")
		return
	}
	if h.maxFileSize > 0 && fileHeader.Size > h.maxFileSize {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	rawKind := c.PostForm("kind")
	if rawKind == "" {
		ext := strings.TrimPrefix(filepath.Ext(fileHeader.Filename), ".")
		rawKind = string(domain.AllowedExtensions[strings.ToLower(ext)])
	}
	kind, ok := domain.ParseSourceKind(rawKind)
	if !ok {
		HandleError(c, domain.ErrUnsupportedKind)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not open uploaded file")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read uploaded file")
		return
	}

	mission, err := h.missionService.Ingest(c.Request.Context(), raw, kind, fileHeader.Filename)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, mission)
}

// IngestText handles POST /api/v1/missions/text
func (h *MissionHandler) IngestText(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
		Label   string `json:"label"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "content is required")
		return
	}
	label := req.Label
	if label == "" {
		label = "inline-text"
	}

	mission, err := h.missionService.Ingest(c.Request.Context(), []byte(req.Content), domain.SourceKindText, label)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, mission)
}

// List handles GET /api/v1/missions with optional ?status= filter.
func (h *MissionHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	var (
		missions []domain.Mission
		total    int
		err      error
	)
	if raw := c.Query("status"); raw != "" {
		status := domain.MissionStatus(raw)
		if !status.Valid() {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "unknown status filter")
			return
		}
		missions, total, err = h.missionService.ListByStatus(c.Request.Context(), status, offset, limit)
	} else {
		missions, total, err = h.missionService.List(c.Request.Context(), offset, limit)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, missions, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/missions/:id
func (h *MissionHandler) GetByID(c *gin.Context) {
	missionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid mission ID")
		return
	}

	mission, err := h.missionService.GetByID(c.Request.Context(), missionID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, mission)
}

// Delete handles DELETE /api/v1/missions/:id
func (h *MissionHandler) Delete(c *gin.Context) {
	missionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid mission ID")
		return
	}

	if err := h.missionService.Delete(c.Request.Context(), missionID); err != nil {
		HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// pagination reads offset/limit query params with sane bounds.
func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return offset, limit
}
