package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"missioncopilot/internal/port"
	"missioncopilot/internal/rag"
)

// DBPinger is the slice of the database pool the readiness probe needs.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes. Readiness reports
// per-component state: the database gates readiness, while a missing model
// credential only degrades it (ingestion still works, analysis fails fast).
type HealthHandler struct {
	db        DBPinger
	extractor port.Extractor
	index     *rag.Index
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db DBPinger, extractor port.Extractor, index *rag.Index) *HealthHandler {
	return &HealthHandler{db: db, extractor: extractor, index: index}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	components := gin.H{
		"database":       "ok",
		"llm_credential": h.extractor != nil && h.extractor.Configured(),
	}
	if h.index != nil {
		components["index_chunks"] = h.index.Len()
	}

	if err := h.db.PingContext(c.Request.Context()); err != nil {
		components["database"] = "unreachable"
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "components": components})
		return
	}

	status := "ok"
	if components["llm_credential"] == false {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "components": components})
}
