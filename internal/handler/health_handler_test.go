package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"missioncopilot/internal/rag"
	"missioncopilot/mocks"
)

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func readyz(t *testing.T, h *HealthHandler) (int, map[string]any) {
	t.Helper()
	r := gin.New()
	r.GET("/readyz", h.Readiness)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestReadiness_ReportsComponents(t *testing.T) {
	extractor := new(mocks.MockExtractor)
	extractor.On("Configured").Return(true)

	h := NewHealthHandler(stubPinger{}, extractor, rag.NewIndex())
	code, body := readyz(t, h)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])

	components := body["components"].(map[string]any)
	assert.Equal(t, "ok", components["database"])
	assert.Equal(t, true, components["llm_credential"])
	assert.Equal(t, float64(0), components["index_chunks"])
}

func TestReadiness_DegradedWithoutCredential(t *testing.T) {
	extractor := new(mocks.MockExtractor)
	extractor.On("Configured").Return(false)

	h := NewHealthHandler(stubPinger{}, extractor, rag.NewIndex())
	code, body := readyz(t, h)

	// Ingestion still works without a credential, so the service stays
	// ready but says so.
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "degraded", body["status"])
}

func TestReadiness_DatabaseDown(t *testing.T) {
	extractor := new(mocks.MockExtractor)
	extractor.On("Configured").Return(true)

	h := NewHealthHandler(stubPinger{err: assert.AnError}, extractor, rag.NewIndex())
	code, body := readyz(t, h)

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unavailable", body["status"])
	components := body["components"].(map[string]any)
	assert.Equal(t, "unreachable", components["database"])
}
