package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"missioncopilot/internal/domain"
	"missioncopilot/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func missionRouter(svc *mocks.MockMissionService) *gin.Engine {
	r := gin.New()
	h := NewMissionHandler(svc, 1<<20)
	r.POST("/missions/upload", h.Upload)
	r.POST("/missions/text", h.IngestText)
	r.GET("/missions", h.List)
	r.GET("/missions/:id", h.GetByID)
	return r
}

func TestUpload_KindInferredFromExtension(t *testing.T) {
	svc := new(mocks.MockMissionService)
	svc.On("Ingest", mock.Anything, []byte("a,b\n1,2\n"), domain.SourceKindCSV, "risks.csv").
		Return(&domain.Mission{ID: uuid.New(), Status: domain.MissionStatusIngested}, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "risks.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("a,b\n1,2\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/missions/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	missionRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestUpload_UnknownExtension(t *testing.T) {
	svc := new(mocks.MockMissionService)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("file", "slides.pptx")
	part.Write([]byte("binary"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/missions/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	missionRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNSUPPORTED_KIND")
	svc.AssertNotCalled(t, "Ingest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestIngestText(t *testing.T) {
	svc := new(mocks.MockMissionService)
	svc.On("Ingest", mock.Anything, []byte("patrol report"), domain.SourceKindText, "inline-text").
		Return(&domain.Mission{ID: uuid.New(), Status: domain.MissionStatusIngested}, nil)

	payload, _ := json.Marshal(map[string]string{"content": "patrol report"})
	req := httptest.NewRequest(http.MethodPost, "/missions/text", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	missionRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestIngestText_MissingContent(t *testing.T) {
	svc := new(mocks.MockMissionService)

	req := httptest.NewRequest(http.MethodPost, "/missions/text", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	missionRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListMissions_StatusFilter(t *testing.T) {
	svc := new(mocks.MockMissionService)
	svc.On("ListByStatus", mock.Anything, domain.MissionStatusAnalyzed, 0, 20).
		Return([]domain.Mission{}, 0, nil)

	req := httptest.NewRequest(http.MethodGet, "/missions?status=analyzed", nil)
	w := httptest.NewRecorder()
	missionRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestListMissions_BadStatusFilter(t *testing.T) {
	svc := new(mocks.MockMissionService)

	req := httptest.NewRequest(http.MethodGet, "/missions?status=launched", nil)
	w := httptest.NewRecorder()
	missionRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMission_InvalidID(t *testing.T) {
	svc := new(mocks.MockMissionService)

	req := httptest.NewRequest(http.MethodGet, "/missions/not-a-uuid", nil)
	w := httptest.NewRecorder()
	missionRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ID")
}

func TestGetMission_NotFound(t *testing.T) {
	svc := new(mocks.MockMissionService)
	svc.On("GetByID", mock.Anything, mock.Anything).Return(nil, domain.ErrMissionNotFound)

	req := httptest.NewRequest(http.MethodGet, "/missions/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	missionRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "MISSION_NOT_FOUND")
}
