package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"missioncopilot/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrMissionNotFound, http.StatusNotFound, "MISSION_NOT_FOUND"},
		{domain.ErrAnalysisNotFound, http.StatusNotFound, "ANALYSIS_NOT_FOUND"},
		{domain.ErrReviewNotFound, http.StatusNotFound, "REVIEW_NOT_FOUND"},
		{domain.ErrUnsupportedKind, http.StatusBadRequest, "UNSUPPORTED_KIND"},
		{domain.ErrUnsupportedFormat, http.StatusBadRequest, "UNSUPPORTED_FORMAT"},
		{domain.ErrEmptyContent, http.StatusBadRequest, "EMPTY_CONTENT"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{domain.ErrInvalidState, http.StatusConflict, "INVALID_STATE"},
		{domain.ErrNoCredential, http.StatusServiceUnavailable, "NO_CREDENTIAL"},
		{domain.ErrExtractionFailed, http.StatusBadGateway, "EXTRACTION_FAILED"},
		{domain.ErrProviderUnavailable, http.StatusBadGateway, "PROVIDER_UNAVAILABLE"},
		{errors.New("surprise"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		status, code, _ := MapDomainError(tc.err)
		assert.Equal(t, tc.status, status, tc.code)
		assert.Equal(t, tc.code, code)
	}
}

func TestMapDomainError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("analysisService.Analyze: %w: status is %q", domain.ErrInvalidState, "pending")

	status, code, _ := MapDomainError(wrapped)

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_STATE", code)
}
