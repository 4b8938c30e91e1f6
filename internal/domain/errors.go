package domain

import "errors"

var (
	ErrMissionNotFound     = errors.New("mission not found")
	ErrAnalysisNotFound    = errors.New("analysis result not found")
	ErrReviewNotFound      = errors.New("review not found")
	ErrUnsupportedKind     = errors.New("unsupported source kind")
	ErrUnsupportedFormat   = errors.New("no extractable text in input")
	ErrInvalidState        = errors.New("mission is not in an analyzable state")
	ErrExtractionFailed    = errors.New("model response could not be parsed into a structured result")
	ErrProviderUnavailable = errors.New("model provider unavailable")
	ErrNoCredential        = errors.New("no model provider credential configured")
	ErrEmptyContent        = errors.New("no content provided")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
)
