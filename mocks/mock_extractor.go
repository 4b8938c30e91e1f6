package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"missioncopilot/internal/llm"
)

// MockExtractor is a mock implementation of port.Extractor.
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, content string, contextChunks []string) (*llm.StructuredResult, error) {
	args := m.Called(ctx, content, contextChunks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.StructuredResult), args.Error(1)
}

func (m *MockExtractor) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}
