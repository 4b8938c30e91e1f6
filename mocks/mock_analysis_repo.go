package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"missioncopilot/internal/domain"
)

// MockAnalysisRepo is a mock implementation of port.AnalysisRepository.
type MockAnalysisRepo struct {
	mock.Mock
}

func (m *MockAnalysisRepo) Commit(ctx context.Context, result *domain.AnalysisResult, missionMeta domain.Metadata, markAnalyzed bool) error {
	args := m.Called(ctx, result, missionMeta, markAnalyzed)
	return args.Error(0)
}

func (m *MockAnalysisRepo) Latest(ctx context.Context, missionID uuid.UUID) (*domain.AnalysisResult, error) {
	args := m.Called(ctx, missionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisResult), args.Error(1)
}

func (m *MockAnalysisRepo) History(ctx context.Context, missionID uuid.UUID) ([]domain.AnalysisResult, error) {
	args := m.Called(ctx, missionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AnalysisResult), args.Error(1)
}
