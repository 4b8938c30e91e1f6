package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"missioncopilot/internal/domain"
)

// MockMissionService is a mock implementation of service.MissionService.
type MockMissionService struct {
	mock.Mock
}

func (m *MockMissionService) Ingest(ctx context.Context, raw []byte, kind domain.SourceKind, filename string) (*domain.Mission, error) {
	args := m.Called(ctx, raw, kind, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mission), args.Error(1)
}

func (m *MockMissionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Mission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mission), args.Error(1)
}

func (m *MockMissionService) List(ctx context.Context, offset, limit int) ([]domain.Mission, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Mission), args.Int(1), args.Error(2)
}

func (m *MockMissionService) ListByStatus(ctx context.Context, status domain.MissionStatus, offset, limit int) ([]domain.Mission, int, error) {
	args := m.Called(ctx, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Mission), args.Int(1), args.Error(2)
}

func (m *MockMissionService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
