package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"missioncopilot/internal/domain"
)

// MockMissionRepo is a mock implementation of port.MissionRepository.
type MockMissionRepo struct {
	mock.Mock
}

func (m *MockMissionRepo) Create(ctx context.Context, mission *domain.Mission) error {
	args := m.Called(ctx, mission)
	return args.Error(0)
}

func (m *MockMissionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Mission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mission), args.Error(1)
}

func (m *MockMissionRepo) List(ctx context.Context, offset, limit int) ([]domain.Mission, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Mission), args.Int(1), args.Error(2)
}

func (m *MockMissionRepo) ListByStatus(ctx context.Context, status domain.MissionStatus, offset, limit int) ([]domain.Mission, int, error) {
	args := m.Called(ctx, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Mission), args.Int(1), args.Error(2)
}

func (m *MockMissionRepo) Update(ctx context.Context, mission *domain.Mission) error {
	args := m.Called(ctx, mission)
	return args.Error(0)
}

func (m *MockMissionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MissionStatus, errorMessage string) error {
	args := m.Called(ctx, id, status, errorMessage)
	return args.Error(0)
}

func (m *MockMissionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
