package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"missioncopilot/internal/domain"
)

// MockStatsRepo is a mock implementation of port.StatsRepository.
type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) Summary(ctx context.Context) (*domain.StatsSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatsSummary), args.Error(1)
}

func (m *MockStatsRepo) RiskDistribution(ctx context.Context) (map[domain.RiskLevel]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.RiskLevel]int), args.Error(1)
}

func (m *MockStatsRepo) HighRiskMissions(ctx context.Context, limit int) ([]domain.HighRiskMission, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HighRiskMission), args.Error(1)
}

func (m *MockStatsRepo) Trends(ctx context.Context, since time.Time) ([]domain.DailyTrend, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyTrend), args.Error(1)
}

func (m *MockStatsRepo) EntityBreakdown(ctx context.Context) ([]domain.EntityTypeCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntityTypeCount), args.Error(1)
}

func (m *MockStatsRepo) ReviewStatus(ctx context.Context) (*domain.ReviewStatusCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewStatusCounts), args.Error(1)
}

func (m *MockStatsRepo) ExportRows(ctx context.Context) ([]domain.ExportRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExportRow), args.Error(1)
}
