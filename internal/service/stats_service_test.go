package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"missioncopilot/internal/domain"
	"missioncopilot/mocks"
)

func TestRiskDistribution_FillsMissingLevels(t *testing.T) {
	statsRepo := new(mocks.MockStatsRepo)
	statsRepo.On("RiskDistribution", mock.Anything).
		Return(map[domain.RiskLevel]int{domain.RiskHigh: 2}, nil)

	svc := NewStatsService(statsRepo)

	dist, err := svc.RiskDistribution(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[domain.RiskLevel]int{
		domain.RiskLow:      0,
		domain.RiskMedium:   0,
		domain.RiskHigh:     2,
		domain.RiskCritical: 0,
	}, dist)
}

func TestHighRiskMissions_ClampsLimit(t *testing.T) {
	statsRepo := new(mocks.MockStatsRepo)
	statsRepo.On("HighRiskMissions", mock.Anything, 20).Return([]domain.HighRiskMission{}, nil)

	svc := NewStatsService(statsRepo)

	_, err := svc.HighRiskMissions(context.Background(), 5000)
	require.NoError(t, err)
	statsRepo.AssertExpectations(t)
}

func TestTrends_DefaultsWindowAndStampsPeriod(t *testing.T) {
	statsRepo := new(mocks.MockStatsRepo)
	statsRepo.On("Trends", mock.Anything, mock.MatchedBy(func(since time.Time) bool {
		age := time.Since(since)
		return age > 29*24*time.Hour && age < 31*24*time.Hour
	})).Return([]domain.DailyTrend{
		{Date: "2026-08-30", MissionCount: 2, TokensUsed: 1050, EstimatedCost: 0.0006},
	}, nil)

	svc := NewStatsService(statsRepo)

	// Out-of-range day counts fall back to the 30-day window.
	report, err := svc.Trends(context.Background(), 0)
	require.NoError(t, err)

	assert.Len(t, report.Days, 1)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, report.PeriodStart)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, report.PeriodEnd)
	statsRepo.AssertExpectations(t)
}

func TestTrends_ClampsOversizedWindow(t *testing.T) {
	statsRepo := new(mocks.MockStatsRepo)
	statsRepo.On("Trends", mock.Anything, mock.MatchedBy(func(since time.Time) bool {
		return time.Since(since) < 31*24*time.Hour
	})).Return([]domain.DailyTrend{}, nil)

	svc := NewStatsService(statsRepo)

	_, err := svc.Trends(context.Background(), 9000)
	require.NoError(t, err)
	statsRepo.AssertExpectations(t)
}

func TestEntityBreakdown_SumsTotal(t *testing.T) {
	statsRepo := new(mocks.MockStatsRepo)
	statsRepo.On("EntityBreakdown", mock.Anything).Return([]domain.EntityTypeCount{
		{EntityType: "LOCATION", Count: 4},
		{EntityType: "PERSON", Count: 3},
		{EntityType: "ASSET", Count: 1},
	}, nil)

	svc := NewStatsService(statsRepo)

	breakdown, err := svc.EntityBreakdown(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, breakdown.TotalEntities)
	assert.Equal(t, "LOCATION", breakdown.Entities[0].EntityType)
}

func TestReviewStatus_Passthrough(t *testing.T) {
	statsRepo := new(mocks.MockStatsRepo)
	statsRepo.On("ReviewStatus", mock.Anything).Return(&domain.ReviewStatusCounts{
		PendingReview: 1, Approved: 2, NotReviewed: 3, Total: 6,
	}, nil)

	svc := NewStatsService(statsRepo)

	counts, err := svc.ReviewStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, counts.NotReviewed)
}
