package service

import (
	"context"
	"time"

	"missioncopilot/internal/domain"
	"missioncopilot/internal/port"
)

// StatsService exposes dashboard analytics over missions and analyses.
type StatsService interface {
	Summary(ctx context.Context) (*domain.StatsSummary, error)
	RiskDistribution(ctx context.Context) (map[domain.RiskLevel]int, error)
	HighRiskMissions(ctx context.Context, limit int) ([]domain.HighRiskMission, error)
	// Trends reports daily ingestion and analysis activity over the last
	// days days, clamped to [1, 365].
	Trends(ctx context.Context, days int) (*domain.TrendsReport, error)
	EntityBreakdown(ctx context.Context) (*domain.EntityBreakdown, error)
	ReviewStatus(ctx context.Context) (*domain.ReviewStatusCounts, error)
	// ExportRows returns every mission flattened with its current analysis
	// result for CSV/XLSX export.
	ExportRows(ctx context.Context) ([]domain.ExportRow, error)
}

type statsService struct {
	statsRepo port.StatsRepository
}

// NewStatsService creates a StatsService.
func NewStatsService(statsRepo port.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) Summary(ctx context.Context) (*domain.StatsSummary, error) {
	return s.statsRepo.Summary(ctx)
}

func (s *statsService) RiskDistribution(ctx context.Context) (map[domain.RiskLevel]int, error) {
	dist, err := s.statsRepo.RiskDistribution(ctx)
	if err != nil {
		return nil, err
	}
	// Every canonical level appears, even at zero, so charts stay stable.
	for _, level := range []domain.RiskLevel{domain.RiskLow, domain.RiskMedium, domain.RiskHigh, domain.RiskCritical} {
		if _, ok := dist[level]; !ok {
			dist[level] = 0
		}
	}
	return dist, nil
}

func (s *statsService) HighRiskMissions(ctx context.Context, limit int) ([]domain.HighRiskMission, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.statsRepo.HighRiskMissions(ctx, limit)
}

func (s *statsService) Trends(ctx context.Context, days int) (*domain.TrendsReport, error) {
	if days < 1 || days > 365 {
		days = 30
	}
	end := time.Now().UTC()
	since := end.AddDate(0, 0, -days)

	trend, err := s.statsRepo.Trends(ctx, since)
	if err != nil {
		return nil, err
	}
	return &domain.TrendsReport{
		Days:        trend,
		PeriodStart: since.Format("2006-01-02"),
		PeriodEnd:   end.Format("2006-01-02"),
	}, nil
}

func (s *statsService) EntityBreakdown(ctx context.Context) (*domain.EntityBreakdown, error) {
	counts, err := s.statsRepo.EntityBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	breakdown := &domain.EntityBreakdown{Entities: counts}
	for _, c := range counts {
		breakdown.TotalEntities += c.Count
	}
	return breakdown, nil
}

func (s *statsService) ReviewStatus(ctx context.Context) (*domain.ReviewStatusCounts, error) {
	return s.statsRepo.ReviewStatus(ctx)
}

func (s *statsService) ExportRows(ctx context.Context) ([]domain.ExportRow, error) {
	return s.statsRepo.ExportRows(ctx)
}
