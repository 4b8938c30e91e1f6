package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"missioncopilot/internal/domain"
)

// MissionRepository defines the contract for mission persistence.
type MissionRepository interface {
	Create(ctx context.Context, mission *domain.Mission) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Mission, error)
	List(ctx context.Context, offset, limit int) ([]domain.Mission, int, error)
	ListByStatus(ctx context.Context, status domain.MissionStatus, offset, limit int) ([]domain.Mission, int, error)
	Update(ctx context.Context, mission *domain.Mission) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MissionStatus, errorMessage string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AnalysisRepository defines the contract for analysis result persistence.
type AnalysisRepository interface {
	// Commit persists a result and, when markAnalyzed is set, transitions the
	// owning mission to analyzed in the same transaction. A result is never
	// visible without its cost and confidence fields.
	Commit(ctx context.Context, result *domain.AnalysisResult, missionMeta domain.Metadata, markAnalyzed bool) error
	Latest(ctx context.Context, missionID uuid.UUID) (*domain.AnalysisResult, error)
	History(ctx context.Context, missionID uuid.UUID) ([]domain.AnalysisResult, error)
}

// ReviewRepository defines the contract for analyst review persistence.
type ReviewRepository interface {
	Upsert(ctx context.Context, review *domain.Review) error
	GetByMission(ctx context.Context, missionID uuid.UUID) (*domain.Review, error)
	Delete(ctx context.Context, missionID uuid.UUID) error
}

// StatsRepository aggregates dashboard analytics over missions and analyses.
type StatsRepository interface {
	Summary(ctx context.Context) (*domain.StatsSummary, error)
	RiskDistribution(ctx context.Context) (map[domain.RiskLevel]int, error)
	HighRiskMissions(ctx context.Context, limit int) ([]domain.HighRiskMission, error)
	// Trends returns per-day ingestion and analysis totals since the given
	// instant, ordered by day ascending.
	Trends(ctx context.Context, since time.Time) ([]domain.DailyTrend, error)
	EntityBreakdown(ctx context.Context) ([]domain.EntityTypeCount, error)
	ReviewStatus(ctx context.Context) (*domain.ReviewStatusCounts, error)
	ExportRows(ctx context.Context) ([]domain.ExportRow, error)
}
