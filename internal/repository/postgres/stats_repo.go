package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"missioncopilot/internal/domain"
	"missioncopilot/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

func (r *statsRepo) Summary(ctx context.Context) (*domain.StatsSummary, error) {
	var summary domain.StatsSummary
	query := `SELECT
		(SELECT COUNT(*) FROM missions) AS total_missions,
		(SELECT COUNT(*) FROM missions WHERE status = 'analyzed') AS analyzed_missions,
		(SELECT COUNT(*) FROM missions WHERE status = 'error') AS error_missions,
		(SELECT COUNT(*) FROM analysis_results) AS total_analyses,
		(SELECT COALESCE(SUM(total_tokens), 0) FROM analysis_results) AS total_tokens,
		(SELECT COALESCE(SUM(estimated_cost), 0) FROM analysis_results) AS total_cost,
		(SELECT COALESCE(AVG(confidence_score), 0) FROM analysis_results) AS avg_confidence`
	if err := r.db.GetContext(ctx, &summary, query); err != nil {
		return nil, fmt.Errorf("statsRepo.Summary: %w", err)
	}
	return &summary, nil
}

func (r *statsRepo) RiskDistribution(ctx context.Context) (map[domain.RiskLevel]int, error) {
	// Distribution over each mission's current result only, so re-analyses
	// do not double-count.
	query := `SELECT risk_level, COUNT(*) AS n FROM (
		SELECT DISTINCT ON (mission_id) mission_id, risk_level
		FROM analysis_results
		ORDER BY mission_id, created_at DESC, id DESC
	) current GROUP BY risk_level`

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.RiskDistribution: %w", err)
	}
	defer rows.Close()

	dist := map[domain.RiskLevel]int{}
	for rows.Next() {
		var level domain.RiskLevel
		var n int
		if err := rows.Scan(&level, &n); err != nil {
			return nil, fmt.Errorf("statsRepo.RiskDistribution: scan: %w", err)
		}
		dist[level] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("statsRepo.RiskDistribution: %w", err)
	}
	return dist, nil
}

func (r *statsRepo) HighRiskMissions(ctx context.Context, limit int) ([]domain.HighRiskMission, error) {
	query := `SELECT m.id AS mission_id, m.filename, a.risk_level, a.summary, a.confidence_score, a.created_at
	FROM missions m
	JOIN LATERAL (
		SELECT risk_level, summary, confidence_score, created_at
		FROM analysis_results
		WHERE mission_id = m.id
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	) a ON true
	WHERE a.risk_level IN ('high', 'critical')
	ORDER BY a.created_at DESC
	LIMIT $1`

	missions := []domain.HighRiskMission{}
	if err := r.db.SelectContext(ctx, &missions, query, limit); err != nil {
		return nil, fmt.Errorf("statsRepo.HighRiskMissions: %w", err)
	}
	return missions, nil
}

func (r *statsRepo) Trends(ctx context.Context, since time.Time) ([]domain.DailyTrend, error) {
	// Days with ingested missions drive the series; analysis totals join in
	// by day and default to zero on days nothing was analyzed.
	query := `SELECT to_char(m.day, 'YYYY-MM-DD') AS day,
		m.mission_count,
		COALESCE(a.tokens_used, 0) AS tokens_used,
		COALESCE(a.estimated_cost, 0) AS estimated_cost
	FROM (
		SELECT date_trunc('day', ingested_at)::date AS day, COUNT(*) AS mission_count
		FROM missions
		WHERE ingested_at >= $1
		GROUP BY 1
	) m
	LEFT JOIN (
		SELECT date_trunc('day', created_at)::date AS day,
			SUM(total_tokens) AS tokens_used,
			SUM(estimated_cost) AS estimated_cost
		FROM analysis_results
		WHERE created_at >= $1
		GROUP BY 1
	) a ON a.day = m.day
	ORDER BY m.day`

	days := []domain.DailyTrend{}
	if err := r.db.SelectContext(ctx, &days, query, since); err != nil {
		return nil, fmt.Errorf("statsRepo.Trends: %w", err)
	}
	return days, nil
}

func (r *statsRepo) EntityBreakdown(ctx context.Context) ([]domain.EntityTypeCount, error) {
	// Counts come from each mission's current result only, matching the
	// risk distribution convention.
	query := `SELECT upper(e->>'type') AS entity_type, COUNT(*) AS n
	FROM (
		SELECT DISTINCT ON (mission_id) entities
		FROM analysis_results
		ORDER BY mission_id, created_at DESC, id DESC
	) current, jsonb_array_elements(current.entities) AS e
	WHERE COALESCE(e->>'type', '') <> ''
	GROUP BY 1
	ORDER BY n DESC, entity_type ASC`

	counts := []domain.EntityTypeCount{}
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("statsRepo.EntityBreakdown: %w", err)
	}
	return counts, nil
}

func (r *statsRepo) ReviewStatus(ctx context.Context) (*domain.ReviewStatusCounts, error) {
	var counts domain.ReviewStatusCounts
	query := `SELECT
		(SELECT COUNT(*) FROM reviews WHERE approved = false) AS pending_review,
		(SELECT COUNT(*) FROM reviews WHERE approved = true) AS approved,
		(SELECT COUNT(*) FROM missions) AS total`
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("statsRepo.ReviewStatus: %w", err)
	}
	counts.NotReviewed = counts.Total - counts.PendingReview - counts.Approved
	if counts.NotReviewed < 0 {
		counts.NotReviewed = 0
	}
	return &counts, nil
}

func (r *statsRepo) ExportRows(ctx context.Context) ([]domain.ExportRow, error) {
	query := `SELECT m.id AS mission_id, m.filename, m.source_kind, m.status,
		m.ingested_at, m.error_message,
		a.risk_level, a.summary, a.confidence_score, a.total_tokens,
		a.estimated_cost, a.model, a.created_at AS analyzed_at
	FROM missions m
	LEFT JOIN LATERAL (
		SELECT risk_level, summary, confidence_score, total_tokens,
			estimated_cost, model, created_at
		FROM analysis_results
		WHERE mission_id = m.id
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	) a ON true
	ORDER BY m.ingested_at DESC`

	rows := []domain.ExportRow{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("statsRepo.ExportRows: %w", err)
	}
	return rows, nil
}
