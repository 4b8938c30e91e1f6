package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"missioncopilot/internal/domain"
	"missioncopilot/internal/port"
)

type analysisRepo struct {
	db *sqlx.DB
}

// NewAnalysisRepo creates a new PostgreSQL-backed AnalysisRepository.
func NewAnalysisRepo(db *sqlx.DB) port.AnalysisRepository {
	return &analysisRepo{db: db}
}

// Commit inserts the result and, when markAnalyzed is set, flips the mission
// from analyzing to analyzed in the same transaction. Mission metadata
// warnings (unknown
// cost model, coerced risk) merge in the same write so a result is never
// visible without them.
func (r *analysisRepo) Commit(ctx context.Context, result *domain.AnalysisResult, missionMeta domain.Metadata, markAnalyzed bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("analysisRepo.Commit: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO analysis_results (
		id, mission_id, summary, entities, risk_level, explanation,
		confidence_score, confidence_note, input_tokens, output_tokens,
		total_tokens, estimated_cost, model, used_rag, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err = tx.ExecContext(ctx, query,
		result.ID, result.MissionID, result.Summary, result.Entities, result.RiskLevel, result.Explanation,
		result.ConfidenceScore, result.ConfidenceNote, result.InputTokens, result.OutputTokens,
		result.TotalTokens, result.EstimatedCost, result.Model, result.UsedRAG, result.CreatedAt)
	if err != nil {
		return fmt.Errorf("analysisRepo.Commit: insert: %w", err)
	}

	if len(missionMeta) > 0 {
		raw, err := json.Marshal(missionMeta)
		if err != nil {
			return fmt.Errorf("analysisRepo.Commit: metadata: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			"UPDATE missions SET metadata = metadata || $2::jsonb, updated_at = $3 WHERE id = $1",
			result.MissionID, raw, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("analysisRepo.Commit: metadata: %w", err)
		}
	}

	if markAnalyzed {
		// Only a mission still in analyzing moves to analyzed. Zero rows
		// means the mission was deleted or already failed elsewhere; the
		// result stays in history without the transition, and the error
		// state is never overwritten.
		_, err := tx.ExecContext(ctx,
			"UPDATE missions SET status = $2, error_message = '', updated_at = $3 WHERE id = $1 AND status = $4",
			result.MissionID, domain.MissionStatusAnalyzed, time.Now().UTC(), domain.MissionStatusAnalyzing)
		if err != nil {
			return fmt.Errorf("analysisRepo.Commit: status: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("analysisRepo.Commit: commit: %w", err)
	}
	return nil
}

func (r *analysisRepo) Latest(ctx context.Context, missionID uuid.UUID) (*domain.AnalysisResult, error) {
	var result domain.AnalysisResult
	err := r.db.GetContext(ctx, &result,
		"SELECT * FROM analysis_results WHERE mission_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1",
		missionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("analysisRepo.Latest: %w", err)
	}
	return &result, nil
}

func (r *analysisRepo) History(ctx context.Context, missionID uuid.UUID) ([]domain.AnalysisResult, error) {
	results := []domain.AnalysisResult{}
	err := r.db.SelectContext(ctx, &results,
		"SELECT * FROM analysis_results WHERE mission_id = $1 ORDER BY created_at DESC, id DESC",
		missionID)
	if err != nil {
		return nil, fmt.Errorf("analysisRepo.History: %w", err)
	}
	return results, nil
}
