package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"missioncopilot/internal/domain"
	"missioncopilot/internal/port"
)

type reviewRepo struct {
	db *sqlx.DB
}

// NewReviewRepo creates a new PostgreSQL-backed ReviewRepository.
func NewReviewRepo(db *sqlx.DB) port.ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Upsert(ctx context.Context, review *domain.Review) error {
	query := `INSERT INTO reviews (id, mission_id, notes, approved, reviewed_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (mission_id) DO UPDATE SET
		notes = EXCLUDED.notes,
		approved = EXCLUDED.approved,
		reviewed_at = EXCLUDED.reviewed_at`

	_, err := r.db.ExecContext(ctx, query,
		review.ID, review.MissionID, review.Notes, review.Approved, review.ReviewedAt)
	if err != nil {
		return fmt.Errorf("reviewRepo.Upsert: %w", err)
	}
	return nil
}

func (r *reviewRepo) GetByMission(ctx context.Context, missionID uuid.UUID) (*domain.Review, error) {
	var review domain.Review
	err := r.db.GetContext(ctx, &review,
		"SELECT * FROM reviews WHERE mission_id = $1", missionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("reviewRepo.GetByMission: %w", err)
	}
	return &review, nil
}

func (r *reviewRepo) Delete(ctx context.Context, missionID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM reviews WHERE mission_id = $1", missionID)
	if err != nil {
		return fmt.Errorf("reviewRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}
