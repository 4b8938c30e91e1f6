package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"missioncopilot/internal/domain"
	"missioncopilot/internal/port"
)

type missionRepo struct {
	db *sqlx.DB
}

// NewMissionRepo creates a new PostgreSQL-backed MissionRepository.
func NewMissionRepo(db *sqlx.DB) port.MissionRepository {
	return &missionRepo{db: db}
}

func (r *missionRepo) Create(ctx context.Context, mission *domain.Mission) error {
	now := time.Now().UTC()
	if mission.IngestedAt.IsZero() {
		mission.IngestedAt = now
	}
	mission.UpdatedAt = now

	query := `INSERT INTO missions (
		id, source_kind, filename, normalized_content, metadata,
		status, error_message, raw_storage_key, ingested_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		mission.ID, mission.SourceKind, mission.Filename, mission.NormalizedContent, mission.Metadata,
		mission.Status, mission.ErrorMessage, mission.RawStorageKey, mission.IngestedAt, mission.UpdatedAt)
	if err != nil {
		return fmt.Errorf("missionRepo.Create: %w", err)
	}
	return nil
}

func (r *missionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Mission, error) {
	var mission domain.Mission
	err := r.db.GetContext(ctx, &mission, "SELECT * FROM missions WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMissionNotFound
		}
		return nil, fmt.Errorf("missionRepo.GetByID: %w", err)
	}
	return &mission, nil
}

func (r *missionRepo) List(ctx context.Context, offset, limit int) ([]domain.Mission, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM missions"); err != nil {
		return nil, 0, fmt.Errorf("missionRepo.List: count: %w", err)
	}

	missions := []domain.Mission{}
	err := r.db.SelectContext(ctx, &missions,
		"SELECT * FROM missions ORDER BY ingested_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("missionRepo.List: %w", err)
	}
	return missions, total, nil
}

func (r *missionRepo) ListByStatus(ctx context.Context, status domain.MissionStatus, offset, limit int) ([]domain.Mission, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM missions WHERE status = $1", status); err != nil {
		return nil, 0, fmt.Errorf("missionRepo.ListByStatus: count: %w", err)
	}

	missions := []domain.Mission{}
	err := r.db.SelectContext(ctx, &missions,
		"SELECT * FROM missions WHERE status = $1 ORDER BY ingested_at DESC LIMIT $2 OFFSET $3",
		status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("missionRepo.ListByStatus: %w", err)
	}
	return missions, total, nil
}

func (r *missionRepo) Update(ctx context.Context, mission *domain.Mission) error {
	mission.UpdatedAt = time.Now().UTC()

	query := `UPDATE missions SET
		normalized_content = $2, metadata = $3, status = $4,
		error_message = $5, raw_storage_key = $6, updated_at = $7
	WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		mission.ID, mission.NormalizedContent, mission.Metadata, mission.Status,
		mission.ErrorMessage, mission.RawStorageKey, mission.UpdatedAt)
	if err != nil {
		return fmt.Errorf("missionRepo.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrMissionNotFound
	}
	return nil
}

// UpdateStatus writes a status transition with the lifecycle enforced in the
// statement itself: the row only updates when its current status may move to
// the target. Two concurrent analyze requests both racing to claim a mission
// resolve here, with the loser getting ErrInvalidState.
func (r *missionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MissionStatus, errorMessage string) error {
	query, args, err := sqlx.In(
		"UPDATE missions SET status = ?, error_message = ?, updated_at = ? WHERE id = ? AND status IN (?)",
		status, errorMessage, time.Now().UTC(), id, domain.TransitionSources(status))
	if err != nil {
		return fmt.Errorf("missionRepo.UpdateStatus: %w", err)
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("missionRepo.UpdateStatus: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	var current domain.MissionStatus
	err = r.db.GetContext(ctx, &current, "SELECT status FROM missions WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrMissionNotFound
	}
	if err != nil {
		return fmt.Errorf("missionRepo.UpdateStatus: %w", err)
	}
	return fmt.Errorf("%w: cannot move %q to %q", domain.ErrInvalidState, current, status)
}

func (r *missionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// analysis_results and reviews cascade via their foreign keys.
	res, err := r.db.ExecContext(ctx, "DELETE FROM missions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("missionRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrMissionNotFound
	}
	return nil
}
