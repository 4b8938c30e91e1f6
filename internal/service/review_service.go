package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"missioncopilot/internal/domain"
	"missioncopilot/internal/port"
)

// UpsertReviewInput is the DTO for creating or updating an analyst review.
type UpsertReviewInput struct {
	MissionID uuid.UUID
	Notes     string
	Approved  bool
}

// ReviewService manages analyst annotations on missions. A review is never a
// precondition for analysis.
type ReviewService interface {
	Upsert(ctx context.Context, input *UpsertReviewInput) (*domain.Review, error)
	GetByMission(ctx context.Context, missionID uuid.UUID) (*domain.Review, error)
	Delete(ctx context.Context, missionID uuid.UUID) error
}

type reviewService struct {
	reviewRepo  port.ReviewRepository
	missionRepo port.MissionRepository
}

// NewReviewService creates a ReviewService.
func NewReviewService(reviewRepo port.ReviewRepository, missionRepo port.MissionRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, missionRepo: missionRepo}
}

func (s *reviewService) Upsert(ctx context.Context, input *UpsertReviewInput) (*domain.Review, error) {
	if _, err := s.missionRepo.GetByID(ctx, input.MissionID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		ID:         uuid.New(),
		MissionID:  input.MissionID,
		Notes:      strings.TrimSpace(input.Notes),
		Approved:   input.Approved,
		ReviewedAt: time.Now().UTC(),
	}
	if existing, err := s.reviewRepo.GetByMission(ctx, input.MissionID); err == nil {
		review.ID = existing.ID
	}

	if err := s.reviewRepo.Upsert(ctx, review); err != nil {
		return nil, fmt.Errorf("reviewService.Upsert: %w", err)
	}
	return review, nil
}

func (s *reviewService) GetByMission(ctx context.Context, missionID uuid.UUID) (*domain.Review, error) {
	if _, err := s.missionRepo.GetByID(ctx, missionID); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByMission(ctx, missionID)
}

func (s *reviewService) Delete(ctx context.Context, missionID uuid.UUID) error {
	return s.reviewRepo.Delete(ctx, missionID)
}
