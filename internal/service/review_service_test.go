package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"missioncopilot/internal/domain"
	"missioncopilot/mocks"
)

func TestReviewUpsert_NewReview(t *testing.T) {
	missionID := uuid.New()

	missionRepo := new(mocks.MockMissionRepo)
	missionRepo.On("GetByID", mock.Anything, missionID).
		Return(&domain.Mission{ID: missionID, Status: domain.MissionStatusAnalyzed}, nil)

	reviewRepo := new(mocks.MockReviewRepo)
	reviewRepo.On("GetByMission", mock.Anything, missionID).Return(nil, domain.ErrReviewNotFound)
	reviewRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil)

	svc := NewReviewService(reviewRepo, missionRepo)

	review, err := svc.Upsert(context.Background(), &UpsertReviewInput{
		MissionID: missionID,
		Notes:     "  risk call looks right  ",
		Approved:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, missionID, review.MissionID)
	assert.Equal(t, "risk call looks right", review.Notes)
	assert.True(t, review.Approved)
	reviewRepo.AssertExpectations(t)
}

func TestReviewUpsert_KeepsExistingID(t *testing.T) {
	missionID := uuid.New()
	existingID := uuid.New()

	missionRepo := new(mocks.MockMissionRepo)
	missionRepo.On("GetByID", mock.Anything, missionID).
		Return(&domain.Mission{ID: missionID}, nil)

	reviewRepo := new(mocks.MockReviewRepo)
	reviewRepo.On("GetByMission", mock.Anything, missionID).
		Return(&domain.Review{ID: existingID, MissionID: missionID}, nil)
	reviewRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil)

	svc := NewReviewService(reviewRepo, missionRepo)

	review, err := svc.Upsert(context.Background(), &UpsertReviewInput{MissionID: missionID, Notes: "updated"})
	require.NoError(t, err)

	assert.Equal(t, existingID, review.ID)
}

func TestReviewUpsert_MissionMustExist(t *testing.T) {
	missionRepo := new(mocks.MockMissionRepo)
	missionRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, domain.ErrMissionNotFound)

	reviewRepo := new(mocks.MockReviewRepo)
	svc := NewReviewService(reviewRepo, missionRepo)

	_, err := svc.Upsert(context.Background(), &UpsertReviewInput{MissionID: uuid.New()})

	assert.ErrorIs(t, err, domain.ErrMissionNotFound)
	reviewRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
