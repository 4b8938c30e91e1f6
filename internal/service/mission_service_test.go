package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"missioncopilot/internal/domain"
	"missioncopilot/internal/rag"
	"missioncopilot/mocks"
)

func TestIngest_TextMission(t *testing.T) {
	repo := new(mocks.MockMissionRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Mission")).Return(nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Mission")).Return(nil)

	svc := NewMissionService(repo, rag.NewIndex(), nil, nil, MissionServiceConfig{})

	mission, err := svc.Ingest(context.Background(), []byte("Operation Falcon begins at dawn."), domain.SourceKindText, "falcon.txt")
	require.NoError(t, err)

	assert.Equal(t, domain.MissionStatusIngested, mission.Status)
	assert.Equal(t, "Operation Falcon begins at dawn.", mission.NormalizedContent)
	assert.Empty(t, mission.ErrorMessage)
	assert.Equal(t, "text", mission.Metadata["source_kind"])
	repo.AssertExpectations(t)
}

func TestIngest_UnsupportedKind(t *testing.T) {
	repo := new(mocks.MockMissionRepo)
	svc := NewMissionService(repo, nil, nil, nil, MissionServiceConfig{})

	_, err := svc.Ingest(context.Background(), []byte("x"), domain.SourceKind("docx"), "report.docx")

	assert.ErrorIs(t, err, domain.ErrUnsupportedKind)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIngest_EmptyContent(t *testing.T) {
	svc := NewMissionService(new(mocks.MockMissionRepo), nil, nil, nil, MissionServiceConfig{})

	_, err := svc.Ingest(context.Background(), nil, domain.SourceKindText, "empty.txt")

	assert.ErrorIs(t, err, domain.ErrEmptyContent)
}

func TestIngest_FileTooLarge(t *testing.T) {
	svc := NewMissionService(new(mocks.MockMissionRepo), nil, nil, nil, MissionServiceConfig{MaxFileSizeBytes: 8})

	_, err := svc.Ingest(context.Background(), []byte("more than eight bytes"), domain.SourceKindText, "big.txt")

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestIngest_ParseFailureStaysVisible(t *testing.T) {
	repo := new(mocks.MockMissionRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Mission")).Return(nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Mission")).Return(nil)

	svc := NewMissionService(repo, nil, nil, nil, MissionServiceConfig{})

	// Declared as PDF but isn't one.
	mission, err := svc.Ingest(context.Background(), []byte("not a pdf"), domain.SourceKindPDF, "broken.pdf")
	require.NoError(t, err)

	assert.Equal(t, domain.MissionStatusError, mission.Status)
	assert.NotEmpty(t, mission.ErrorMessage)
	assert.Empty(t, mission.NormalizedContent)
	repo.AssertExpectations(t)
}

func TestIngest_IndexesChunksWhenEmbedderConfigured(t *testing.T) {
	repo := new(mocks.MockMissionRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Mission")).Return(nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Mission")).Return(nil)

	embedder := new(mocks.MockEmbedder)
	embedder.On("Configured").Return(true)
	embedder.On("Embed", mock.Anything, mock.AnythingOfType("[]string")).
		Return([][]float32{{1, 0}}, nil)

	index := rag.NewIndex()
	svc := NewMissionService(repo, index, embedder, nil, MissionServiceConfig{})

	_, err := svc.Ingest(context.Background(), []byte("patrol the eastern ridge"), domain.SourceKindText, "patrol.txt")
	require.NoError(t, err)

	assert.Equal(t, 1, index.Len())
	embedder.AssertExpectations(t)
}

func TestIngest_SkipsIndexingWithoutCredential(t *testing.T) {
	repo := new(mocks.MockMissionRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Mission")).Return(nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Mission")).Return(nil)

	embedder := new(mocks.MockEmbedder)
	embedder.On("Configured").Return(false)

	index := rag.NewIndex()
	svc := NewMissionService(repo, index, embedder, nil, MissionServiceConfig{})

	mission, err := svc.Ingest(context.Background(), []byte("patrol the eastern ridge"), domain.SourceKindText, "patrol.txt")
	require.NoError(t, err)

	// Ingestion still succeeds; only retrieval indexing is skipped.
	assert.Equal(t, domain.MissionStatusIngested, mission.Status)
	assert.Equal(t, 0, index.Len())
	embedder.AssertNotCalled(t, "Embed", mock.Anything, mock.Anything)
}

func TestIngest_ArchivesRawUpload(t *testing.T) {
	repo := new(mocks.MockMissionRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Mission")).Return(nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Mission")).Return(nil)

	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("string"), []byte("field notes"), "text/plain").Return(nil)

	svc := NewMissionService(repo, nil, nil, storage, MissionServiceConfig{})

	mission, err := svc.Ingest(context.Background(), []byte("field notes"), domain.SourceKindText, "notes.txt")
	require.NoError(t, err)

	assert.Equal(t, "missions/"+mission.ID.String()+"/raw", mission.RawStorageKey)
	storage.AssertExpectations(t)
}

func TestIngest_ArchiveFailureIsNotFatal(t *testing.T) {
	repo := new(mocks.MockMissionRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Mission")).Return(nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Mission")).Return(nil)

	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)

	svc := NewMissionService(repo, nil, nil, storage, MissionServiceConfig{})

	mission, err := svc.Ingest(context.Background(), []byte("field notes"), domain.SourceKindText, "notes.txt")
	require.NoError(t, err)

	assert.Equal(t, domain.MissionStatusIngested, mission.Status)
	assert.Empty(t, mission.RawStorageKey)
	assert.Equal(t, assert.AnError.Error(), mission.Metadata["raw_archival_error"])
}

func TestDelete_CascadesIndexChunks(t *testing.T) {
	missionID := uuid.New()
	mission := &domain.Mission{ID: missionID, Status: domain.MissionStatusIngested}

	repo := new(mocks.MockMissionRepo)
	repo.On("GetByID", mock.Anything, missionID).Return(mission, nil)
	repo.On("Delete", mock.Anything, missionID).Return(nil)

	index := rag.NewIndex()
	index.Add([]domain.RetrievalChunk{
		{MissionID: missionID, Seq: 0, Text: "a", Embedding: []float32{1}},
		{MissionID: uuid.New(), Seq: 0, Text: "b", Embedding: []float32{1}},
	})

	svc := NewMissionService(repo, index, nil, nil, MissionServiceConfig{})

	require.NoError(t, svc.Delete(context.Background(), missionID))

	assert.Equal(t, 1, index.Len())
	repo.AssertExpectations(t)
}

func TestDelete_MissionNotFound(t *testing.T) {
	repo := new(mocks.MockMissionRepo)
	repo.On("GetByID", mock.Anything, mock.Anything).Return(nil, domain.ErrMissionNotFound)

	svc := NewMissionService(repo, nil, nil, nil, MissionServiceConfig{})

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrMissionNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
