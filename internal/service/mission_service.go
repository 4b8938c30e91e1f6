package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"missioncopilot/internal/domain"
	"missioncopilot/internal/ingest"
	"missioncopilot/internal/port"
	"missioncopilot/internal/rag"
)

// MissionService is the ingestion boundary: raw bytes in, persisted canonical
// mission out. Parser and normalizer failures are recorded on the mission
// rather than raised past this boundary.
type MissionService interface {
	// Ingest creates a new mission from raw input. Each call creates a new
	// mission; identical bytes are not deduplicated. The returned mission is
	// persisted even when parsing fails (status error, message recorded).
	Ingest(ctx context.Context, raw []byte, kind domain.SourceKind, filename string) (*domain.Mission, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Mission, error)
	List(ctx context.Context, offset, limit int) ([]domain.Mission, int, error)
	ListByStatus(ctx context.Context, status domain.MissionStatus, offset, limit int) ([]domain.Mission, int, error)
	// Delete removes the mission and cascades to its analysis history,
	// review, and retrieval chunks.
	Delete(ctx context.Context, id uuid.UUID) error
}

// MissionServiceConfig holds ingestion tuning.
type MissionServiceConfig struct {
	MaxContentLength int
	MaxFileSizeBytes int64
	ChunkWords       int
	OverlapWords     int
}

type missionService struct {
	missionRepo port.MissionRepository
	index       *rag.Index
	embedder    port.Embedder
	storage     port.ObjectStorage
	cfg         MissionServiceConfig
}

// NewMissionService creates a MissionService. storage may be nil when no raw
// archival bucket is configured.
func NewMissionService(
	missionRepo port.MissionRepository,
	index *rag.Index,
	embedder port.Embedder,
	storage port.ObjectStorage,
	cfg MissionServiceConfig,
) MissionService {
	if cfg.MaxContentLength == 0 {
		cfg.MaxContentLength = ingest.DefaultMaxContentLength
	}
	if cfg.ChunkWords == 0 {
		cfg.ChunkWords = rag.DefaultChunkWords
		cfg.OverlapWords = rag.DefaultOverlapWords
	}
	return &missionService{
		missionRepo: missionRepo,
		index:       index,
		embedder:    embedder,
		storage:     storage,
		cfg:         cfg,
	}
}

func (s *missionService) Ingest(ctx context.Context, raw []byte, kind domain.SourceKind, filename string) (*domain.Mission, error) {
	if _, ok := domain.AllowedSourceKinds[kind]; !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedKind, kind)
	}
	if len(raw) == 0 {
		return nil, domain.ErrEmptyContent
	}
	if s.cfg.MaxFileSizeBytes > 0 && int64(len(raw)) > s.cfg.MaxFileSizeBytes {
		return nil, domain.ErrFileTooLarge
	}

	now := time.Now().UTC()
	mission := &domain.Mission{
		ID:         uuid.New(),
		SourceKind: kind,
		Filename:   filename,
		Metadata:   domain.Metadata{},
		Status:     domain.MissionStatusPending,
		IngestedAt: now,
		UpdatedAt:  now,
	}
	if err := s.missionRepo.Create(ctx, mission); err != nil {
		return nil, fmt.Errorf("missionService.Ingest: %w", err)
	}

	parsed, err := ingest.Parse(raw, kind)
	if err != nil {
		// The failure stays visible on the mission record instead of
		// vanishing with the request.
		mission.Status = domain.MissionStatusError
		mission.ErrorMessage = err.Error()
		if updateErr := s.missionRepo.Update(ctx, mission); updateErr != nil {
			return nil, fmt.Errorf("missionService.Ingest: recording parse failure: %w", updateErr)
		}
		log.Printf("ingest: mission %s failed parsing: %v", mission.ID, err)
		return mission, nil
	}

	doc := ingest.NormalizeWithLimit(parsed, kind, s.cfg.MaxContentLength)
	mission.NormalizedContent = doc.Content
	mission.Metadata = doc.Metadata
	mission.Status = domain.MissionStatusIngested

	s.archiveRaw(ctx, mission, raw)

	if err := s.missionRepo.Update(ctx, mission); err != nil {
		return nil, fmt.Errorf("missionService.Ingest: %w", err)
	}

	s.indexMission(ctx, mission)
	return mission, nil
}

// archiveRaw stores the original bytes in object storage. Archival is best
// effort: a storage failure is recorded on mission metadata, not fatal to
// ingestion.
func (s *missionService) archiveRaw(ctx context.Context, mission *domain.Mission, raw []byte) {
	if s.storage == nil {
		return
	}
	key := fmt.Sprintf("missions/%s/raw", mission.ID)
	contentType := domain.AllowedSourceKinds[mission.SourceKind]
	if err := s.storage.Upload(ctx, key, raw, contentType); err != nil {
		log.Printf("ingest: mission %s raw archival failed: %v", mission.ID, err)
		mission.Metadata["raw_archival_error"] = err.Error()
		return
	}
	mission.RawStorageKey = key
}

// indexMission chunks and embeds the canonical content into the retrieval
// index. Retrieval is best-effort context enrichment, so an embedding failure
// (including a missing credential) only logs a warning.
func (s *missionService) indexMission(ctx context.Context, mission *domain.Mission) {
	if s.index == nil || s.embedder == nil {
		return
	}
	if !s.embedder.Configured() {
		log.Printf("ingest: mission %s not indexed: no embedding credential", mission.ID)
		return
	}

	texts := rag.ChunkText(mission.NormalizedContent, s.cfg.ChunkWords, s.cfg.OverlapWords)
	if len(texts) == 0 {
		return
	}
	vecs, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		log.Printf("ingest: mission %s not indexed: %v", mission.ID, err)
		return
	}

	chunks := make([]domain.RetrievalChunk, len(texts))
	for i := range texts {
		chunks[i] = domain.RetrievalChunk{
			MissionID: mission.ID,
			Seq:       i,
			Text:      texts[i],
			Embedding: vecs[i],
		}
	}
	s.index.Add(chunks)
}

func (s *missionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Mission, error) {
	return s.missionRepo.GetByID(ctx, id)
}

func (s *missionService) List(ctx context.Context, offset, limit int) ([]domain.Mission, int, error) {
	return s.missionRepo.List(ctx, offset, limit)
}

func (s *missionService) ListByStatus(ctx context.Context, status domain.MissionStatus, offset, limit int) ([]domain.Mission, int, error) {
	return s.missionRepo.ListByStatus(ctx, status, offset, limit)
}

func (s *missionService) Delete(ctx context.Context, id uuid.UUID) error {
	mission, err := s.missionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	// Analysis history and review rows cascade in the database; the index
	// and raw archive are cleaned here.
	if err := s.missionRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("missionService.Delete: %w", err)
	}
	if s.index != nil {
		s.index.RemoveMission(id)
	}
	if s.storage != nil && mission.RawStorageKey != "" {
		if err := s.storage.Delete(ctx, mission.RawStorageKey); err != nil {
			log.Printf("ingest: mission %s raw archive not deleted: %v", id, err)
		}
	}
	return nil
}
