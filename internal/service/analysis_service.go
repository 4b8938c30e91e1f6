package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"missioncopilot/internal/confidence"
	"missioncopilot/internal/cost"
	"missioncopilot/internal/domain"
	"missioncopilot/internal/llm"
	"missioncopilot/internal/port"
	"missioncopilot/internal/rag"
)

// retrievalQueryWords is how much of the mission content forms the retrieval
// query.
const retrievalQueryWords = 120

// AnalysisService orchestrates one end-to-end analysis: retrieval, the model
// call, cost and confidence computation, and the mission status machine.
type AnalysisService interface {
	// Analyze runs a full analysis of an ingested mission. Re-analyzing an
	// already analyzed mission appends to its history. The caller's ctx
	// cancels waiting for a call slot; an in-flight model response is still
	// persisted to history, but the status transition is skipped when the
	// ctx is already done.
	Analyze(ctx context.Context, missionID uuid.UUID, useRAG bool) (*domain.AnalysisResult, error)
	Latest(ctx context.Context, missionID uuid.UUID) (*domain.AnalysisResult, error)
	History(ctx context.Context, missionID uuid.UUID) ([]domain.AnalysisResult, error)
}

// AnalysisServiceConfig holds orchestrator tuning.
type AnalysisServiceConfig struct {
	// MaxConcurrentCalls bounds in-flight model calls across all missions;
	// the provider is a constrained shared resource.
	MaxConcurrentCalls int
	TopK               int
	AlertRecipients    []string
}

type analysisService struct {
	missionRepo  port.MissionRepository
	analysisRepo port.AnalysisRepository
	extractor    port.Extractor
	embedder     port.Embedder
	index        *rag.Index
	alerts       port.AlertSender
	callSlots    chan struct{}
	cfg          AnalysisServiceConfig
}

// NewAnalysisService creates an AnalysisService. alerts may be nil to disable
// risk notifications.
func NewAnalysisService(
	missionRepo port.MissionRepository,
	analysisRepo port.AnalysisRepository,
	extractor port.Extractor,
	embedder port.Embedder,
	index *rag.Index,
	alerts port.AlertSender,
	cfg AnalysisServiceConfig,
) AnalysisService {
	if cfg.MaxConcurrentCalls <= 0 {
		cfg.MaxConcurrentCalls = 4
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 3
	}
	return &analysisService{
		missionRepo:  missionRepo,
		analysisRepo: analysisRepo,
		extractor:    extractor,
		embedder:     embedder,
		index:        index,
		alerts:       alerts,
		callSlots:    make(chan struct{}, cfg.MaxConcurrentCalls),
		cfg:          cfg,
	}
}

func (s *analysisService) Analyze(ctx context.Context, missionID uuid.UUID, useRAG bool) (*domain.AnalysisResult, error) {
	mission, err := s.missionRepo.GetByID(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if !mission.Status.Analyzable() {
		return nil, fmt.Errorf("%w: status is %q", domain.ErrInvalidState, mission.Status)
	}
	// Credential is checked before any status mutation so a misconfigured
	// deployment leaves missions untouched and re-analyzable.
	if s.extractor == nil || !s.extractor.Configured() {
		return nil, domain.ErrNoCredential
	}

	// The analyzing status is persisted before the external call begins and
	// the record is released for its duration; a crash mid-call leaves a
	// visibly stuck mission rather than a false analyzed.
	if err := s.missionRepo.UpdateStatus(ctx, missionID, domain.MissionStatusAnalyzing, ""); err != nil {
		return nil, fmt.Errorf("analysisService.Analyze: %w", err)
	}

	select {
	case s.callSlots <- struct{}{}:
	case <-ctx.Done():
		s.markError(missionID, "analysis abandoned while waiting for a call slot")
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, ctx.Err())
	}
	defer func() { <-s.callSlots }()

	contextChunks := s.retrieveContext(ctx, mission, useRAG)

	result, err := s.extractor.Extract(ctx, mission.NormalizedContent, contextChunks)
	if err != nil {
		if ctx.Err() != nil {
			// Caller abandoned the analysis; the mission is left in
			// analyzing rather than error so the state reflects what
			// actually happened.
			return nil, err
		}
		s.markError(missionID, err.Error())
		return nil, err
	}

	return s.commit(ctx, mission, result, useRAG && len(contextChunks) > 0)
}

// retrieveContext fetches supporting chunks from the index. No context (RAG
// disabled, empty index, or embedding failure) is a valid, analyzable state.
func (s *analysisService) retrieveContext(ctx context.Context, mission *domain.Mission, useRAG bool) []string {
	if !useRAG || s.index == nil || s.embedder == nil || !s.embedder.Configured() {
		return nil
	}

	query := retrievalQuery(mission.NormalizedContent)
	vecs, err := s.embedder.Embed(ctx, []string{query})
	if err != nil || len(vecs) == 0 {
		log.Printf("analysis: mission %s retrieval skipped: %v", mission.ID, err)
		return nil
	}

	scored := s.index.Retrieve(vecs[0], s.cfg.TopK, mission.ID)
	chunks := make([]string, 0, len(scored))
	for _, sc := range scored {
		chunks = append(chunks, sc.Chunk.Text)
	}
	return chunks
}

// commit persists the result, cost, and confidence as one atomic unit
// together with the status transition. The write uses a fresh context so an
// abandoned caller cannot tear a half-committed analysis; cancellation only
// downgrades the commit to history-without-transition.
func (s *analysisService) commit(ctx context.Context, mission *domain.Mission, extracted *llm.StructuredResult, usedRAG bool) (*domain.AnalysisResult, error) {
	estimatedCost, known := cost.Estimate(extracted.Model, extracted.InputTokens, extracted.OutputTokens)

	var missionMeta domain.Metadata
	if !known {
		missionMeta = domain.Metadata{"cost_warning": fmt.Sprintf("cost unknown for model %q", extracted.Model)}
	}
	if len(extracted.Warnings) > 0 {
		if missionMeta == nil {
			missionMeta = domain.Metadata{}
		}
		missionMeta["analysis_warnings"] = strings.Join(extracted.Warnings, "; ")
	}

	result := &domain.AnalysisResult{
		ID:              uuid.New(),
		MissionID:       mission.ID,
		Summary:         extracted.Summary,
		Entities:        extracted.Entities,
		RiskLevel:       extracted.RiskLevel,
		Explanation:     extracted.Explanation,
		ConfidenceScore: confidence.Score(extracted),
		ConfidenceNote:  confidence.Disclaimer,
		InputTokens:     extracted.InputTokens,
		OutputTokens:    extracted.OutputTokens,
		TotalTokens:     extracted.InputTokens + extracted.OutputTokens,
		EstimatedCost:   estimatedCost,
		Model:           extracted.Model,
		UsedRAG:         usedRAG,
		CreatedAt:       time.Now().UTC(),
	}

	markAnalyzed := ctx.Err() == nil

	commitCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.analysisRepo.Commit(commitCtx, result, missionMeta, markAnalyzed); err != nil {
		s.markError(mission.ID, "persisting analysis result: "+err.Error())
		return nil, fmt.Errorf("analysisService.commit: %w", err)
	}

	if markAnalyzed {
		s.sendAlert(mission, result)
	}
	return result, nil
}

func (s *analysisService) sendAlert(mission *domain.Mission, result *domain.AnalysisResult) {
	if s.alerts == nil || len(s.cfg.AlertRecipients) == 0 || !result.RiskLevel.AlertWorthy() {
		return
	}
	subject := fmt.Sprintf("[%s] risk flagged for mission %s", strings.ToUpper(string(result.RiskLevel)), mission.Filename)
	body := fmt.Sprintf("Mission %s was classified %s.\n\nSummary: %s\n\nExplanation: %s\n\nConfidence: %.2f (%s)",
		mission.ID, result.RiskLevel, result.Summary, result.Explanation, result.ConfidenceScore, result.ConfidenceNote)

	alertCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.alerts.SendRiskAlert(alertCtx, s.cfg.AlertRecipients, subject, body); err != nil {
		log.Printf("analysis: mission %s risk alert not delivered: %v", mission.ID, err)
	}
}

// markError records a terminal failure on the mission. The write uses a
// fresh context: error states must land even when the request that caused
// them is gone.
func (s *analysisService) markError(missionID uuid.UUID, message string) {
	writeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.missionRepo.UpdateStatus(writeCtx, missionID, domain.MissionStatusError, message); err != nil {
		log.Printf("analysis: mission %s error status not recorded: %v", missionID, err)
	}
}

func (s *analysisService) Latest(ctx context.Context, missionID uuid.UUID) (*domain.AnalysisResult, error) {
	if _, err := s.missionRepo.GetByID(ctx, missionID); err != nil {
		return nil, err
	}
	return s.analysisRepo.Latest(ctx, missionID)
}

func (s *analysisService) History(ctx context.Context, missionID uuid.UUID) ([]domain.AnalysisResult, error) {
	if _, err := s.missionRepo.GetByID(ctx, missionID); err != nil {
		return nil, err
	}
	return s.analysisRepo.History(ctx, missionID)
}

// retrievalQuery takes the head of the content as the similarity query.
func retrievalQuery(content string) string {
	words := strings.Fields(content)
	if len(words) > retrievalQueryWords {
		words = words[:retrievalQueryWords]
	}
	return strings.Join(words, " ")
}
