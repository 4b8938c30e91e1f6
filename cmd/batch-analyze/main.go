package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"missioncopilot/internal/config"
	"missioncopilot/internal/domain"
	"missioncopilot/internal/email/noop"
	openaillm "missioncopilot/internal/llm/openai"
	"missioncopilot/internal/rag"
	"missioncopilot/internal/repository/postgres"
	"missioncopilot/internal/service"
)

// batch-analyze ingests every supported file in a directory and runs a full
// analysis on each, printing one line per mission.
func main() {
	dir := flag.String("dir", "", "directory of mission documents to ingest and analyze")
	useRAG := flag.Bool("rag", true, "retrieve cross-mission context during analysis")
	workers := flag.Int("workers", 2, "number of concurrent analyses")
	flag.Parse()

	if *dir == "" {
		fmt.Fprintln(os.Stderr, "Usage: batch-analyze -dir <path> [-rag=false] [-workers N]")
		os.Exit(1)
	}

	if err := run(*dir, *useRAG, *workers); err != nil {
		log.Fatal(err)
	}
}

func run(dir string, useRAG bool, workers int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	missionRepo := postgres.NewMissionRepo(db)
	analysisRepo := postgres.NewAnalysisRepo(db)

	extractor := openaillm.NewClient(&cfg.LLM)
	if !extractor.Configured() {
		return fmt.Errorf("no LLM credential configured; set MCOPILOT_LLM_API_KEY")
	}
	embedder := openaillm.NewEmbedder(&cfg.LLM)
	index := rag.NewIndex()

	missionSvc := service.NewMissionService(missionRepo, index, embedder, nil, service.MissionServiceConfig{
		MaxContentLength: cfg.Ingest.MaxContentLength,
		MaxFileSizeBytes: cfg.Ingest.MaxFileSizeMB << 20,
		ChunkWords:       cfg.RAG.ChunkWords,
		OverlapWords:     cfg.RAG.OverlapWords,
	})
	analysisSvc := service.NewAnalysisService(missionRepo, analysisRepo, extractor, embedder, index, noop.NewNoopSender(), service.AnalysisServiceConfig{
		MaxConcurrentCalls: cfg.Analysis.MaxConcurrentCalls,
		TopK:               cfg.RAG.TopK,
	})

	ctx := context.Background()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	// Phase 1: ingest everything first so RAG retrieval sees the whole batch.
	var missions []*domain.Mission
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(entry.Name())), ".")
		kind, ok := domain.AllowedExtensions[ext]
		if !ok {
			log.Printf("skipping %s: unsupported extension", entry.Name())
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Printf("skipping %s: %v", entry.Name(), err)
			continue
		}

		mission, err := missionSvc.Ingest(ctx, raw, kind, entry.Name())
		if err != nil {
			log.Printf("ingest failed for %s: %v", entry.Name(), err)
			continue
		}
		if mission.Status == domain.MissionStatusError {
			log.Printf("%s: ingest error: %s", entry.Name(), mission.ErrorMessage)
			continue
		}
		missions = append(missions, mission)
	}
	log.Printf("ingested %d missions from %s", len(missions), dir)

	// Phase 2: analyze with a bounded worker pool.
	if workers <= 0 {
		workers = 2
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for _, mission := range missions {
		wg.Add(1)
		sem <- struct{}{}
		go func(m *domain.Mission) {
			defer wg.Done()
			defer func() { <-sem }()

			result, err := analysisSvc.Analyze(ctx, m.ID, useRAG)
			if err != nil {
				log.Printf("%s: analysis failed: %v", m.Filename, err)
				return
			}
			log.Printf("%s: risk=%s confidence=%.2f tokens=%d cost=$%.4f",
				m.Filename, result.RiskLevel, result.ConfidenceScore, result.TotalTokens, result.EstimatedCost)
		}(mission)
	}
	wg.Wait()

	return nil
}
