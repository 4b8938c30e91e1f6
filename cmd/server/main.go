package main

import (
	"fmt"
	"log"

	"missioncopilot/internal/config"
	"missioncopilot/internal/email/noop"
	"missioncopilot/internal/email/ses"
	"missioncopilot/internal/handler"
	openaillm "missioncopilot/internal/llm/openai"
	"missioncopilot/internal/port"
	"missioncopilot/internal/rag"
	"missioncopilot/internal/repository/postgres"
	"missioncopilot/internal/router"
	"missioncopilot/internal/service"
	s3storage "missioncopilot/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	missionRepo := postgres.NewMissionRepo(db)
	analysisRepo := postgres.NewAnalysisRepo(db)
	reviewRepo := postgres.NewReviewRepo(db)
	statsRepo := postgres.NewStatsRepo(db)

	// Initialize raw upload archival (optional)
	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Initialize risk alert delivery
	var alerts port.AlertSender
	switch cfg.Email.Provider {
	case "ses":
		alerts, err = ses.NewSESSender(&cfg.Email)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		alerts = noop.NewNoopSender()
	}

	// LLM client, embedder, and the in-memory retrieval index
	extractor := openaillm.NewClient(&cfg.LLM)
	embedder := openaillm.NewEmbedder(&cfg.LLM)
	index := rag.NewIndex()
	if !extractor.Configured() {
		log.Println("warning: no LLM credential configured; analysis will be unavailable")
	}

	// Initialize services
	missionSvc := service.NewMissionService(missionRepo, index, embedder, storage, service.MissionServiceConfig{
		MaxContentLength: cfg.Ingest.MaxContentLength,
		MaxFileSizeBytes: cfg.Ingest.MaxFileSizeMB << 20,
		ChunkWords:       cfg.RAG.ChunkWords,
		OverlapWords:     cfg.RAG.OverlapWords,
	})
	analysisSvc := service.NewAnalysisService(missionRepo, analysisRepo, extractor, embedder, index, alerts, service.AnalysisServiceConfig{
		MaxConcurrentCalls: cfg.Analysis.MaxConcurrentCalls,
		TopK:               cfg.RAG.TopK,
		AlertRecipients:    cfg.Email.AlertTo,
	})
	reviewSvc := service.NewReviewService(reviewRepo, missionRepo)
	statsSvc := service.NewStatsService(statsRepo)

	// Initialize handlers
	missionH := handler.NewMissionHandler(missionSvc, cfg.Ingest.MaxFileSizeMB<<20)
	analysisH := handler.NewAnalysisHandler(analysisSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)
	statsH := handler.NewStatsHandler(statsSvc)
	healthH := handler.NewHealthHandler(db, extractor, index)

	// Setup router
	r := router.Setup(missionH, analysisH, reviewH, statsH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
