package router

import (
	"github.com/gin-gonic/gin"

	"missioncopilot/internal/handler"
	"missioncopilot/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	missionH *handler.MissionHandler,
	analysisH *handler.AnalysisHandler,
	reviewH *handler.ReviewHandler,
	statsH *handler.StatsHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Mission ingestion and lifecycle
	missions := v1.Group("/missions")
	missions.POST("/upload", missionH.Upload)
	missions.POST("/text", missionH.IngestText)
	missions.GET("", missionH.List)
	missions.GET("/:id", missionH.GetByID)
	missions.DELETE("/:id", missionH.Delete)

	// Analysis
	missions.POST("/:id/analyze", analysisH.Analyze)
	missions.GET("/:id/analysis", analysisH.Latest)
	missions.GET("/:id/analysis/history", analysisH.History)

	// Analyst reviews
	missions.PUT("/:id/review", reviewH.Upsert)
	missions.GET("/:id/review", reviewH.GetByMission)
	missions.DELETE("/:id/review", reviewH.Delete)

	// Analytics
	stats := v1.Group("/stats")
	stats.GET("/summary", statsH.Summary)
	stats.GET("/risk-distribution", statsH.RiskDistribution)
	stats.GET("/high-risk", statsH.HighRisk)
	stats.GET("/trends", statsH.Trends)
	stats.GET("/entity-breakdown", statsH.EntityBreakdown)
	stats.GET("/review-status", statsH.ReviewStatus)
	stats.GET("/export/csv", statsH.ExportCSV)
	stats.GET("/export/xlsx", statsH.ExportXLSX)

	return r
}
