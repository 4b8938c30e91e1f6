package domain

import (
	"time"

	"github.com/google/uuid"
)

// StatsSummary is the dashboard roll-up across all missions.
type StatsSummary struct {
	TotalMissions    int     `db:"total_missions" json:"total_missions"`
	AnalyzedMissions int     `db:"analyzed_missions" json:"analyzed_missions"`
	ErrorMissions    int     `db:"error_missions" json:"error_missions"`
	TotalAnalyses    int     `db:"total_analyses" json:"total_analyses"`
	TotalTokens      int     `db:"total_tokens" json:"total_tokens"`
	TotalCost        float64 `db:"total_cost" json:"total_cost"`
	AvgConfidence    float64 `db:"avg_confidence" json:"avg_confidence"`
}

// ExportRow is one mission joined with its current analysis result, flattened
// for CSV/XLSX export. Analysis fields are nil for missions never analyzed.
type ExportRow struct {
	MissionID     uuid.UUID     `db:"mission_id"`
	Filename      string        `db:"filename"`
	SourceKind    SourceKind    `db:"source_kind"`
	Status        MissionStatus `db:"status"`
	IngestedAt    time.Time     `db:"ingested_at"`
	ErrorMessage  string        `db:"error_message"`
	RiskLevel     *RiskLevel    `db:"risk_level"`
	Summary       *string       `db:"summary"`
	Confidence    *float64      `db:"confidence_score"`
	TotalTokens   *int          `db:"total_tokens"`
	EstimatedCost *float64      `db:"estimated_cost"`
	Model         *string       `db:"model"`
	AnalyzedAt    *time.Time    `db:"analyzed_at"`
}

// DailyTrend is one day of pipeline activity: missions ingested plus the
// token and cost totals of analyses created that day.
type DailyTrend struct {
	Date          string  `db:"day" json:"date"`
	MissionCount  int     `db:"mission_count" json:"mission_count"`
	TokensUsed    int     `db:"tokens_used" json:"tokens_used"`
	EstimatedCost float64 `db:"estimated_cost" json:"estimated_cost"`
}

// TrendsReport is the daily activity series over a requested window.
type TrendsReport struct {
	Days        []DailyTrend `json:"days"`
	PeriodStart string       `json:"period_start"`
	PeriodEnd   string       `json:"period_end"`
}

// EntityTypeCount is one entity type with its occurrence count.
type EntityTypeCount struct {
	EntityType string `db:"entity_type" json:"entity_type"`
	Count      int    `db:"n" json:"count"`
}

// EntityBreakdown aggregates extracted entities by type.
type EntityBreakdown struct {
	Entities      []EntityTypeCount `json:"entities"`
	TotalEntities int               `json:"total_entities"`
}

// ReviewStatusCounts is the analyst review roll-up across all missions.
type ReviewStatusCounts struct {
	PendingReview int `db:"pending_review" json:"pending_review"`
	Approved      int `db:"approved" json:"approved"`
	NotReviewed   int `db:"not_reviewed" json:"not_reviewed"`
	Total         int `db:"total" json:"total"`
}

// HighRiskMission is one row of the high/critical risk listing.
type HighRiskMission struct {
	MissionID  uuid.UUID `db:"mission_id" json:"mission_id"`
	Filename   string    `db:"filename" json:"filename"`
	RiskLevel  RiskLevel `db:"risk_level" json:"risk_level"`
	Summary    string    `db:"summary" json:"summary"`
	Confidence float64   `db:"confidence_score" json:"confidence_score"`
	AnalyzedAt time.Time `db:"created_at" json:"analyzed_at"`
}
