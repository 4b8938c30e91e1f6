package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Metadata is a free-form JSON bag attached to a mission. Parsers and the
// normalizer record format-specific facts here (page count, delimiter,
// row count, truncation, cost warnings).
type Metadata map[string]any

// Value implements driver.Valuer so Metadata persists as JSONB.
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *Metadata) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	case nil:
		*m = Metadata{}
		return nil
	}
	return fmt.Errorf("metadata: cannot scan %T", src)
}

// Mission is one ingested input in its canonical normalized form.
type Mission struct {
	ID                uuid.UUID     `db:"id" json:"id"`
	SourceKind        SourceKind    `db:"source_kind" json:"source_kind"`
	Filename          string        `db:"filename" json:"filename"`
	NormalizedContent string        `db:"normalized_content" json:"normalized_content"`
	Metadata          Metadata      `db:"metadata" json:"metadata"`
	Status            MissionStatus `db:"status" json:"status"`
	ErrorMessage      string        `db:"error_message" json:"error_message,omitempty"`
	RawStorageKey     string        `db:"raw_storage_key" json:"raw_storage_key,omitempty"`
	IngestedAt        time.Time     `db:"ingested_at" json:"ingested_at"`
	UpdatedAt         time.Time     `db:"updated_at" json:"updated_at"`
}

// Entity is one extracted entity within an analysis result.
type Entity struct {
	Type string `json:"type"`
	Name string `json:"name"`
	Span string `json:"span,omitempty"`
}

// EntityList persists as a JSONB array on the analysis result row.
type EntityList []Entity

// Value implements driver.Valuer.
func (e EntityList) Value() (driver.Value, error) {
	if e == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(e)
}

// Scan implements sql.Scanner.
func (e *EntityList) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, e)
	case string:
		return json.Unmarshal([]byte(v), e)
	case nil:
		*e = EntityList{}
		return nil
	}
	return fmt.Errorf("entity list: cannot scan %T", src)
}

// AnalysisResult is one model-generated analysis of a mission. A mission
// keeps its full analysis history; the current result is the newest by
// CreatedAt.
type AnalysisResult struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	MissionID       uuid.UUID  `db:"mission_id" json:"mission_id"`
	Summary         string     `db:"summary" json:"summary"`
	Entities        EntityList `db:"entities" json:"entities"`
	RiskLevel       RiskLevel  `db:"risk_level" json:"risk_level"`
	Explanation     string     `db:"explanation" json:"explanation"`
	ConfidenceScore float64    `db:"confidence_score" json:"confidence_score"`
	// ConfidenceNote restates at presentation time that the score is a
	// surface-signal heuristic, not a calibrated probability.
	ConfidenceNote string    `db:"confidence_note" json:"confidence_note"`
	InputTokens    int       `db:"input_tokens" json:"input_tokens"`
	OutputTokens   int       `db:"output_tokens" json:"output_tokens"`
	TotalTokens    int       `db:"total_tokens" json:"total_tokens"`
	EstimatedCost  float64   `db:"estimated_cost" json:"estimated_cost"`
	Model          string    `db:"model" json:"model"`
	UsedRAG        bool      `db:"used_rag" json:"used_rag"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Review is the analyst annotation layered on a mission. It has its own
// lifecycle and is never required for analysis to proceed.
type Review struct {
	ID         uuid.UUID `db:"id" json:"id"`
	MissionID  uuid.UUID `db:"mission_id" json:"mission_id"`
	Notes      string    `db:"notes" json:"notes"`
	Approved   bool      `db:"approved" json:"approved"`
	ReviewedAt time.Time `db:"reviewed_at" json:"reviewed_at"`
}

// RetrievalChunk is an embedded slice of a mission's normalized content held
// in the in-memory vector index. Chunks are immutable once indexed and are
// removed when their mission is deleted.
type RetrievalChunk struct {
	MissionID uuid.UUID `json:"mission_id"`
	Seq       int       `json:"seq"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"-"`
}
