package rag

import (
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"missioncopilot/internal/domain"
)

// Scored pairs a retrieval chunk with its similarity to the query.
type Scored struct {
	Chunk domain.RetrievalChunk
	Score float64
}

// Index is the in-memory vector index over mission chunks. It is rebuilt on
// process restart: retrieval is best-effort context enrichment, not a system
// of record. Mutations are exclusive with reads so retrieval never observes
// half-inserted or dangling chunks.
type Index struct {
	mu sync.RWMutex
	// chunks in insertion order; order is the retrieval tie-break.
	chunks []domain.RetrievalChunk
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{}
}

// Add appends embedded chunks for a mission. Chunks are immutable once
// indexed.
func (ix *Index) Add(chunks []domain.RetrievalChunk) {
	if len(chunks) == 0 {
		return
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.chunks = append(ix.chunks, chunks...)
}

// RemoveMission drops every chunk owned by the mission, so deleted missions
// can never produce stale retrieval hits.
func (ix *Index) RemoveMission(missionID uuid.UUID) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	kept := ix.chunks[:0]
	for _, c := range ix.chunks {
		if c.MissionID != missionID {
			kept = append(kept, c)
		}
	}
	ix.chunks = kept
}

// Len reports the number of indexed chunks.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.chunks)
}

// Retrieve ranks all indexed chunks by cosine similarity to the query vector
// and returns the top k in descending order. Ties break toward the
// earlier-indexed chunk for determinism. Chunks owned by exclude are skipped
// so a mission does not retrieve itself as context. An empty index returns an
// empty result, not an error.
func (ix *Index) Retrieve(queryVec []float32, k int, exclude uuid.UUID) []Scored {
	if k <= 0 || len(queryVec) == 0 {
		return nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	type ranked struct {
		pos int
		s   Scored
	}
	var candidates []ranked
	for pos, c := range ix.chunks {
		if c.MissionID == exclude {
			continue
		}
		score := cosine(queryVec, c.Embedding)
		if math.IsNaN(score) {
			continue
		}
		candidates = append(candidates, ranked{pos: pos, s: Scored{Chunk: c, Score: score}})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].s.Score != candidates[j].s.Score {
			return candidates[i].s.Score > candidates[j].s.Score
		}
		return candidates[i].pos < candidates[j].pos
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	out := make([]Scored, len(candidates))
	for i, c := range candidates {
		out[i] = c.s
	}
	return out
}

func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return math.NaN()
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return math.NaN()
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
