package port

import (
	"context"

	"missioncopilot/internal/llm"
)

// Extractor abstracts the structured-extraction call to a language model.
type Extractor interface {
	// Extract runs one structured analysis of the mission content, optionally
	// grounded on retrieved context chunks. Implementations own retry,
	// timeout, and repair policy; callers receive either a fully validated
	// result or a typed failure.
	Extract(ctx context.Context, content string, contextChunks []string) (*llm.StructuredResult, error)
	// Configured reports whether a provider credential is available.
	Configured() bool
}

// Embedder abstracts the embedding provider used by the vector index.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Configured() bool
}
