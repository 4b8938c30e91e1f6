package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"missioncopilot/internal/config"
	"missioncopilot/internal/domain"
)

const defaultEmbeddingModel = string(openai.SmallEmbedding3)

// Embedder implements port.Embedder against the OpenAI Embeddings API.
type Embedder struct {
	api     *openai.Client
	apiKey  string
	model   openai.EmbeddingModel
	timeout time.Duration
}

// NewEmbedder creates an embedding client from provider config.
func NewEmbedder(cfg *config.LLMConfig) *Embedder {
	return newEmbedder(cfg, "")
}

// NewEmbedderWithEndpoint creates an embedder pointing at a custom API
// endpoint (for testing).
func NewEmbedderWithEndpoint(cfg *config.LLMConfig, endpoint string) *Embedder {
	return newEmbedder(cfg, endpoint)
}

func newEmbedder(cfg *config.LLMConfig, endpoint string) *Embedder {
	model := cfg.EmbeddingModel
	if model == "" {
		model = defaultEmbeddingModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = defaultTimeout
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if endpoint != "" {
		apiCfg.BaseURL = endpoint
	}

	return &Embedder{
		api:     openai.NewClientWithConfig(apiCfg),
		apiKey:  cfg.APIKey,
		model:   openai.EmbeddingModel(model),
		timeout: timeout,
	}
}

// Configured reports whether an API credential is available.
func (e *Embedder) Configured() bool {
	return e.apiKey != ""
}

// Embed returns one vector per input text, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if !e.Configured() {
		return nil, domain.ErrNoCredential
	}
	if len(texts) == 0 {
		return nil, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.api.CreateEmbeddings(callCtx, openai.EmbeddingRequest{
		Model: e.model,
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: embeddings: %v", domain.ErrProviderUnavailable, err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: embeddings: got %d vectors for %d inputs",
			domain.ErrProviderUnavailable, len(resp.Data), len(texts))
	}

	out := make([][]float32, len(texts))
	for _, d := range resp.Data {
		out[d.Index] = d.Embedding
	}
	return out, nil
}
