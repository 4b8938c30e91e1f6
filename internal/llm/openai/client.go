package openai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"missioncopilot/internal/config"
	"missioncopilot/internal/domain"
	"missioncopilot/internal/llm"
)

const (
	defaultModel     = "gpt-4o-mini"
	defaultTimeout   = 60 * time.Second
	defaultMaxTokens = 1024
	// retryBackoff is the pause before the single retry after a provider
	// failure.
	retryBackoff = 2 * time.Second
)

// Client implements port.Extractor against the OpenAI Chat Completions API.
type Client struct {
	api       *openai.Client
	apiKey    string
	model     string
	timeout   time.Duration
	maxTokens int
	backoff   time.Duration
}

// NewClient creates an extraction client from provider config.
func NewClient(cfg *config.LLMConfig) *Client {
	return newClient(cfg, "")
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint
// (for testing).
func NewClientWithEndpoint(cfg *config.LLMConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.LLMConfig, endpoint string) *Client {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = defaultTimeout
	}
	maxTokens := cfg.MaxOutputTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if endpoint != "" {
		apiCfg.BaseURL = endpoint
	}

	return &Client{
		api:       openai.NewClientWithConfig(apiCfg),
		apiKey:    cfg.APIKey,
		model:     model,
		timeout:   timeout,
		maxTokens: maxTokens,
		backoff:   retryBackoff,
	}
}

// Configured reports whether an API credential is available.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Extract runs one structured extraction. The model reply is decoded
// schema-strictly; an unparseable reply triggers a single repair attempt with
// a stricter instruction before the call fails with ErrExtractionFailed.
// Network and timeout failures are retried once with backoff, then surface as
// ErrProviderUnavailable.
func (c *Client) Extract(ctx context.Context, content string, contextChunks []string) (*llm.StructuredResult, error) {
	if !c.Configured() {
		return nil, domain.ErrNoCredential
	}

	userPrompt := llm.BuildUserPrompt(content, contextChunks)

	var inputTokens, outputTokens int
	var lastDecodeErr error

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: llm.SystemPrompt()},
		{Role: openai.ChatMessageRoleUser, Content: userPrompt},
	}

	for attempt := 0; attempt < 2; attempt++ {
		reply, usage, err := c.complete(ctx, messages)
		if err != nil {
			return nil, err
		}
		inputTokens += usage.PromptTokens
		outputTokens += usage.CompletionTokens

		result, decodeErr := llm.DecodeResponse(reply)
		if decodeErr == nil {
			result.InputTokens = inputTokens
			result.OutputTokens = outputTokens
			result.Model = c.model
			return result, nil
		}
		lastDecodeErr = decodeErr

		// Feed the bad reply back with the repair instruction and try once
		// more.
		messages = append(messages,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: llm.RepairPrompt()},
		)
	}

	return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, lastDecodeErr)
}

// complete issues one chat completion with timeout, retrying once with
// backoff on transport failure.
func (c *Client) complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, openai.Usage, error) {
	req := openai.ChatCompletionRequest{
		Model:     c.model,
		Messages:  messages,
		MaxTokens: c.maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			log.Printf("llm: provider call failed, retrying after %s: %v", c.backoff, lastErr)
			select {
			case <-time.After(c.backoff):
			case <-ctx.Done():
				return "", openai.Usage{}, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, ctx.Err())
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.api.CreateChatCompletion(callCtx, req)
		cancel()
		if err != nil {
			lastErr = err
			// A 4xx from the provider will not heal on retry.
			var apiErr *openai.APIError
			if errors.As(err, &apiErr) && apiErr.HTTPStatusCode >= 400 && apiErr.HTTPStatusCode < 500 && apiErr.HTTPStatusCode != 429 {
				return "", openai.Usage{}, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
			}
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("empty response: no choices")
			continue
		}
		return resp.Choices[0].Message.Content, resp.Usage, nil
	}

	return "", openai.Usage{}, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, lastErr)
}
