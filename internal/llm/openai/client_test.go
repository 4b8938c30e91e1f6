package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"missioncopilot/internal/config"
	"missioncopilot/internal/domain"
)

// chatResponse builds a minimal chat completion payload around the given
// reply content.
func chatResponse(content string, promptTokens, completionTokens int) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     promptTokens,
			"completion_tokens": completionTokens,
			"total_tokens":      promptTokens + completionTokens,
		},
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClientWithEndpoint(&config.LLMConfig{APIKey: "test-key", TimeoutSecs: 5}, srv.URL+"/v1")
	c.backoff = time.Millisecond
	return c
}

const validReply = `{"summary": "Operation Falcon secures the river crossing.", "entities": [{"type": "operation", "name": "Falcon"}], "risk_level": "low", "explanation": "No opposing activity reported."}`

func TestExtract_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse(validReply, 120, 40))
	})

	result, err := client.Extract(context.Background(), "mission content", nil)
	require.NoError(t, err)

	assert.Equal(t, domain.RiskLow, result.RiskLevel)
	assert.Equal(t, 120, result.InputTokens)
	assert.Equal(t, 40, result.OutputTokens)
	assert.Equal(t, "gpt-4o-mini", result.Model)
	require.Len(t, result.Entities, 1)
	assert.Equal(t, "Falcon", result.Entities[0].Name)
}

func TestExtract_RepairAttemptSucceeds(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			json.NewEncoder(w).Encode(chatResponse("sorry, I cannot produce JSON", 100, 20))
			return
		}
		json.NewEncoder(w).Encode(chatResponse(validReply, 150, 45))
	})

	result, err := client.Extract(context.Background(), "mission content", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	// Usage accumulates across the failed and the repair attempt.
	assert.Equal(t, 250, result.InputTokens)
	assert.Equal(t, 65, result.OutputTokens)
}

func TestExtract_UnparseableTwice(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(chatResponse("still not json", 10, 5))
	})

	_, err := client.Extract(context.Background(), "mission content", nil)

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Equal(t, 2, calls)
}

func TestExtract_ProviderDown(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "overloaded"}}`, http.StatusInternalServerError)
	})

	_, err := client.Extract(context.Background(), "mission content", nil)

	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestExtract_BadRequestNotRetried(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"error": {"message": "invalid model"}}`, http.StatusBadRequest)
	})

	_, err := client.Extract(context.Background(), "mission content", nil)

	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
	assert.Equal(t, 1, calls)
}

func TestExtract_NoCredential(t *testing.T) {
	client := NewClient(&config.LLMConfig{})

	assert.False(t, client.Configured())
	_, err := client.Extract(context.Background(), "mission content", nil)
	assert.ErrorIs(t, err, domain.ErrNoCredential)
}
