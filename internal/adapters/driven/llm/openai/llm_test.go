package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsage/docsage/internal/core/domain"
	"github.com/docsage/docsage/internal/core/ports/driven"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *GenerationService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewGenerationService(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
	})
	require.NoError(t, err)
	return svc
}

func TestNewGenerationService_RequiresAPIKey(t *testing.T) {
	_, err := NewGenerationService(Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGenerationUnavailable)
}

func TestChat_ForwardsHistoryInOrder(t *testing.T) {
	var received chatCompletionRequest

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Write([]byte(`{"choices": [{"message": {"content": "hi there"}}]}`))
	})

	messages := []driven.ChatMessage{
		{Role: "system", Content: "be helpful"},
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "reply"},
		{Role: "user", Content: "second"},
	}

	answer, err := svc.Chat(context.Background(), messages, driven.ChatOptions{Temperature: 0.3})
	require.NoError(t, err)
	assert.Equal(t, "hi there", answer)

	require.Len(t, received.Messages, 4)
	for i, msg := range messages {
		assert.Equal(t, msg.Role, received.Messages[i].Role)
		assert.Equal(t, msg.Content, received.Messages[i].Content)
	}
	assert.Equal(t, "test-model", received.Model)
	assert.InDelta(t, 0.3, received.Temperature, 1e-9)
}

func TestChat_UpstreamError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limit reached", "type": "rate_limit"}}`))
	})

	_, err := svc.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "x"}}, driven.ChatOptions{})
	require.Error(t, err)

	var svcErr *domain.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "generation", svcErr.Service)
	assert.Equal(t, http.StatusTooManyRequests, svcErr.StatusCode)
	assert.Equal(t, "rate limit reached", svcErr.Detail)
}

func TestChat_NoChoices(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	})

	_, err := svc.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "x"}}, driven.ChatOptions{})
	require.Error(t, err)

	var svcErr *domain.ServiceError
	assert.ErrorAs(t, err, &svcErr)
}

func TestGenerate(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		w.Write([]byte(`{"choices": [{"message": {"content": "Password Hygiene"}}]}`))
	})

	title, err := svc.Generate(context.Background(), "suggest a title", driven.GenerateOptions{MaxTokens: 16})
	require.NoError(t, err)
	assert.Equal(t, "Password Hygiene", title)
}

func TestDefaults(t *testing.T) {
	svc, err := NewGenerationService(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, svc.ModelName())
}
