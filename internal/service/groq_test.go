package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardapio-inteligente/backend/config"
)

func groqTestService(t *testing.T, handler http.HandlerFunc) (*GroqService, *int32) {
	t.Helper()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		GroqAPIKey: "test-api-key",
		GroqAPIURL: srv.URL,
	}
	return NewGroqService(cfg, srv.Client()), &calls
}

func TestGroqService_Complete(t *testing.T) {
	t.Run("should return text and usage metadata on success", func(t *testing.T) {
		svc, _ := groqTestService(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))

			var req chatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, defaultGroqModel, req.Model)
			assert.InDelta(t, 0.7, req.Temperature, 0.001)
			assert.Equal(t, 2048, req.MaxTokens)
			assert.False(t, req.Stream)
			require.Len(t, req.Messages, 2)
			assert.Equal(t, "system", req.Messages[0].Role)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"model": "llama-3.3-70b-versatile",
				"choices": [{"message": {"content": "{\"titulo\":\"Teste\"}"}}],
				"usage": {"total_tokens": 321}
			}`))
		})

		completion, err := svc.Complete(context.Background(), "qualquer prompt")

		require.NoError(t, err)
		assert.Equal(t, `{"titulo":"Teste"}`, completion.Text)
		assert.Equal(t, 321, completion.TokensUsed)
		assert.Equal(t, "llama-3.3-70b-versatile", completion.Model)
	})

	t.Run("should fail without API key before any network call", func(t *testing.T) {
		svc, calls := groqTestService(t, func(w http.ResponseWriter, r *http.Request) {})
		svc.apiKey = ""

		completion, err := svc.Complete(context.Background(), "prompt")

		assert.Nil(t, completion)
		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Contains(t, cfgErr.Message, "GROQ_API_KEY")
		assert.Equal(t, int32(0), atomic.LoadInt32(calls))
	})

	t.Run("should wrap non-2xx responses as upstream errors", func(t *testing.T) {
		svc, _ := groqTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"rate limit exceeded"}}`))
		})

		_, err := svc.Complete(context.Background(), "prompt")

		var upErr *UpstreamError
		require.ErrorAs(t, err, &upErr)
		assert.Contains(t, upErr.Message, "429")
		assert.Contains(t, upErr.Message, "rate limit exceeded")
	})

	t.Run("should report empty choices as an empty response", func(t *testing.T) {
		svc, _ := groqTestService(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices": [], "usage": {"total_tokens": 0}}`))
		})

		_, err := svc.Complete(context.Background(), "prompt")

		var emptyErr *EmptyResponseError
		assert.ErrorAs(t, err, &emptyErr)
	})

	t.Run("should report blank content as an empty response", func(t *testing.T) {
		svc, _ := groqTestService(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "  "}}]}`))
		})

		_, err := svc.Complete(context.Background(), "prompt")

		var emptyErr *EmptyResponseError
		assert.ErrorAs(t, err, &emptyErr)
	})

	t.Run("should flag context timeouts", func(t *testing.T) {
		svc, _ := groqTestService(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "tarde demais"}}]}`))
		})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := svc.Complete(ctx, "prompt")

		var upErr *UpstreamError
		require.ErrorAs(t, err, &upErr)
		assert.True(t, upErr.Timeout)
	})

	t.Run("should fall back to the configured model name", func(t *testing.T) {
		svc, _ := groqTestService(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "ok"}}], "usage": {"total_tokens": 5}}`))
		})

		completion, err := svc.Complete(context.Background(), "prompt")

		require.NoError(t, err)
		assert.Equal(t, defaultGroqModel, completion.Model)
	})
}

func TestNewGroqService(t *testing.T) {
	t.Run("should apply endpoint and model defaults", func(t *testing.T) {
		svc := NewGroqService(&config.Config{GroqAPIKey: "k"}, nil)

		assert.Equal(t, defaultGroqAPIURL, svc.apiURL)
		assert.Equal(t, defaultGroqModel, svc.model)
		assert.Equal(t, defaultHTTPTimeout, svc.client.Timeout)
		assert.True(t, svc.Configured())
	})

	t.Run("should report missing key", func(t *testing.T) {
		svc := NewGroqService(&config.Config{}, nil)
		assert.False(t, svc.Configured())
	})
}
