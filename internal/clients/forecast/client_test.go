package forecast

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiinbox/dayflow-api/pkg/config"
)

func TestClientComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 1)

		_ = json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{{Message: chatMessage{Role: "assistant", Content: "  A calm, focused day ahead.\n"}}},
		})
	}))
	defer srv.Close()

	c := NewClient(config.ForecastConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "test-model",
		Timeout: 5 * time.Second,
	})

	text, err := c.Complete(context.Background(), "Forecast my day")
	require.NoError(t, err)
	assert.Equal(t, "A calm, focused day ahead.", text)
}

func TestClientCompleteUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(config.ForecastConfig{BaseURL: srv.URL, Model: "test-model", Timeout: 5 * time.Second})

	_, err := c.Complete(context.Background(), "Forecast my day")
	assert.Error(t, err)
}

func TestClientCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient(config.ForecastConfig{BaseURL: srv.URL, Model: "test-model", Timeout: 5 * time.Second})

	_, err := c.Complete(context.Background(), "Forecast my day")
	assert.Error(t, err)
}
