package ai

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"YoDawg/core"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(Backend{Model: "test-model", BaseURL: server.URL, ApiKey: "sk-test"}, 5*time.Second, log)
}

func TestClient_Complete(t *testing.T) {
	var got GPTRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"id":"c1","model":"test-model","choices":[{"index":0,"message":{"role":"assistant","content":"YO DAWG|||x"}}]}`)
	})

	reply, err := client.Complete(context.Background(), "make a meme")

	require.NoError(t, err)
	assert.Equal(t, "YO DAWG|||x", reply)
	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, []Message{{Role: "user", Content: "make a meme"}}, got.Messages)
}

func TestClient_CompleteErrors(t *testing.T) {
	tests := map[string]string{
		"api error":     `{"error":{"message":"invalid key","type":"auth"}}`,
		"empty choices": `{"id":"c1","choices":[]}`,
		"not json":      `oops`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, body)
			})

			_, err := client.Complete(context.Background(), "prompt")

			assert.Error(t, err)
		})
	}
}

func TestClient_GenerateImage(t *testing.T) {
	var got ImageGenerationRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/responses", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"id":"r1","output":[{"id":"m","type":"message"},{"id":"ig","type":"image_generation_call","status":"completed","result":"aGk="}]}`)
	})

	items, err := client.GenerateImage(context.Background(), "draw it")

	require.NoError(t, err)
	assert.Equal(t, "draw it", got.Input)
	assert.Equal(t, []Tool{{Type: "image_generation"}}, got.Tools)
	require.Len(t, items, 2)
	assert.Equal(t, core.OutputItem{ID: "ig", Type: core.OutputItemImageGeneration, Status: "completed", Result: "aGk="}, items[1])
}

func TestClient_GenerateImageError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"message":"tool not supported"}}`)
	})

	_, err := client.GenerateImage(context.Background(), "draw it")

	assert.ErrorContains(t, err, "tool not supported")
}
