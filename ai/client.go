package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"YoDawg/core"
	"YoDawg/lib/sl"
)

// Client talks to an OpenAI compatible API (OpenAI itself or Ollama).
// It serves as both the completion service and the image service.
type Client struct {
	backend    Backend
	log        *slog.Logger
	httpClient *http.Client
}

func NewClient(backend Backend, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		backend: backend,
		log: log.With(
			sl.Module("ai"),
			slog.String("model", backend.Model),
		),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Backend() Backend {
	return c.backend
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	var chatCompletion ChatCompletion
	if err := c.post(ctx, "/chat/completions", NewRequest(prompt, c.backend.Model), &chatCompletion); err != nil {
		return "", err
	}

	if chatCompletion.Error != nil && chatCompletion.Error.Message != "" {
		return "", fmt.Errorf("chat completion: %s", chatCompletion.Error.Message)
	}
	c.log.With(
		slog.String("id", chatCompletion.ID),
		slog.Int("choices", len(chatCompletion.Choices)),
	).Info("chat completion")
	if len(chatCompletion.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty choices")
	}

	response := chatCompletion.Choices[0].Message.Content
	c.log.With(sl.Short("text", response)).Debug("completion text")
	return response, nil
}

func (c *Client) GenerateImage(ctx context.Context, prompt string) ([]core.OutputItem, error) {
	var response ImageGenerationResponse
	if err := c.post(ctx, "/responses", NewImageRequest(prompt, c.backend.Model), &response); err != nil {
		return nil, err
	}

	if response.Error != nil && response.Error.Message != "" {
		return nil, fmt.Errorf("image generation: %s", response.Error.Message)
	}
	c.log.With(
		slog.String("id", response.ID),
		slog.Int("items", len(response.Output)),
	).Info("image generation")
	return response.Output, nil
}

func (c *Client) post(ctx context.Context, path string, request any, out any) error {
	jsonBytes, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("marshalling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.backend.BaseURL+path, bytes.NewReader(jsonBytes))
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.backend.ApiKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("getting response: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			c.log.Error("closing response body", sl.Err(err))
		}
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	c.log.With(
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
	).Debug("response body")

	if err := json.Unmarshal(body, out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%s: http status %s", path, resp.Status)
		}
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
