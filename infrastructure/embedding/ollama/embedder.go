// ABOUTME: Ollama-backed embedder using the /api/embed batch endpoint
// ABOUTME: Sends requests through the shared HTTP client so retries and timeouts apply

package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"coursefinder-api/core/errors"
	"coursefinder-api/core/interfaces"
)

const (
	// DefaultModel is used when no model is configured
	DefaultModel = "nomic-embed-text"

	batchSize = 64
)

// Embedder implements interfaces.Embedder using Ollama's HTTP API
type Embedder struct {
	baseURL string
	model   string
	client  interfaces.HTTPClient
}

// New creates an Ollama embedder
func New(baseURL, model string, client interfaces.HTTPClient) *Embedder {
	if model == "" {
		model = DefaultModel
	}
	return &Embedder{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  client,
	}
}

// Model returns the Ollama model name
func (e *Embedder) Model() string {
	return "ollama:" + e.model
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Embed returns one vector per text, batching requests
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += batchSize {
		end := min(start+batchSize, len(texts))
		vectors, err := e.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embed batch [%d:%d]: %w", start, end, err)
		}
		out = append(out, vectors...)
	}
	return out, nil
}

func (e *Embedder) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if e.client == nil {
		return nil, errors.Unavailable(fmt.Errorf("ollama client not configured"))
	}

	body, err := json.Marshal(embedRequest{Model: e.model, Input: texts})
	if err != nil {
		return nil, err
	}

	resp, err := e.client.Post(ctx, e.baseURL+"/api/embed", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body(), 512))
		return nil, &errors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    strings.TrimSpace(string(msg)),
			API:        "ollama",
		}
	}

	var result embedResponse
	if err := json.NewDecoder(resp.Body()).Decode(&result); err != nil {
		return nil, fmt.Errorf("ollama embed decode: %w", err)
	}
	if len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("ollama returned %d embeddings for %d inputs", len(result.Embeddings), len(texts))
	}
	return result.Embeddings, nil
}
