// ABOUTME: OpenAI-compatible embedder built on sashabaranov/go-openai
// ABOUTME: Works against any server exposing the /embeddings endpoint via a custom base URL

package openai

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"sort"

	"coursefinder-api/core/errors"
	goopenai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultModel is used when no model is configured
	DefaultModel = string(goopenai.SmallEmbedding3)

	batchSize = 256
)

// Config holds the connection settings
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// Embedder implements interfaces.Embedder with the OpenAI embeddings API
type Embedder struct {
	client *goopenai.Client
	model  string
}

// New creates an OpenAI-compatible embedder
func New(cfg Config) *Embedder {
	transportCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		transportCfg.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		transportCfg.HTTPClient = cfg.HTTPClient
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &Embedder{
		client: goopenai.NewClientWithConfig(transportCfg),
		model:  cfg.Model,
	}
}

// Model returns the embedding model name
func (e *Embedder) Model() string {
	return "openai:" + e.model
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
	resp, err := e.client.CreateEmbeddings(ctx, goopenai.EmbeddingRequest{
		Input: texts,
		Model: goopenai.EmbeddingModel(e.model),
	})
	if err != nil {
		var apiErr *goopenai.APIError
		if stderrors.As(err, &apiErr) {
			return nil, &errors.ExternalAPIError{
				StatusCode: apiErr.HTTPStatusCode,
				Message:    apiErr.Message,
				API:        "openai",
			}
		}
		return nil, fmt.Errorf("openai embed: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai returned %d embeddings for %d inputs", len(resp.Data), len(texts))
	}

	data := resp.Data
	sort.SliceStable(data, func(i, j int) bool { return data[i].Index < data[j].Index })

	vectors := make([][]float32, len(data))
	for i, d := range data {
		vectors[i] = d.Embedding
	}
	return vectors, nil
}
