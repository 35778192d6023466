package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
	"github.com/mutabaa-labs/mutabaa-core/internal/core/ports/driven"
)

// Ensure OllamaEmbedding implements EmbeddingService
var _ driven.EmbeddingService = (*OllamaEmbedding)(nil)

// DefaultOllamaModel is the multilingual sentence-embedding model used when
// none is configured. Arabic and English land in the same vector space.
const DefaultOllamaModel = "paraphrase-multilingual"

// OllamaEmbedding implements EmbeddingService against a local Ollama server.
// Instances are shared across concurrent requests and hold no per-call state;
// the dimension cache below is the only mutable field and is atomic.
type OllamaEmbedding struct {
	host   string
	model  string
	dims   atomic.Int64
	client *http.Client
}

// NewOllamaEmbedding creates a new Ollama embedding service.
func NewOllamaEmbedding(host, model string, timeout time.Duration) driven.EmbeddingService {
	if host == "" {
		host = "http://localhost:11434"
	}
	if model == "" {
		model = DefaultOllamaModel
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OllamaEmbedding{
		host:   host,
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

type ollamaEmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type ollamaEmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
	Error      string      `json:"error,omitempty"`
}

// Embed generates embeddings for multiple texts in one batched call.
// Output order matches input order.
func (e *OllamaEmbedding) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(ollamaEmbedRequest{Model: e.model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("marshal embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.host+"/api/embed", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: ollama embed: %v", domain.ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read embed response: %v", domain.ErrModelUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: ollama embed returned status %d", domain.ErrModelUnavailable, resp.StatusCode)
	}

	var out ollamaEmbedResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("%w: parse embed response: %v", domain.ErrModelUnavailable, err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("%w: ollama: %s", domain.ErrModelUnavailable, out.Error)
	}
	if len(out.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d inputs", domain.ErrModelUnavailable, len(out.Embeddings), len(texts))
	}

	if len(out.Embeddings) > 0 {
		e.dims.CompareAndSwap(0, int64(len(out.Embeddings[0])))
	}
	return out.Embeddings, nil
}

// EmbedQuery generates an embedding for a single query.
func (e *OllamaEmbedding) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	embeddings, err := e.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("%w: no embedding returned for query", domain.ErrModelUnavailable)
	}
	return embeddings[0], nil
}

// Dimensions returns the embedding dimension (0 until the first call).
func (e *OllamaEmbedding) Dimensions() int { return int(e.dims.Load()) }

// Model returns the model name being used.
func (e *OllamaEmbedding) Model() string { return e.model }

// HealthCheck verifies the Ollama server is reachable.
func (e *OllamaEmbedding) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.host+"/api/tags", nil)
	if err != nil {
		return err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: ollama returned status %d", domain.ErrModelUnavailable, resp.StatusCode)
	}
	return nil
}

// Close releases resources held by the embedding service.
func (e *OllamaEmbedding) Close() error {
	e.client.CloseIdleConnections()
	return nil
}
