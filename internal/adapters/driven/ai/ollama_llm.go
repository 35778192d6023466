package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
	"github.com/mutabaa-labs/mutabaa-core/internal/core/ports/driven"
)

// Ensure OllamaLLM implements LLMService
var _ driven.LLMService = (*OllamaLLM)(nil)

// DefaultOllamaLLMModel is the generation model used when none is configured.
const DefaultOllamaLLMModel = "llama3"

// OllamaLLM implements LLMService against a local Ollama server.
type OllamaLLM struct {
	host   string
	model  string
	client *http.Client
}

// NewOllamaLLM creates a new Ollama LLM service.
func NewOllamaLLM(host, model string, timeout time.Duration) driven.LLMService {
	if host == "" {
		host = "http://localhost:11434"
	}
	if model == "" {
		model = DefaultOllamaLLMModel
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OllamaLLM{
		host:   host,
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// Generate produces a completion for the given prompt.
func (l *OllamaLLM) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  l.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.host+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: ollama generate: %v", domain.ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read generate response: %v", domain.ErrModelUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: ollama generate returned status %d", domain.ErrModelUnavailable, resp.StatusCode)
	}

	var out ollamaGenerateResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return "", fmt.Errorf("%w: parse generate response: %v", domain.ErrModelUnavailable, err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("%w: ollama: %s", domain.ErrModelUnavailable, out.Error)
	}
	return out.Response, nil
}

// Ping verifies the Ollama server is reachable.
func (l *OllamaLLM) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.host+"/api/tags", nil)
	if err != nil {
		return err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: ollama returned status %d", domain.ErrModelUnavailable, resp.StatusCode)
	}
	return nil
}

// Close releases resources held by the LLM service.
func (l *OllamaLLM) Close() error {
	l.client.CloseIdleConnections()
	return nil
}
