package ai

import (
	"fmt"
	"time"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
	"github.com/mutabaa-labs/mutabaa-core/internal/core/ports/driven"
)

// Supported AI providers
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// Config holds provider settings for building AI services
type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// NewEmbeddingService creates an embedding service from config
func NewEmbeddingService(cfg Config) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case ProviderOllama, "":
		return NewOllamaEmbedding(cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	case ProviderOpenAI:
		return NewOpenAIEmbedding(cfg.APIKey, cfg.Model, cfg.BaseURL)
	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q", domain.ErrInvalidInput, cfg.Provider)
	}
}

// NewLLMService creates an LLM service from config
func NewLLMService(cfg Config) (driven.LLMService, error) {
	switch cfg.Provider {
	case ProviderOllama, "":
		return NewOllamaLLM(cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	case ProviderOpenAI:
		return NewOpenAILLM(cfg.APIKey, cfg.Model, cfg.BaseURL)
	default:
		return nil, fmt.Errorf("%w: unknown LLM provider %q", domain.ErrInvalidInput, cfg.Provider)
	}
}
