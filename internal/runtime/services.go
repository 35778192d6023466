package runtime

import (
	"context"
	"sync"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/ports/driven"
)

// Services holds references to the AI backends. The embedding and LLM services
// are explicitly constructed and injected here at startup - there is no hidden
// process-wide model singleton - and can be swapped at runtime.
// Thread-safe for concurrent access.
type Services struct {
	mu sync.RWMutex

	embeddingService driven.EmbeddingService
	llmService       driven.LLMService
}

// NewServices creates a new Services registry.
func NewServices() *Services {
	return &Services{}
}

// EmbeddingService returns the current embedding service (may be nil).
func (s *Services) EmbeddingService() driven.EmbeddingService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.embeddingService
}

// LLMService returns the current LLM service (may be nil).
func (s *Services) LLMService() driven.LLMService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.llmService
}

// SetEmbeddingService updates the embedding service, closing the old one.
func (s *Services) SetEmbeddingService(svc driven.EmbeddingService) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
	}
	s.embeddingService = svc
}

// SetLLMService updates the LLM service, closing the old one.
func (s *Services) SetLLMService(svc driven.LLMService) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.llmService != nil {
		_ = s.llmService.Close()
	}
	s.llmService = svc
}

// ValidateAndSetEmbedding checks connectivity before installing the service.
func (s *Services) ValidateAndSetEmbedding(ctx context.Context, svc driven.EmbeddingService) error {
	if svc == nil {
		s.SetEmbeddingService(nil)
		return nil
	}
	if err := svc.HealthCheck(ctx); err != nil {
		_ = svc.Close()
		return err
	}
	s.SetEmbeddingService(svc)
	return nil
}

// Close shuts down all services.
func (s *Services) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
		s.embeddingService = nil
	}
	if s.llmService != nil {
		_ = s.llmService.Close()
		s.llmService = nil
	}
	return nil
}
