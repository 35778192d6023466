package mocks

import (
	"context"
	"hash/fnv"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
)

// MockEmbeddingService is a deterministic in-memory EmbeddingService.
// Equal texts always map to equal vectors, so search results are reproducible.
type MockEmbeddingService struct {
	dimensions int
	model      string
	failNext   bool
	healthErr  error
	closed     bool
}

// NewMockEmbeddingService creates a new MockEmbeddingService.
func NewMockEmbeddingService() *MockEmbeddingService {
	return &MockEmbeddingService{
		dimensions: 32,
		model:      "mock-embedding-model",
	}
}

func (m *MockEmbeddingService) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if m.failNext {
		m.failNext = false
		return nil, domain.ErrModelUnavailable
	}

	result := make([][]float32, len(texts))
	for i, text := range texts {
		result[i] = m.generateEmbedding(text)
	}
	return result, nil
}

func (m *MockEmbeddingService) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	if m.failNext {
		m.failNext = false
		return nil, domain.ErrModelUnavailable
	}
	return m.generateEmbedding(query), nil
}

func (m *MockEmbeddingService) Dimensions() int { return m.dimensions }

func (m *MockEmbeddingService) Model() string { return m.model }

func (m *MockEmbeddingService) HealthCheck(ctx context.Context) error { return m.healthErr }

func (m *MockEmbeddingService) Close() error {
	m.closed = true
	return nil
}

// generateEmbedding derives a pseudo-random but stable vector from the text hash.
func (m *MockEmbeddingService) generateEmbedding(text string) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	embedding := make([]float32, m.dimensions)
	for i := range embedding {
		seed = seed*1103515245 + 12345
		embedding[i] = float32(seed%1000) / 1000.0
	}
	return embedding
}

// Helper methods for testing

func (m *MockEmbeddingService) SetFailNext(fail bool) { m.failNext = fail }

func (m *MockEmbeddingService) SetDimensions(dim int) { m.dimensions = dim }

func (m *MockEmbeddingService) SetHealthError(err error) { m.healthErr = err }

func (m *MockEmbeddingService) Closed() bool { return m.closed }
