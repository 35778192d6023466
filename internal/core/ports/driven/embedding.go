package driven

import "context"

// EmbeddingService maps text to fixed-dimension dense vectors using a
// multilingual sentence-embedding model. The model is loaded or connected once
// and shared read-only across calls; implementations must be safe for
// concurrent use.
type EmbeddingService interface {
	// Embed generates embeddings for multiple texts, order-preserving:
	// output[i] corresponds to texts[i]. Deterministic for a fixed model
	// version, modulo floating-point noise from the model runtime.
	// An unreachable backend surfaces domain.ErrModelUnavailable.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery generates an embedding for a single search query.
	EmbedQuery(ctx context.Context, query string) ([]float32, error)

	// Dimensions returns the embedding dimension size (0 if not yet known).
	Dimensions() int

	// Model returns the model name being used.
	Model() string

	// HealthCheck verifies the embedding backend is available.
	HealthCheck(ctx context.Context) error

	// Close releases resources held by the embedding service.
	Close() error
}
