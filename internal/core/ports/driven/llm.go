package driven

import "context"

// LLMService generates free text from a prompt via a local model backend.
// It is an opaque collaborator: the core composes prompts and consumes text,
// nothing more. Failures surface domain.ErrModelUnavailable.
type LLMService interface {
	// Generate produces a completion for the prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases resources held by the service.
	Close() error
}
