package driving

import (
	"context"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
)

// SearchService performs pure semantic search over a project's indexed
// entries. Intent classification is the assistant's job, layered on top.
type SearchService interface {
	// Search normalizes the query, embeds it, and returns the topK nearest
	// entries by ascending squared-L2 distance. A project without an index
	// yields an empty result set, not an error.
	Search(ctx context.Context, query, projectID string, topK int) ([]domain.RankedEntry, error)
}

// AssistantService answers free-form queries: it resolves the target project
// from the query, classifies intent, and dispatches to the latest-entry lookup
// or semantic search, with a localized digest and an optional generated reply.
type AssistantService interface {
	Ask(ctx context.Context, query string) (*domain.Answer, error)
}
