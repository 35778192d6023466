package driven

import (
	"context"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
)

// EntryStore handles the append-only per-project entry logs.
// The wire format is a JSON array of {project_id, text, timestamp} objects and
// may be produced or consumed by external tools; implementations only agree on
// that schema.
type EntryStore interface {
	// List returns all entries for a project in log order.
	// A missing log is domain.ErrNotFound; a corrupt log is domain.ErrStorage,
	// never an empty result.
	List(ctx context.Context, projectID string) ([]domain.Entry, error)

	// Append adds one entry to its project's log, creating the log on first use.
	Append(ctx context.Context, entry domain.Entry) error

	// Replace overwrites a project's log wholesale (deduplicated import).
	Replace(ctx context.Context, projectID string, entries []domain.Entry) error

	// ProjectIDs lists every project that has an entry log.
	ProjectIDs(ctx context.Context) ([]string, error)
}

// ProjectStore handles the project registry.
type ProjectStore interface {
	// List returns all registered projects.
	List(ctx context.Context) ([]domain.Project, error)
}
