package driving

import (
	"context"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
)

// IngestService accepts new entries into project logs.
type IngestService interface {
	// AddEntry validates and appends one entry, defaulting a missing
	// timestamp to the ingestion time. Returns the stored entry.
	AddEntry(ctx context.Context, entry domain.Entry) (domain.Entry, error)

	// Import merges new entries into a project's log, dropping entries whose
	// normalized text already occurs (earlier entries win), rewrites the log,
	// and rebuilds the index. Returns the number of entries kept.
	Import(ctx context.Context, projectID string, entries []domain.Entry) (int, error)
}

// IndexerService manages the index lifecycle. Indexes are created only by an
// explicit build, never implicitly on ingest; entries appended since the last
// build stay unsearchable until the next one.
type IndexerService interface {
	// BuildIndex re-embeds every given entry and replaces the project's
	// snapshot wholesale. Fails with domain.ErrInvalidInput when entries is
	// empty and domain.ErrModelUnavailable when embedding fails (no partial
	// builds).
	BuildIndex(ctx context.Context, projectID string, entries []domain.Entry) error

	// Rebuild loads a project's entry log and builds a fresh snapshot from it.
	// Returns the number of entries indexed.
	Rebuild(ctx context.Context, projectID string) (int, error)

	// RebuildAll rebuilds every project that has a non-empty entry log.
	RebuildAll(ctx context.Context) error
}
