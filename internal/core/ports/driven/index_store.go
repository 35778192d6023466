package driven

import (
	"context"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
	"github.com/mutabaa-labs/mutabaa-core/internal/vectorindex"
)

// IndexSnapshot couples a project's entries with the vector index built from
// them. The two are one versioned structure: vector position i corresponds to
// Entries[i], and both always come from the same build. Snapshots are derived,
// rebuildable artifacts - the entry log remains the source of truth.
type IndexSnapshot struct {
	Entries []domain.Entry
	Index   *vectorindex.Index

	// BuildVersion identifies the build that produced this snapshot
	// (unix nanoseconds at build time).
	BuildVersion int64
}

// IndexStore persists index snapshots keyed by project ID.
type IndexStore interface {
	// Load returns the snapshot for a project. Both the entries and the
	// serialized index must exist; if either is missing the whole lookup is
	// domain.ErrNotFound. Corrupt or unreadable data is domain.ErrStorage.
	Load(ctx context.Context, projectID string) (*IndexSnapshot, error)

	// Save persists a snapshot atomically from the reader's perspective:
	// concurrent readers see either the old pair or the new pair, never a mix.
	Save(ctx context.Context, projectID string, snap *IndexSnapshot) error
}

// ProjectLock serializes writers for one project across processes. Locks for
// different projects are independent.
type ProjectLock interface {
	// Acquire attempts to take the named lock with a TTL.
	// Returns false when another holder has it.
	Acquire(ctx context.Context, name string, ttlSeconds int) (bool, error)

	// Release frees the named lock if held by this instance.
	Release(ctx context.Context, name string) error
}
