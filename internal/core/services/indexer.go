package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
	"github.com/mutabaa-labs/mutabaa-core/internal/core/ports/driven"
	"github.com/mutabaa-labs/mutabaa-core/internal/core/ports/driving"
	"github.com/mutabaa-labs/mutabaa-core/internal/normalisers"
	"github.com/mutabaa-labs/mutabaa-core/internal/runtime"
	"github.com/mutabaa-labs/mutabaa-core/internal/vectorindex"
)

// Ensure indexerService implements IndexerService
var _ driving.IndexerService = (*indexerService)(nil)

// buildLockTTLSeconds bounds how long a crashed builder can block a project.
const buildLockTTLSeconds = 300

// indexerService owns the index lifecycle: full rebuilds, never incremental
// mutation.
type indexerService struct {
	entryStore driven.EntryStore
	indexStore driven.IndexStore
	lock       driven.ProjectLock // optional; nil when rename-based atomicity suffices
	services   *runtime.Services
	logger     *slog.Logger
}

// NewIndexerService creates a new IndexerService. lock may be nil.
func NewIndexerService(
	entryStore driven.EntryStore,
	indexStore driven.IndexStore,
	lock driven.ProjectLock,
	services *runtime.Services,
	logger *slog.Logger,
) driving.IndexerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &indexerService{
		entryStore: entryStore,
		indexStore: indexStore,
		lock:       lock,
		services:   services,
		logger:     logger,
	}
}

// BuildIndex re-embeds every entry and replaces the project's snapshot as one
// unit, keeping vector position i locked to entries[i].
func (s *indexerService) BuildIndex(ctx context.Context, projectID string, entries []domain.Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: no entries to index", domain.ErrInvalidInput)
	}

	embeddingService := s.services.EmbeddingService()
	if embeddingService == nil {
		return fmt.Errorf("%w: no embedding service configured", domain.ErrModelUnavailable)
	}

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = normalisers.Normalize(e.Text)
	}

	// All-or-nothing: a partial embedding set would silently corrupt the
	// position invariant, so any failure aborts the whole build.
	vectors, err := embeddingService.Embed(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(entries) {
		return fmt.Errorf("%w: got %d embeddings for %d entries", domain.ErrModelUnavailable, len(vectors), len(entries))
	}

	idx, err := vectorindex.Build(vectors)
	if err != nil {
		return fmt.Errorf("build index for %s: %w", projectID, err)
	}

	if s.lock != nil {
		acquired, err := s.lock.Acquire(ctx, projectID, buildLockTTLSeconds)
		if err != nil {
			return fmt.Errorf("acquire build lock for %s: %w", projectID, err)
		}
		if !acquired {
			return fmt.Errorf("%w: project %s", domain.ErrBuildInProgress, projectID)
		}
		defer func() {
			if err := s.lock.Release(context.WithoutCancel(ctx), projectID); err != nil {
				s.logger.Warn("release build lock", "project_id", projectID, "error", err)
			}
		}()
	}

	snap := &driven.IndexSnapshot{
		Entries:      entries,
		Index:        idx,
		BuildVersion: time.Now().UnixNano(),
	}
	if err := s.indexStore.Save(ctx, projectID, snap); err != nil {
		return err
	}

	s.logger.Info("index built",
		"project_id", projectID,
		"entries", len(entries),
		"dimension", idx.Dimension(),
		"model", embeddingService.Model(),
	)
	return nil
}

// Rebuild reloads a project's entry log and builds a fresh snapshot.
func (s *indexerService) Rebuild(ctx context.Context, projectID string) (int, error) {
	entries, err := s.entryStore.List(ctx, projectID)
	if err != nil {
		return 0, err
	}
	if err := s.BuildIndex(ctx, projectID, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// RebuildAll rebuilds every project that has a non-empty entry log.
// Projects with empty logs are skipped, not failed.
func (s *indexerService) RebuildAll(ctx context.Context) error {
	ids, err := s.entryStore.ProjectIDs(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, id := range ids {
		n, err := s.Rebuild(ctx, id)
		if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrNoEntries) {
			s.logger.Info("skipping project with no entries", "project_id", id)
			continue
		}
		if err != nil {
			s.logger.Error("rebuild failed", "project_id", id, "error", err)
			errs = append(errs, fmt.Errorf("project %s: %w", id, err))
			continue
		}
		s.logger.Info("project reindexed", "project_id", id, "entries", n)
	}
	return errors.Join(errs...)
}
