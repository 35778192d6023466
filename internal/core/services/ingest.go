package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
	"github.com/mutabaa-labs/mutabaa-core/internal/core/ports/driven"
	"github.com/mutabaa-labs/mutabaa-core/internal/core/ports/driving"
	"github.com/mutabaa-labs/mutabaa-core/internal/normalisers"
)

// Ensure ingestService implements IngestService
var _ driving.IngestService = (*ingestService)(nil)

// ingestService accepts new entries into the append-only project logs.
type ingestService struct {
	entryStore driven.EntryStore
	indexer    driving.IndexerService
	logger     *slog.Logger
	now        func() time.Time
}

// NewIngestService creates a new IngestService.
func NewIngestService(entryStore driven.EntryStore, indexer driving.IndexerService, logger *slog.Logger) driving.IngestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ingestService{
		entryStore: entryStore,
		indexer:    indexer,
		logger:     logger,
		now:        time.Now,
	}
}

// AddEntry validates and appends a single entry. The index is NOT rebuilt
// here: index creation is an explicit operation, and the new entry stays
// unsearchable until the next build.
func (s *ingestService) AddEntry(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	if err := entry.Validate(); err != nil {
		return domain.Entry{}, err
	}
	entry.Normalize(s.now())

	if err := s.entryStore.Append(ctx, entry); err != nil {
		return domain.Entry{}, err
	}
	s.logger.Info("entry added", "project_id", entry.ProjectID, "timestamp", entry.Timestamp)
	return entry, nil
}

// Import merges new entries into a project's log with duplicate elimination:
// entries whose normalized text already occurred are dropped, earlier entries
// win. The log is rewritten and the index rebuilt from the result.
func (s *ingestService) Import(ctx context.Context, projectID string, entries []domain.Entry) (int, error) {
	existing, err := s.entryStore.List(ctx, projectID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return 0, err
	}

	combined := make([]domain.Entry, 0, len(existing)+len(entries))
	combined = append(combined, existing...)
	for _, e := range entries {
		e.ProjectID = projectID
		if err := e.Validate(); err != nil {
			s.logger.Warn("skipping invalid entry", "project_id", projectID, "error", err)
			continue
		}
		e.Normalize(s.now())
		combined = append(combined, e)
	}

	seen := make(map[string]struct{}, len(combined))
	deduped := make([]domain.Entry, 0, len(combined))
	for _, e := range combined {
		key := normalisers.Normalize(e.Text)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, e)
	}

	if err := s.entryStore.Replace(ctx, projectID, deduped); err != nil {
		return 0, err
	}
	if err := s.indexer.BuildIndex(ctx, projectID, deduped); err != nil {
		return 0, err
	}

	s.logger.Info("entries imported",
		"project_id", projectID,
		"received", len(entries),
		"kept", len(deduped),
	)
	return len(deduped), nil
}
