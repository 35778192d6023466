package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
	"github.com/mutabaa-labs/mutabaa-core/internal/core/ports/driven"
	"github.com/mutabaa-labs/mutabaa-core/internal/core/ports/driving"
	"github.com/mutabaa-labs/mutabaa-core/internal/normalisers"
	"github.com/mutabaa-labs/mutabaa-core/internal/runtime"
)

// Ensure searchService implements SearchService
var _ driving.SearchService = (*searchService)(nil)

const defaultTopK = 3

// searchService implements pure semantic search over index snapshots.
type searchService struct {
	indexStore driven.IndexStore
	services   *runtime.Services
	logger     *slog.Logger
}

// NewSearchService creates a new SearchService.
// The embedding service is accessed dynamically via runtime.Services.
func NewSearchService(indexStore driven.IndexStore, services *runtime.Services, logger *slog.Logger) driving.SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &searchService{
		indexStore: indexStore,
		services:   services,
		logger:     logger,
	}
}

// Search returns the topK entries nearest to the query by squared-L2 distance.
// Scores are dissimilarities: lower means more similar.
func (s *searchService) Search(ctx context.Context, query, projectID string, topK int) ([]domain.RankedEntry, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	if topK <= 0 {
		topK = defaultTopK
	}

	snap, err := s.indexStore.Load(ctx, projectID)
	if errors.Is(err, domain.ErrNotFound) {
		// A project that was never indexed legitimately has no results.
		return []domain.RankedEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	if snap.Index == nil || snap.Index.Len() == 0 {
		return []domain.RankedEntry{}, nil
	}

	embeddingService := s.services.EmbeddingService()
	if embeddingService == nil {
		return nil, fmt.Errorf("%w: no embedding service configured", domain.ErrModelUnavailable)
	}

	queryVec, err := embeddingService.EmbedQuery(ctx, normalisers.Normalize(query))
	if err != nil {
		return nil, err
	}

	if topK > len(snap.Entries) {
		topK = len(snap.Entries)
	}
	hits, err := snap.Index.Search(queryVec, topK)
	if err != nil {
		return nil, fmt.Errorf("search index for %s: %w", projectID, err)
	}

	results := make([]domain.RankedEntry, 0, len(hits))
	for _, h := range hits {
		entry := snap.Entries[h.Position]
		results = append(results, domain.RankedEntry{
			Text:      entry.Text,
			Score:     h.Distance,
			Timestamp: entry.Timestamp,
		})
	}

	s.logger.Debug("semantic search",
		"project_id", projectID,
		"top_k", topK,
		"results", len(results),
		"build_version", snap.BuildVersion,
	)
	return results, nil
}
