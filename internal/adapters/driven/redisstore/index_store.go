package redisstore

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
	"github.com/mutabaa-labs/mutabaa-core/internal/core/ports/driven"
	"github.com/mutabaa-labs/mutabaa-core/internal/vectorindex"
)

// Verify interface compliance
var _ driven.IndexStore = (*IndexStore)(nil)

const snapshotPrefix = "mutabaa:snapshot:"

// IndexStore implements driven.IndexStore using Redis. Each project's
// snapshot lives under a single key, so a write replaces the entries and the
// index together.
type IndexStore struct {
	client *redis.Client
}

// NewIndexStore creates a new Redis-backed IndexStore
func NewIndexStore(client *redis.Client) *IndexStore {
	return &IndexStore{client: client}
}

// snapshotBlob is the stored gob form of an IndexSnapshot.
type snapshotBlob struct {
	Entries      []domain.Entry
	IndexBlob    []byte
	BuildVersion int64
}

// Load retrieves the snapshot for a project
func (s *IndexStore) Load(ctx context.Context, projectID string) (*driven.IndexSnapshot, error) {
	data, err := s.client.Get(ctx, snapshotPrefix+projectID).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("%w: no index snapshot for project %s", domain.ErrNotFound, projectID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load index snapshot: %v", domain.ErrStorage, err)
	}

	var blob snapshotBlob
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&blob); err != nil {
		return nil, fmt.Errorf("%w: corrupt index snapshot for project %s: %v", domain.ErrStorage, projectID, err)
	}

	idx, err := vectorindex.Decode(blob.IndexBlob)
	if err != nil {
		return nil, fmt.Errorf("%w: corrupt vector index for project %s: %v", domain.ErrStorage, projectID, err)
	}

	return &driven.IndexSnapshot{
		Entries:      blob.Entries,
		Index:        idx,
		BuildVersion: blob.BuildVersion,
	}, nil
}

// Save stores a snapshot under a single key
func (s *IndexStore) Save(ctx context.Context, projectID string, snap *driven.IndexSnapshot) error {
	if snap == nil || snap.Index == nil {
		return fmt.Errorf("%w: snapshot requires an index", domain.ErrInvalidInput)
	}

	indexBlob, err := snap.Index.Encode()
	if err != nil {
		return fmt.Errorf("encode vector index: %w", err)
	}

	var buf bytes.Buffer
	blob := snapshotBlob{
		Entries:      snap.Entries,
		IndexBlob:    indexBlob,
		BuildVersion: snap.BuildVersion,
	}
	if err := gob.NewEncoder(&buf).Encode(blob); err != nil {
		return fmt.Errorf("encode index snapshot: %w", err)
	}

	if err := s.client.Set(ctx, snapshotPrefix+projectID, buf.Bytes(), 0).Err(); err != nil {
		return fmt.Errorf("%w: save index snapshot: %v", domain.ErrStorage, err)
	}
	return nil
}

// Ping checks if the Redis backend is healthy
func (s *IndexStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
