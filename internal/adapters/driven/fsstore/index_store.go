package fsstore

import (
	"bytes"
	"context"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
	"github.com/mutabaa-labs/mutabaa-core/internal/core/ports/driven"
	"github.com/mutabaa-labs/mutabaa-core/internal/vectorindex"
)

// Ensure IndexStore implements the port
var _ driven.IndexStore = (*IndexStore)(nil)

const (
	indexFilePrefix  = "index_"
	indexBlobSuffix  = ".idx"
	indexEntrySuffix = ".json"
)

// IndexStore persists index snapshots under a data directory. The .idx blob
// is the authoritative snapshot; a JSON copy of the indexed entries is
// written next to it for external tools.
type IndexStore struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewIndexStore creates the data directory if needed.
func NewIndexStore(dir string) (*IndexStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &IndexStore{dir: dir, locks: make(map[string]*sync.Mutex)}, nil
}

// projectLock returns the in-process mutex for one project's files.
func (s *IndexStore) projectLock(projectID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[projectID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[projectID] = l
	}
	return l
}

// snapshotBlob is the on-disk gob form of an IndexSnapshot.
type snapshotBlob struct {
	Entries      []domain.Entry
	IndexBlob    []byte
	BuildVersion int64
}

// Load returns the snapshot for a project.
func (s *IndexStore) Load(ctx context.Context, projectID string) (*driven.IndexSnapshot, error) {
	if err := validateProjectID(projectID); err != nil {
		return nil, err
	}

	lock := s.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	blobPath := filepath.Join(s.dir, indexFilePrefix+projectID+indexBlobSuffix)
	entryPath := filepath.Join(s.dir, indexFilePrefix+projectID+indexEntrySuffix)

	// Both halves must exist; a lone file means an interrupted or external
	// write and is treated as no snapshot at all.
	if _, err := os.Stat(entryPath); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: no index snapshot for project %s", domain.ErrNotFound, projectID)
	}

	data, err := os.ReadFile(blobPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: no index snapshot for project %s", domain.ErrNotFound, projectID)
		}
		return nil, fmt.Errorf("%w: read index snapshot: %v", domain.ErrStorage, err)
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

// Save persists a snapshot. The gob blob lands last via rename, so a reader
// holding the same project lock sees either the old snapshot or the new one.
func (s *IndexStore) Save(ctx context.Context, projectID string, snap *driven.IndexSnapshot) error {
	if err := validateProjectID(projectID); err != nil {
		return err
	}
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

	entryJSON, err := json.MarshalIndent(snap.Entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal indexed entries: %w", err)
	}

	lock := s.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	entryPath := filepath.Join(s.dir, indexFilePrefix+projectID+indexEntrySuffix)
	if err := atomicWrite(entryPath, entryJSON); err != nil {
		return err
	}
	blobPath := filepath.Join(s.dir, indexFilePrefix+projectID+indexBlobSuffix)
	return atomicWrite(blobPath, buf.Bytes())
}
