// Package fsstore persists entry logs, project registries and index
// snapshots as files under a single data directory. It is the default
// backend and needs no external services.
package fsstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
	"github.com/mutabaa-labs/mutabaa-core/internal/core/ports/driven"
)

// Ensure EntryStore implements the port
var _ driven.EntryStore = (*EntryStore)(nil)

const (
	entryFilePrefix = "entries_"
	entryFileSuffix = ".json"
)

// EntryStore keeps one JSON log file per project under a data directory.
type EntryStore struct {
	dir string
	mu  sync.Mutex
}

// NewEntryStore creates the data directory if needed.
func NewEntryStore(dir string) (*EntryStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &EntryStore{dir: dir}, nil
}

func (s *EntryStore) logPath(projectID string) (string, error) {
	if err := validateProjectID(projectID); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, entryFilePrefix+projectID+entryFileSuffix), nil
}

// List returns all entries for a project in log order.
func (s *EntryStore) List(ctx context.Context, projectID string) ([]domain.Entry, error) {
	path, err := s.logPath(projectID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: no entry log for project %s", domain.ErrNotFound, projectID)
		}
		return nil, fmt.Errorf("%w: read entry log: %v", domain.ErrStorage, err)
	}

	var entries []domain.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: corrupt entry log for project %s: %v", domain.ErrStorage, projectID, err)
	}
	return entries, nil
}

// Append adds one entry to its project's log, creating the log on first use.
func (s *EntryStore) Append(ctx context.Context, entry domain.Entry) error {
	path, err := s.logPath(entry.ProjectID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []domain.Entry
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("%w: corrupt entry log for project %s: %v", domain.ErrStorage, entry.ProjectID, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// first entry for this project
	default:
		return fmt.Errorf("%w: read entry log: %v", domain.ErrStorage, err)
	}

	entries = append(entries, entry)
	return s.writeLog(path, entries)
}

// Replace overwrites a project's log wholesale.
func (s *EntryStore) Replace(ctx context.Context, projectID string, entries []domain.Entry) error {
	path, err := s.logPath(projectID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeLog(path, entries)
}

// ProjectIDs lists every project that has an entry log.
func (s *EntryStore) ProjectIDs(ctx context.Context) ([]string, error) {
	names, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read data directory: %v", domain.ErrStorage, err)
	}

	var ids []string
	for _, e := range names {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, entryFilePrefix) || !strings.HasSuffix(name, entryFileSuffix) {
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(name, entryFilePrefix), entryFileSuffix)
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// writeLog writes the log via a temp file and rename so readers never see a
// partial file. Caller holds s.mu.
func (s *EntryStore) writeLog(path string, entries []domain.Entry) error {
	if entries == nil {
		entries = []domain.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal entry log: %w", err)
	}
	return atomicWrite(path, data)
}

func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", domain.ErrStorage, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write temp file: %v", domain.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close temp file: %v", domain.ErrStorage, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename temp file: %v", domain.ErrStorage, err)
	}
	return nil
}

func validateProjectID(projectID string) error {
	if projectID == "" {
		return fmt.Errorf("%w: project ID is required", domain.ErrInvalidInput)
	}
	if strings.ContainsAny(projectID, `/\`) || strings.Contains(projectID, "..") {
		return fmt.Errorf("%w: invalid project ID %q", domain.ErrInvalidInput, projectID)
	}
	return nil
}
