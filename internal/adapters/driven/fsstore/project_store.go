package fsstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
	"github.com/mutabaa-labs/mutabaa-core/internal/core/ports/driven"
)

// Ensure ProjectStore implements the port
var _ driven.ProjectStore = (*ProjectStore)(nil)

const projectFileName = "projects.json"

// ProjectStore reads the project registry from projects.json in the data
// directory. The file is edited by operators, not by the service.
type ProjectStore struct {
	path string
	mu   sync.Mutex
}

// NewProjectStore creates a registry backed by <dir>/projects.json.
func NewProjectStore(dir string) (*ProjectStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &ProjectStore{path: filepath.Join(dir, projectFileName)}, nil
}

// List returns all registered projects. A missing registry is an empty list.
func (s *ProjectStore) List(ctx context.Context) ([]domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Project{}, nil
		}
		return nil, fmt.Errorf("%w: read project registry: %v", domain.ErrStorage, err)
	}

	var projects []domain.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("%w: corrupt project registry: %v", domain.ErrStorage, err)
	}
	return projects, nil
}

// Seed writes the registry if it does not exist yet.
func (s *ProjectStore) Seed(projects []domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return nil
	}
	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal project registry: %w", err)
	}
	return atomicWrite(s.path, data)
}
