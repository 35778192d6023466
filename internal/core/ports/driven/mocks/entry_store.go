package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
)

// MockEntryStore is an in-memory EntryStore.
type MockEntryStore struct {
	mu      sync.RWMutex
	logs    map[string][]domain.Entry
	listErr error
}

// NewMockEntryStore creates a new MockEntryStore.
func NewMockEntryStore() *MockEntryStore {
	return &MockEntryStore{logs: make(map[string][]domain.Entry)}
}

func (m *MockEntryStore) List(ctx context.Context, projectID string) ([]domain.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	entries, ok := m.logs[projectID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]domain.Entry, len(entries))
	copy(out, entries)
	return out, nil
}

func (m *MockEntryStore) Append(ctx context.Context, entry domain.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs[entry.ProjectID] = append(m.logs[entry.ProjectID], entry)
	return nil
}

func (m *MockEntryStore) Replace(ctx context.Context, projectID string, entries []domain.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Entry, len(entries))
	copy(out, entries)
	m.logs[projectID] = out
	return nil
}

func (m *MockEntryStore) ProjectIDs(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.logs))
	for id := range m.logs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Helper methods for testing

func (m *MockEntryStore) SetListError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listErr = err
}

// MockProjectStore is an in-memory ProjectStore.
type MockProjectStore struct {
	mu       sync.RWMutex
	projects []domain.Project
}

// NewMockProjectStore creates a new MockProjectStore.
func NewMockProjectStore(projects ...domain.Project) *MockProjectStore {
	return &MockProjectStore{projects: projects}
}

func (m *MockProjectStore) List(ctx context.Context) ([]domain.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Project, len(m.projects))
	copy(out, m.projects)
	return out, nil
}

func (m *MockProjectStore) Add(p domain.Project) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects = append(m.projects, p)
}
