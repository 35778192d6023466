package mocks

import (
	"context"
	"sync"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
	"github.com/mutabaa-labs/mutabaa-core/internal/core/ports/driven"
)

// MockIndexStore is an in-memory IndexStore.
type MockIndexStore struct {
	mu        sync.RWMutex
	snapshots map[string]*driven.IndexSnapshot
	saveErr   error
	loadErr   error
}

// NewMockIndexStore creates a new MockIndexStore.
func NewMockIndexStore() *MockIndexStore {
	return &MockIndexStore{snapshots: make(map[string]*driven.IndexSnapshot)}
}

func (m *MockIndexStore) Load(ctx context.Context, projectID string) (*driven.IndexSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	snap, ok := m.snapshots[projectID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return snap, nil
}

func (m *MockIndexStore) Save(ctx context.Context, projectID string, snap *driven.IndexSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snapshots[projectID] = snap
	return nil
}

// Helper methods for testing

func (m *MockIndexStore) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

func (m *MockIndexStore) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// MockProjectLock is an in-memory ProjectLock.
type MockProjectLock struct {
	mu   sync.Mutex
	held map[string]bool
}

// NewMockProjectLock creates a new MockProjectLock.
func NewMockProjectLock() *MockProjectLock {
	return &MockProjectLock{held: make(map[string]bool)}
}

func (m *MockProjectLock) Acquire(ctx context.Context, name string, ttlSeconds int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[name] {
		return false, nil
	}
	m.held[name] = true
	return true, nil
}

func (m *MockProjectLock) Release(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, name)
	return nil
}
