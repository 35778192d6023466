package mocks

import (
	"context"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
)

// MockLLMService is a canned-reply LLMService.
type MockLLMService struct {
	replies  []string
	calls    int
	prompts  []string
	failNext bool
	closed   bool
}

// NewMockLLMService creates a MockLLMService returning the given replies in
// order, repeating the last one once exhausted.
func NewMockLLMService(replies ...string) *MockLLMService {
	if len(replies) == 0 {
		replies = []string{"mock reply"}
	}
	return &MockLLMService{replies: replies}
}

func (m *MockLLMService) Generate(ctx context.Context, prompt string) (string, error) {
	if m.failNext {
		m.failNext = false
		return "", domain.ErrModelUnavailable
	}
	m.prompts = append(m.prompts, prompt)
	i := m.calls
	if i >= len(m.replies) {
		i = len(m.replies) - 1
	}
	m.calls++
	return m.replies[i], nil
}

func (m *MockLLMService) Ping(ctx context.Context) error { return nil }

func (m *MockLLMService) Close() error {
	m.closed = true
	return nil
}

// Helper methods for testing

func (m *MockLLMService) Calls() int { return m.calls }

func (m *MockLLMService) Prompts() []string { return m.prompts }

func (m *MockLLMService) SetFailNext(fail bool) { m.failNext = fail }

func (m *MockLLMService) Closed() bool { return m.closed }
