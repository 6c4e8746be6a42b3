package llm

import (
	"context"
	"slices"
	"sync"
)

// MockResponse defines a canned response for the mock provider.
type MockResponse struct {
	Content string
	Err     error
}

// MockCall is what the mock recorded for one Prompt call. Stdin is drained
// into Stdin so tests can assert on it.
type MockCall struct {
	Mode    string
	Prompts []string
	Stdin   []string
}

// MockProvider is a test double that returns pre-configured responses in
// sequence. After all responses are exhausted, it keeps returning the last one.
// It records every call for later assertion.
type MockProvider struct {
	name string

	mu        sync.Mutex
	responses []MockResponse
	calls     []MockCall
	idx       int
}

// Compile-time check that MockProvider satisfies the Provider interface.
var _ Provider = (*MockProvider)(nil)

// NewMockProvider creates a mock that returns the given responses in order.
// If no responses are provided, Prompt returns an empty string.
func NewMockProvider(name string, responses ...MockResponse) *MockProvider {
	return &MockProvider{
		name:      name,
		responses: responses,
	}
}

// Name returns the name given to NewMockProvider.
func (m *MockProvider) Name() string { return m.name }

// Prompt returns the next canned response and records the call.
// It respects context cancellation.
func (m *MockProvider) Prompt(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	call := MockCall{Mode: req.Mode.String(), Prompts: slices.Clone(req.Prompts)}
	if req.Stdin != nil {
		for line, err := range req.Stdin {
			if err != nil {
				return "", err
			}
			call.Stdin = append(call.Stdin, line)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, call)

	if len(m.responses) == 0 {
		return "", nil
	}

	r := m.responses[m.idx]
	if m.idx < len(m.responses)-1 {
		m.idx++
	}

	if r.Err != nil {
		return "", r.Err
	}
	return r.Content, nil
}

// Calls returns a copy of all calls received by this mock.
func (m *MockProvider) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// Reset clears call history and resets the response index to zero.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = nil
	m.idx = 0
}
