package backend

import (
	"context"
	"sync"
	"time"

	"github.com/Ahmedibrahim1989/agentic-bop-workflow/pkg/types"
)

// MockCall records one Generate invocation received by a Mock
type MockCall struct {
	System string
	Prompt string
}

// Mock implements Backend for testing and dry runs. It returns fixed
// content and usage, records every call it receives, and can be scripted
// to fail on a specific call.
type Mock struct {
	Ident     string          // backend identifier, defaults to "mock"
	ModelName string          // model recorded in metadata, defaults to "stub"
	Content   string          // response for every call, defaults to "OK"
	Responses []string        // when set, consumed one per call before falling back to Content
	Usage     types.Usage     // usage reported per call
	Latency   time.Duration   // duration reported per call
	Err       error           // when set, every call fails
	FailAt    int             // when > 0, the nth call fails with FailErr
	FailErr   error

	mu    sync.Mutex
	calls []MockCall
}

// NewMock creates a mock backend with deterministic output
func NewMock() *Mock {
	return &Mock{
		Usage: types.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}
}

// Name identifies the mock, honoring an override for interchangeability tests
func (m *Mock) Name() string {
	if m.Ident != "" {
		return m.Ident
	}
	return "mock"
}

// Model returns the stub model name
func (m *Mock) Model() string {
	if m.ModelName != "" {
		return m.ModelName
	}
	return "stub"
}

// Generate records the call and returns the scripted response
func (m *Mock) Generate(ctx context.Context, system, prompt string) (*types.Generation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.calls = append(m.calls, MockCall{System: system, Prompt: prompt})
	n := len(m.calls)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if m.FailAt > 0 && n == m.FailAt {
		return nil, m.FailErr
	}

	content := m.Content
	if n <= len(m.Responses) {
		content = m.Responses[n-1]
	} else if content == "" {
		content = "OK"
	}

	return &types.Generation{
		Content:  content,
		Usage:    m.Usage,
		Duration: m.Latency,
	}, nil
}

// Calls returns a copy of the recorded invocations
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]MockCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}
