// Package tt provides test helpers for the reactloop packages.
package tt

import (
	"context"
	"errors"
	"sync"

	"github.com/rickchristie/reactloop"
)

// ErrNoResponse is returned by MockModel when its queue is exhausted and no default is set.
var ErrNoResponse = errors.New("mock model: no response queued")

// -----------------------------------------------------------------------------
// MockModel - implements reactloop.Model
// -----------------------------------------------------------------------------

// MockModel is a scripted reactloop.Model. Each call consumes the next queued response or
// error in order.
type MockModel struct {
	mu          sync.Mutex
	responses   []string
	errors      []error
	defaultResp *string
	callCount   int

	// CapturedPrompts stores the prompt passed to each Call.
	CapturedPrompts []string

	// CapturedStops stores the stop sequences passed to each Call.
	CapturedStops [][]string
}

// NewMockModel creates an empty MockModel.
func NewMockModel() *MockModel {
	return &MockModel{}
}

// AddResponse queues a completion.
func (m *MockModel) AddResponse(text string) *MockModel {
	m.responses = append(m.responses, text)
	m.errors = append(m.errors, nil)
	return m
}

// AddError queues an error for the next call.
func (m *MockModel) AddError(err error) *MockModel {
	m.responses = append(m.responses, "")
	m.errors = append(m.errors, err)
	return m
}

// WithDefault sets the completion returned once the queue is exhausted.
func (m *MockModel) WithDefault(text string) *MockModel {
	m.defaultResp = &text
	return m
}

// CallCount returns the number of times Call has been called.
func (m *MockModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Call implements reactloop.Model.
func (m *MockModel) Call(_ context.Context, prompt string, stop []string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.callCount
	m.callCount++
	m.CapturedPrompts = append(m.CapturedPrompts, prompt)
	m.CapturedStops = append(m.CapturedStops, stop)

	if idx < len(m.responses) {
		return m.responses[idx], m.errors[idx]
	}
	if m.defaultResp != nil {
		return *m.defaultResp, nil
	}
	return "", ErrNoResponse
}

var _ reactloop.Model = (*MockModel)(nil)

// -----------------------------------------------------------------------------
// MockTool - implements reactloop.Tool
// -----------------------------------------------------------------------------

// MockTool records its inputs and delegates to an optional function.
type MockTool struct {
	mu          sync.Mutex
	name        string
	description string
	fn          func(ctx context.Context, input string) (string, error)

	// Inputs stores the input of each Run call.
	Inputs []string
}

// NewMockTool creates a tool that returns output for every call.
func NewMockTool(name, output string) *MockTool {
	return &MockTool{
		name:        name,
		description: "mock tool " + name,
		fn: func(context.Context, string) (string, error) {
			return output, nil
		},
	}
}

// WithFunc replaces the tool behavior.
func (t *MockTool) WithFunc(fn func(ctx context.Context, input string) (string, error)) *MockTool {
	t.fn = fn
	return t
}

// WithError makes every call fail with err.
func (t *MockTool) WithError(err error) *MockTool {
	return t.WithFunc(func(context.Context, string) (string, error) {
		return "", err
	})
}

// Name implements reactloop.Tool.
func (t *MockTool) Name() string { return t.name }

// Description implements reactloop.Tool.
func (t *MockTool) Description() string { return t.description }

// Run implements reactloop.Tool.
func (t *MockTool) Run(ctx context.Context, input string) (string, error) {
	t.mu.Lock()
	t.Inputs = append(t.Inputs, input)
	t.mu.Unlock()
	return t.fn(ctx, input)
}

// CallCount returns the number of times Run has been called.
func (t *MockTool) CallCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.Inputs)
}

var _ reactloop.Tool = (*MockTool)(nil)
