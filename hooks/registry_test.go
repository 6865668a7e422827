package hooks

import (
	"context"
	"errors"
	"testing"

	"github.com/rickchristie/reactloop"
	"github.com/stretchr/testify/assert"
)

// -----------------------------------------------------------------------------
// Test Hooks
// -----------------------------------------------------------------------------

type orderHook struct {
	name  string
	calls *[]string
}

func (h *orderHook) OnBeforeModelCall(_ context.Context, e reactloop.BeforeModelCallEvent) {
	*h.calls = append(*h.calls, h.name+":before:"+e.Prompt)
}

func (h *orderHook) OnAfterModelCall(_ context.Context, e reactloop.AfterModelCallEvent) {
	*h.calls = append(*h.calls, h.name+":after:"+e.Completion)
}

type errorOnlyHook struct {
	errs []error
}

func (h *errorOnlyHook) OnError(_ context.Context, e reactloop.ErrorEvent) {
	h.errs = append(h.errs, e.Err)
}

// fullHook implements every hook interface.
type fullHook struct {
	events []string
}

func (h *fullHook) OnBeforeRun(context.Context, reactloop.BeforeRunEvent) {
	h.events = append(h.events, "BeforeRun")
}

func (h *fullHook) OnAfterRun(context.Context, reactloop.AfterRunEvent) {
	h.events = append(h.events, "AfterRun")
}

func (h *fullHook) OnBeforeIteration(context.Context, reactloop.BeforeIterationEvent) {
	h.events = append(h.events, "BeforeIteration")
}

func (h *fullHook) OnAfterIteration(context.Context, reactloop.AfterIterationEvent) {
	h.events = append(h.events, "AfterIteration")
}

func (h *fullHook) OnBeforeModelCall(context.Context, reactloop.BeforeModelCallEvent) {
	h.events = append(h.events, "BeforeModelCall")
}

func (h *fullHook) OnAfterModelCall(context.Context, reactloop.AfterModelCallEvent) {
	h.events = append(h.events, "AfterModelCall")
}

func (h *fullHook) OnBeforeToolCall(context.Context, reactloop.BeforeToolCallEvent) {
	h.events = append(h.events, "BeforeToolCall")
}

func (h *fullHook) OnAfterToolCall(context.Context, reactloop.AfterToolCallEvent) {
	h.events = append(h.events, "AfterToolCall")
}

func (h *fullHook) OnError(context.Context, reactloop.ErrorEvent) {
	h.events = append(h.events, "Error")
}

var (
	_ reactloop.BeforeRunHook       = (*fullHook)(nil)
	_ reactloop.AfterRunHook        = (*fullHook)(nil)
	_ reactloop.BeforeIterationHook = (*fullHook)(nil)
	_ reactloop.AfterIterationHook  = (*fullHook)(nil)
	_ reactloop.BeforeModelCallHook = (*fullHook)(nil)
	_ reactloop.AfterModelCallHook  = (*fullHook)(nil)
	_ reactloop.BeforeToolCallHook  = (*fullHook)(nil)
	_ reactloop.AfterToolCallHook   = (*fullHook)(nil)
	_ reactloop.ErrorHook           = (*fullHook)(nil)
)

// -----------------------------------------------------------------------------
// Tests
// -----------------------------------------------------------------------------

func TestRegistry_DispatchesInRegistrationOrder(t *testing.T) {
	var calls []string
	r := NewRegistry().
		Register(&orderHook{name: "a", calls: &calls}).
		Register(&orderHook{name: "b", calls: &calls})

	ctx := context.Background()
	r.FireBeforeModelCall(ctx, reactloop.BeforeModelCallEvent{Prompt: "p"})
	r.FireAfterModelCall(ctx, reactloop.AfterModelCallEvent{Completion: "c"})

	assert.Equal(t, []string{"a:before:p", "b:before:p", "a:after:c", "b:after:c"}, calls)
}

func TestRegistry_DispatchesOnlyImplementedInterfaces(t *testing.T) {
	type expected struct {
		fullEvents []string
		errCount   int
	}

	tests := []struct {
		name     string
		fire     func(r *Registry)
		expected expected
	}{
		{
			name: "error event reaches both hooks",
			fire: func(r *Registry) {
				r.FireError(context.Background(), reactloop.ErrorEvent{Err: errors.New("boom")})
			},
			expected: expected{fullEvents: []string{"Error"}, errCount: 1},
		},
		{
			name: "tool events skip error-only hook",
			fire: func(r *Registry) {
				ctx := context.Background()
				r.FireBeforeToolCall(ctx, reactloop.BeforeToolCallEvent{ToolName: "t"})
				r.FireAfterToolCall(ctx, reactloop.AfterToolCallEvent{ToolName: "t"})
			},
			expected: expected{fullEvents: []string{"BeforeToolCall", "AfterToolCall"}},
		},
		{
			name: "full lifecycle",
			fire: func(r *Registry) {
				ctx := context.Background()
				r.FireBeforeRun(ctx, reactloop.BeforeRunEvent{})
				r.FireBeforeIteration(ctx, reactloop.BeforeIterationEvent{Iteration: 1})
				r.FireBeforeModelCall(ctx, reactloop.BeforeModelCallEvent{})
				r.FireAfterModelCall(ctx, reactloop.AfterModelCallEvent{})
				r.FireAfterIteration(ctx, reactloop.AfterIterationEvent{Iteration: 1})
				r.FireAfterRun(ctx, reactloop.AfterRunEvent{})
			},
			expected: expected{
				fullEvents: []string{
					"BeforeRun", "BeforeIteration", "BeforeModelCall",
					"AfterModelCall", "AfterIteration", "AfterRun",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			full := &fullHook{}
			errOnly := &errorOnlyHook{}
			r := NewRegistry().Register(full).Register(errOnly).Register("not a hook")

			tt.fire(r)

			assert.Equal(t, tt.expected.fullEvents, full.events)
			assert.Len(t, errOnly.errs, tt.expected.errCount)
		})
	}
}

func TestRegistry_LenAndClear(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, 0, r.Len())

	r.Register(&fullHook{}).Register(&errorOnlyHook{})
	assert.Equal(t, 2, r.Len())

	r.Clear()
	assert.Equal(t, 0, r.Len())

	// Firing on an empty registry is a no-op.
	r.FireError(context.Background(), reactloop.ErrorEvent{Err: errors.New("ignored")})
}
