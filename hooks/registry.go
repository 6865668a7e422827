package hooks

import (
	"context"

	"github.com/rickchristie/reactloop"
)

// Registry manages a collection of hooks and dispatches events to them.
//
// Hooks are stored in registration order. A hook can implement any combination of the hook
// interfaces in the reactloop package; it only receives events for the interfaces it
// implements. An empty Registry dispatches nothing.
//
// Registry is NOT thread-safe. Register all hooks before starting a run. Fire methods should
// only be called by the executor.
type Registry struct {
	hooks []any
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		hooks: make([]any, 0),
	}
}

// Register adds a hook to the registry. Hooks are called in the order they are registered.
func (r *Registry) Register(hook any) *Registry {
	r.hooks = append(r.hooks, hook)
	return r
}

// FireBeforeRun dispatches a BeforeRunEvent to all BeforeRunHook implementations.
func (r *Registry) FireBeforeRun(ctx context.Context, event reactloop.BeforeRunEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(reactloop.BeforeRunHook); ok {
			hook.OnBeforeRun(ctx, event)
		}
	}
}

// FireAfterRun dispatches an AfterRunEvent to all AfterRunHook implementations.
func (r *Registry) FireAfterRun(ctx context.Context, event reactloop.AfterRunEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(reactloop.AfterRunHook); ok {
			hook.OnAfterRun(ctx, event)
		}
	}
}

// FireBeforeIteration dispatches a BeforeIterationEvent to all BeforeIterationHook
// implementations.
func (r *Registry) FireBeforeIteration(ctx context.Context, event reactloop.BeforeIterationEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(reactloop.BeforeIterationHook); ok {
			hook.OnBeforeIteration(ctx, event)
		}
	}
}

// FireAfterIteration dispatches an AfterIterationEvent to all AfterIterationHook
// implementations.
func (r *Registry) FireAfterIteration(ctx context.Context, event reactloop.AfterIterationEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(reactloop.AfterIterationHook); ok {
			hook.OnAfterIteration(ctx, event)
		}
	}
}

// FireError dispatches an ErrorEvent to all ErrorHook implementations.
// This is informational only; the run has already failed.
func (r *Registry) FireError(ctx context.Context, event reactloop.ErrorEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(reactloop.ErrorHook); ok {
			hook.OnError(ctx, event)
		}
	}
}

// FireBeforeModelCall dispatches a BeforeModelCallEvent to all BeforeModelCallHook
// implementations.
func (r *Registry) FireBeforeModelCall(ctx context.Context, event reactloop.BeforeModelCallEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(reactloop.BeforeModelCallHook); ok {
			hook.OnBeforeModelCall(ctx, event)
		}
	}
}

// FireAfterModelCall dispatches an AfterModelCallEvent to all AfterModelCallHook
// implementations.
func (r *Registry) FireAfterModelCall(ctx context.Context, event reactloop.AfterModelCallEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(reactloop.AfterModelCallHook); ok {
			hook.OnAfterModelCall(ctx, event)
		}
	}
}

// FireBeforeToolCall dispatches a BeforeToolCallEvent to all BeforeToolCallHook
// implementations.
func (r *Registry) FireBeforeToolCall(ctx context.Context, event reactloop.BeforeToolCallEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(reactloop.BeforeToolCallHook); ok {
			hook.OnBeforeToolCall(ctx, event)
		}
	}
}

// FireAfterToolCall dispatches an AfterToolCallEvent to all AfterToolCallHook
// implementations.
func (r *Registry) FireAfterToolCall(ctx context.Context, event reactloop.AfterToolCallEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(reactloop.AfterToolCallHook); ok {
			hook.OnAfterToolCall(ctx, event)
		}
	}
}

// Len returns the number of registered hooks.
func (r *Registry) Len() int {
	return len(r.hooks)
}

// Clear removes all registered hooks.
func (r *Registry) Clear() {
	r.hooks = make([]any, 0)
}
