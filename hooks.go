package reactloop

import (
	"context"
)

// -----------------------------------------------------------------------------
// Hook Interfaces
// -----------------------------------------------------------------------------
//
// Hooks observe execution; they never change control flow. To use hooks:
//
//  1. Implement any subset of the interfaces below
//  2. Register the hook with hooks.Registry (or executor.RegisterHook)
//
// Example:
//
//	type PromptPrinter struct{}
//
//	func (PromptPrinter) OnBeforeModelCall(ctx context.Context, e reactloop.BeforeModelCallEvent) {
//	    fmt.Printf("***Prompt to LLM was: %s\n", e.Prompt)
//	}
//
//	exec := executor.New(model, reg, tmpl, executor.DefaultConfig()).
//	    RegisterHook(PromptPrinter{})
//
// Hooks are called in registration order. For paired hooks (Before/After), the After hook is
// called whenever the Before hook was called, including on error.
// -----------------------------------------------------------------------------

// BeforeRunHook is notified once before the first iteration.
type BeforeRunHook interface {
	OnBeforeRun(ctx context.Context, event BeforeRunEvent)
}

// AfterRunHook is notified once when the run ends, successfully or not.
type AfterRunHook interface {
	OnAfterRun(ctx context.Context, event AfterRunEvent)
}

// BeforeIterationHook is notified before each step.
type BeforeIterationHook interface {
	OnBeforeIteration(ctx context.Context, event BeforeIterationEvent)
}

// AfterIterationHook is notified after each step that produced a decision.
type AfterIterationHook interface {
	OnAfterIteration(ctx context.Context, event AfterIterationEvent)
}

// BeforeModelCallHook receives the rendered prompt before each model call.
type BeforeModelCallHook interface {
	OnBeforeModelCall(ctx context.Context, event BeforeModelCallEvent)
}

// AfterModelCallHook receives the raw completion after each model call.
type AfterModelCallHook interface {
	OnAfterModelCall(ctx context.Context, event AfterModelCallEvent)
}

// BeforeToolCallHook is notified before a tool runs.
type BeforeToolCallHook interface {
	OnBeforeToolCall(ctx context.Context, event BeforeToolCallEvent)
}

// AfterToolCallHook is notified after a tool returns, including recovered failures.
type AfterToolCallHook interface {
	OnAfterToolCall(ctx context.Context, event AfterToolCallEvent)
}

// ErrorHook is notified of the fatal error that ends a run.
type ErrorHook interface {
	OnError(ctx context.Context, event ErrorEvent)
}
