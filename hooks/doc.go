// Package hooks provides a registry for observing agent runs.
//
// Each hook interface in the reactloop package corresponds to one event type. Implement only
// the interfaces you need; the registry dispatches by interface assertion.
//
// # Hook Interfaces
//
// Run lifecycle hooks:
//   - [reactloop.BeforeRunHook] - Called once before the first iteration
//   - [reactloop.AfterRunHook] - Called once when the run ends
//   - [reactloop.BeforeIterationHook] - Called before each step
//   - [reactloop.AfterIterationHook] - Called after each step that produced a decision
//   - [reactloop.ErrorHook] - Called with the fatal error that ends a run
//
// Model call hooks:
//   - [reactloop.BeforeModelCallHook] - Receives the rendered prompt
//   - [reactloop.AfterModelCallHook] - Receives the raw completion
//
// Tool call hooks:
//   - [reactloop.BeforeToolCallHook] - Called before the tool runs
//   - [reactloop.AfterToolCallHook] - Called with the observation, including recovered failures
//
// # Registering Hooks
//
// Register directly on the executor:
//
//	exec := executor.New(model, reg, tmpl, executor.DefaultConfig()).
//	    RegisterHook(loggers.NewTranscriptHook(os.Stdout))
//
// Or share a registry across executors:
//
//	registry := hooks.NewRegistry().Register(&MetricsHook{})
//	exec1 := executor.New(m1, reg, tmpl, cfg).WithHooks(registry)
//	exec2 := executor.New(m2, reg, tmpl, cfg).WithHooks(registry)
//
// RegisterHook adds to the executor's existing registry; WithHooks replaces it.
//
// See the loggers package for hooks that implement every interface.
package hooks
