package reactloop

import "time"

// -----------------------------------------------------------------------------
// Run Events
// -----------------------------------------------------------------------------

// BeforeRunEvent is emitted once before the first iteration begins.
type BeforeRunEvent struct {
	RunID    string
	Question string
}

// AfterRunEvent is emitted once after the run reaches a terminal status.
type AfterRunEvent struct {
	RunID string

	// Status is the terminal status of the run.
	Status RunStatus

	// Output is the final answer (empty unless Status is StatusDone).
	Output string

	// Iterations is the number of iterations attempted.
	Iterations int

	// Error is the fatal error, nil on success.
	Error error
}

// BeforeIterationEvent is emitted before each step.
type BeforeIterationEvent struct {
	RunID string

	// Iteration is the current iteration number (1-indexed).
	Iteration int
}

// AfterIterationEvent is emitted after each step that did not fail.
type AfterIterationEvent struct {
	RunID     string
	Iteration int

	// Decision is the parsed decision of this iteration.
	Decision Decision

	// Step is the step appended to the history, nil when the decision was a finish.
	Step *Step

	// Duration is how long the iteration took.
	Duration time.Duration
}

// ErrorEvent is emitted when a fatal error ends the run.
type ErrorEvent struct {
	RunID string

	// Iteration is the iteration where the error occurred (0 if before the first iteration).
	Iteration int

	Err error
}

// -----------------------------------------------------------------------------
// Model Call Events
// -----------------------------------------------------------------------------

// BeforeModelCallEvent carries the fully rendered prompt, emitted before each model call.
type BeforeModelCallEvent struct {
	RunID     string
	Iteration int
	Prompt    string
	Stop      []string
}

// AfterModelCallEvent carries the raw completion, emitted after each model call returns.
type AfterModelCallEvent struct {
	RunID     string
	Iteration int
	Prompt    string

	// Completion is the raw model text (empty when Error is set).
	Completion string

	Duration time.Duration

	// Error is the model call failure, if any.
	Error error
}

// -----------------------------------------------------------------------------
// Tool Call Events
// -----------------------------------------------------------------------------

// BeforeToolCallEvent is emitted before a resolved tool runs.
type BeforeToolCallEvent struct {
	RunID     string
	Iteration int
	ToolName  string
	Input     string
}

// AfterToolCallEvent is emitted after a tool returns.
type AfterToolCallEvent struct {
	RunID     string
	Iteration int
	ToolName  string
	Input     string

	// Observation is the text recorded in the history: the tool output, or the error
	// description when Error is set.
	Observation string

	Duration time.Duration

	// Error is the recovered [*ToolExecutionError], nil on success.
	Error error
}
