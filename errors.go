package reactloop

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every typed error below matches its sentinel via errors.Is.
var (
	ErrOutputParse           = errors.New("could not parse model output")
	ErrToolNotFound          = errors.New("tool not found")
	ErrToolExecution         = errors.New("tool execution failed")
	ErrModelCall             = errors.New("model call failed")
	ErrMaxIterationsExceeded = errors.New("max iterations exceeded")
	ErrCancelled             = errors.New("run cancelled")
)

// ParseFailure classifies why an [OutputParseError] occurred.
type ParseFailure string

const (
	// ParseMissingAction means the text has neither a final answer nor an "Action:" marker.
	ParseMissingAction ParseFailure = "Invalid Format: Missing 'Action:' after 'Thought:'"

	// ParseMissingActionInput means "Action:" was found without a following "Action Input:".
	ParseMissingActionInput ParseFailure = "Invalid Format: Missing 'Action Input:' after 'Action:'"

	// ParseAmbiguous means the text holds both a final answer and a parseable action.
	ParseAmbiguous ParseFailure = "Parsing LLM output produced both a final answer and a parse-able action"

	// ParseUnrecognized covers any other text that matches no grammar rule.
	ParseUnrecognized ParseFailure = "Could not parse LLM output"
)

// OutputParseError is returned when model text matches no recognized grammar. It is fatal.
type OutputParseError struct {
	// Text is the offending model output.
	Text string

	// Reason classifies the failure.
	Reason ParseFailure
}

func (e *OutputParseError) Error() string {
	return fmt.Sprintf("%s: `%s`", e.Reason, e.Text)
}

// Is reports whether target is ErrOutputParse.
func (e *OutputParseError) Is(target error) bool {
	return target == ErrOutputParse
}

// ToolNotFoundError is returned when an action names a tool that is not registered.
type ToolNotFoundError struct {
	Name string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("tool with name %q not found", e.Name)
}

// Is reports whether target is ErrToolNotFound.
func (e *ToolNotFoundError) Is(target error) bool {
	return target == ErrToolNotFound
}

// ToolExecutionError describes a failed tool call. The executor converts it into an
// observation; it is only surfaced through hooks.
type ToolExecutionError struct {
	Tool  string
	Input string
	Err   error
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("tool %q failed: %v", e.Tool, e.Err)
}

func (e *ToolExecutionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrToolExecution.
func (e *ToolExecutionError) Is(target error) bool {
	return target == ErrToolExecution
}

// Observation returns the text fed back to the model in place of a tool result.
func (e *ToolExecutionError) Observation() string {
	if e.Err == nil {
		return "Error: unknown tool failure"
	}
	return "Error: " + e.Err.Error()
}

// ModelCallError wraps a transport or adapter failure of the model call.
type ModelCallError struct {
	Err error
}

func (e *ModelCallError) Error() string {
	return fmt.Sprintf("model call failed: %v", e.Err)
}

func (e *ModelCallError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrModelCall.
func (e *ModelCallError) Is(target error) bool {
	return target == ErrModelCall
}

// MaxIterationsExceededError is returned when the loop bound is hit without a final answer.
type MaxIterationsExceededError struct {
	Max int
}

func (e *MaxIterationsExceededError) Error() string {
	return fmt.Sprintf("agent stopped after %d iterations without a final answer", e.Max)
}

// Is reports whether target is ErrMaxIterationsExceeded.
func (e *MaxIterationsExceededError) Is(target error) bool {
	return target == ErrMaxIterationsExceeded
}

// CancelledError reports that a run was abandoned at a suspension point. It matches both
// ErrCancelled and the underlying context error.
type CancelledError struct {
	Err error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("run cancelled: %v", e.Err)
}

func (e *CancelledError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrCancelled.
func (e *CancelledError) Is(target error) bool {
	return target == ErrCancelled
}

// RunError is returned by the executor for every fatal error. It carries the history
// accumulated before the failure for diagnostics.
type RunError struct {
	RunID   string
	Status  RunStatus
	History History
	Err     error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run %s %s after %d steps: %v", e.RunID, e.Status, len(e.History), e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
