// Package executor drives the ReAct agent loop: render prompt, call model, parse the
// completion, then run the requested tool or finish.
package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rickchristie/reactloop"
	"github.com/rickchristie/reactloop/hooks"
	"github.com/rickchristie/reactloop/parser"
	"github.com/rickchristie/reactloop/scratchpad"
	"github.com/rs/zerolog"
)

// DefaultMaxIterations bounds a run when Config.MaxIterations is not positive.
const DefaultMaxIterations = 15

// DefaultStopSequences keep the model from writing its own observation.
var DefaultStopSequences = []string{"\nObservation", "Observation"}

// Config holds configuration options for the Executor.
type Config struct {
	// MaxIterations is the maximum number of steps per run. Values <= 0 use
	// DefaultMaxIterations; a run is always bounded.
	MaxIterations int

	// StopSequences are passed to every model call. Nil uses DefaultStopSequences; an empty
	// non-nil slice disables stop sequences.
	StopSequences []string
}

// DefaultConfig returns a config with a 15 iteration bound and the ReAct stop sequences.
func DefaultConfig() Config {
	return Config{
		MaxIterations: DefaultMaxIterations,
		StopSequences: append([]string(nil), DefaultStopSequences...),
	}
}

func (c Config) normalized() Config {
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.StopSequences == nil {
		c.StopSequences = append([]string(nil), DefaultStopSequences...)
	}
	return c
}

// Result is the outcome of a run. It is returned for failed runs too, carrying the history
// accumulated before the failure.
type Result struct {
	RunID string

	// Output is the final answer, empty unless Status is StatusDone.
	Output string

	// ReturnValues is the full final answer payload.
	ReturnValues map[string]string

	History    reactloop.History
	Iterations int
	Status     reactloop.RunStatus
}

// Executor runs the ReAct loop against one model and one set of tools.
//
// The Executor is responsible for:
//   - Rendering the prompt with the formatted history on every step
//   - Turning each completion into a decision and acting on it
//   - Recovering tool failures into observations
//   - Enforcing the iteration bound and honoring context cancellation
//   - Invoking hooks at each stage
//
// An Executor holds no per-run state and may serve concurrent runs as long as its model,
// tools and hooks tolerate it.
type Executor struct {
	model      reactloop.Model
	tools      reactloop.ToolFinder
	renderer   reactloop.PromptRenderer
	parser     reactloop.OutputParser
	scratchpad reactloop.ScratchpadFormatter
	config     Config
	hooks      *hooks.Registry
	logger     zerolog.Logger
}

// New creates an Executor with the ReAct parser, the default scratchpad formatter, an empty
// hook registry and a disabled logger.
func New(
	model reactloop.Model,
	tools reactloop.ToolFinder,
	renderer reactloop.PromptRenderer,
	config Config,
) *Executor {
	return &Executor{
		model:      model,
		tools:      tools,
		renderer:   renderer,
		parser:     parser.NewReAct(),
		scratchpad: scratchpad.New(),
		config:     config.normalized(),
		hooks:      hooks.NewRegistry(),
		logger:     zerolog.Nop(),
	}
}

// WithParser replaces the output parser.
func (e *Executor) WithParser(p reactloop.OutputParser) *Executor {
	e.parser = p
	return e
}

// WithScratchpad replaces the scratchpad formatter.
func (e *Executor) WithScratchpad(f reactloop.ScratchpadFormatter) *Executor {
	e.scratchpad = f
	return e
}

// WithHooks replaces the executor's hook registry with the provided one.
// Use this when you need to share a registry across multiple executors.
func (e *Executor) WithHooks(h *hooks.Registry) *Executor {
	if h == nil {
		h = hooks.NewRegistry()
	}
	e.hooks = h
	return e
}

// RegisterHook adds a hook to the executor's existing hook registry.
func (e *Executor) RegisterHook(hook any) *Executor {
	e.hooks.Register(hook)
	return e
}

// WithLogger sets the structured logger used for run diagnostics.
func (e *Executor) WithLogger(logger zerolog.Logger) *Executor {
	e.logger = logger
	return e
}

// Config returns the effective configuration.
func (e *Executor) Config() Config {
	return e.config
}

// Run answers question by stepping the agent until it finishes, fails, is cancelled, or
// reaches the iteration bound.
//
// The execution flow:
//  1. Fire BeforeRun
//  2. Repeatedly call Step while the run is in StatusRunning, checking the bound first
//  3. On a fatal error, fire Error
//  4. Fire AfterRun
//
// Every fatal error is returned as a *reactloop.RunError together with a Result holding the
// partial history. A run never fabricates a final answer.
func (e *Executor) Run(ctx context.Context, question string) (*Result, error) {
	state := reactloop.NewRunState(uuid.NewString(), question)
	logger := e.logger.With().Str("run_id", state.RunID).Logger()
	started := time.Now()

	e.hooks.FireBeforeRun(ctx, reactloop.BeforeRunEvent{RunID: state.RunID, Question: question})
	logger.Info().Str("question", question).Int("max_iterations", e.config.MaxIterations).
		Msg("run started")

	var runErr error
	for state.Status == reactloop.StatusRunning {
		if state.Iteration >= e.config.MaxIterations {
			state.Status = reactloop.StatusLimitExceeded
			runErr = &reactloop.MaxIterationsExceededError{Max: e.config.MaxIterations}
			break
		}

		iteration := state.Iteration + 1
		e.hooks.FireBeforeIteration(ctx, reactloop.BeforeIterationEvent{
			RunID:     state.RunID,
			Iteration: iteration,
		})
		iterStart := time.Now()

		next, err := e.Step(ctx, state)
		state = next
		if err != nil {
			runErr = err
			break
		}

		e.hooks.FireAfterIteration(ctx, reactloop.AfterIterationEvent{
			RunID:     state.RunID,
			Iteration: state.Iteration,
			Decision:  lastDecision(state),
			Step:      lastStep(state),
			Duration:  time.Since(iterStart),
		})
	}

	result := &Result{
		RunID:      state.RunID,
		History:    state.History,
		Iterations: state.Iteration,
		Status:     state.Status,
	}
	if state.Status == reactloop.StatusDone {
		result.Output = state.Finish.Output()
		result.ReturnValues = state.Finish.ReturnValues
	}

	if runErr != nil {
		runErr = &reactloop.RunError{
			RunID:   state.RunID,
			Status:  state.Status,
			History: state.History,
			Err:     runErr,
		}
		e.hooks.FireError(ctx, reactloop.ErrorEvent{
			RunID:     state.RunID,
			Iteration: state.Iteration,
			Err:       runErr,
		})
		logger.Error().Err(runErr).Str("status", string(state.Status)).
			Int("iterations", state.Iteration).Dur("duration", time.Since(started)).
			Msg("run failed")
	} else {
		logger.Info().Str("output", result.Output).Int("iterations", state.Iteration).
			Dur("duration", time.Since(started)).Msg("run finished")
	}

	e.hooks.FireAfterRun(ctx, reactloop.AfterRunEvent{
		RunID:      state.RunID,
		Status:     state.Status,
		Output:     result.Output,
		Iterations: state.Iteration,
		Error:      runErr,
	})

	return result, runErr
}

// Step performs exactly one transition of the agent state machine.
//
//  1. Format the history and render the prompt
//  2. Call the model with the stop sequences
//  3. Parse the completion into a decision
//  4. A finish moves the state to StatusDone
//  5. An action runs the named tool and appends the step; the state stays StatusRunning
//
// Parse failures, unknown tools, model failures and render failures move the state to
// StatusFailed and return the error; the history is not advanced. Tool failures are recovered
// into an "Error: ..." observation. Cancellation is checked before the model call, after the
// model call and after the tool call; it moves the state to StatusCancelled and appends nothing.
//
// Step does not enforce the iteration bound; Run does.
func (e *Executor) Step(ctx context.Context, state reactloop.RunState) (reactloop.RunState, error) {
	if state.Status.Terminal() {
		return state, fmt.Errorf("run %s: cannot step from terminal status %q", state.RunID, state.Status)
	}

	next := state
	next.Iteration = state.Iteration + 1
	logger := e.logger.With().Str("run_id", state.RunID).Int("iteration", next.Iteration).Logger()

	if err := ctx.Err(); err != nil {
		return cancelled(next, err)
	}

	prompt, err := e.renderer.Render(state.Question, e.scratchpad.Format(state.History))
	if err != nil {
		return failed(next, fmt.Errorf("render prompt: %w", err))
	}

	completion, err := e.callModel(ctx, next, prompt)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return cancelled(next, ctxErr)
		}
		return failed(next, err)
	}
	if err := ctx.Err(); err != nil {
		return cancelled(next, err)
	}

	decision, err := e.parser.Parse(completion)
	if err != nil {
		logger.Warn().Err(err).Msg("model output could not be parsed")
		return failed(next, err)
	}

	switch d := decision.(type) {
	case *reactloop.AgentFinish:
		next.Status = reactloop.StatusDone
		next.Finish = d
		logger.Debug().Str("output", d.Output()).Msg("final answer")
		return next, nil

	case *reactloop.AgentAction:
		tool, err := e.tools.Find(d.Tool)
		if err != nil {
			logger.Warn().Str("tool", d.Tool).Msg("model requested unknown tool")
			return failed(next, err)
		}

		observation := e.callTool(ctx, next, tool, d)
		if err := ctx.Err(); err != nil {
			return cancelled(next, err)
		}

		next.History = state.History.Append(reactloop.Step{Action: *d, Observation: observation})
		logger.Debug().Str("tool", d.Tool).Str("input", d.ToolInput).
			Str("observation", observation).Msg("tool step recorded")
		return next, nil

	default:
		return failed(next, fmt.Errorf("parser returned unsupported decision %T", decision))
	}
}

// callModel fires the model call hooks around one model call. Errors are normalized to
// *reactloop.ModelCallError.
func (e *Executor) callModel(
	ctx context.Context,
	state reactloop.RunState,
	prompt string,
) (string, error) {
	stop := make([]string, len(e.config.StopSequences))
	copy(stop, e.config.StopSequences)

	e.hooks.FireBeforeModelCall(ctx, reactloop.BeforeModelCallEvent{
		RunID:     state.RunID,
		Iteration: state.Iteration,
		Prompt:    prompt,
		Stop:      stop,
	})

	start := time.Now()
	completion, err := e.model.Call(ctx, prompt, stop)
	duration := time.Since(start)

	if err != nil {
		var mcErr *reactloop.ModelCallError
		if !errors.As(err, &mcErr) {
			err = &reactloop.ModelCallError{Err: err}
		}
		completion = ""
	}

	e.hooks.FireAfterModelCall(ctx, reactloop.AfterModelCallEvent{
		RunID:      state.RunID,
		Iteration:  state.Iteration,
		Prompt:     prompt,
		Completion: completion,
		Duration:   duration,
		Error:      err,
	})

	return completion, err
}

// callTool runs the tool and returns the observation. Errors and panics become an
// "Error: ..." observation.
func (e *Executor) callTool(
	ctx context.Context,
	state reactloop.RunState,
	tool reactloop.Tool,
	action *reactloop.AgentAction,
) string {
	e.hooks.FireBeforeToolCall(ctx, reactloop.BeforeToolCallEvent{
		RunID:     state.RunID,
		Iteration: state.Iteration,
		ToolName:  action.Tool,
		Input:     action.ToolInput,
	})

	start := time.Now()
	output, err := safeRun(ctx, tool, action.ToolInput)
	duration := time.Since(start)

	var toolErr *reactloop.ToolExecutionError
	observation := output
	if err != nil {
		toolErr = &reactloop.ToolExecutionError{Tool: action.Tool, Input: action.ToolInput, Err: err}
		observation = toolErr.Observation()
		e.logger.Warn().Str("run_id", state.RunID).Int("iteration", state.Iteration).
			Str("tool", action.Tool).Err(err).Msg("tool failed, reporting error as observation")
	}

	event := reactloop.AfterToolCallEvent{
		RunID:       state.RunID,
		Iteration:   state.Iteration,
		ToolName:    action.Tool,
		Input:       action.ToolInput,
		Observation: observation,
		Duration:    duration,
	}
	if toolErr != nil {
		event.Error = toolErr
	}
	e.hooks.FireAfterToolCall(ctx, event)

	return observation
}

func safeRun(ctx context.Context, tool reactloop.Tool, input string) (output string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return tool.Run(ctx, input)
}

func failed(state reactloop.RunState, err error) (reactloop.RunState, error) {
	state.Status = reactloop.StatusFailed
	return state, err
}

func cancelled(state reactloop.RunState, err error) (reactloop.RunState, error) {
	state.Status = reactloop.StatusCancelled
	return state, &reactloop.CancelledError{Err: err}
}

func lastDecision(state reactloop.RunState) reactloop.Decision {
	if state.Status == reactloop.StatusDone {
		return state.Finish
	}
	if n := len(state.History); n > 0 {
		action := state.History[n-1].Action
		return &action
	}
	return nil
}

func lastStep(state reactloop.RunState) *reactloop.Step {
	if state.Status == reactloop.StatusDone || len(state.History) == 0 {
		return nil
	}
	step := state.History[len(state.History)-1]
	return &step
}
