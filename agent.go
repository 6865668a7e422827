package reactloop

// OutputKey is the return value key under which the final answer is stored.
const OutputKey = "output"

// Decision is the parser's verdict on one model completion. It is exactly one of
// [*AgentAction] or [*AgentFinish]; no other type implements it.
type Decision interface {
	// RawLog returns the model text the decision was parsed from.
	RawLog() string

	decision()
}

// AgentAction is a decision to invoke a tool.
type AgentAction struct {
	// Tool is the name of the tool to invoke.
	Tool string

	// ToolInput is the string passed to the tool.
	ToolInput string

	// Log is the model's full reasoning text, replayed verbatim into the scratchpad.
	Log string
}

// RawLog returns the model text the action was parsed from.
func (a *AgentAction) RawLog() string { return a.Log }

func (*AgentAction) decision() {}

// AgentFinish is the terminal decision carrying the final answer.
type AgentFinish struct {
	// ReturnValues holds the final answer, conventionally under [OutputKey].
	ReturnValues map[string]string

	// Log is the model's full text for this step.
	Log string
}

// RawLog returns the model text the finish was parsed from.
func (f *AgentFinish) RawLog() string { return f.Log }

// Output returns the final answer stored under [OutputKey].
func (f *AgentFinish) Output() string {
	if f == nil {
		return ""
	}
	return f.ReturnValues[OutputKey]
}

func (*AgentFinish) decision() {}

// Compile-time checks that both variants implement Decision.
var (
	_ Decision = (*AgentAction)(nil)
	_ Decision = (*AgentFinish)(nil)
)

// Step is one completed iteration: the action taken and what it produced.
type Step struct {
	Action AgentAction

	// Observation is the tool's textual result, or an "Error: ..." description when the tool
	// failed.
	Observation string
}

// History is the ordered sequence of steps of a single run.
type History []Step

// Append returns a new History with step added at the end. The receiver is never modified, so
// a History handed to a hook or returned in an error stays stable.
func (h History) Append(step Step) History {
	next := make(History, len(h), len(h)+1)
	copy(next, h)
	return append(next, step)
}

// Len returns the number of steps.
func (h History) Len() int {
	return len(h)
}

// RunStatus is the state of a run in the agent state machine.
type RunStatus string

const (
	// StatusRunning means the loop should take another step.
	StatusRunning RunStatus = "running"

	// StatusDone means the model produced a final answer.
	StatusDone RunStatus = "done"

	// StatusFailed means a fatal error ended the run.
	StatusFailed RunStatus = "failed"

	// StatusCancelled means the context was cancelled at a suspension point.
	StatusCancelled RunStatus = "cancelled"

	// StatusLimitExceeded means the iteration bound was reached without a final answer.
	StatusLimitExceeded RunStatus = "limit_exceeded"
)

// Terminal reports whether no further steps may be taken from this status.
func (s RunStatus) Terminal() bool {
	return s != StatusRunning
}

// RunState is the value threaded through the agent state machine. Each call to a step function
// consumes one RunState and produces the next.
type RunState struct {
	// RunID identifies the run in logs and hook events.
	RunID string

	// Question is the user's input for the run.
	Question string

	// History holds the completed steps so far.
	History History

	// Iteration is the number of steps attempted, including the one that finished the run.
	Iteration int

	// Status is the current state machine state.
	Status RunStatus

	// Finish is set once Status is StatusDone.
	Finish *AgentFinish
}

// NewRunState creates the initial state of a run.
func NewRunState(runID, question string) RunState {
	return RunState{
		RunID:    runID,
		Question: question,
		History:  History{},
		Status:   StatusRunning,
	}
}
