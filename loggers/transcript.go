// Package loggers provides ready-made hooks that log everything that happens during a run.
package loggers

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rickchristie/reactloop"
	"gopkg.in/yaml.v3"
)

// TranscriptHook implements all hook interfaces and writes a human-readable transcript of the
// run: the full prompt before each model call, the raw completion after it, and every tool
// call. Structured data is written as YAML with block scalars. Nothing is truncated.
type TranscriptHook struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTranscriptHook creates a TranscriptHook writing to w, or to stdout when w is nil.
func NewTranscriptHook(w io.Writer) *TranscriptHook {
	if w == nil {
		w = os.Stdout
	}
	return &TranscriptHook{out: w}
}

// logEvent logs an event header with timestamp.
func (h *TranscriptHook) logEvent(name string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	fmt.Fprintf(h.out, "\n>>> [%s]: %s\n", name, timestamp)
}

// log writes a line without any prefix.
func (h *TranscriptHook) log(format string, args ...any) {
	fmt.Fprintf(h.out, format+"\n", args...)
}

func (h *TranscriptHook) logBlock(title, text string) {
	h.log("%s:", title)
	for _, line := range strings.Split(text, "\n") {
		h.log("  %s", line)
	}
}

func (h *TranscriptHook) logYAML(v any) {
	data, err := yaml.Marshal(v)
	if err != nil {
		h.log("(failed to marshal: %v)", err)
		return
	}
	fmt.Fprint(h.out, string(data))
}

// OnBeforeRun logs the run start with the question.
func (h *TranscriptHook) OnBeforeRun(_ context.Context, event reactloop.BeforeRunEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.logEvent("BeforeRun")
	h.log("================================================================================")
	h.log("RUN STARTED")
	h.log("================================================================================")
	h.logYAML(map[string]any{
		"run_id":   event.RunID,
		"question": event.Question,
	})
}

// OnAfterRun logs the run outcome.
func (h *TranscriptHook) OnAfterRun(_ context.Context, event reactloop.AfterRunEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.logEvent("AfterRun")
	h.log("================================================================================")
	h.log("RUN COMPLETED")
	h.log("================================================================================")

	data := map[string]any{
		"run_id":     event.RunID,
		"status":     string(event.Status),
		"iterations": event.Iterations,
	}
	if event.Status == reactloop.StatusDone {
		data["output"] = event.Output
	}
	if event.Error != nil {
		data["error"] = event.Error.Error()
	}
	h.logYAML(data)
}

// OnBeforeIteration logs iteration start.
func (h *TranscriptHook) OnBeforeIteration(_ context.Context, event reactloop.BeforeIterationEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.logEvent(fmt.Sprintf("BeforeIteration %d", event.Iteration))
	h.log("--------------------------------------------------------------------------------")
	h.log("ITERATION %d START", event.Iteration)
	h.log("--------------------------------------------------------------------------------")
}

// OnAfterIteration logs the decision taken in the iteration.
func (h *TranscriptHook) OnAfterIteration(_ context.Context, event reactloop.AfterIterationEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.logEvent(fmt.Sprintf("AfterIteration %d", event.Iteration))
	h.log("Duration: %s", event.Duration)

	switch d := event.Decision.(type) {
	case *reactloop.AgentFinish:
		h.logYAML(map[string]any{
			"decision":      "finish",
			"return_values": d.ReturnValues,
		})
	case *reactloop.AgentAction:
		data := map[string]any{
			"decision":   "action",
			"tool":       d.Tool,
			"tool_input": d.ToolInput,
		}
		if event.Step != nil {
			data["observation"] = event.Step.Observation
		}
		h.logYAML(data)
	}
}

// OnError logs the fatal error that ended the run.
func (h *TranscriptHook) OnError(_ context.Context, event reactloop.ErrorEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.logEvent("Error")
	h.logYAML(map[string]any{
		"iteration": event.Iteration,
		"error":     event.Err.Error(),
	})
}

// OnBeforeModelCall logs the full prompt sent to the model.
func (h *TranscriptHook) OnBeforeModelCall(_ context.Context, event reactloop.BeforeModelCallEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.logEvent("BeforeModelCall")
	h.logBlock("Prompt", event.Prompt)
	h.logYAML(map[string]any{"stop": event.Stop})
}

// OnAfterModelCall logs the raw completion, or the failure.
func (h *TranscriptHook) OnAfterModelCall(_ context.Context, event reactloop.AfterModelCallEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.logEvent("AfterModelCall")
	h.log("Duration: %s", event.Duration)
	if event.Error != nil {
		h.log("Error: %v", event.Error)
		return
	}
	h.logBlock("Response", event.Completion)
}

// OnBeforeToolCall logs the tool name and input.
func (h *TranscriptHook) OnBeforeToolCall(_ context.Context, event reactloop.BeforeToolCallEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.logEvent(fmt.Sprintf("BeforeToolCall: %s", event.ToolName))
	h.logYAML(map[string]any{"input": event.Input})
}

// OnAfterToolCall logs the observation.
func (h *TranscriptHook) OnAfterToolCall(_ context.Context, event reactloop.AfterToolCallEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.logEvent(fmt.Sprintf("AfterToolCall: %s", event.ToolName))
	h.log("Duration: %s", event.Duration)
	data := map[string]any{"observation": event.Observation}
	if event.Error != nil {
		data["error"] = event.Error.Error()
	}
	h.logYAML(data)
}

// Compile-time checks.
var (
	_ reactloop.BeforeRunHook       = (*TranscriptHook)(nil)
	_ reactloop.AfterRunHook        = (*TranscriptHook)(nil)
	_ reactloop.BeforeIterationHook = (*TranscriptHook)(nil)
	_ reactloop.AfterIterationHook  = (*TranscriptHook)(nil)
	_ reactloop.ErrorHook           = (*TranscriptHook)(nil)
	_ reactloop.BeforeModelCallHook = (*TranscriptHook)(nil)
	_ reactloop.AfterModelCallHook  = (*TranscriptHook)(nil)
	_ reactloop.BeforeToolCallHook  = (*TranscriptHook)(nil)
	_ reactloop.AfterToolCallHook   = (*TranscriptHook)(nil)
)
