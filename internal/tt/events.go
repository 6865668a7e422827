package tt

import (
	"context"
	"sync"

	"github.com/rickchristie/reactloop"
)

// RecordingHook implements every hook interface and records the events it receives, in order.
type RecordingHook struct {
	mu     sync.Mutex
	events []any
}

// NewRecordingHook creates an empty RecordingHook.
func NewRecordingHook() *RecordingHook {
	return &RecordingHook{}
}

func (h *RecordingHook) record(event any) {
	h.mu.Lock()
	h.events = append(h.events, event)
	h.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (h *RecordingHook) Events() []any {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]any(nil), h.events...)
}

// Names returns the event type names in the order they were received.
func (h *RecordingHook) Names() []string {
	events := h.Events()
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = EventName(e)
	}
	return names
}

// Prompts returns the prompts of all BeforeModelCall events.
func (h *RecordingHook) Prompts() []string {
	var prompts []string
	for _, e := range h.Events() {
		if ev, ok := e.(reactloop.BeforeModelCallEvent); ok {
			prompts = append(prompts, ev.Prompt)
		}
	}
	return prompts
}

// Completions returns the completions of all AfterModelCall events.
func (h *RecordingHook) Completions() []string {
	var completions []string
	for _, e := range h.Events() {
		if ev, ok := e.(reactloop.AfterModelCallEvent); ok {
			completions = append(completions, ev.Completion)
		}
	}
	return completions
}

// EventName returns the short type name of a hook event.
func EventName(event any) string {
	switch event.(type) {
	case reactloop.BeforeRunEvent:
		return "BeforeRun"
	case reactloop.AfterRunEvent:
		return "AfterRun"
	case reactloop.BeforeIterationEvent:
		return "BeforeIteration"
	case reactloop.AfterIterationEvent:
		return "AfterIteration"
	case reactloop.BeforeModelCallEvent:
		return "BeforeModelCall"
	case reactloop.AfterModelCallEvent:
		return "AfterModelCall"
	case reactloop.BeforeToolCallEvent:
		return "BeforeToolCall"
	case reactloop.AfterToolCallEvent:
		return "AfterToolCall"
	case reactloop.ErrorEvent:
		return "Error"
	default:
		return "Unknown"
	}
}

func (h *RecordingHook) OnBeforeRun(_ context.Context, e reactloop.BeforeRunEvent) { h.record(e) }

func (h *RecordingHook) OnAfterRun(_ context.Context, e reactloop.AfterRunEvent) { h.record(e) }

func (h *RecordingHook) OnBeforeIteration(_ context.Context, e reactloop.BeforeIterationEvent) {
	h.record(e)
}

func (h *RecordingHook) OnAfterIteration(_ context.Context, e reactloop.AfterIterationEvent) {
	h.record(e)
}

func (h *RecordingHook) OnBeforeModelCall(_ context.Context, e reactloop.BeforeModelCallEvent) {
	h.record(e)
}

func (h *RecordingHook) OnAfterModelCall(_ context.Context, e reactloop.AfterModelCallEvent) {
	h.record(e)
}

func (h *RecordingHook) OnBeforeToolCall(_ context.Context, e reactloop.BeforeToolCallEvent) {
	h.record(e)
}

func (h *RecordingHook) OnAfterToolCall(_ context.Context, e reactloop.AfterToolCallEvent) {
	h.record(e)
}

func (h *RecordingHook) OnError(_ context.Context, e reactloop.ErrorEvent) { h.record(e) }
