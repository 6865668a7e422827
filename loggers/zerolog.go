package loggers

import (
	"context"

	"github.com/rickchristie/reactloop"
	"github.com/rs/zerolog"
)

// ZerologHook logs every hook event as a structured zerolog entry tagged with run_id and
// iteration. Lifecycle events log at info, model and tool traffic at debug, tool failures at
// warn and fatal errors at error.
type ZerologHook struct {
	logger zerolog.Logger
}

// NewZerologHook creates a ZerologHook writing to logger.
func NewZerologHook(logger zerolog.Logger) *ZerologHook {
	return &ZerologHook{logger: logger}
}

func (h *ZerologHook) OnBeforeRun(_ context.Context, e reactloop.BeforeRunEvent) {
	h.logger.Info().Str("run_id", e.RunID).Str("question", e.Question).Msg("agent run started")
}

func (h *ZerologHook) OnAfterRun(_ context.Context, e reactloop.AfterRunEvent) {
	var ev *zerolog.Event
	if e.Error != nil {
		ev = h.logger.Error().Err(e.Error)
	} else {
		ev = h.logger.Info()
	}
	ev.Str("run_id", e.RunID).
		Str("status", string(e.Status)).
		Int("iterations", e.Iterations).
		Str("output", e.Output).
		Msg("agent run ended")
}

func (h *ZerologHook) OnBeforeIteration(_ context.Context, e reactloop.BeforeIterationEvent) {
	h.logger.Debug().Str("run_id", e.RunID).Int("iteration", e.Iteration).Msg("iteration started")
}

func (h *ZerologHook) OnAfterIteration(_ context.Context, e reactloop.AfterIterationEvent) {
	ev := h.logger.Info().Str("run_id", e.RunID).Int("iteration", e.Iteration).Dur("duration", e.Duration)
	switch d := e.Decision.(type) {
	case *reactloop.AgentAction:
		ev = ev.Str("decision", "action").Str("tool", d.Tool).Str("tool_input", d.ToolInput)
	case *reactloop.AgentFinish:
		ev = ev.Str("decision", "finish").Str("output", d.Output())
	}
	ev.Msg("iteration completed")
}

func (h *ZerologHook) OnBeforeModelCall(_ context.Context, e reactloop.BeforeModelCallEvent) {
	h.logger.Debug().Str("run_id", e.RunID).Int("iteration", e.Iteration).
		Str("prompt", e.Prompt).Strs("stop", e.Stop).Msg("model call")
}

func (h *ZerologHook) OnAfterModelCall(_ context.Context, e reactloop.AfterModelCallEvent) {
	if e.Error != nil {
		h.logger.Error().Err(e.Error).Str("run_id", e.RunID).Int("iteration", e.Iteration).
			Dur("duration", e.Duration).Msg("model call failed")
		return
	}
	h.logger.Debug().Str("run_id", e.RunID).Int("iteration", e.Iteration).
		Str("completion", e.Completion).Dur("duration", e.Duration).Msg("model responded")
}

func (h *ZerologHook) OnBeforeToolCall(_ context.Context, e reactloop.BeforeToolCallEvent) {
	h.logger.Debug().Str("run_id", e.RunID).Int("iteration", e.Iteration).
		Str("tool", e.ToolName).Str("input", e.Input).Msg("tool call")
}

func (h *ZerologHook) OnAfterToolCall(_ context.Context, e reactloop.AfterToolCallEvent) {
	if e.Error != nil {
		h.logger.Warn().Err(e.Error).Str("run_id", e.RunID).Int("iteration", e.Iteration).
			Str("tool", e.ToolName).Msg("tool failed")
		return
	}
	h.logger.Debug().Str("run_id", e.RunID).Int("iteration", e.Iteration).
		Str("tool", e.ToolName).Str("observation", e.Observation).Dur("duration", e.Duration).
		Msg("tool returned")
}

func (h *ZerologHook) OnError(_ context.Context, e reactloop.ErrorEvent) {
	h.logger.Error().Err(e.Err).Str("run_id", e.RunID).Int("iteration", e.Iteration).Msg("agent run failed")
}
