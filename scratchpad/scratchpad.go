// Package scratchpad renders run history into the text block injected into the next prompt.
package scratchpad

import (
	"strings"

	"github.com/rickchristie/reactloop"
)

// DefaultObservationPrefix precedes every observation.
const DefaultObservationPrefix = "Observation: "

// Log replays each step as the model wrote it, followed by the observation.
//
// Example output for one step with LLMPrefix "Thought: ":
//
//	I should count the letters.
//	Action: get_text_length
//	Action Input: dog
//	Observation: 3
//	Thought:
//
// Formatting is pure: the same history always yields the same text.
type Log struct {
	observationPrefix string
	llmPrefix         string
}

// New creates a Log formatter with the "Observation: " prefix and no LLM prefix.
func New() *Log {
	return &Log{observationPrefix: DefaultObservationPrefix}
}

// WithObservationPrefix sets the text written before each observation.
func (l *Log) WithObservationPrefix(prefix string) *Log {
	l.observationPrefix = prefix
	return l
}

// WithLLMPrefix sets the text written after each observation, prompting the model's next turn.
func (l *Log) WithLLMPrefix(prefix string) *Log {
	l.llmPrefix = prefix
	return l
}

// Format renders history in chronological order. An empty history yields "".
func (l *Log) Format(history reactloop.History) string {
	var sb strings.Builder
	for _, step := range history {
		sb.WriteString(step.Action.Log)
		sb.WriteString("\n")
		sb.WriteString(l.observationPrefix)
		sb.WriteString(step.Observation)
		sb.WriteString("\n")
		sb.WriteString(l.llmPrefix)
	}
	return sb.String()
}

var _ reactloop.ScratchpadFormatter = (*Log)(nil)
