package scratchpad

import (
	"testing"

	"github.com/rickchristie/reactloop"
	"github.com/stretchr/testify/assert"
)

func step(log, observation string) reactloop.Step {
	return reactloop.Step{
		Action:      reactloop.AgentAction{Tool: "t", ToolInput: "i", Log: log},
		Observation: observation,
	}
}

func TestLog_Format(t *testing.T) {
	type input struct {
		history   reactloop.History
		llmPrefix string
		obsPrefix string
	}

	type expected struct {
		text string
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "empty history",
			input:    input{},
			expected: expected{text: ""},
		},
		{
			name: "single step",
			input: input{
				history: reactloop.History{step("Action: get_text_length\nAction Input: dog", "3")},
			},
			expected: expected{text: "Action: get_text_length\nAction Input: dog\nObservation: 3\n"},
		},
		{
			name: "steps keep chronological order",
			input: input{
				history: reactloop.History{
					step("first", "a"),
					step("second", "b"),
				},
			},
			expected: expected{text: "first\nObservation: a\nsecond\nObservation: b\n"},
		},
		{
			name: "llm prefix continues the thought",
			input: input{
				history:   reactloop.History{step("first", "a"), step("second", "b")},
				llmPrefix: "Thought: ",
			},
			expected: expected{text: "first\nObservation: a\nThought: second\nObservation: b\nThought: "},
		},
		{
			name: "custom observation prefix",
			input: input{
				history:   reactloop.History{step("x", "Error: boom")},
				obsPrefix: "Result: ",
			},
			expected: expected{text: "x\nResult: Error: boom\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New().WithLLMPrefix(tt.input.llmPrefix)
			if tt.input.obsPrefix != "" {
				f.WithObservationPrefix(tt.input.obsPrefix)
			}

			first := f.Format(tt.input.history)
			second := f.Format(tt.input.history)

			assert.Equal(t, tt.expected.text, first)
			assert.Equal(t, first, second, "formatting must be idempotent")
		})
	}
}
