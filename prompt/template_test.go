package prompt

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rickchristie/reactloop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTools() []reactloop.Tool {
	noop := func(context.Context, string) (string, error) { return "", nil }
	return []reactloop.Tool{
		reactloop.NewToolFunc("get_text_length", "returns the length of the text", noop),
		reactloop.NewToolFunc("search", "searches the web", noop),
	}
}

func TestRenderTextDescription(t *testing.T) {
	type input struct {
		tools []reactloop.Tool
	}

	type expected struct {
		description string
		names       string
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "no tools",
			input:    input{},
			expected: expected{description: "", names: ""},
		},
		{
			name:  "two tools in order",
			input: input{tools: testTools()},
			expected: expected{
				description: "get_text_length: returns the length of the text\nsearch: searches the web",
				names:       "get_text_length, search",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected.description, RenderTextDescription(tt.input.tools))
			assert.Equal(t, tt.expected.names, ToolNames(tt.input.tools))
		})
	}
}

func TestTemplate_Render(t *testing.T) {
	type input struct {
		tmpl       string
		question   string
		scratchpad string
	}

	type expected struct {
		prompt    string
		renderErr bool
		parseErr  bool
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "all fields",
			input: input{
				tmpl:       "[{{.ToolNames}}]\n{{.Tools}}\nQ: {{.Input}}\nThought: {{.AgentScratchpad}}",
				question:   "What is the length of the word dog",
				scratchpad: "Action: get_text_length\nAction Input: dog\nObservation: 3\n",
			},
			expected: expected{
				prompt: "[get_text_length, search]\n" +
					"get_text_length: returns the length of the text\nsearch: searches the web\n" +
					"Q: What is the length of the word dog\n" +
					"Thought: Action: get_text_length\nAction Input: dog\nObservation: 3\n",
			},
		},
		{
			name:     "unknown field fails at render",
			input:    input{tmpl: "{{.Unknown}}"},
			expected: expected{renderErr: true},
		},
		{
			name:     "malformed template fails at parse",
			input:    input{tmpl: "{{.Input"},
			expected: expected{parseErr: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := New(tt.input.tmpl, testTools())
			if tt.expected.parseErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			out, err := tmpl.Render(tt.input.question, tt.input.scratchpad)
			if tt.expected.renderErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected.prompt, out)
		})
	}
}

func TestNewDefault(t *testing.T) {
	tmpl := NewDefault(testTools())

	out, err := tmpl.Render("What is the length of the word dog", "")
	require.NoError(t, err)

	assert.Contains(t, out, "get_text_length: returns the length of the text")
	assert.Contains(t, out, "should be one of [get_text_length, search]")
	assert.Contains(t, out, "Question: What is the length of the word dog\n")
	assert.True(t, strings.HasPrefix(out, "Answer the following questions"))
	assert.True(t, strings.HasSuffix(strings.TrimRight(out, " \n"), "Thought:"))
}

func TestTemplate_WithClock(t *testing.T) {
	fixed := FixedClock{T: time.Date(2025, 2, 15, 14, 30, 0, 0, time.UTC)}

	tmpl, err := New("Today is {{.Time.Today}} ({{.Time.Weekday}}), {{.Time.Format \"3:04 PM\"}}.", nil)
	require.NoError(t, err)

	out, err := tmpl.WithClock(fixed).Render("q", "")
	require.NoError(t, err)
	assert.Equal(t, "Today is 2025-02-15 (Saturday), 2:30 PM.", out)

	// A nil clock keeps the current one.
	out, err = tmpl.WithClock(nil).Render("q", "")
	require.NoError(t, err)
	assert.Equal(t, "Today is 2025-02-15 (Saturday), 2:30 PM.", out)
}

func TestSystemClock(t *testing.T) {
	before := time.Now()
	now := SystemClock{}.Now()
	assert.False(t, now.Before(before))
	assert.Equal(t, now.Format("2006-01-02")[:4], SystemClock{}.Today()[:4])
}
