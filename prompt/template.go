// Package prompt renders the tool catalog and the full ReAct prompt for each model call.
package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/rickchristie/reactloop"
)

//go:embed react.tmpl
var reactTemplateContent string

// DefaultReActTemplate is the standard ReAct prompt. It explains the
// Thought/Action/Action Input/Observation format and ends with an open "Thought:" line
// followed by the scratchpad.
//
// The template file is located at prompt/react.tmpl.
var DefaultReActTemplate = reactTemplateContent

// Data contains the fields available to prompt templates.
type Data struct {
	// Tools is the rendered tool catalog, one "name: description" line per tool.
	Tools string

	// ToolNames is the comma separated list of tool names.
	ToolNames string

	// Input is the user's question.
	Input string

	// AgentScratchpad is the formatted history of the run so far.
	AgentScratchpad string

	// Time gives templates access to the current date and time.
	Time Clock
}

// Template is a PromptRenderer backed by text/template. The tool catalog is bound once when
// the Template is created.
type Template struct {
	tmpl      *template.Template
	tools     string
	toolNames string
	clock     Clock
}

// New parses tmplStr and binds the tool catalog.
func New(tmplStr string, tools []reactloop.Tool) (*Template, error) {
	tmpl, err := template.New("react").Option("missingkey=error").Parse(tmplStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt template: %w", err)
	}
	return &Template{
		tmpl:      tmpl,
		tools:     RenderTextDescription(tools),
		toolNames: ToolNames(tools),
		clock:     SystemClock{},
	}, nil
}

// WithClock sets the clock exposed to the template as .Time.
func (t *Template) WithClock(c Clock) *Template {
	if c != nil {
		t.clock = c
	}
	return t
}

// NewDefault creates a Template from DefaultReActTemplate.
func NewDefault(tools []reactloop.Tool) *Template {
	t, err := New(DefaultReActTemplate, tools)
	if err != nil {
		panic(err)
	}
	return t
}

// Render produces the prompt for one model call.
func (t *Template) Render(input, scratchpad string) (string, error) {
	var buf bytes.Buffer
	err := t.tmpl.Execute(&buf, Data{
		Tools:           t.tools,
		ToolNames:       t.toolNames,
		Input:           input,
		AgentScratchpad: scratchpad,
		Time:            t.clock,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return buf.String(), nil
}

// RenderTextDescription renders one "name: description" line per tool, in order.
func RenderTextDescription(tools []reactloop.Tool) string {
	lines := make([]string, 0, len(tools))
	for _, tool := range tools {
		lines = append(lines, tool.Name()+": "+tool.Description())
	}
	return strings.Join(lines, "\n")
}

// ToolNames joins the tool names with ", ".
func ToolNames(tools []reactloop.Tool) string {
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name())
	}
	return strings.Join(names, ", ")
}

var _ reactloop.PromptRenderer = (*Template)(nil)
