// Package parser converts raw model completions into agent decisions.
//
// The ReAct parser understands the single-input grammar:
//
//	Thought: I need the length of the word
//	Action: get_text_length
//	Action Input: "dog"
//
// or, once the model is done:
//
//	Thought: I now know the final answer
//	Final Answer: 3
//
// Text that fits neither form is rejected with a *reactloop.OutputParseError. The parser never
// guesses: a completion that carries both a final answer and a parseable action is rejected
// as ambiguous.
package parser

import (
	"regexp"
	"strings"

	"github.com/rickchristie/reactloop"
)

const (
	// FinalAnswerMarker introduces the final answer.
	FinalAnswerMarker = "Final Answer:"

	// ActionMarker introduces the tool name.
	ActionMarker = "Action:"

	// ActionInputMarker introduces the tool input.
	ActionInputMarker = "Action Input:"
)

var (
	// Markers may carry an index, e.g. "Action 1:" / "Action Input 1:".
	actionRegex      = regexp.MustCompile(`(?s)Action\s*\d*\s*:[\s]*(.*?)[\s]*Action\s*\d*\s*Input\s*\d*\s*:[\s]*(.*)`)
	actionOnlyRegex  = regexp.MustCompile(`(?s)Action\s*\d*\s*:[\s]*(.*?)`)
	actionInputRegex = regexp.MustCompile(`(?s)[\s]*Action\s*\d*\s*Input\s*\d*\s*:[\s]*(.*)`)
)

// ReAct parses the ReAct single-input text grammar.
type ReAct struct {
	finalAnswerMarker string
}

// NewReAct creates a ReAct parser using the standard "Final Answer:" marker.
func NewReAct() *ReAct {
	return &ReAct{finalAnswerMarker: FinalAnswerMarker}
}

// WithFinalAnswerMarker overrides the marker that introduces the final answer.
// An empty marker is ignored.
func (p *ReAct) WithFinalAnswerMarker(marker string) *ReAct {
	if marker != "" {
		p.finalAnswerMarker = marker
	}
	return p
}

// Parse converts one model completion into a decision.
//
// Returns *reactloop.AgentAction when an "Action:" / "Action Input:" pair is found,
// *reactloop.AgentFinish when only the final answer marker is present, and a
// *reactloop.OutputParseError otherwise.
func (p *ReAct) Parse(text string) (reactloop.Decision, error) {
	includesAnswer := strings.Contains(text, p.finalAnswerMarker)

	if match := actionRegex.FindStringSubmatch(text); match != nil {
		if includesAnswer {
			return nil, &reactloop.OutputParseError{Text: text, Reason: reactloop.ParseAmbiguous}
		}
		return &reactloop.AgentAction{
			Tool:      cleanToolName(match[1]),
			ToolInput: cleanToolInput(match[2]),
			Log:       text,
		}, nil
	}

	if includesAnswer {
		idx := strings.LastIndex(text, p.finalAnswerMarker)
		answer := strings.TrimSpace(text[idx+len(p.finalAnswerMarker):])
		return &reactloop.AgentFinish{
			ReturnValues: map[string]string{reactloop.OutputKey: answer},
			Log:          text,
		}, nil
	}

	switch {
	case !actionOnlyRegex.MatchString(text):
		return nil, &reactloop.OutputParseError{Text: text, Reason: reactloop.ParseMissingAction}
	case !actionInputRegex.MatchString(text):
		return nil, &reactloop.OutputParseError{Text: text, Reason: reactloop.ParseMissingActionInput}
	default:
		return nil, &reactloop.OutputParseError{Text: text, Reason: reactloop.ParseUnrecognized}
	}
}

// cleanToolName strips whitespace and markdown emphasis or quoting around the tool name,
// e.g. "**get_text_length**" or "`search`".
func cleanToolName(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "*`'\""))
}

// cleanToolInput strips surrounding whitespace, newlines and quote characters.
func cleanToolInput(s string) string {
	return strings.Trim(s, " \t\r\n'\"")
}

var _ reactloop.OutputParser = (*ReAct)(nil)
