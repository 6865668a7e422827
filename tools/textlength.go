// Package tools contains built-in tools.
package tools

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rickchristie/reactloop"
)

// TextLengthName is the name the model uses to call the text length tool.
const TextLengthName = "get_text_length"

// NewTextLength returns a tool that counts the characters of its input. Surrounding single
// quotes and newlines are stripped first, then double quotes, so `'dog'` and `"dog"` both
// count as 3.
func NewTextLength() reactloop.Tool {
	return reactloop.NewToolFunc(
		TextLengthName,
		"returns the length of the text",
		func(_ context.Context, input string) (string, error) {
			return strconv.Itoa(TextLength(input)), nil
		},
	)
}

// TextLength returns the number of characters in text after stripping surrounding quotes.
func TextLength(text string) int {
	text = strings.Trim(strings.Trim(text, "'\n"), `"`)
	return utf8.RuneCountInString(text)
}
