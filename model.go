package reactloop

import (
	"context"
)

// Model is the model call adapter consumed by the executor. It accepts a fully rendered prompt
// and the stop sequences, and returns the raw text completion.
//
// Implementations should return a [*ModelCallError] on transport or auth failures; the
// executor wraps any other error the same way. Retrying is left to the implementation.
type Model interface {
	Call(ctx context.Context, prompt string, stop []string) (string, error)
}

// ModelFunc adapts a plain function to the Model interface.
type ModelFunc func(ctx context.Context, prompt string, stop []string) (string, error)

// Call calls f.
func (f ModelFunc) Call(ctx context.Context, prompt string, stop []string) (string, error) {
	return f(ctx, prompt, stop)
}

// OutputParser converts one model completion into a [Decision].
//
// Unrecognized text must produce an error (typically [*OutputParseError]); implementations
// never guess between an action and a finish.
type OutputParser interface {
	Parse(text string) (Decision, error)
}

// ScratchpadFormatter renders the run history into the text injected into the next prompt.
// Formatting the same history twice must yield identical text.
type ScratchpadFormatter interface {
	Format(history History) string
}

// PromptRenderer produces the full prompt for one model call. The tool catalog is bound when
// the renderer is built; only the input and the scratchpad vary per call.
type PromptRenderer interface {
	Render(input, scratchpad string) (string, error)
}
