package reactloop

import (
	"context"
)

// Tool is a named capability the model may request by name with a single string input.
//
// Tools focus on business logic only: the executor handles lookup, error recovery, and
// replaying the result to the model as an observation.
type Tool interface {
	// Name returns the tool's identifier as the model must write it after "Action:".
	Name() string

	// Description returns a human-readable description rendered into the tool catalog.
	Description() string

	// Run executes the tool. A returned error does not end the run; it is reported back to
	// the model as an observation.
	Run(ctx context.Context, input string) (string, error)
}

// ToolFinder resolves tool names for the executor.
type ToolFinder interface {
	// Find returns the tool registered under name, or a [*ToolNotFoundError].
	Find(name string) (Tool, error)

	// Tools returns the registered tools in registration order.
	Tools() []Tool
}

// ToolFunc is a convenience type for creating tools from plain functions.
type ToolFunc struct {
	name        string
	description string
	fn          func(ctx context.Context, input string) (string, error)
}

// NewToolFunc creates a Tool backed by fn.
func NewToolFunc(
	name, description string,
	fn func(ctx context.Context, input string) (string, error),
) *ToolFunc {
	return &ToolFunc{
		name:        name,
		description: description,
		fn:          fn,
	}
}

// Name returns the tool's identifier.
func (t *ToolFunc) Name() string {
	return t.name
}

// Description returns a human-readable description for the model.
func (t *ToolFunc) Description() string {
	return t.description
}

// Run calls the wrapped function.
func (t *ToolFunc) Run(ctx context.Context, input string) (string, error) {
	return t.fn(ctx, input)
}

// Compile-time check that ToolFunc implements Tool.
var _ Tool = (*ToolFunc)(nil)
