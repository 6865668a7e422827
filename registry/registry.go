// Package registry holds the tools available to an agent run and resolves them by name.
package registry

import (
	"sync"

	"github.com/rickchristie/reactloop"
)

// Registry stores tools in registration order and finds them by exact name.
//
// Names are not required to be unique. When two tools share a name, the one registered
// first is returned by Find; later ones still appear in Tools().
//
// Registry is safe for concurrent reads. Register tools at startup, before any run begins.
type Registry struct {
	mu     sync.RWMutex
	tools  []reactloop.Tool
	byName map[string]reactloop.Tool
}

// New creates a Registry holding the given tools. Nil tools are ignored.
func New(tools ...reactloop.Tool) *Registry {
	r := &Registry{
		tools:  make([]reactloop.Tool, 0, len(tools)),
		byName: make(map[string]reactloop.Tool, len(tools)),
	}
	return r.Register(tools...)
}

// Register appends tools to the registry and returns it for chaining.
func (r *Registry) Register(tools ...reactloop.Tool) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, tool := range tools {
		if tool == nil {
			continue
		}
		r.tools = append(r.tools, tool)
		if _, exists := r.byName[tool.Name()]; !exists {
			r.byName[tool.Name()] = tool
		}
	}
	return r
}

// Find returns the tool registered under name. The match is exact and case-sensitive.
// An unknown name yields a *reactloop.ToolNotFoundError.
func (r *Registry) Find(name string) (reactloop.Tool, error) {
	r.mu.RLock()
	tool, ok := r.byName[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &reactloop.ToolNotFoundError{Name: name}
	}
	return tool, nil
}

// Tools returns a copy of the registered tools in registration order.
func (r *Registry) Tools() []reactloop.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reactloop.Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.tools))
	for i, tool := range r.tools {
		names[i] = tool.Name()
	}
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

var _ reactloop.ToolFinder = (*Registry)(nil)
