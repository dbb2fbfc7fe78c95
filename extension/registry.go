// registry.go implements the extension registration system.
//
// Separated from extension.go to isolate the global registry state and
// thread-safe access patterns. Extensions self-register during init(),
// before main() runs.
//
// Duplicate names panic, as with database/sql.Register. Registration order
// is preserved so command and tool ordering is stable across runs.

package extension

import "sync"

// Registry holds all registered extensions.
var (
	mu       sync.RWMutex
	registry = make(map[string]Extension)
	order    []string // preserve registration order
)

// Register adds an extension to the registry. Called from init() functions.
// A duplicate name is a programming error and panics.
func Register(e Extension) {
	mu.Lock()
	defer mu.Unlock()

	name := e.Name()
	if _, exists := registry[name]; exists {
		panic("extension already registered: " + name)
	}

	registry[name] = e
	order = append(order, name)
}

// All returns all registered extensions in registration order.
func All() []Extension {
	mu.RLock()
	defer mu.RUnlock()

	exts := make([]Extension, 0, len(order))
	for _, name := range order {
		exts = append(exts, registry[name])
	}
	return exts
}

// Get returns a specific extension by name, or nil if not found.
func Get(name string) Extension {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// Tools returns the MCP tools of every registered extension, in
// registration order.
func Tools() []MCPTool {
	var tools []MCPTool
	for _, e := range All() {
		tools = append(tools, e.MCPTools()...)
	}
	return tools
}

// Names returns the names of all registered extensions.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, len(order))
	copy(names, order)
	return names
}
