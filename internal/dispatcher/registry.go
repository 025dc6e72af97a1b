package dispatcher

import (
	"sort"
	"sync"

	"github.com/dshills/pyselect/internal/dispatcher/handler"
)

// Registry maps command names to the handler that runs them.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]handler.Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]handler.Handler),
	}
}

// Register binds every command h lists to h. A command already bound to
// another handler is rebound; the names rebound are returned.
func (r *Registry) Register(h handler.Handler) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var replaced []string
	for _, name := range h.Commands() {
		if _, ok := r.handlers[name]; ok {
			replaced = append(replaced, name)
		}
		r.handlers[name] = h
	}
	return replaced
}

// Unregister removes the binding for a command name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, name)
}

// Get returns the handler bound to a command, or nil.
func (r *Registry) Get(name string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handlers[name]
}

// Has reports whether a command is bound.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[name]
	return ok
}

// List returns the bound command names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of bound commands.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}
