package helper

import (
	"sort"
	"sync"
)

// Helper is a named callable a template invokes by name, optionally
// controlling nested block rendering through the BlockHandle.
type Helper interface {
	// Arity returns the number of required positional parameters. Dispatch
	// fails with *MissingParameterError before Invoke runs when fewer are
	// supplied.
	Arity() int

	// Invoke runs the helper for one invocation and returns the text to
	// splice into the output stream. The handle is only valid until Invoke
	// returns.
	Invoke(inv *Invocation, block *BlockHandle) (string, error)
}

// InvokeFunc is the signature of a native helper body.
type InvokeFunc func(inv *Invocation, block *BlockHandle) (string, error)

type funcHelper struct {
	arity int
	fn    InvokeFunc
}

// Func builds a native helper from a function and its required parameter
// count.
func Func(arity int, fn InvokeFunc) Helper {
	return &funcHelper{arity: arity, fn: fn}
}

func (h *funcHelper) Arity() int {
	return h.arity
}

func (h *funcHelper) Invoke(inv *Invocation, block *BlockHandle) (string, error) {
	return h.fn(inv, block)
}

// Registry maps helper names to helpers. Registering under an existing name
// replaces the previous helper; last write wins.
//
// The registry is safe for concurrent lookup. Mutating it while a render
// referencing the same name is in flight must be synchronized by the caller.
type Registry struct {
	mu      sync.RWMutex
	helpers map[string]Helper
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{helpers: make(map[string]Helper)}
}

// Register inserts or replaces the helper registered under name.
func (r *Registry) Register(name string, h Helper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.helpers[name] = h
}

// Unregister removes the helper registered under name, if any.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.helpers, name)
}

// Lookup returns the helper registered under name.
func (r *Registry) Lookup(name string) (Helper, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.helpers[name]
	return h, ok
}

// Names returns the registered helper names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.helpers))
	for name := range r.helpers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
