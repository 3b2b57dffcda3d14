// Package strategy defines the uniform contract every reduction engine
// implements, and a small registry used by the benchmark driver.
package strategy

import "github.com/lam/reducto/pkg/term"

// Strategy is the contract a reduction engine exposes to the driver.
// Build replaces engine state with a fresh representation of t. Reduce
// fully normalizes and returns the Church readout, or ok=false if the
// normal form is not a Church numeral under the expected shape. Engines
// must be safely re-buildable: build(t); reduce() run twice in a row on
// the same engine must return the same value.
type Strategy interface {
	Build(t term.Term)
	Reduce() (value uint64, ok bool)
	Name() string
}

// Factory constructs a fresh, unbuilt Strategy instance.
type Factory func() Strategy

// Registry maps engine names to factories, preserving registration order
// so the driver iterates deterministically.
type Registry struct {
	order  []string
	byName map[string]Factory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Factory)}
}

// Register adds a named factory. Re-registering a name overwrites its
// factory but keeps its original position in iteration order.
func (r *Registry) Register(name string, f Factory) {
	if _, exists := r.byName[name]; !exists {
		r.order = append(r.order, name)
	}
	r.byName[name] = f
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// New constructs a fresh Strategy for the given name, or nil if unknown.
func (r *Registry) New(name string) Strategy {
	f, ok := r.byName[name]
	if !ok {
		return nil
	}
	return f()
}
