package inet

import "github.com/lam/reducto/pkg/term"

// Engine is a strategy.Strategy wrapping a level-indexed interaction net.
type Engine struct {
	net *Net
}

// New returns an unbuilt Engine.
func New() *Engine { return &Engine{} }

// Name identifies the engine.
func (e *Engine) Name() string { return "optimal interaction net" }

// Build constructs the net from t.
func (e *Engine) Build(t term.Term) {
	e.net = Build(t)
}

// Reduce drives the net to normal form and reads the result back to a
// Church numeral.
func (e *Engine) Reduce() (uint64, bool) {
	e.net.Reduce()
	t, ok := e.net.ToTree()
	if !ok {
		return 0, false
	}
	return term.ChurchReadout(t)
}
