// Package normal implements leftmost-outermost beta reduction over
// de Bruijn-indexed terms, using shift/substitute arithmetic.
package normal

import (
	"github.com/lam/reducto/pkg/term"
)

// Reducer is a strategy.Strategy performing naive normal-order reduction.
type Reducer struct {
	t term.Term
}

// New returns an unbuilt Reducer.
func New() *Reducer { return &Reducer{} }

// Build fixes up de Bruijn indices and stores the result.
func (r *Reducer) Build(t term.Term) {
	r.t = term.FixIndices(t)
}

// Name identifies the engine.
func (r *Reducer) Name() string { return "normal order" }

// Reduce fully normalizes and returns the Church readout.
func (r *Reducer) Reduce() (uint64, bool) {
	r.t = Reduce(r.t)
	return term.ChurchReadout(r.t)
}

// Shift adds place to any variable tag >= cutoff; cutoff increases by
// one under each abstraction.
func Shift(t term.Term, place, cutoff int) term.Term {
	switch n := t.(type) {
	case term.Var:
		if n.ID >= cutoff {
			return term.Var{ID: n.ID + place}
		}
		return n
	case term.Abs:
		return term.Abs{ID: n.ID, Body: Shift(n.Body, place, cutoff+1)}
	case term.App:
		return term.App{Fun: Shift(n.Fun, place, cutoff), Arg: Shift(n.Arg, place, cutoff)}
	default:
		panic("normal: unknown term type")
	}
}

// Substitute replaces variables whose tag equals depth with arg; under
// abstractions, depth increases and arg is shifted by 1.
func Substitute(t term.Term, arg term.Term, depth int) term.Term {
	switch n := t.(type) {
	case term.Var:
		if n.ID == depth {
			return arg
		}
		return n
	case term.Abs:
		return term.Abs{ID: n.ID, Body: Substitute(n.Body, Shift(arg, 1, 0), depth+1)}
	case term.App:
		return term.App{Fun: Substitute(n.Fun, arg, depth), Arg: Substitute(n.Arg, arg, depth)}
	default:
		panic("normal: unknown term type")
	}
}

// IsNormal is false iff there exists an application whose function
// position is an abstraction anywhere in the tree.
func IsNormal(t term.Term) bool {
	switch n := t.(type) {
	case term.Var:
		return true
	case term.Abs:
		return IsNormal(n.Body)
	case term.App:
		if _, ok := n.Fun.(term.Abs); ok {
			return false
		}
		return IsNormal(n.Fun) && IsNormal(n.Arg)
	default:
		panic("normal: unknown term type")
	}
}

// ReductionStep performs one pass of beta contraction. If the head is an
// application with an abstraction on the left, it performs
// shift(substitute(body, shift(arg,1,0), 0), -1, 0). Otherwise it recurses
// into abstraction bodies and into both sides of applications, so one pass
// may contract a redex in each side.
func ReductionStep(t term.Term) term.Term {
	switch n := t.(type) {
	case term.Var:
		return n
	case term.Abs:
		return term.Abs{ID: n.ID, Body: ReductionStep(n.Body)}
	case term.App:
		if abs, ok := n.Fun.(term.Abs); ok {
			return Shift(Substitute(abs.Body, Shift(n.Arg, 1, 0), 0), -1, 0)
		}
		return term.App{Fun: ReductionStep(n.Fun), Arg: ReductionStep(n.Arg)}
	default:
		panic("normal: unknown term type")
	}
}

// Reduce iterates ReductionStep until IsNormal holds. Divergent terms
// loop forever; this is documented behavior, not a bug.
func Reduce(t term.Term) term.Term {
	for !IsNormal(t) {
		t = ReductionStep(t)
	}
	return t
}
