// Package hoas implements a higher-order abstract syntax evaluator:
// lambda bodies are represented as host-level Go closures rather than
// data, and a single "step" function descends everywhere.
package hoas

import "github.com/lam/reducto/pkg/term"

// Hoas is the HOAS term representation: Var(i) | Abs(fn) | App(l, r).
type Hoas struct {
	kind kind
	varI int
	fn   func(Hoas) Hoas
	l, r *Hoas
}

type kind int

const (
	kVar kind = iota
	kAbs
	kApp
)

func mkVar(i int) Hoas              { return Hoas{kind: kVar, varI: i} }
func mkAbs(fn func(Hoas) Hoas) Hoas { return Hoas{kind: kAbs, fn: fn} }
func mkApp(l, r Hoas) Hoas          { return Hoas{kind: kApp, l: &l, r: &r} }

// Evaluator is a strategy.Strategy wrapping a Hoas value.
type Evaluator struct {
	h Hoas
}

// New returns an unbuilt Evaluator.
func New() *Evaluator { return &Evaluator{} }

// Name identifies the engine.
func (e *Evaluator) Name() string { return "hoas" }

// Build converts the term by recursion. Each Abs conversion closure gets
// its own copy of the binder-id -> Hoas mapping; a single map shared
// across closures would let sibling applications clobber each other's
// bindings.
func (e *Evaluator) Build(t term.Term) {
	e.h = convert(t, map[int]Hoas{})
}

func convert(t term.Term, binding map[int]Hoas) Hoas {
	switch n := t.(type) {
	case term.Var:
		if h, ok := binding[n.ID]; ok {
			return h
		}
		return mkVar(n.ID)
	case term.Abs:
		id := n.ID
		body := n.Body
		return mkAbs(func(x Hoas) Hoas {
			next := make(map[int]Hoas, len(binding)+1)
			for k, v := range binding {
				next[k] = v
			}
			next[id] = x
			return convert(body, next)
		})
	case term.App:
		return mkApp(convert(n.Fun, binding), convert(n.Arg, binding))
	default:
		panic("hoas: unknown term type")
	}
}

// step performs one descent: Var is inert; Abs descends under its body;
// App steps its function side and, if that yields an abstraction, applies
// it to the unstepped argument, otherwise steps the argument too.
func step(h Hoas) Hoas {
	switch h.kind {
	case kVar:
		return h
	case kAbs:
		fn := h.fn
		return mkAbs(func(x Hoas) Hoas { return step(fn(x)) })
	case kApp:
		l := step(*h.l)
		if l.kind == kAbs {
			return l.fn(*h.r)
		}
		r := step(*h.r)
		return mkApp(l, r)
	default:
		panic("hoas: unknown hoas kind")
	}
}

// Reduce steps to normal form, then probes the result as λf.λx. body,
// instantiating f and x with two distinct sentinel variables and walking
// the resulting spine: every application head must be the f sentinel, and
// the spine must bottom out at the x sentinel.
func (e *Evaluator) Reduce() (uint64, bool) {
	e.h = step(e.h)
	if e.h.kind != kAbs {
		return 0, false
	}
	outer := e.h.fn(mkVar(-1))
	if outer.kind != kAbs {
		return 0, false
	}
	cur := outer.fn(mkVar(-2))
	var count uint64
	for cur.kind == kApp {
		left := *cur.l
		if left.kind != kVar || left.varI != -1 {
			return 0, false
		}
		count++
		cur = *cur.r
	}
	if cur.kind != kVar || cur.varI != -2 {
		return 0, false
	}
	return count, true
}
