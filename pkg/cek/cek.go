// Package cek implements the CEK abstract machine: an iterative
// small-step evaluator with chained environments and a continuation
// stack, performing call-by-name reduction with fresh-variable renaming
// to avoid capture.
package cek

import (
	"fmt"

	"github.com/lam/reducto/internal/errs"
	"github.com/lam/reducto/pkg/term"
)

// closure pairs a term with the environment it should be read under.
type closure struct {
	t   term.Term
	env *environment
}

// environment is a mapping from binder id to closure, forming a tree of
// references via parent.
type environment struct {
	bindings map[int]closure
	parent   *environment
}

func newEnv(parent *environment) *environment {
	return &environment{bindings: make(map[int]closure), parent: parent}
}

func (e *environment) lookup(id int) (closure, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if c, ok := cur.bindings[id]; ok {
			return c, true
		}
	}
	return closure{}, false
}

func (e *environment) has(id int) bool {
	if e == nil {
		return false
	}
	_, ok := e.bindings[id]
	return ok
}

// bind returns a copy of e with id bound, leaving e itself untouched so
// sibling continuation frames keep their own view of the environment.
func (e *environment) bind(id int, c closure) *environment {
	var next *environment
	if e == nil {
		next = newEnv(nil)
	} else {
		next = newEnv(e.parent)
		for k, v := range e.bindings {
			next.bindings[k] = v
		}
	}
	next.bindings[id] = c
	return next
}

// frame is one of the two continuation shapes: Argument (recorded when
// descending the function of an application) or Closure (recorded when a
// value enters the argument position).
type frame struct {
	isClosure bool
	t         term.Term
	env       *environment
}

// Machine is a strategy.Strategy implementing the CEK abstract machine.
type Machine struct {
	fresh int
	code  term.Term
	env   *environment
	cont  []frame
	done  bool
}

// New returns an unbuilt Machine.
func New() *Machine { return &Machine{} }

// Name identifies the engine.
func (m *Machine) Name() string { return "cek machine" }

// Build initializes the fresh-id counter from largest_id(t)+1 and sets
// code to (t, no environment).
func (m *Machine) Build(t term.Term) {
	m.fresh = term.LargestID(t) + 1
	m.code = t
	m.env = nil
	m.cont = nil
	m.done = false
}

func (m *Machine) nextFresh() int {
	id := m.fresh
	m.fresh++
	return id
}

// Reduce runs the machine to completion, reifies the residual closure
// in code into an environment-free term, and returns its Church readout.
// The machine alone only reaches weak head normal form: the value it
// halts on is an abstraction whose body still refers to bindings held in
// the attached environment, so reading the code register syntactically
// would reject almost every numeral. normalize resolves those references
// and finishes reduction under the binders.
func (m *Machine) Reduce() (uint64, bool) {
	for !m.done {
		m.transition()
	}
	nf := m.normalize(m.code, m.env)
	return term.ChurchReadout(term.FixIndices(nf))
}

// normalize reifies a (term, environment) closure into a fully reduced
// term. Application spines unwind onto an argument stack; an abstraction
// meeting a pending argument binds it call-by-name; an abstraction with
// an empty stack is descended under after fresh-renaming its binder, so
// the bound variable survives as itself and the result carries no
// environment references. A variable with no binding is such a descended
// binder and heads a neutral spine.
func (m *Machine) normalize(t term.Term, env *environment) term.Term {
	code, cenv := t, env
	var spine []frame
	for {
		switch n := code.(type) {
		case term.App:
			spine = append(spine, frame{t: n.Arg, env: cenv})
			code = n.Fun
		case term.Var:
			if c, ok := cenv.lookup(n.ID); ok {
				code, cenv = c.t, c.env
				continue
			}
			out := term.Term(n)
			for i := len(spine) - 1; i >= 0; i-- {
				out = term.App{Fun: out, Arg: m.normalize(spine[i].t, spine[i].env)}
			}
			return out
		case term.Abs:
			if len(spine) > 0 {
				top := spine[len(spine)-1]
				spine = spine[:len(spine)-1]
				y, body := n.ID, n.Body
				if cenv.has(y) {
					freshID := m.nextFresh()
					body = term.Rename(body, y, freshID)
					y = freshID
				}
				cenv = cenv.bind(y, closure{t: top.t, env: top.env})
				code = body
				continue
			}
			freshID := m.nextFresh()
			body := term.Rename(n.Body, n.ID, freshID)
			return term.Abs{ID: freshID, Body: m.normalize(body, cenv)}
		default:
			panic(fmt.Sprintf("cek: unknown term type %T", n))
		}
	}
}

// transition performs one CEK step.
func (m *Machine) transition() {
	switch n := m.code.(type) {
	case term.App:
		m.cont = append(m.cont, frame{t: n.Arg, env: m.env})
		m.code = n.Fun
	case term.Abs:
		if m.env == nil {
			m.env = newEnv(nil)
			return
		}
		e1 := m.env
		if len(m.cont) == 0 {
			m.done = true
			return
		}
		top := m.cont[len(m.cont)-1]
		m.cont = m.cont[:len(m.cont)-1]
		if !top.isClosure {
			// Argument(M, e2): push Closure(Abs(x,body), e1); switch
			// code to M under env e2.
			m.cont = append(m.cont, frame{isClosure: true, t: n, env: e1})
			m.code = top.t
			m.env = top.env
			return
		}
		// Closure(Abs(y,b), e2): bind the passed value (the abstraction
		// that just popped) in e2.
		abs2, ok := top.t.(term.Abs)
		if !ok {
			panic(fmt.Errorf("cek: %w: non-Abs in Closure frame: %T", errs.ErrInvariantViolation, top.t))
		}
		e2 := top.env
		y, body := abs2.ID, abs2.Body
		incoming := term.Abs{ID: n.ID, Body: n.Body}
		if e2.has(y) {
			freshID := m.nextFresh()
			body = term.Rename(body, y, freshID)
			incoming = term.Rename(incoming, y, freshID).(term.Abs)
			y = freshID
		}
		m.env = e2.bind(y, closure{t: incoming, env: e1})
		m.code = body
	case term.Var:
		c, ok := m.env.lookup(n.ID)
		if !ok {
			panic(fmt.Errorf("cek: %w: missing environment entry for var %d", errs.ErrInvariantViolation, n.ID))
		}
		m.code = c.t
		m.env = c.env
	default:
		panic(fmt.Sprintf("cek: unknown term type %T", n))
	}
}
