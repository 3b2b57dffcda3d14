// Package genexpr produces Church-encoded fold-over-mapped-list terms
// together with their expected integer result, for driving the
// benchmark harness and the property test suite.
package genexpr

import (
	"math/rand"

	"github.com/lam/reducto/pkg/term"
)

// idGen hands out fresh, globally unique binder/variable ids, mirroring
// the fresh-id discipline every engine and the term model rely on.
type idGen struct{ next int }

func (g *idGen) fresh() int {
	id := g.next
	g.next++
	return id
}

func churchNumeral(n uint64, g *idGen) term.Term {
	f, x := g.fresh(), g.fresh()
	var body term.Term = term.Var{ID: x}
	for i := uint64(0); i < n; i++ {
		body = term.App{Fun: term.Var{ID: f}, Arg: body}
	}
	return term.Abs{ID: f, Body: term.Abs{ID: x, Body: body}}
}

// churchAdd builds a fresh instance of λm.λn.λf.λx. m f (n f x).
func churchAdd(g *idGen) term.Term {
	m, n, f, x := g.fresh(), g.fresh(), g.fresh(), g.fresh()
	body := term.App{
		Fun: term.App{Fun: term.Var{ID: m}, Arg: term.Var{ID: f}},
		Arg: term.App{Fun: term.App{Fun: term.Var{ID: n}, Arg: term.Var{ID: f}}, Arg: term.Var{ID: x}},
	}
	return term.Abs{ID: m, Body: term.Abs{ID: n, Body: term.Abs{ID: f, Body: term.Abs{ID: x, Body: body}}}}
}

// churchMul builds a fresh instance of λm.λn.λf. m (n f).
func churchMul(g *idGen) term.Term {
	m, n, f := g.fresh(), g.fresh(), g.fresh()
	body := term.App{Fun: term.Var{ID: m}, Arg: term.App{Fun: term.Var{ID: n}, Arg: term.Var{ID: f}}}
	return term.Abs{ID: m, Body: term.Abs{ID: n, Body: term.Abs{ID: f, Body: body}}}
}

// arithOp is Add or Mul.
type arithOp int

const (
	opAdd arithOp = iota
	opMul
)

// arithExpr is a small arithmetic expression elaborated into Church
// numerals and the corresponding Church add/mul combinators.
type arithExpr struct {
	isLeaf  bool
	numeral uint64
	op      arithOp
	left    *arithExpr
	right   *arithExpr
}

func leaf(n uint64) *arithExpr { return &arithExpr{isLeaf: true, numeral: n} }

func (e *arithExpr) eval() uint64 {
	if e.isLeaf {
		return e.numeral
	}
	l, r := e.left.eval(), e.right.eval()
	switch e.op {
	case opAdd:
		return l + r
	case opMul:
		return l * r
	default:
		return 0
	}
}

func (e *arithExpr) elab(g *idGen) term.Term {
	if e.isLeaf {
		return churchNumeral(e.numeral, g)
	}
	lt, rt := e.left.elab(g), e.right.elab(g)
	var combinator term.Term
	switch e.op {
	case opAdd:
		combinator = churchAdd(g)
	case opMul:
		combinator = churchMul(g)
	}
	return term.App{Fun: term.App{Fun: combinator, Arg: lt}, Arg: rt}
}

// genArith keeps leaf values in {0, 1} so generated readouts stay small
// enough for every engine's bounded readback.
func genArith(rng *rand.Rand, depth int) *arithExpr {
	if depth <= 0 || rng.Intn(3) == 0 {
		return leaf(uint64(rng.Intn(2)))
	}
	op := opAdd
	if rng.Intn(4) == 0 {
		op = opMul
	}
	return &arithExpr{op: op, left: genArith(rng, depth-1), right: genArith(rng, depth-1)}
}

// variableExpr is the per-element mapping function used inside fold/map:
// g(x) = op(x, addend) for an additive offset, or the identity.
type variableExpr struct {
	identity bool
	addend   uint64
}

func (v variableExpr) eval(x uint64) uint64 {
	if v.identity {
		return x
	}
	return x + v.addend
}

// elabFn builds the term.Term for the element function λx. body.
func (v variableExpr) elabFn(g *idGen) term.Term {
	xID := g.fresh()
	if v.identity {
		return term.Abs{ID: xID, Body: term.Var{ID: xID}}
	}
	addend := churchNumeral(v.addend, g)
	add := churchAdd(g)
	body := term.App{Fun: term.App{Fun: add, Arg: term.Var{ID: xID}}, Arg: addend}
	return term.Abs{ID: xID, Body: body}
}

// listMapSequence is a list of arithExpr leaves composed with a chain of
// variableExpr element maps, elaborated into a Church-encoded list
// composed with Church-encoded map.
type listMapSequence struct {
	elements []*arithExpr
	maps     []variableExpr
}

func (s listMapSequence) evalElements() []uint64 {
	out := make([]uint64, len(s.elements))
	for i, e := range s.elements {
		v := e.eval()
		for _, m := range s.maps {
			v = m.eval(v)
		}
		out[i] = v
	}
	return out
}

// listFold is (op, init, list): op folds pairwise, init seeds the fold,
// list is the mapped sequence. Eval folds natively for the expected
// value; Elab builds the real Church-encoded
// `fold (+) init (map f1 (map f2 (... list)))` term handed to every
// strategy.
type listFold struct {
	op   arithOp
	init uint64
	list listMapSequence
}

func (f listFold) eval() uint64 {
	vals := f.list.evalElements()
	acc := f.init
	for i := len(vals) - 1; i >= 0; i-- {
		switch f.op {
		case opAdd:
			acc = vals[i] + acc
		case opMul:
			acc = vals[i] * acc
		}
	}
	return acc
}

// elab builds fold(op, init, map(g, list)) using the identity
// fold(op, init, map(g, list)) = list (λa.λr. op (g a) r) init, which
// needs no generic recursion combinator since a Church list already
// carries its own right-fold structure.
func (f listFold) elab(g *idGen) term.Term {
	// list(xs) = λcons.λnil. cons x1 (cons x2 (... (cons xn nil)))
	elemTerms := make([]term.Term, len(f.list.elements))
	for i, e := range f.list.elements {
		elemTerms[i] = e.elab(g)
	}
	consID, nilID := g.fresh(), g.fresh()
	var listBody term.Term = term.Var{ID: nilID}
	for i := len(elemTerms) - 1; i >= 0; i-- {
		listBody = term.App{Fun: term.App{Fun: term.Var{ID: consID}, Arg: elemTerms[i]}, Arg: listBody}
	}
	listTerm := term.Abs{ID: consID, Body: term.Abs{ID: nilID, Body: listBody}}

	// composed := f1 ∘ f2 ∘ ... (applied as real, reducible applications,
	// not pre-computed) over a fresh bound variable.
	elemVarID := g.fresh()
	var composed term.Term = term.Var{ID: elemVarID}
	for i := len(f.list.maps) - 1; i >= 0; i-- {
		composed = term.App{Fun: f.list.maps[i].elabFn(g), Arg: composed}
	}
	gTerm := term.Abs{ID: elemVarID, Body: composed}

	// handler := λa.λr. op (g a) r
	aID, rID := g.fresh(), g.fresh()
	var opTerm term.Term
	switch f.op {
	case opAdd:
		opTerm = churchAdd(g)
	case opMul:
		opTerm = churchMul(g)
	}
	handlerBody := term.App{
		Fun: term.App{Fun: opTerm, Arg: term.App{Fun: gTerm, Arg: term.Var{ID: aID}}},
		Arg: term.Var{ID: rID},
	}
	handler := term.Abs{ID: aID, Body: term.Abs{ID: rID, Body: handlerBody}}

	initTerm := churchNumeral(f.init, g)
	return term.App{Fun: term.App{Fun: listTerm, Arg: handler}, Arg: initTerm}
}

// Generate produces a Church-encoded fold-over-mapped-list term and the
// native integer it is expected to reduce to, for a synthetic benchmark
// cell of the given depth (number of chained maps; each list element's
// arithmetic nesting is depth modulo 3) and length (number of list
// elements).
func Generate(depth, length int) (term.Term, uint64) {
	seed := int64(depth)*10007 + int64(length)*131
	rng := rand.New(rand.NewSource(seed))

	elements := make([]*arithExpr, length)
	for i := range elements {
		elements[i] = genArith(rng, depth%3)
	}
	maps := make([]variableExpr, 0, depth)
	for i := 0; i < depth; i++ {
		if rng.Intn(2) == 0 {
			maps = append(maps, variableExpr{identity: true})
		} else {
			maps = append(maps, variableExpr{addend: uint64(rng.Intn(2) + 1)})
		}
	}

	fold := listFold{op: opAdd, init: 0, list: listMapSequence{elements: elements, maps: maps}}
	expected := fold.eval()
	g := &idGen{}
	return fold.elab(g), expected
}
