// Package term defines the shared lambda-calculus term representation
// used by every reduction engine in this repository.
package term

import (
	"fmt"
	"strconv"
	"strings"
)

// Term is a finite tree with three variants: Var, Abs, App.
type Term interface {
	String() string
	isTerm()
}

// Var is a symbolic variable reference, carrying the integer tag of its
// binder (before FixIndices) or its lexical de Bruijn distance (after).
type Var struct {
	ID int
}

// Abs binds ID in Body.
type Abs struct {
	ID   int
	Body Term
}

// App is a function application.
type App struct {
	Fun Term
	Arg Term
}

func (Var) isTerm() {}
func (Abs) isTerm() {}
func (App) isTerm() {}

func (v Var) String() string { return strconv.Itoa(v.ID) }
func (a Abs) String() string { return fmt.Sprintf("(λ%d. %s)", a.ID, a.Body.String()) }
func (a App) String() string { return fmt.Sprintf("(%s %s)", a.Fun.String(), a.Arg.String()) }

// ToIndexedString produces the diagnostic form "(λ BODY)" and "(L R)" with
// variable indices in-line, for human inspection only.
func ToIndexedString(t Term) string {
	var b strings.Builder
	writeIndexed(&b, t)
	return b.String()
}

func writeIndexed(b *strings.Builder, t Term) {
	switch n := t.(type) {
	case Var:
		b.WriteString(strconv.Itoa(n.ID))
	case Abs:
		b.WriteString("(λ ")
		writeIndexed(b, n.Body)
		b.WriteString(")")
	case App:
		b.WriteString("(")
		writeIndexed(b, n.Fun)
		b.WriteString(" ")
		writeIndexed(b, n.Arg)
		b.WriteString(")")
	default:
		panic(fmt.Sprintf("term: unknown term type %T", t))
	}
}

// Rename performs an unconditional tree walk substituting every occurrence
// of the integer tag old (binder or variable) with new. It is used only
// when new is guaranteed fresh; it performs no shadow check.
func Rename(t Term, old, new int) Term {
	switch n := t.(type) {
	case Var:
		if n.ID == old {
			return Var{ID: new}
		}
		return n
	case Abs:
		id := n.ID
		if id == old {
			id = new
		}
		return Abs{ID: id, Body: Rename(n.Body, old, new)}
	case App:
		return App{Fun: Rename(n.Fun, old, new), Arg: Rename(n.Arg, old, new)}
	default:
		panic(fmt.Sprintf("term: unknown term type %T", t))
	}
}

// LargestID returns the maximum integer tag present in t, at either a
// binder or a variable position.
func LargestID(t Term) int {
	switch n := t.(type) {
	case Var:
		return n.ID
	case Abs:
		m := n.ID
		if b := LargestID(n.Body); b > m {
			m = b
		}
		return m
	case App:
		f, a := LargestID(n.Fun), LargestID(n.Arg)
		if a > f {
			return a
		}
		return f
	default:
		panic(fmt.Sprintf("term: unknown term type %T", t))
	}
}

// UnmappedSentinel marks a FixIndices lookup that found no enclosing
// binder for the id in question, indicating a generator bug rather than
// a runtime error.
const UnmappedSentinel = 100

// FixIndices converts name-based Var ids into lexical de Bruijn indices
// relative to enclosing binders. It carries a per-id stack of binder
// depths; at a variable, if its binder id is known, the tag becomes
// currentDepth - top(stack) - 1; otherwise it becomes UnmappedSentinel.
func FixIndices(t Term) Term {
	stacks := map[int][]int{}
	return fixIndicesHelper(t, 0, stacks)
}

func fixIndicesHelper(t Term, depth int, stacks map[int][]int) Term {
	switch n := t.(type) {
	case Var:
		stack := stacks[n.ID]
		if len(stack) == 0 {
			return Var{ID: UnmappedSentinel}
		}
		top := stack[len(stack)-1]
		return Var{ID: depth - top - 1}
	case Abs:
		stacks[n.ID] = append(stacks[n.ID], depth)
		body := fixIndicesHelper(n.Body, depth+1, stacks)
		stack := stacks[n.ID]
		stacks[n.ID] = stack[:len(stack)-1]
		return Abs{ID: n.ID, Body: body}
	case App:
		return App{Fun: fixIndicesHelper(n.Fun, depth, stacks), Arg: fixIndicesHelper(n.Arg, depth, stacks)}
	default:
		panic(fmt.Sprintf("term: unknown term type %T", t))
	}
}

// ChurchReadout inspects the head structure λf.λx.(f (f ... x)) and
// returns the count of applications as the numeral, else ok is false.
func ChurchReadout(t Term) (n uint64, ok bool) {
	outer, isAbs := t.(Abs)
	if !isAbs {
		return 0, false
	}
	inner, isAbs := outer.Body.(Abs)
	if !isAbs {
		return 0, false
	}
	cur := inner.Body
	var count uint64
	for {
		app, isApp := cur.(App)
		if !isApp {
			break
		}
		v, isVar := app.Fun.(Var)
		if !isVar || v.ID != 1 {
			return 0, false
		}
		count++
		cur = app.Arg
	}
	v, isVar := cur.(Var)
	if !isVar || v.ID != 0 {
		return 0, false
	}
	return count, true
}

// Equal reports structural (alpha-equivalent-after-FixIndices) equality.
func Equal(a, b Term) bool {
	return equalTerm(FixIndices(a), FixIndices(b))
}

func equalTerm(a, b Term) bool {
	switch x := a.(type) {
	case Var:
		y, ok := b.(Var)
		return ok && x.ID == y.ID
	case Abs:
		y, ok := b.(Abs)
		return ok && equalTerm(x.Body, y.Body)
	case App:
		y, ok := b.(App)
		return ok && equalTerm(x.Fun, y.Fun) && equalTerm(x.Arg, y.Arg)
	default:
		return false
	}
}
