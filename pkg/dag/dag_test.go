package dag_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lam/reducto/pkg/dag"
	"github.com/lam/reducto/pkg/term"
)

func churchNumeral(n uint64, f, x int) term.Term {
	var body term.Term = term.Var{ID: x}
	for i := uint64(0); i < n; i++ {
		body = term.App{Fun: term.Var{ID: f}, Arg: body}
	}
	return term.Abs{ID: f, Body: term.Abs{ID: x, Body: body}}
}

func TestReadoutIsAlwaysZero(t *testing.T) {
	id := term.Abs{ID: 1, Body: term.Var{ID: 1}}
	r := dag.New()
	r.Build(term.App{Fun: id, Arg: churchNumeral(9, 10, 11)})
	got, ok := r.Reduce()
	require.True(t, ok)
	require.Equal(t, uint64(0), got)
}

func TestReducesToNormalForm(t *testing.T) {
	id := term.Abs{ID: 1, Body: term.Var{ID: 1}}
	d := dag.From(term.App{Fun: id, Arg: term.Var{ID: 1}})
	d.Reduce()
	_, ok := d.FindRedex()
	require.False(t, ok, "no redex should remain after Reduce")
}

func TestSharedVariableUsesShareOneNode(t *testing.T) {
	// λx. x x -- both occurrences of x must share a single Var node.
	tm := term.Abs{ID: 1, Body: term.App{Fun: term.Var{ID: 1}, Arg: term.Var{ID: 1}}}
	d := dag.From(tm)
	var varNodes int
	for _, n := range d.Nodes {
		if n.Kind == dag.KindVar {
			varNodes++
		}
	}
	require.Equal(t, 1, varNodes)
}

func TestUnusedBinderDeletesArgumentSubgraph(t *testing.T) {
	// (λx. λy. y) big -- x is unused, so the argument subgraph is
	// deleted rather than rewired.
	id := term.Abs{ID: 2, Body: term.Var{ID: 2}}
	constTerm := term.Abs{ID: 1, Body: id}
	big := churchNumeral(6, 10, 11)
	d := dag.From(term.App{Fun: constTerm, Arg: big})
	before := len(d.Nodes)
	d.Reduce()
	after := len(d.Nodes)
	require.Less(t, after, before)
}
