package inet_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lam/reducto/pkg/inet"
	"github.com/lam/reducto/pkg/term"
)

func churchNumeral(n uint64, f, x int) term.Term {
	var body term.Term = term.Var{ID: x}
	for i := uint64(0); i < n; i++ {
		body = term.App{Fun: term.Var{ID: f}, Arg: body}
	}
	return term.Abs{ID: f, Body: term.Abs{ID: x, Body: body}}
}

func TestZeroStepReadbackIsAlphaEquivalent(t *testing.T) {
	tm := churchNumeral(3, 1, 2)
	net := inet.Build(tm)
	got, ok := net.ToTree()
	require.True(t, ok)
	// ToTree already returns de Bruijn indices, so only tm is fixed up.
	require.Equal(t, term.ToIndexedString(term.FixIndices(tm)), term.ToIndexedString(got))
}

func TestScenarioIdentityAppliedToZero(t *testing.T) {
	id := term.Abs{ID: 1, Body: term.Var{ID: 1}}
	zero := churchNumeral(0, 10, 11)
	e := inet.New()
	e.Build(term.App{Fun: id, Arg: zero})
	got, ok := e.Reduce()
	require.True(t, ok)
	require.Equal(t, uint64(0), got)
}

func TestBetaReductionPreservesChurchReadout(t *testing.T) {
	for n := uint64(0); n <= 4; n++ {
		id := term.Abs{ID: 1, Body: term.Var{ID: 1}}
		e := inet.New()
		e.Build(term.App{Fun: id, Arg: churchNumeral(n, 10, 11)})
		got, ok := e.Reduce()
		require.True(t, ok, "n=%d", n)
		require.Equal(t, n, got, "n=%d", n)
	}
}

func TestSharedVariableUseSplicesDuplicator(t *testing.T) {
	// λx. x x -- the second occurrence of x must introduce a Duplicator.
	tm := term.Abs{ID: 1, Body: term.App{Fun: term.Var{ID: 1}, Arg: term.Var{ID: 1}}}
	net := inet.Build(tm)
	var dups int
	for _, a := range net.Agents {
		if a.Kind == inet.KindDuplicator {
			dups++
		}
	}
	require.Equal(t, 1, dups)
}
