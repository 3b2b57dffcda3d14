package hoas_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lam/reducto/pkg/hoas"
	"github.com/lam/reducto/pkg/term"
)

func churchNumeral(n uint64, f, x int) term.Term {
	var body term.Term = term.Var{ID: x}
	for i := uint64(0); i < n; i++ {
		body = term.App{Fun: term.Var{ID: f}, Arg: body}
	}
	return term.Abs{ID: f, Body: term.Abs{ID: x, Body: body}}
}

func TestScenarioIdentityAppliedToZero(t *testing.T) {
	id := term.Abs{ID: 1, Body: term.Var{ID: 1}}
	zero := churchNumeral(0, 10, 11)
	e := hoas.New()
	e.Build(term.App{Fun: id, Arg: zero})
	got, ok := e.Reduce()
	require.True(t, ok)
	require.Equal(t, uint64(0), got)
}

func TestChurchNumeralsRoundTrip(t *testing.T) {
	for n := uint64(0); n <= 5; n++ {
		e := hoas.New()
		e.Build(churchNumeral(n, 1, 2))
		got, ok := e.Reduce()
		require.True(t, ok, "n=%d", n)
		require.Equal(t, n, got, "n=%d", n)
	}
}

// TestIndependentAbstractionBindings guards the per-closure binding map:
// two sibling abstractions must not clobber each other's bound value.
func TestIndependentAbstractionBindings(t *testing.T) {
	// (λa. λb. a) 2 3 -- should read out as Church numeral 2, not 3.
	inner := term.Abs{ID: 2, Body: term.Var{ID: 1}}
	outer := term.Abs{ID: 1, Body: inner}
	two := churchNumeral(2, 10, 11)
	three := churchNumeral(3, 10, 11)
	tm := term.App{Fun: term.App{Fun: outer, Arg: two}, Arg: three}

	e := hoas.New()
	e.Build(tm)
	got, ok := e.Reduce()
	require.True(t, ok)
	require.Equal(t, uint64(2), got)
}
