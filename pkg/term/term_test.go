package term_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lam/reducto/pkg/term"
)

func churchNumeral(n uint64) term.Term {
	var body term.Term = term.Var{ID: 200}
	for i := uint64(0); i < n; i++ {
		body = term.App{Fun: term.Var{ID: 100}, Arg: body}
	}
	return term.Abs{ID: 100, Body: term.Abs{ID: 200, Body: body}}
}

func TestChurchReadoutRoundTrip(t *testing.T) {
	for n := uint64(0); n <= 100; n++ {
		got, ok := term.ChurchReadout(term.FixIndices(churchNumeral(n)))
		require.True(t, ok, "n=%d", n)
		require.Equal(t, n, got, "n=%d", n)
	}
}

func TestChurchReadoutRejectsNonNumeral(t *testing.T) {
	_, ok := term.ChurchReadout(term.Var{ID: 0})
	require.False(t, ok)

	notANumeral := term.Abs{ID: 1, Body: term.Abs{ID: 2, Body: term.Var{ID: 1}}}
	_, ok = term.ChurchReadout(term.FixIndices(notANumeral))
	require.False(t, ok)
}

func TestRenameIsSelfInverse(t *testing.T) {
	tm := term.Abs{ID: 1, Body: term.App{Fun: term.Var{ID: 1}, Arg: term.Var{ID: 2}}}
	renamed := term.Rename(term.Rename(tm, 1, 99), 99, 1)
	require.Equal(t, tm, renamed)
}

func TestFixIndicesIsIdempotent(t *testing.T) {
	// λ1.λ0. 1 (1 (1 0)): every occurrence already carries the index its
	// binder tag resolves to, so the fixed-up term is a fixed point.
	var body term.Term = term.Var{ID: 0}
	for i := 0; i < 3; i++ {
		body = term.App{Fun: term.Var{ID: 1}, Arg: body}
	}
	tm := term.Abs{ID: 1, Body: term.Abs{ID: 0, Body: body}}
	once := term.FixIndices(tm)
	twice := term.FixIndices(once)
	require.Equal(t, once, twice)
	require.Equal(t, tm, once)
}

func TestLargestID(t *testing.T) {
	tm := term.App{Fun: term.Abs{ID: 5, Body: term.Var{ID: 5}}, Arg: term.Var{ID: 12}}
	require.Equal(t, 12, term.LargestID(tm))
}

func TestToIndexedString(t *testing.T) {
	tm := term.FixIndices(term.Abs{ID: 1, Body: term.Var{ID: 1}})
	require.Equal(t, "(λ 0)", term.ToIndexedString(tm))
}
