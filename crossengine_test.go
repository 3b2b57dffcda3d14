package reducto_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lam/reducto/pkg/cek"
	"github.com/lam/reducto/pkg/dag"
	"github.com/lam/reducto/pkg/genexpr"
	"github.com/lam/reducto/pkg/hoas"
	"github.com/lam/reducto/pkg/inet"
	"github.com/lam/reducto/pkg/normal"
	"github.com/lam/reducto/pkg/strategy"
	"github.com/lam/reducto/pkg/term"
)

// newRegistry wires every engine under its benchmark name, mirroring
// cmd/reducto-bench's registry so the property tests exercise the same
// set of strategies the CLI does.
func newRegistry() *strategy.Registry {
	r := strategy.NewRegistry()
	r.Register("normal order", func() strategy.Strategy { return normal.New() })
	r.Register("cek machine", func() strategy.Strategy { return cek.New() })
	r.Register("hoas", func() strategy.Strategy { return hoas.New() })
	r.Register("dag", func() strategy.Strategy { return dag.New() })
	r.Register("optimal interaction net", func() strategy.Strategy { return inet.New() })
	return r
}

// TestAllEnginesAgreeOnGeneratedTerms checks the core universal
// property: every engine except the structural dag reducer must read
// back the same Church-numeral value for the same generated term.
func TestAllEnginesAgreeOnGeneratedTerms(t *testing.T) {
	r := newRegistry()
	for depth := 0; depth <= 2; depth++ {
		for length := 0; length <= 3; length++ {
			tm, expected := genexpr.Generate(depth, length)
			for _, name := range r.Names() {
				if name == "dag" {
					continue
				}
				s := r.New(name)
				s.Build(tm)
				got, ok := s.Reduce()
				require.True(t, ok, "%s: depth=%d length=%d", name, depth, length)
				require.Equal(t, expected, got, "%s: depth=%d length=%d", name, depth, length)
			}
		}
	}
}

func churchNumeral(n uint64, f, x int) term.Term {
	var body term.Term = term.Var{ID: x}
	for i := uint64(0); i < n; i++ {
		body = term.App{Fun: term.Var{ID: f}, Arg: body}
	}
	return term.Abs{ID: f, Body: term.Abs{ID: x, Body: body}}
}

// churchAdd is λm.λn.λf.λx. m f (n f x) over the given fresh ids.
func churchAdd(m, n, f, x int) term.Term {
	body := term.App{
		Fun: term.App{Fun: term.Var{ID: m}, Arg: term.Var{ID: f}},
		Arg: term.App{Fun: term.App{Fun: term.Var{ID: n}, Arg: term.Var{ID: f}}, Arg: term.Var{ID: x}},
	}
	return term.Abs{ID: m, Body: term.Abs{ID: n, Body: term.Abs{ID: f, Body: term.Abs{ID: x, Body: body}}}}
}

// churchMul is λm.λn.λf. m (n f) over the given fresh ids.
func churchMul(m, n, f int) term.Term {
	body := term.App{Fun: term.Var{ID: m}, Arg: term.App{Fun: term.Var{ID: n}, Arg: term.Var{ID: f}}}
	return term.Abs{ID: m, Body: term.Abs{ID: n, Body: term.Abs{ID: f, Body: body}}}
}

// TestScenarioAddOneOne covers add 1 1 → 2 on every readout-bearing
// engine.
func TestScenarioAddOneOne(t *testing.T) {
	r := newRegistry()
	tm := term.App{
		Fun: term.App{Fun: churchAdd(1, 2, 3, 4), Arg: churchNumeral(1, 10, 11)},
		Arg: churchNumeral(1, 20, 21),
	}
	for _, name := range r.Names() {
		if name == "dag" {
			continue
		}
		s := r.New(name)
		s.Build(tm)
		got, ok := s.Reduce()
		require.True(t, ok, name)
		require.Equal(t, uint64(2), got, name)
	}
}

// TestScenarioMulTwoThree covers mul 2 3 → 6 on every readout-bearing
// engine.
func TestScenarioMulTwoThree(t *testing.T) {
	r := newRegistry()
	tm := term.App{
		Fun: term.App{Fun: churchMul(1, 2, 3), Arg: churchNumeral(2, 10, 11)},
		Arg: churchNumeral(3, 20, 21),
	}
	for _, name := range r.Names() {
		if name == "dag" {
			continue
		}
		s := r.New(name)
		s.Build(tm)
		got, ok := s.Reduce()
		require.True(t, ok, name)
		require.Equal(t, uint64(6), got, name)
	}
}

// TestScenarioTwiceIdentityOnZero covers (λf.λx. f (f x)) (λy.y) 0 → 0
// on every readout-bearing engine.
func TestScenarioTwiceIdentityOnZero(t *testing.T) {
	r := newRegistry()
	twice := term.Abs{ID: 1, Body: term.Abs{ID: 2, Body: term.App{
		Fun: term.Var{ID: 1},
		Arg: term.App{Fun: term.Var{ID: 1}, Arg: term.Var{ID: 2}},
	}}}
	idY := term.Abs{ID: 3, Body: term.Var{ID: 3}}
	tm := term.App{
		Fun: term.App{Fun: twice, Arg: idY},
		Arg: churchNumeral(0, 10, 11),
	}
	for _, name := range r.Names() {
		if name == "dag" {
			continue
		}
		s := r.New(name)
		s.Build(tm)
		got, ok := s.Reduce()
		require.True(t, ok, name)
		require.Equal(t, uint64(0), got, name)
	}
}

// TestEveryEngineIsIndependentAcrossBuilds checks that reusing one
// Strategy value for a second, unrelated term does not leak state from
// the first build.
func TestEveryEngineIsIndependentAcrossBuilds(t *testing.T) {
	r := newRegistry()
	first, firstExpected := genexpr.Generate(1, 2)
	second, secondExpected := genexpr.Generate(2, 3)

	for _, name := range r.Names() {
		s := r.New(name)
		s.Build(first)
		got1, ok := s.Reduce()
		require.True(t, ok, name)
		if name != "dag" {
			require.Equal(t, firstExpected, got1, name)
		}

		s.Build(second)
		got2, ok := s.Reduce()
		require.True(t, ok, name)
		if name != "dag" {
			require.Equal(t, secondExpected, got2, name)
		}
	}
}
