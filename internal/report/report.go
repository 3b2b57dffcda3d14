// Package report renders a colored terminal comparison table for
// benchmark results, tagging each run with a correlation id.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Row is one (strategy, cell) measurement.
type Row struct {
	Strategy string
	Depth    int
	Length   int
	Elapsed  time.Duration
	Expected uint64
	Got      uint64
	Matched  bool
}

// Table accumulates rows for one benchmark run.
type Table struct {
	RunID uuid.UUID
	Rows  []Row
}

// NewTable starts a freshly id-tagged table.
func NewTable() *Table {
	return &Table{RunID: uuid.New()}
}

// Add appends a measurement row.
func (t *Table) Add(r Row) { t.Rows = append(t.Rows, r) }

// Render writes a colored table to w: matched rows in green, mismatched
// (or unreadable) rows in red, the header in bold.
func (t *Table) Render(w io.Writer) {
	bold := color.New(color.Bold)
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)

	bold.Fprintf(w, "run %s\n", t.RunID)
	bold.Fprintf(w, "%-28s %6s %6s %12s %10s %10s\n", "strategy", "depth", "length", "elapsed", "expected", "got")
	for _, r := range t.Rows {
		line := fmt.Sprintf("%-28s %6d %6d %12s %10d %10d\n",
			r.Strategy, r.Depth, r.Length, r.Elapsed, r.Expected, r.Got)
		if r.Matched {
			ok.Fprint(w, line)
		} else {
			bad.Fprint(w, line)
		}
	}
}
