package report_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lam/reducto/internal/report"
)

func TestNewTableAssignsRunID(t *testing.T) {
	tbl := report.NewTable()
	require.NotEqual(t, uuid.Nil, tbl.RunID)
}

func TestAddAndRenderIncludesEveryRow(t *testing.T) {
	tbl := report.NewTable()
	tbl.Add(report.Row{Strategy: "normal order", Depth: 1, Length: 3, Elapsed: time.Millisecond, Expected: 3, Got: 3, Matched: true})
	tbl.Add(report.Row{Strategy: "cek machine", Depth: 1, Length: 3, Elapsed: time.Millisecond, Expected: 3, Got: 4, Matched: false})

	var buf bytes.Buffer
	tbl.Render(&buf)
	out := buf.String()

	require.Contains(t, out, "normal order")
	require.Contains(t, out, "cek machine")
	require.Contains(t, out, tbl.RunID.String())
}
