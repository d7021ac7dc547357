// Package report renders snapshot inventories for the CLI.
package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/alevsk/resultset/internal/snapshot"
)

// WriteSnapshots renders the stored resultsets as a table
func WriteSnapshots(w io.Writer, infos []snapshot.Info) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateColumns = true

	t.SetTitle("RESULTSETS")
	t.AppendHeader(table.Row{
		"PATH",
		"FILE",
		"METHOD",
		"SIZE",
		"MODIFIED",
	})

	for _, info := range infos {
		t.AppendRow(table.Row{
			info.Path,
			info.File,
			info.Method,
			fmt.Sprintf("%d B", info.Size),
			info.ModTime.Format("2006-01-02 15:04:05"),
		})
	}

	t.Render()
}

// WritePending renders the actual-value dumps awaiting review as a table
func WritePending(w io.Writer, pending []snapshot.Pending) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateColumns = true

	t.SetTitle("PENDING DUMPS")
	t.AppendHeader(table.Row{
		"NAME",
		"FILE",
		"METHOD",
		"RESULTSET",
	})

	for _, p := range pending {
		matched := p.ExpectedPath
		if matched == "" {
			matched = "(none)"
		}
		t.AppendRow(table.Row{
			p.Name,
			p.File,
			p.Method,
			matched,
		})
	}

	t.Render()
}
