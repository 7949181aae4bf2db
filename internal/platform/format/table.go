// Package format renders tabular CLI output as terminal or Markdown tables.
package format

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type Mode int

const (
	Terminal Mode = iota
	Markdown
)

// Table collects rows and renders them once in the mode chosen at creation.
type Table struct {
	w    table.Writer
	mode Mode
}

func NewTable(mode Mode, header ...string) *Table {
	w := table.NewWriter()
	if mode == Terminal {
		w.SetStyle(table.StyleLight)
	}
	if len(header) > 0 {
		row := make(table.Row, len(header))
		for i, h := range header {
			row[i] = h
		}
		w.AppendHeader(row)
	}
	return &Table{w: w, mode: mode}
}

func (t *Table) Row(vals ...any) {
	t.w.AppendRow(table.Row(vals))
}

func (t *Table) Footer(vals ...any) {
	t.w.AppendFooter(table.Row(vals))
}

// AlignRight right-aligns the given 1-based columns; used for numeric columns.
func (t *Table) AlignRight(columns ...int) {
	cfgs := make([]table.ColumnConfig, 0, len(columns))
	for _, n := range columns {
		cfgs = append(cfgs, table.ColumnConfig{Number: n, Align: text.AlignRight, AlignFooter: text.AlignRight})
	}
	t.w.SetColumnConfigs(cfgs)
}

func (t *Table) Len() int {
	return t.w.Length()
}

func (t *Table) String() string {
	if t.mode == Markdown {
		return t.w.RenderMarkdown()
	}
	return t.w.Render()
}
