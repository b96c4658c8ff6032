package model

import "fmt"

// Cell is one (row, column) position. Data is an opaque payload; views decide
// how to draw it, optionally via the Renderer reference.
type Cell struct {
	// Data is the cell payload. Any value; nil renders as empty.
	Data any

	// Renderer optionally references a custom renderer understood by the view
	// layer. Opaque to the model.
	Renderer any
}

// String returns the cell's primary string representation, used by the
// default filter and the default sort comparator.
func (c Cell) String() string {
	if c.Data == nil {
		return ""
	}
	if s, ok := c.Data.(string); ok {
		return s
	}
	if s, ok := c.Data.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", c.Data)
}

// Row is one table row: an ordered cell sequence plus optional nested
// children and an optional expanded-region payload.
//
// Expansion state is split deliberately: the TableModel tracks expansion for
// its top-level rows in a flat per-index map, while every nested row owns its
// own Expanded flag. Children therefore expand and collapse independently of
// their parent, and collapsing a parent never clears descendant state.
type Row struct {
	// Cells holds one cell per column, aligned with the model's header.
	Cells []Cell

	// Children are nested rows shown beneath this row when it is expanded.
	// A child may itself have children.
	Children []*Row

	// Expanded is this row's own expand flag. It is consulted for nested
	// rows only; top-level rows are governed by TableModel.RowExpanded.
	Expanded bool

	// Region is an optional payload rendered in the expanded area beneath
	// the row (in addition to, or instead of, children).
	Region any
}

// NewRow builds a row from plain values, one cell per value.
func NewRow(values ...any) *Row {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Cell{Data: v}
	}
	return &Row{Cells: cells}
}

// Expandable reports whether the row has anything to reveal when expanded.
func (r *Row) Expandable() bool {
	return r != nil && (len(r.Children) > 0 || r.Region != nil)
}

// moveCell applies a column move to this row and, recursively, to all nested
// children, so header-to-cell correspondence survives at every depth.
func (r *Row) moveCell(from, to int) {
	if r == nil || from >= len(r.Cells) || to >= len(r.Cells) {
		return
	}
	c := r.Cells[from]
	r.Cells = append(r.Cells[:from], r.Cells[from+1:]...)
	rest := append([]Cell{c}, r.Cells[to:]...)
	r.Cells = append(r.Cells[:to], rest...)
	for _, child := range r.Children {
		child.moveCell(from, to)
	}
}

// FlatRow is one entry in a flattened render list: a row plus the depth it
// appears at and the top-level index that selection, context and expansion
// lookups key on.
type FlatRow struct {
	Row *Row

	// Index is the position of the top-level ancestor in the model's data.
	// Nested rows share their ancestor's index.
	Index int

	// Depth is the nesting level; 0 for top-level rows.
	Depth int
}

// appendVisible adds a nested row and its visible descendants to the flat
// list, descending only through rows whose own Expanded flag is set.
func appendVisible(out []FlatRow, r *Row, index, depth int) []FlatRow {
	out = append(out, FlatRow{Row: r, Index: index, Depth: depth})
	if r.Expanded {
		for _, child := range r.Children {
			out = appendVisible(out, child, index, depth+1)
		}
	}
	return out
}
