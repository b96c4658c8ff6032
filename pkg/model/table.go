// Package model implements the data model behind tabel's table components:
// header metadata, row data, selection and expansion bookkeeping, per-column
// filtering, sort signalling and the pagination cursor. It owns no rendering
// and performs no I/O; views and the fetch collaborator consume it through
// the operations defined here.
//
// The model is single-goroutine state. All mutations are expected to happen
// on the UI goroutine in response to discrete events; there is no locking,
// and collaborators sharing one model operate under last-writer-wins.
package model

import (
	"errors"
	"fmt"
)

// Error taxonomy. Reads on bad indices return zero values instead; these are
// returned by mutating operations only.
var (
	// ErrIndexOutOfRange reports a row or column index outside the current
	// bounds of the model.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidColumnMove reports a MoveColumn call with malformed from/to
	// indices.
	ErrInvalidColumnMove = errors.New("invalid column move")
)

// RowContext is the visual severity attached to a row. Views map it to the
// theme's context colors; the model only stores it.
type RowContext int

const (
	ContextNone RowContext = iota
	ContextSuccess
	ContextWarning
	ContextInfo
	ContextError
)

// String returns a stable name for the context.
func (c RowContext) String() string {
	switch c {
	case ContextSuccess:
		return "success"
	case ContextWarning:
		return "warning"
	case ContextInfo:
		return "info"
	case ContextError:
		return "error"
	}
	return "none"
}

// SelectAllState is the derived state of the header "select all" checkbox.
type SelectAllState int

const (
	SelectAllUnchecked SelectAllState = iota
	SelectAllIndeterminate
	SelectAllChecked
)

// String returns a stable name for the state.
func (s SelectAllState) String() string {
	switch s {
	case SelectAllIndeterminate:
		return "indeterminate"
	case SelectAllChecked:
		return "checked"
	}
	return "unchecked"
}

// TableModel aggregates everything the table, pagination and goto-page views
// read and mutate. One instance is built per table and lives for the table's
// lifetime; data is replaced wholesale on page, sort or filter changes, never
// patched incrementally.
//
// Invariant: after every mutation the selection, expansion and context slices
// have exactly one entry per row, and every row has exactly one cell per
// header.
type TableModel struct {
	header []*HeaderItem
	data   []*Row

	rowsSelected []bool
	rowsExpanded []bool
	rowsContext  []RowContext

	// Pagination cursor over a logically larger remote dataset; data holds
	// only the current page. The model never fetches: the fetch collaborator
	// writes these fields and calls NotifyPageChanged, and the pagination
	// views read them. CurrentPage is 1-based.
	CurrentPage     int
	PageLength      int
	TotalDataLength int

	// Loading and End signal async fetch state to consumers. Owned by the
	// fetch collaborator.
	Loading bool
	End     bool

	listeners   []registration
	listenerSeq int
}

// New builds a model with the given header and no rows.
func New(header ...*HeaderItem) *TableModel {
	return &TableModel{header: header}
}

// NewFromLabels builds a model with one visible column per label.
func NewFromLabels(labels ...string) *TableModel {
	header := make([]*HeaderItem, len(labels))
	for i, l := range labels {
		header[i] = NewHeaderItem(l)
	}
	return New(header...)
}

// Header returns the ordered header sequence. Callers may mutate individual
// HeaderItems (filters, visibility) but must not reorder the slice; use
// MoveColumn for that.
func (m *TableModel) Header() []*HeaderItem { return m.header }

// Rows returns the current page's rows in order.
func (m *TableModel) Rows() []*Row { return m.data }

// Row returns the row at index, or nil if out of range.
func (m *TableModel) Row(index int) *Row {
	if index < 0 || index >= len(m.data) {
		return nil
	}
	return m.data[index]
}

// CellAt returns the cell at (row, col), or a zero Cell if either index is
// out of range.
func (m *TableModel) CellAt(row, col int) Cell {
	r := m.Row(row)
	if r == nil || col < 0 || col >= len(r.Cells) {
		return Cell{}
	}
	return r.Cells[col]
}

// RowCount returns the number of rows on the current page.
func (m *TableModel) RowCount() int { return len(m.data) }

// ColumnCount returns the number of columns.
func (m *TableModel) ColumnCount() int { return len(m.header) }

// SetData replaces the row set wholesale. Rows shorter than the header are
// padded with empty cells so the shape invariant holds. Selection, expansion
// and context state are reset to cleared slices of matching length: replace
// means a new page or a re-sorted copy, and carrying index-keyed state across
// that would silently attach it to different rows.
func (m *TableModel) SetData(rows []*Row) {
	for _, r := range rows {
		for len(r.Cells) < len(m.header) {
			r.Cells = append(r.Cells, Cell{})
		}
	}
	m.data = rows
	m.rowsSelected = make([]bool, len(rows))
	m.rowsExpanded = make([]bool, len(rows))
	m.rowsContext = make([]RowContext, len(rows))
	m.emit(EventData, -1, -1)
}

// Selection ---------------------------------------------------------------

// SelectRow sets one row's selection flag. Out-of-range indices are a silent
// no-op (no event is emitted for them).
func (m *TableModel) SelectRow(index int, selected bool) {
	if index < 0 || index >= len(m.rowsSelected) {
		return
	}
	m.rowsSelected[index] = selected
	m.emit(EventSelection, index, -1)
}

// SelectAll sets every row's selection flag in one pass and emits a single
// event.
func (m *TableModel) SelectAll(selected bool) {
	for i := range m.rowsSelected {
		m.rowsSelected[i] = selected
	}
	m.emit(EventSelection, -1, -1)
}

// RowSelected reports whether the row at index is selected; false when out
// of range.
func (m *TableModel) RowSelected(index int) bool {
	if index < 0 || index >= len(m.rowsSelected) {
		return false
	}
	return m.rowsSelected[index]
}

// SelectedRowsCount returns the number of selected rows.
func (m *TableModel) SelectedRowsCount() int {
	n := 0
	for _, s := range m.rowsSelected {
		if s {
			n++
		}
	}
	return n
}

// SelectedIndices returns the indices of selected rows in ascending order.
func (m *TableModel) SelectedIndices() []int {
	var out []int
	for i, s := range m.rowsSelected {
		if s {
			out = append(out, i)
		}
	}
	return out
}

// SelectAllState derives the header checkbox state from the selection count:
// no rows selected is unchecked, all rows selected is checked, anything in
// between is indeterminate. An empty table is unchecked.
func (m *TableModel) SelectAllState() SelectAllState {
	n := m.SelectedRowsCount()
	switch {
	case n == 0:
		return SelectAllUnchecked
	case n == len(m.data):
		return SelectAllChecked
	default:
		return SelectAllIndeterminate
	}
}

// Filtering --------------------------------------------------------------

// RowFiltered reports whether the row at index is hidden by the active
// column filters. Filtering is conjunctive: a row is hidden as soon as any
// column's active filter rejects its cell. Filters never remove rows from
// the data slice, so selection and expansion indices stay valid while rows
// are hidden. Out-of-range indices report false.
func (m *TableModel) RowFiltered(index int) bool {
	r := m.Row(index)
	if r == nil {
		return false
	}
	for col, h := range m.header {
		if !h.FilterActive() || col >= len(r.Cells) {
			continue
		}
		if !h.Filter(r.Cells[col]) {
			return true
		}
	}
	return false
}

// VisibleRowCount returns the number of rows not hidden by filters.
func (m *TableModel) VisibleRowCount() int {
	n := 0
	for i := range m.data {
		if !m.RowFiltered(i) {
			n++
		}
	}
	return n
}

// Sorting ----------------------------------------------------------------

// RequestSort records a sort request on the given column and emits
// EventSortRequested. It flips the column's direction (first request sorts
// ascending, repeated requests alternate) and clears every other column's
// direction. The model deliberately embeds no sort algorithm: large datasets
// sort server-side, so the application answers the event by replacing data
// with a sorted copy via SetData.
func (m *TableModel) RequestSort(column int) error {
	if column < 0 || column >= len(m.header) {
		return fmt.Errorf("%w: sort column %d of %d", ErrIndexOutOfRange, column, len(m.header))
	}
	for i, h := range m.header {
		if i == column {
			h.Direction = h.Direction.Toggle()
		} else {
			h.Direction = SortNone
		}
	}
	m.emit(EventSortRequested, -1, column)
	return nil
}

// SortedColumn returns the index and direction of the currently sorted
// column, or (-1, SortNone) when no column is sorted.
func (m *TableModel) SortedColumn() (int, SortDirection) {
	for i, h := range m.header {
		if h.Direction != SortNone {
			return i, h.Direction
		}
	}
	return -1, SortNone
}

// Expansion ---------------------------------------------------------------

// RowExpandable reports whether the row at index has children or an expanded
// region; false when out of range.
func (m *TableModel) RowExpandable(index int) bool {
	return m.Row(index).Expandable()
}

// HasExpandableRows reports whether any row on the current page is
// expandable.
func (m *TableModel) HasExpandableRows() bool {
	for i := range m.data {
		if m.RowExpandable(i) {
			return true
		}
	}
	return false
}

// ExpandRow sets the expansion flag for a top-level row. It never touches
// the row's children: nested rows own their Expanded flags independently, so
// collapsing a parent preserves descendant state.
func (m *TableModel) ExpandRow(index int, expanded bool) error {
	if index < 0 || index >= len(m.rowsExpanded) {
		return fmt.Errorf("%w: expand row %d of %d", ErrIndexOutOfRange, index, len(m.rowsExpanded))
	}
	m.rowsExpanded[index] = expanded
	m.emit(EventExpansion, index, -1)
	return nil
}

// RowExpanded reports whether the top-level row at index is expanded; false
// when out of range.
func (m *TableModel) RowExpanded(index int) bool {
	if index < 0 || index >= len(m.rowsExpanded) {
		return false
	}
	return m.rowsExpanded[index]
}

// FlattenVisible produces the render list: every non-filtered top-level row,
// followed (when the model marks it expanded) by its visible descendants,
// depth-first. Nested descent is governed by each child row's own Expanded
// flag. Every FlatRow carries the top-level index so views can look up
// selection, expansion and context state.
func (m *TableModel) FlattenVisible() []FlatRow {
	var out []FlatRow
	for i, r := range m.data {
		if m.RowFiltered(i) {
			continue
		}
		out = append(out, FlatRow{Row: r, Index: i, Depth: 0})
		if m.rowsExpanded[i] {
			for _, child := range r.Children {
				out = appendVisible(out, child, i, 1)
			}
		}
	}
	return out
}

// Row context -------------------------------------------------------------

// SetRowContext attaches a visual severity to a row.
func (m *TableModel) SetRowContext(index int, ctx RowContext) error {
	if index < 0 || index >= len(m.rowsContext) {
		return fmt.Errorf("%w: context row %d of %d", ErrIndexOutOfRange, index, len(m.rowsContext))
	}
	m.rowsContext[index] = ctx
	m.emit(EventContext, index, -1)
	return nil
}

// RowContextAt returns the row's severity; ContextNone when out of range.
func (m *TableModel) RowContextAt(index int) RowContext {
	if index < 0 || index >= len(m.rowsContext) {
		return ContextNone
	}
	return m.rowsContext[index]
}

// Column reorder ----------------------------------------------------------

// MoveColumn removes the header at from and re-inserts it at to, applying
// the identical move to every row's cell sequence (including nested child
// rows) so header-to-cell correspondence is positional and stays intact.
// Malformed indices fail explicitly rather than no-op; that makes misuse
// visible in tests instead of silently reordering nothing.
func (m *TableModel) MoveColumn(from, to int) error {
	n := len(m.header)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: from %d to %d with %d columns", ErrInvalidColumnMove, from, to, n)
	}
	if from != to {
		h := m.header[from]
		m.header = append(m.header[:from], m.header[from+1:]...)
		rest := append([]*HeaderItem{h}, m.header[to:]...)
		m.header = append(m.header[:to], rest...)
		for _, r := range m.data {
			r.moveCell(from, to)
		}
	}
	m.emit(EventStructure, -1, to)
	return nil
}

// Pagination --------------------------------------------------------------

// PageCount returns the number of pages implied by the cursor, or 0 when the
// cursor is unset.
func (m *TableModel) PageCount() int {
	if m.PageLength <= 0 || m.TotalDataLength <= 0 {
		return 0
	}
	return (m.TotalDataLength + m.PageLength - 1) / m.PageLength
}

// NotifyPageChanged emits EventPage. The fetch collaborator calls this after
// rewriting the cursor fields; the model does not watch field assignments.
func (m *TableModel) NotifyPageChanged() {
	m.emit(EventPage, -1, -1)
}
