package model

import (
	"fmt"
	"strings"
)

// SortDirection describes the sort state of a single column.
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAscending
	SortDescending
)

// String returns a human-readable name for the direction.
func (d SortDirection) String() string {
	switch d {
	case SortAscending:
		return "ascending"
	case SortDescending:
		return "descending"
	}
	return "none"
}

// Toggle returns the next direction in the two-state cycle. A column that has
// never been sorted starts ascending; after that it alternates. There is no
// third "reset to none" step.
func (d SortDirection) Toggle() SortDirection {
	if d == SortAscending {
		return SortDescending
	}
	return SortAscending
}

// FilterFunc decides whether a cell passes a column filter. Returning false
// hides the row. Predicates supplied by the application are trusted; the
// model does not sandbox them.
type FilterFunc func(c Cell) bool

// SubstringFilter returns the default column filter: case-insensitive
// substring match against the cell's primary string representation.
// An empty term matches everything.
func SubstringFilter(term string) FilterFunc {
	term = strings.ToLower(term)
	return func(c Cell) bool {
		if term == "" {
			return true
		}
		return strings.Contains(strings.ToLower(c.String()), term)
	}
}

// ColumnStyle carries explicit presentation hints for a column. The model
// stores these but never interprets them; views do.
type ColumnStyle struct {
	Width int `json:"width,omitempty" yaml:"width,omitempty"` // display columns, 0 = auto
	Order int `json:"order,omitempty" yaml:"order,omitempty"` // visual order hint
}

// HeaderItem describes one column of a table: its label, visibility, sort
// state and optional filter. There is exactly one HeaderItem per data column,
// and header order always matches cell order within rows (MoveColumn keeps
// the two in lockstep).
type HeaderItem struct {
	// Label is the display text for the column.
	Label string

	// Content optionally references custom header content understood by the
	// view layer. Opaque to the model.
	Content any

	// Visible controls whether views render this column. Filters on hidden
	// columns still apply.
	Visible bool

	// Direction is the current sort state. At most one header in a model
	// should be non-SortNone; RequestSort maintains that.
	Direction SortDirection

	// Style carries explicit width/order hints for views.
	Style ColumnStyle

	// Filter, when non-nil, is this column's active filter predicate.
	Filter FilterFunc

	// FilterCount is the number of active filter terms, shown as a badge by
	// views. It has no functional effect on filtering.
	FilterCount int
}

// NewHeaderItem returns a visible, unsorted, unfiltered header.
func NewHeaderItem(label string) *HeaderItem {
	return &HeaderItem{Label: label, Visible: true}
}

// FilterActive reports whether this column currently hides rows.
func (h *HeaderItem) FilterActive() bool {
	return h != nil && h.Filter != nil
}

// SetFilter installs a predicate and updates the badge count. Passing nil
// clears the filter.
func (h *HeaderItem) SetFilter(f FilterFunc, count int) {
	h.Filter = f
	if f == nil {
		h.FilterCount = 0
		return
	}
	h.FilterCount = count
}

// ClearFilter removes the column's filter predicate and badge count.
func (h *HeaderItem) ClearFilter() {
	h.SetFilter(nil, 0)
}

func (h *HeaderItem) String() string {
	return fmt.Sprintf("HeaderItem(%q %s)", h.Label, h.Direction)
}
