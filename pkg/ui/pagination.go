package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vanderheijden86/tabel/pkg/model"
)

// PaginationStatus renders the footer fragment describing the pagination
// cursor: current page, page count, total items and the loading/end flags.
func PaginationStatus(m *model.TableModel) string {
	if m.PageLength <= 0 {
		return fmt.Sprintf("%d rows", m.RowCount())
	}

	var sb strings.Builder
	pc := m.PageCount()
	if pc > 0 {
		fmt.Fprintf(&sb, "page %d/%d", m.CurrentPage, pc)
	} else {
		fmt.Fprintf(&sb, "page %d", m.CurrentPage)
	}
	if m.TotalDataLength > 0 {
		fmt.Fprintf(&sb, " · %d items", m.TotalDataLength)
	}
	if m.Loading {
		sb.WriteString(" · loading…")
	}
	if m.End {
		sb.WriteString(" · end")
	}
	return sb.String()
}

// ParseGotoPage validates a go-to-page input against the page count. A zero
// pageCount means the count is unknown and any positive page is accepted.
func ParseGotoPage(input string, pageCount int) (int, error) {
	page, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("not a page number: %q", input)
	}
	if page < 1 || (pageCount > 0 && page > pageCount) {
		return 0, fmt.Errorf("page %d out of range 1-%d", page, pageCount)
	}
	return page, nil
}
