// Package export renders table snapshots to markdown and SVG.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/vanderheijden86/tabel/pkg/model"
)

// GenerateMarkdown creates a markdown report of the table: a summary block,
// the visible rows laid out in header order, and a section listing selected
// rows. Hidden columns and filtered rows are omitted; nested rows appear
// indented under their parent.
func GenerateMarkdown(m *model.TableModel, title string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format(time.RFC1123)))

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Rows**: %d\n", m.RowCount()))
	sb.WriteString(fmt.Sprintf("- **Visible**: %d\n", m.VisibleRowCount()))
	sb.WriteString(fmt.Sprintf("- **Selected**: %d\n", m.SelectedRowsCount()))
	if m.TotalDataLength > 0 {
		sb.WriteString(fmt.Sprintf("- **Total in source**: %d\n", m.TotalDataLength))
	}
	sb.WriteString("\n")

	cols := visibleColumns(m)

	sb.WriteString("## Rows\n\n")
	writeHeaderRow(&sb, m, cols)
	for i := 0; i < m.RowCount(); i++ {
		if m.RowFiltered(i) {
			continue
		}
		writeRowTree(&sb, m.Row(i), cols, 0)
	}
	sb.WriteString("\n")

	if sel := m.SelectedIndices(); len(sel) > 0 {
		sb.WriteString("## Selected\n\n")
		writeHeaderRow(&sb, m, cols)
		for _, i := range sel {
			writeRowTree(&sb, m.Row(i), cols, 0)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func visibleColumns(m *model.TableModel) []int {
	var cols []int
	for i, h := range m.Header() {
		if h.Visible {
			cols = append(cols, i)
		}
	}
	return cols
}

func writeHeaderRow(sb *strings.Builder, m *model.TableModel, cols []int) {
	for _, c := range cols {
		sb.WriteString("| " + escapeCell(m.Header()[c].Label) + " ")
	}
	sb.WriteString("|\n")
	for range cols {
		sb.WriteString("| --- ")
	}
	sb.WriteString("|\n")
}

func writeRowTree(sb *strings.Builder, r *model.Row, cols []int, depth int) {
	indent := strings.Repeat("&nbsp;&nbsp;", depth)
	for n, c := range cols {
		cell := ""
		if c < len(r.Cells) {
			cell = escapeCell(r.Cells[c].String())
		}
		if n == 0 && depth > 0 {
			cell = indent + cell
		}
		sb.WriteString("| " + cell + " ")
	}
	sb.WriteString("|\n")
	for _, child := range r.Children {
		writeRowTree(sb, child, cols, depth+1)
	}
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
