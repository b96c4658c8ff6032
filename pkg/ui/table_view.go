package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/tabel/pkg/fetch"
	"github.com/vanderheijden86/tabel/pkg/model"
	"github.com/vanderheijden86/tabel/pkg/stats"
)

const (
	maxColumnWidth = 32
	chromeLines    = 4
)

// ReloadMsg asks the view to refetch the current page, e.g. after the
// dataset file changed on disk.
type ReloadMsg struct{}

// TableView is the interactive table screen. It owns cursor position and
// input state; all row data and bookkeeping lives in the table model.
type TableView struct {
	Model *model.TableModel
	Pager *fetch.Pager

	theme    Theme
	stateDir string
	state    *ExpandState

	cursor    int
	colCursor int
	offset    int
	visible   []model.FlatRow

	filtering   bool
	filterInput textinput.Model

	gotoActive bool
	gotoInput  textinput.Model

	width  int
	height int
	status string
}

// NewTableView builds the table screen around an already-loaded model.
func NewTableView(m *model.TableModel, pager *fetch.Pager, theme Theme, stateDir string) *TableView {
	fi := textinput.New()
	fi.Placeholder = "filter"
	fi.CharLimit = 64

	gi := textinput.New()
	gi.Placeholder = "page"
	gi.CharLimit = 6

	state := LoadExpandState(stateDir)
	state.Apply(m)

	v := &TableView{
		Model:       m,
		Pager:       pager,
		theme:       theme,
		stateDir:    stateDir,
		state:       state,
		filterInput: fi,
		gotoInput:   gi,
		width:       80,
		height:      24,
	}
	v.refresh()
	return v
}

func (v *TableView) Init() tea.Cmd { return nil }

// refresh rebuilds the flattened render list and clamps the cursor.
func (v *TableView) refresh() {
	v.visible = v.Model.FlattenVisible()
	if v.cursor >= len(v.visible) {
		v.cursor = len(v.visible) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	if v.colCursor >= v.Model.ColumnCount() {
		v.colCursor = v.Model.ColumnCount() - 1
	}
	if v.colCursor < 0 {
		v.colCursor = 0
	}
}

func (v *TableView) Update(msg tea.Msg) (*TableView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case fetch.PageResult:
		if err := v.Pager.Apply(msg); err != nil {
			v.status = err.Error()
		} else {
			v.state.Apply(v.Model)
			v.status = ""
		}
		v.refresh()
		return v, nil

	case ReloadMsg:
		return v, v.fetchCmd(v.Model.CurrentPage)

	case tea.KeyMsg:
		if v.filtering {
			return v.updateFilterInput(msg)
		}
		if v.gotoActive {
			return v.updateGotoInput(msg)
		}
		return v.updateKeys(msg)
	}
	return v, nil
}

func (v *TableView) updateKeys(msg tea.KeyMsg) (*TableView, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		v.persistState()
		return v, tea.Quit

	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.visible)-1 {
			v.cursor++
		}
	case "left", "h":
		if v.colCursor > 0 {
			v.colCursor--
		}
	case "right", "l":
		if v.colCursor < v.Model.ColumnCount()-1 {
			v.colCursor++
		}

	case " ":
		if fr, ok := v.cursorRow(); ok {
			v.Model.SelectRow(fr.Index, !v.Model.RowSelected(fr.Index))
		}

	case "a":
		v.Model.SelectAll(v.Model.SelectAllState() != model.SelectAllChecked)

	case "enter":
		v.toggleExpand()

	case "s":
		return v, v.requestSort()

	case "<":
		v.moveColumn(v.colCursor - 1)
	case ">":
		v.moveColumn(v.colCursor + 1)

	case "/":
		v.filtering = true
		v.filterInput.SetValue("")
		v.filterInput.Focus()
		return v, textinput.Blink

	case "esc":
		v.clearFilters()

	case "y":
		v.yank()

	case "n", "]":
		return v, v.fetchCmd(v.Model.CurrentPage + 1)
	case "p", "[":
		return v, v.fetchCmd(v.Model.CurrentPage - 1)
	case "g":
		v.gotoActive = true
		v.gotoInput.SetValue("")
		v.gotoInput.Focus()
		return v, textinput.Blink
	}
	return v, nil
}

func (v *TableView) updateFilterInput(msg tea.KeyMsg) (*TableView, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v.filtering = false
		v.filterInput.Blur()
		v.applyFilter(v.filterInput.Value())
		return v, nil
	case "esc":
		v.filtering = false
		v.filterInput.Blur()
		return v, nil
	}
	var cmd tea.Cmd
	v.filterInput, cmd = v.filterInput.Update(msg)
	return v, cmd
}

func (v *TableView) updateGotoInput(msg tea.KeyMsg) (*TableView, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v.gotoActive = false
		v.gotoInput.Blur()
		page, err := ParseGotoPage(v.gotoInput.Value(), v.Model.PageCount())
		if err != nil {
			v.status = err.Error()
			return v, nil
		}
		return v, v.fetchCmd(page)
	case "esc":
		v.gotoActive = false
		v.gotoInput.Blur()
		return v, nil
	}
	var cmd tea.Cmd
	v.gotoInput, cmd = v.gotoInput.Update(msg)
	return v, cmd
}

// cursorRow returns the flat row under the cursor.
func (v *TableView) cursorRow() (model.FlatRow, bool) {
	if v.cursor < 0 || v.cursor >= len(v.visible) {
		return model.FlatRow{}, false
	}
	return v.visible[v.cursor], true
}

// toggleExpand flips the expand state of the row under the cursor. Top-level
// rows go through the model; nested rows own their flag directly.
func (v *TableView) toggleExpand() {
	fr, ok := v.cursorRow()
	if !ok || !fr.Row.Expandable() {
		return
	}
	if fr.Depth == 0 {
		if err := v.Model.ExpandRow(fr.Index, !v.Model.RowExpanded(fr.Index)); err != nil {
			v.status = err.Error()
			return
		}
	} else {
		fr.Row.Expanded = !fr.Row.Expanded
	}
	v.refresh()
}

// requestSort signals a sort on the cursor column and answers the signal by
// reordering the rows and replacing the data, the model itself never sorts.
func (v *TableView) requestSort() tea.Cmd {
	if err := v.Model.RequestSort(v.colCursor); err != nil {
		v.status = err.Error()
		return nil
	}
	col, dir := v.Model.SortedColumn()

	rows := make([]*model.Row, v.Model.RowCount())
	copy(rows, v.Model.Rows())
	sort.SliceStable(rows, func(i, j int) bool {
		less := cellLess(cellAtColumn(rows[i], col), cellAtColumn(rows[j], col))
		if dir == model.SortDescending {
			return !less
		}
		return less
	})
	v.Model.SetData(rows)
	v.state.Apply(v.Model)
	v.refresh()
	v.status = fmt.Sprintf("sorted by %s (%s)", v.Model.Header()[col].Label, dir)
	return nil
}

func cellAtColumn(r *model.Row, col int) model.Cell {
	if col >= len(r.Cells) {
		return model.Cell{}
	}
	return r.Cells[col]
}

// cellLess orders numerically when both cells parse as numbers, otherwise
// case-insensitively by string.
func cellLess(a, b model.Cell) bool {
	av, aok := stats.NumericValue(a)
	bv, bok := stats.NumericValue(b)
	if aok && bok {
		return av < bv
	}
	return strings.ToLower(a.String()) < strings.ToLower(b.String())
}

func (v *TableView) moveColumn(to int) {
	if err := v.Model.MoveColumn(v.colCursor, to); err != nil {
		return
	}
	v.colCursor = to
	v.refresh()
}

// applyFilter installs a substring filter on the cursor column. An empty
// term clears that column's filter.
func (v *TableView) applyFilter(term string) {
	h := v.Model.Header()[v.colCursor]
	if term == "" {
		h.ClearFilter()
		v.refresh()
		return
	}

	// One prompt installs one substring term.
	h.SetFilter(model.SubstringFilter(term), 1)
	v.cursor = 0
	v.refresh()
}

func (v *TableView) clearFilters() {
	for _, h := range v.Model.Header() {
		h.ClearFilter()
	}
	v.status = ""
	v.refresh()
}

// yank copies the selected rows, or the cursor row when nothing is selected,
// to the clipboard as tab-separated values.
func (v *TableView) yank() {
	indices := v.Model.SelectedIndices()
	if len(indices) == 0 {
		fr, ok := v.cursorRow()
		if !ok {
			return
		}
		indices = []int{fr.Index}
	}

	var sb strings.Builder
	for _, i := range indices {
		row := v.Model.Row(i)
		var cells []string
		for c, h := range v.Model.Header() {
			if !h.Visible {
				continue
			}
			cells = append(cells, cellAtColumn(row, c).String())
		}
		sb.WriteString(strings.Join(cells, "\t"))
		sb.WriteString("\n")
	}

	if err := clipboard.WriteAll(sb.String()); err != nil {
		v.status = fmt.Sprintf("clipboard: %v", err)
		return
	}
	v.status = fmt.Sprintf("copied %d row(s)", len(indices))
}

// fetchCmd starts an asynchronous page fetch. Out-of-range pages are
// clamped; a no-op returns nil so nothing flashes.
func (v *TableView) fetchCmd(page int) tea.Cmd {
	if v.Pager == nil {
		return nil
	}
	if page < 1 {
		page = 1
	}
	if pc := v.Model.PageCount(); pc > 0 && page > pc {
		page = pc
	}
	if page == v.Model.CurrentPage && v.Model.RowCount() > 0 {
		return nil
	}
	v.persistState()
	req := v.Pager.Begin(page)
	return func() tea.Msg {
		return v.Pager.Fetch(context.Background(), req)
	}
}

func (v *TableView) persistState() {
	v.state.Capture(v.Model)
	v.state.Save(v.stateDir)
}

// View renders the header, the visible row window and a status footer.
func (v *TableView) View() string {
	widths := v.columnWidths()

	var sb strings.Builder
	sb.WriteString(v.renderHeader(widths))
	sb.WriteString("\n")

	rowsAvail := v.height - chromeLines
	if rowsAvail < 1 {
		rowsAvail = 1
	}
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+rowsAvail {
		v.offset = v.cursor - rowsAvail + 1
	}

	end := v.offset + rowsAvail
	if end > len(v.visible) {
		end = len(v.visible)
	}
	for i := v.offset; i < end; i++ {
		sb.WriteString(v.renderRow(i, widths))
		sb.WriteString("\n")
	}
	if len(v.visible) == 0 {
		sb.WriteString(lipgloss.NewStyle().Foreground(v.theme.Muted).Render("  no rows"))
		sb.WriteString("\n")
	}

	sb.WriteString(v.renderFooter())
	return sb.String()
}

func (v *TableView) columnWidths() []int {
	header := v.Model.Header()
	widths := make([]int, len(header))
	for c, h := range header {
		if !h.Visible {
			continue
		}
		if h.Style.Width > 0 {
			widths[c] = h.Style.Width
			continue
		}
		w := runewidth.StringWidth(h.Label) + 2
		for i := 0; i < v.Model.RowCount(); i++ {
			if m := runewidth.StringWidth(v.Model.CellAt(i, c).String()); m > w {
				w = m
			}
		}
		if w > maxColumnWidth {
			w = maxColumnWidth
		}
		widths[c] = w
	}
	return widths
}

func (v *TableView) renderHeader(widths []int) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(v.theme.Header)
	cursorStyle := headerStyle.Foreground(v.theme.Cursor)

	mark := " "
	switch v.Model.SelectAllState() {
	case model.SelectAllChecked:
		mark = "x"
	case model.SelectAllIndeterminate:
		mark = "-"
	}

	var cols []string
	cols = append(cols, headerStyle.Render("["+mark+"]"))
	for c, h := range v.Model.Header() {
		if !h.Visible {
			continue
		}
		label := h.Label
		switch h.Direction {
		case model.SortAscending:
			label += " ▲"
		case model.SortDescending:
			label += " ▼"
		}
		if h.FilterActive() {
			label += " *"
		}
		label = runewidth.FillRight(runewidth.Truncate(label, widths[c], "…"), widths[c])
		if c == v.colCursor {
			cols = append(cols, cursorStyle.Render(label))
		} else {
			cols = append(cols, headerStyle.Render(label))
		}
	}
	return strings.Join(cols, " ")
}

func (v *TableView) renderRow(i int, widths []int) string {
	fr := v.visible[i]

	mark := " "
	if fr.Depth == 0 && v.Model.RowSelected(fr.Index) {
		mark = "x"
	}

	expand := "  "
	if fr.Row.Expandable() {
		expanded := fr.Row.Expanded
		if fr.Depth == 0 {
			expanded = v.Model.RowExpanded(fr.Index)
		}
		if expanded {
			expand = "▾ "
		} else {
			expand = "▸ "
		}
	}

	var cols []string
	cols = append(cols, "["+mark+"]")
	for c, h := range v.Model.Header() {
		if !h.Visible {
			continue
		}
		cell := cellAtColumn(fr.Row, c).String()
		if c == 0 {
			cell = strings.Repeat("  ", fr.Depth) + expand + cell
		}
		cols = append(cols, runewidth.FillRight(runewidth.Truncate(cell, widths[c], "…"), widths[c]))
	}
	line := strings.Join(cols, " ")

	style := lipgloss.NewStyle()
	if ctx := v.Model.RowContextAt(fr.Index); fr.Depth == 0 && ctx != model.ContextNone {
		style = style.Foreground(v.theme.contextColor(ctx))
	}
	if fr.Depth == 0 && v.Model.RowSelected(fr.Index) {
		style = style.Foreground(v.theme.Selected)
	}
	if i == v.cursor {
		style = style.Bold(true).Foreground(v.theme.Cursor)
	}
	line = style.Render(line)

	if region := v.regionFor(fr); region != "" {
		line += "\n" + region
	}
	return line
}

// regionFor renders the expanded area payload beneath a row. String payloads
// go through glamour as markdown; anything else is stringified.
func (v *TableView) regionFor(fr model.FlatRow) string {
	if fr.Row.Region == nil {
		return ""
	}
	expanded := fr.Row.Expanded
	if fr.Depth == 0 {
		expanded = v.Model.RowExpanded(fr.Index)
	}
	if !expanded {
		return ""
	}

	indent := strings.Repeat("  ", fr.Depth+2)
	if md, ok := fr.Row.Region.(string); ok {
		if out, err := renderMarkdown(md, v.width-len(indent)); err == nil {
			return indentBlock(strings.TrimRight(out, "\n"), indent)
		}
	}
	return indent + fmt.Sprintf("%v", fr.Row.Region)
}

func renderMarkdown(md string, width int) (string, error) {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

func indentBlock(s, indent string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = indent + l
	}
	return strings.Join(lines, "\n")
}

func (v *TableView) renderFooter() string {
	muted := lipgloss.NewStyle().Foreground(v.theme.Muted)

	if v.filtering {
		label := fmt.Sprintf("filter %s: ", v.Model.Header()[v.colCursor].Label)
		return muted.Render(label) + v.filterInput.View()
	}
	if v.gotoActive {
		return muted.Render("go to page: ") + v.gotoInput.View()
	}

	parts := []string{PaginationStatus(v.Model)}
	if n := v.Model.SelectedRowsCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	if hidden := v.Model.RowCount() - v.Model.VisibleRowCount(); hidden > 0 {
		parts = append(parts, fmt.Sprintf("%d filtered out", hidden))
	}
	if v.status != "" {
		parts = append(parts, v.status)
	}
	return muted.Render(strings.Join(parts, " · "))
}
