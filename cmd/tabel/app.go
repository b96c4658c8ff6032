package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/tabel/pkg/ui"
)

// app is the top-level bubbletea model: a title bar, the table view and a
// one-line key legend.
type app struct {
	view  *ui.TableView
	title string
	width int
}

func newApp(view *ui.TableView, title string) *app {
	return &app{view: view, title: title, width: 80}
}

func (a *app) Init() tea.Cmd { return a.view.Init() }

func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = size.Width
		// Reserve the title and legend lines for ourselves.
		size.Height -= 2
		var cmd tea.Cmd
		a.view, cmd = a.view.Update(size)
		return a, cmd
	}

	var cmd tea.Cmd
	a.view, cmd = a.view.Update(msg)
	return a, cmd
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	legendStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)
)

const keyLegend = "↑↓ move · ←→ column · space select · a all · enter expand · s sort · / filter · </> reorder · y yank · [/] page · g goto · q quit"

func (a *app) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(a.title))
	sb.WriteString("\n")
	sb.WriteString(a.view.View())
	sb.WriteString("\n")
	sb.WriteString(legendStyle.Render(keyLegend))
	return sb.String()
}
