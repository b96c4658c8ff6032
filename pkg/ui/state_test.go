package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vanderheijden86/tabel/pkg/model"
)

func newStateModel() *model.TableModel {
	m := model.NewFromLabels("Name")
	parent := model.NewRow("gateway")
	parent.Children = []*model.Row{model.NewRow("sidecar")}
	m.SetData([]*model.Row{parent, model.NewRow("worker")})
	return m
}

func TestExpandStateRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := newStateModel()

	if err := m.ExpandRow(0, true); err != nil {
		t.Fatal(err)
	}

	state := LoadExpandState(dir)
	state.Capture(m)
	state.Save(dir)

	fresh := newStateModel()
	loaded := LoadExpandState(dir)
	loaded.Apply(fresh)

	if !fresh.RowExpanded(0) {
		t.Error("expected expansion to survive a save/load cycle")
	}
	if fresh.RowExpanded(1) {
		t.Error("expected non-expandable row to stay collapsed")
	}
}

func TestLoadExpandStateMissingFile(t *testing.T) {
	state := LoadExpandState(t.TempDir())
	if len(state.Expanded) != 0 {
		t.Errorf("expected empty state, got %v", state.Expanded)
	}
}

func TestLoadExpandStateCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, expandStateFileName), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	state := LoadExpandState(dir)
	if len(state.Expanded) != 0 {
		t.Errorf("expected corrupt file to yield defaults, got %v", state.Expanded)
	}
}

func TestLoadExpandStateVersionMismatch(t *testing.T) {
	dir := t.TempDir()
	data := `{"version": 99, "expanded": {"gateway": true}}`
	if err := os.WriteFile(filepath.Join(dir, expandStateFileName), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	state := LoadExpandState(dir)
	if len(state.Expanded) != 0 {
		t.Error("expected unknown versions to be ignored")
	}
}

func TestExpandStateApplyUnknownKeys(t *testing.T) {
	m := newStateModel()
	state := &ExpandState{
		Version:  ExpandStateVersion,
		Expanded: map[string]bool{"nonexistent": true},
	}
	state.Apply(m)

	if m.RowExpanded(0) {
		t.Error("expected unknown keys to leave the model untouched")
	}
}
