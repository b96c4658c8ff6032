package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vanderheijden86/tabel/pkg/model"
)

func newRecipeModel() *model.TableModel {
	m := model.NewFromLabels("Name", "Status", "Port")
	m.SetData([]*model.Row{
		model.NewRow("gateway", "running", 8080),
		model.NewRow("worker", "stopped", 0),
	})
	return m
}

func TestLoadRecipesMissingFile(t *testing.T) {
	recipes, err := LoadRecipes(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing recipes file should not error: %v", err)
	}
	if len(recipes) != 1 || recipes[0].Name != "default" {
		t.Errorf("expected just the default recipe, got %v", recipes)
	}
}

func TestLoadRecipes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.yaml")
	data := `
recipes:
  - name: running-only
    description: Services that are up
    page_length: 25
    columns:
      - label: Port
        hidden: true
      - label: Name
        width: 30
    sort:
      column: Name
      descending: true
    filters:
      - column: Status
        term: running
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	recipes, err := LoadRecipes(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(recipes) != 2 {
		t.Fatalf("expected default plus one recipe, got %d", len(recipes))
	}

	r, ok := FindRecipe(recipes, "running-only")
	if !ok {
		t.Fatal("expected to find running-only")
	}
	if r.PageLength != 25 {
		t.Errorf("expected page length 25, got %d", r.PageLength)
	}
	if len(r.Filters) != 1 || r.Filters[0].Term != "running" {
		t.Errorf("unexpected filters: %v", r.Filters)
	}
}

func TestLoadRecipesRejectsUnnamed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.yaml")
	if err := os.WriteFile(path, []byte("recipes:\n  - description: nameless\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRecipes(path); err == nil {
		t.Error("expected an error for a recipe without a name")
	}
}

func TestRecipeApply(t *testing.T) {
	m := newRecipeModel()
	r := Recipe{
		Name: "test",
		Columns: []ColumnConfig{
			{Label: "Port", Hidden: true},
			{Label: "Name", Width: 30},
		},
		Sort:    SortConfig{Column: "Name", Descending: true},
		Filters: []FilterConfig{{Column: "Status", Term: "running"}},
	}

	if err := r.Apply(m); err != nil {
		t.Fatal(err)
	}

	if m.Header()[2].Visible {
		t.Error("expected Port to be hidden")
	}
	if m.Header()[0].Style.Width != 30 {
		t.Errorf("expected Name width 30, got %d", m.Header()[0].Style.Width)
	}

	col, dir := m.SortedColumn()
	if col != 0 || dir != model.SortDescending {
		t.Errorf("expected descending sort on column 0, got col=%d dir=%v", col, dir)
	}

	if m.RowFiltered(0) {
		t.Error("expected the running row to pass the filter")
	}
	if !m.RowFiltered(1) {
		t.Error("expected the stopped row to be filtered out")
	}
	if m.Header()[1].FilterCount != 1 {
		t.Errorf("expected one filter term on Status, got %d", m.Header()[1].FilterCount)
	}
}

func TestRecipeApplyColumnMatchIsCaseInsensitive(t *testing.T) {
	m := newRecipeModel()
	r := Recipe{Name: "test", Columns: []ColumnConfig{{Label: "port", Hidden: true}}}
	if err := r.Apply(m); err != nil {
		t.Fatal(err)
	}
	if m.Header()[2].Visible {
		t.Error("expected case-insensitive label match to hide Port")
	}
}

func TestRecipeApplyUnknownColumn(t *testing.T) {
	m := newRecipeModel()
	r := Recipe{Name: "test", Columns: []ColumnConfig{{Label: "Nope"}}}
	if err := r.Apply(m); err == nil {
		t.Error("expected an error for an unknown column")
	}
}
