// Package config handles recipe files and dataset discovery.
//
// A recipe is a reusable view configuration stored in .tabel/recipes.yaml:
// which columns to show, how wide they are, an initial sort request and a
// set of column filters. Recipes describe presentation only; they never
// change the underlying row data.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/tabel/pkg/model"
)

// Recipe defines a reusable view configuration for a table.
type Recipe struct {
	Name        string         `yaml:"name" json:"name"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	PageLength  int            `yaml:"page_length,omitempty" json:"page_length,omitempty"`
	Columns     []ColumnConfig `yaml:"columns,omitempty" json:"columns,omitempty"`
	Sort        SortConfig     `yaml:"sort,omitempty" json:"sort,omitempty"`
	Filters     []FilterConfig `yaml:"filters,omitempty" json:"filters,omitempty"`
}

// ColumnConfig controls display options for a single column, matched by label.
type ColumnConfig struct {
	Label  string `yaml:"label" json:"label"`
	Hidden bool   `yaml:"hidden,omitempty" json:"hidden,omitempty"`
	Width  int    `yaml:"width,omitempty" json:"width,omitempty"`
}

// SortConfig requests an initial sort on a column.
type SortConfig struct {
	Column     string `yaml:"column,omitempty" json:"column,omitempty"`
	Descending bool   `yaml:"descending,omitempty" json:"descending,omitempty"`
}

// FilterConfig applies a case-insensitive substring filter to a column.
type FilterConfig struct {
	Column string `yaml:"column" json:"column"`
	Term   string `yaml:"term" json:"term"`
}

// RecipeFile is the on-disk shape of .tabel/recipes.yaml.
type RecipeFile struct {
	Recipes []Recipe `yaml:"recipes"`
}

// DefaultRecipe returns the view used when no recipe is selected.
func DefaultRecipe() Recipe {
	return Recipe{
		Name:        "default",
		Description: "All columns visible, ten rows per page",
		PageLength:  10,
	}
}

// LoadRecipes reads a recipes file and returns its recipes. A missing file
// is not an error; it returns just the default recipe.
func LoadRecipes(path string) ([]Recipe, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []Recipe{DefaultRecipe()}, nil
	}
	if err != nil {
		return nil, err
	}

	var file RecipeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing recipes file: %w", err)
	}

	recipes := []Recipe{DefaultRecipe()}
	for _, r := range file.Recipes {
		if r.Name == "" {
			return nil, fmt.Errorf("recipes file %s: recipe without a name", path)
		}
		recipes = append(recipes, r)
	}
	return recipes, nil
}

// FindRecipe returns the recipe with the given name, or false when absent.
func FindRecipe(recipes []Recipe, name string) (Recipe, bool) {
	for _, r := range recipes {
		if r.Name == name {
			return r, true
		}
	}
	return Recipe{}, false
}

// Apply configures m according to the recipe: column visibility and widths,
// filters, then the initial sort request. Columns named in the recipe but
// missing from the model are an error so typos surface instead of being
// silently ignored.
func (r Recipe) Apply(m *model.TableModel) error {
	for _, cc := range r.Columns {
		col := columnByLabel(m, cc.Label)
		if col < 0 {
			return fmt.Errorf("recipe %q: unknown column %q", r.Name, cc.Label)
		}
		h := m.Header()[col]
		h.Visible = !cc.Hidden
		if cc.Width > 0 {
			h.Style.Width = cc.Width
		}
	}

	for _, fc := range r.Filters {
		col := columnByLabel(m, fc.Column)
		if col < 0 {
			return fmt.Errorf("recipe %q: unknown filter column %q", r.Name, fc.Column)
		}
		m.Header()[col].SetFilter(model.SubstringFilter(fc.Term), 1)
	}

	if r.Sort.Column != "" {
		col := columnByLabel(m, r.Sort.Column)
		if col < 0 {
			return fmt.Errorf("recipe %q: unknown sort column %q", r.Name, r.Sort.Column)
		}
		if err := m.RequestSort(col); err != nil {
			return err
		}
		if r.Sort.Descending {
			if err := m.RequestSort(col); err != nil {
				return err
			}
		}
	}

	return nil
}

func columnByLabel(m *model.TableModel, label string) int {
	for i, h := range m.Header() {
		if strings.EqualFold(h.Label, label) {
			return i
		}
	}
	return -1
}
