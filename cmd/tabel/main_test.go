package main

import (
	"testing"

	"github.com/vanderheijden86/tabel/pkg/config"
	"github.com/vanderheijden86/tabel/pkg/model"
)

func TestColumnIndex(t *testing.T) {
	m := model.NewFromLabels("Name", "Port")

	if col, err := columnIndex(m, "port"); err != nil || col != 1 {
		t.Errorf("expected case-insensitive match on column 1, got %d, %v", col, err)
	}
	if _, err := columnIndex(m, "nope"); err == nil {
		t.Error("expected an error for an unknown column")
	}
}

func TestFirstNumericColumn(t *testing.T) {
	m := model.NewFromLabels("Name", "Status", "Port")
	m.SetData([]*model.Row{
		model.NewRow("gateway", "running", 8080),
	})

	if col := firstNumericColumn(m); col != 2 {
		t.Errorf("expected column 2, got %d", col)
	}

	empty := model.NewFromLabels("Name")
	empty.SetData([]*model.Row{model.NewRow("a")})
	if col := firstNumericColumn(empty); col != -1 {
		t.Errorf("expected -1 for no numeric column, got %d", col)
	}
}

func TestResolveDatasetFlagWins(t *testing.T) {
	cfg := config.Config{Datasets: []config.Dataset{{Path: "other.json"}}}

	d, err := resolveDataset(cfg, "mine.db", "items")
	if err != nil {
		t.Fatal(err)
	}
	if d.Path != "mine.db" || d.Table != "items" {
		t.Errorf("expected the flag dataset, got %+v", d)
	}
}

func TestResolveDatasetSingleCandidate(t *testing.T) {
	cfg := config.Config{Datasets: []config.Dataset{{Name: "only", Path: "only.json"}}}

	d, err := resolveDataset(cfg, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if d.Name != "only" {
		t.Errorf("expected the single candidate without prompting, got %+v", d)
	}
}

func TestResolveDatasetNoneFound(t *testing.T) {
	if _, err := resolveDataset(config.Config{}, "", ""); err == nil {
		t.Error("expected an error when nothing is registered or discovered")
	}
}
