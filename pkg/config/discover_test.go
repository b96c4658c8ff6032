package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanForDatasets(t *testing.T) {
	root := t.TempDir()

	ds1 := filepath.Join(root, "services.json")
	ds2 := filepath.Join(root, "subdir", "inventory.db")
	other := filepath.Join(root, "notes.txt")

	if err := os.MkdirAll(filepath.Dir(ds2), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{ds1, ds2, other} {
		if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	results := scanForDatasets(root, 3)

	if len(results) != 2 {
		t.Fatalf("expected 2 datasets, got %d: %v", len(results), results)
	}

	found := make(map[string]bool)
	for _, r := range results {
		found[r] = true
	}
	if !found[ds1] {
		t.Error("expected to find services.json")
	}
	if !found[ds2] {
		t.Error("expected to find inventory.db")
	}
}

func TestScanForDatasets_DepthLimit(t *testing.T) {
	root := t.TempDir()

	deep := filepath.Join(root, "a", "b", "c", "d", "deep.json")
	if err := os.MkdirAll(filepath.Dir(deep), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(deep, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	shallow := filepath.Join(root, "shallow.json")
	if err := os.WriteFile(shallow, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	results := scanForDatasets(root, 2)

	if len(results) != 1 {
		t.Fatalf("expected only the shallow dataset, got %v", results)
	}
	if results[0] != shallow {
		t.Errorf("expected %s, got %s", shallow, results[0])
	}
}

func TestScanForDatasets_SkipsHiddenDirs(t *testing.T) {
	root := t.TempDir()

	hidden := filepath.Join(root, ".cache", "hidden.json")
	if err := os.MkdirAll(filepath.Dir(hidden), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(hidden, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if results := scanForDatasets(root, 3); len(results) != 0 {
		t.Errorf("expected hidden directories to be skipped, got %v", results)
	}
}

func TestDiscoverDatasetsPrefersRegistered(t *testing.T) {
	root := t.TempDir()

	path := filepath.Join(root, "services.json")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Config{
		Datasets: []Dataset{{Name: "Services", Path: path}},
		Discovery: DiscoveryConfig{
			ScanPaths: []string{root},
		},
	}

	results := DiscoverDatasets(cfg)

	if len(results) != 1 {
		t.Fatalf("expected registered entry to absorb the discovered one, got %v", results)
	}
	if results[0].Name != "Services" {
		t.Errorf("expected registered name to win, got %q", results[0].Name)
	}
}

func TestDatasetIsSQLite(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"data.db", true},
		{"data.sqlite", true},
		{"data.SQLITE3", true},
		{"data.json", false},
		{"data", false},
	}
	for _, c := range cases {
		if got := (Dataset{Path: c.path}).IsSQLite(); got != c.want {
			t.Errorf("IsSQLite(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing config should not error: %v", err)
	}
	if len(cfg.Discovery.ScanPaths) == 0 {
		t.Error("expected default scan path")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
datasets:
  - name: Services
    path: /tmp/services.json
  - path: /tmp/inventory.db
    table: items
discovery:
  scan_paths: ["~/data"]
  max_depth: 2
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Datasets) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(cfg.Datasets))
	}
	if cfg.Datasets[1].Table != "items" {
		t.Errorf("expected table name to survive, got %q", cfg.Datasets[1].Table)
	}
	if cfg.Discovery.MaxDepth != 2 {
		t.Errorf("expected max depth 2, got %d", cfg.Discovery.MaxDepth)
	}
}
