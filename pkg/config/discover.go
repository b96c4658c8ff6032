package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dataset points at a table data source: a JSON dataset file or a SQLite
// database. Table is only meaningful for SQLite sources.
type Dataset struct {
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
	Path  string `yaml:"path" json:"path"`
	Table string `yaml:"table,omitempty" json:"table,omitempty"`
}

// DiscoveryConfig controls where DiscoverDatasets looks for sources.
type DiscoveryConfig struct {
	ScanPaths []string `yaml:"scan_paths,omitempty" json:"scan_paths,omitempty"`
	MaxDepth  int      `yaml:"max_depth,omitempty" json:"max_depth,omitempty"`
}

// Config is the on-disk shape of .tabel/config.yaml: explicitly registered
// datasets plus discovery settings.
type Config struct {
	Datasets  []Dataset       `yaml:"datasets,omitempty" json:"datasets,omitempty"`
	Discovery DiscoveryConfig `yaml:"discovery,omitempty" json:"discovery,omitempty"`
}

// IsSQLite reports whether the dataset path looks like a SQLite database.
func (d Dataset) IsSQLite() bool {
	ext := strings.ToLower(filepath.Ext(d.Path))
	return ext == ".db" || ext == ".sqlite" || ext == ".sqlite3"
}

// DisplayName returns the registered name, falling back to the file name.
func (d Dataset) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return filepath.Base(d.Path)
}

// DiscoverDatasets scans the configured paths for dataset files and merges
// them with explicitly registered datasets, preferring the registered entry
// when a path matches.
func DiscoverDatasets(cfg Config) []Dataset {
	seen := make(map[string]bool)
	var result []Dataset

	for _, d := range cfg.Datasets {
		resolved := expandHome(d.Path)
		seen[resolved] = true
		result = append(result, d)
	}

	for _, scanPath := range cfg.Discovery.ScanPaths {
		maxDepth := cfg.Discovery.MaxDepth
		if maxDepth <= 0 {
			maxDepth = 3
		}
		for _, f := range scanForDatasets(scanPath, maxDepth) {
			if !seen[f] {
				seen[f] = true
				result = append(result, Dataset{Path: f})
			}
		}
	}

	return result
}

// scanForDatasets walks a directory tree up to maxDepth levels deep,
// collecting files with dataset extensions.
func scanForDatasets(root string, maxDepth int) []string {
	root = expandHome(root)
	var results []string

	rootDepth := strings.Count(filepath.Clean(root), string(filepath.Separator))

	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return filepath.SkipDir
		}

		name := d.Name()
		if d.IsDir() {
			currentDepth := strings.Count(filepath.Clean(path), string(filepath.Separator)) - rootDepth
			if currentDepth > maxDepth {
				return filepath.SkipDir
			}
			if strings.HasPrefix(name, ".") && path != filepath.Clean(root) {
				return filepath.SkipDir
			}
			return nil
		}

		switch strings.ToLower(filepath.Ext(name)) {
		case ".json", ".db", ".sqlite", ".sqlite3":
			results = append(results, path)
		}
		return nil
	})

	return results
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// LoadConfig reads .tabel/config.yaml. A missing file yields an empty
// config with the current directory as the only scan path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{Discovery: DiscoveryConfig{ScanPaths: []string{"."}}}, nil
	}
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	if len(cfg.Discovery.ScanPaths) == 0 {
		cfg.Discovery.ScanPaths = []string{"."}
	}
	return cfg, nil
}
