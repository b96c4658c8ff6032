package fetch

import (
	"context"
	"fmt"
	"os"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/tabel/pkg/model"
)

// Dataset is the on-disk JSON shape served by FileProvider:
//
//	{
//	  "columns": ["Name", "Status", "Port"],
//	  "rows": [
//	    ["gateway", "open", 8080],
//	    {"cells": ["db", "closed", 5432],
//	     "children": [["replica-1", "open", 5433]],
//	     "region": "primary database"}
//	  ]
//	}
//
// A row is either a bare array of cell values or an object with cells,
// optional nested children (same two forms, recursively) and an optional
// expanded-region payload.
type Dataset struct {
	Columns []string  `json:"columns"`
	Rows    []DataRow `json:"rows"`
}

// DataRow decodes both row forms.
type DataRow struct {
	Cells    []any
	Children []DataRow
	Region   any
}

// UnmarshalJSON accepts either a JSON array (bare cells) or an object.
func (r *DataRow) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '[' {
		return json.Unmarshal(b, &r.Cells)
	}
	var obj struct {
		Cells    []any     `json:"cells"`
		Children []DataRow `json:"children"`
		Region   any       `json:"region"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	r.Cells = obj.Cells
	r.Children = obj.Children
	r.Region = obj.Region
	return nil
}

// toModel converts a decoded row (and its children) to a model row.
func (r DataRow) toModel() *model.Row {
	row := model.NewRow(r.Cells...)
	row.Region = r.Region
	for _, c := range r.Children {
		row.Children = append(row.Children, c.toModel())
	}
	return row
}

// FileProvider serves pages from a JSON dataset file decoded fully into
// memory. Reload re-reads the file, so a watcher can refresh long-running
// sessions when the dataset changes underneath them.
type FileProvider struct {
	path string

	mu      sync.RWMutex
	columns []string
	rows    []*model.Row
}

// OpenFile loads the dataset at path.
func OpenFile(path string) (*FileProvider, error) {
	p := &FileProvider{path: path}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload re-reads the dataset file. On decode failure the previously loaded
// rows stay in place.
func (p *FileProvider) Reload() error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("read dataset %s: %w", p.path, err)
	}
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return fmt.Errorf("decode dataset %s: %w", p.path, err)
	}
	rows := make([]*model.Row, len(ds.Rows))
	for i, r := range ds.Rows {
		rows[i] = r.toModel()
	}
	p.mu.Lock()
	p.columns = ds.Columns
	p.rows = rows
	p.mu.Unlock()
	return nil
}

// Columns returns the dataset's column labels.
func (p *FileProvider) Columns() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.columns
}

// Count implements Provider.
func (p *FileProvider) Count(ctx context.Context) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.rows), nil
}

// Page implements Provider.
func (p *FileProvider) Page(ctx context.Context, page, length int) ([]*model.Row, error) {
	if page < 1 || length <= 0 {
		return nil, fmt.Errorf("bad page request: page %d length %d", page, length)
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	start := (page - 1) * length
	if start >= len(p.rows) {
		return nil, nil
	}
	end := start + length
	if end > len(p.rows) {
		end = len(p.rows)
	}
	out := make([]*model.Row, end-start)
	copy(out, p.rows[start:end])
	return out, nil
}
