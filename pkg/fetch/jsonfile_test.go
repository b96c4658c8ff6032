package fetch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testDataset = `{
  "columns": ["Name", "Status", "Port"],
  "rows": [
    ["gateway", "open", 8080],
    {"cells": ["db", "closed", 5432],
     "children": [["replica-1", "open", 5433], ["replica-2", "open", 5434]],
     "region": "primary database"},
    ["cache", "open", 6379]
  ]
}`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func TestOpenFile(t *testing.T) {
	p, err := OpenFile(writeDataset(t, testDataset))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	cols := p.Columns()
	if len(cols) != 3 || cols[0] != "Name" {
		t.Errorf("Columns = %v, want [Name Status Port]", cols)
	}

	n, err := p.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}
}

func TestFileProviderNestedRows(t *testing.T) {
	p, err := OpenFile(writeDataset(t, testDataset))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	rows, err := p.Page(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	db := rows[1]
	if len(db.Children) != 2 {
		t.Fatalf("expected 2 children on the db row, got %d", len(db.Children))
	}
	if got := db.Children[0].Cells[0].String(); got != "replica-1" {
		t.Errorf("first child = %q, want replica-1", got)
	}
	if db.Region != "primary database" {
		t.Errorf("Region = %v, want expanded-region payload", db.Region)
	}
	if !db.Expandable() {
		t.Error("row with children must be expandable")
	}
	if rows[0].Expandable() {
		t.Error("bare row must not be expandable")
	}
}

func TestFileProviderPaging(t *testing.T) {
	p, err := OpenFile(writeDataset(t, testDataset))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	ctx := context.Background()

	rows, err := p.Page(ctx, 2, 2)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row on the short last page, got %d", len(rows))
	}
	if got := rows[0].Cells[0].String(); got != "cache" {
		t.Errorf("last page row = %q, want cache", got)
	}

	rows, err = p.Page(ctx, 5, 2)
	if err != nil {
		t.Fatalf("Page past end: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected empty page past the end, got %d rows", len(rows))
	}

	if _, err := p.Page(ctx, 0, 2); err == nil {
		t.Error("expected error for page 0")
	}
}

func TestFileProviderReloadKeepsOldRowsOnError(t *testing.T) {
	path := writeDataset(t, testDataset)
	p, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("corrupt dataset: %v", err)
	}
	if err := p.Reload(); err == nil {
		t.Fatal("expected reload error for corrupt file")
	}

	n, err := p.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d after failed reload, want previous 3", n)
	}
}

func TestWatchFile(t *testing.T) {
	path := writeDataset(t, testDataset)

	changed := make(chan struct{}, 1)
	w, err := WatchFile(path, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("WatchFile: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte(testDataset), 0644); err != nil {
		t.Fatalf("touch dataset: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}
