package ui

import (
	"log"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/tabel/pkg/model"
)

// ExpandState is the persistent expand/collapse state of a table, saved to
// .tabel/expand-state.json so a reopened dataset shows the same rows.
//
// Rows are keyed by their first cell rendered as a string; rows without a
// stable key simply start collapsed. Only explicit user changes are stored.
// A corrupted or missing file means defaults, never an error the user sees.
type ExpandState struct {
	Version  int             `json:"version"`
	Expanded map[string]bool `json:"expanded"`
}

// ExpandStateVersion is the current schema version for expand persistence.
const ExpandStateVersion = 1

const expandStateFileName = "expand-state.json"

// ExpandStatePath returns the path of the expand state file inside dir,
// defaulting to .tabel in the current directory.
func ExpandStatePath(dir string) string {
	if dir == "" {
		dir = ".tabel"
	}
	return filepath.Join(dir, expandStateFileName)
}

// LoadExpandState reads the state file. Missing or corrupt files yield an
// empty state.
func LoadExpandState(dir string) *ExpandState {
	state := &ExpandState{
		Version:  ExpandStateVersion,
		Expanded: make(map[string]bool),
	}

	data, err := os.ReadFile(ExpandStatePath(dir))
	if err != nil {
		return state
	}
	var loaded ExpandState
	if err := json.Unmarshal(data, &loaded); err != nil || loaded.Version != ExpandStateVersion {
		return state
	}
	if loaded.Expanded != nil {
		state.Expanded = loaded.Expanded
	}
	return state
}

// Save writes the state file, creating the directory if needed. Errors are
// logged and swallowed so persistence never interrupts the session.
func (s *ExpandState) Save(dir string) {
	if dir == "" {
		dir = ".tabel"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("warning: could not create state directory: %v", err)
		return
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		log.Printf("warning: could not encode expand state: %v", err)
		return
	}
	if err := os.WriteFile(ExpandStatePath(dir), data, 0o644); err != nil {
		log.Printf("warning: could not write expand state: %v", err)
	}
}

// Capture records the expand flags of every expandable top-level row.
func (s *ExpandState) Capture(m *model.TableModel) {
	for i := 0; i < m.RowCount(); i++ {
		if !m.RowExpandable(i) {
			continue
		}
		key := rowKey(m, i)
		if key == "" {
			continue
		}
		s.Expanded[key] = m.RowExpanded(i)
	}
}

// Apply re-expands rows recorded in the state. Unknown keys are ignored.
func (s *ExpandState) Apply(m *model.TableModel) {
	for i := 0; i < m.RowCount(); i++ {
		if !m.RowExpandable(i) {
			continue
		}
		expanded, ok := s.Expanded[rowKey(m, i)]
		if !ok {
			continue
		}
		if err := m.ExpandRow(i, expanded); err != nil {
			return
		}
	}
}

func rowKey(m *model.TableModel, index int) string {
	return m.CellAt(index, 0).String()
}
