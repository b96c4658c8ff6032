package fetch

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/tabel/pkg/model"
)

// SQLiteProvider serves pages straight from a SQLite table, so datasets
// larger than memory page cleanly. Column order follows the table schema.
type SQLiteProvider struct {
	db      *sql.DB
	table   string
	columns []string
}

// OpenSQLite opens the database at path and inspects the given table's
// schema. The table name comes from configuration, not user input, but is
// still validated to a bare identifier since it is interpolated into SQL.
func OpenSQLite(path, table string) (*SQLiteProvider, error) {
	if !validIdent(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	p := &SQLiteProvider{db: db, table: table}
	if err := p.inspect(); err != nil {
		db.Close()
		return nil, err
	}
	return p, nil
}

func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

func (p *SQLiteProvider) inspect() error {
	rows, err := p.db.Query(fmt.Sprintf("PRAGMA table_info(%q)", p.table))
	if err != nil {
		return fmt.Errorf("inspect %s: %w", p.table, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notnull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return fmt.Errorf("inspect %s: %w", p.table, err)
		}
		p.columns = append(p.columns, name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("inspect %s: %w", p.table, err)
	}
	if len(p.columns) == 0 {
		return fmt.Errorf("table %s has no columns (missing table?)", p.table)
	}
	return nil
}

// Columns returns the table's column names in schema order.
func (p *SQLiteProvider) Columns() []string { return p.columns }

// Close releases the database handle.
func (p *SQLiteProvider) Close() error { return p.db.Close() }

// Count implements Provider.
func (p *SQLiteProvider) Count(ctx context.Context) (int, error) {
	var n int
	err := p.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %q", p.table)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", p.table, err)
	}
	return n, nil
}

// Page implements Provider using LIMIT/OFFSET over rowid order.
func (p *SQLiteProvider) Page(ctx context.Context, page, length int) ([]*model.Row, error) {
	if page < 1 || length <= 0 {
		return nil, fmt.Errorf("bad page request: page %d length %d", page, length)
	}
	cols := make([]string, len(p.columns))
	for i, c := range p.columns {
		cols[i] = fmt.Sprintf("%q", c)
	}
	q := fmt.Sprintf("SELECT %s FROM %q ORDER BY rowid LIMIT ? OFFSET ?",
		strings.Join(cols, ", "), p.table)

	rows, err := p.db.QueryContext(ctx, q, length, (page-1)*length)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", p.table, err)
	}
	defer rows.Close()

	var out []*model.Row
	for rows.Next() {
		values := make([]any, len(p.columns))
		ptrs := make([]any, len(values))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("page %s: %w", p.table, err)
		}
		for i, v := range values {
			// Text columns scan as []byte; keep cells printable.
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		out = append(out, model.NewRow(values...))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("page %s: %w", p.table, err)
	}
	return out, nil
}
