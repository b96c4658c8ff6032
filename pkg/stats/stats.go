// Package stats computes numeric summaries over table columns.
package stats

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/vanderheijden86/tabel/pkg/model"
)

// Summary describes the numeric values found in one column. Skipped counts
// rows whose cell did not parse as a number; filtered-out rows are never
// inspected at all.
type Summary struct {
	Column  string
	Count   int
	Skipped int
	Min     float64
	Max     float64
	Mean    float64
	StdDev  float64
}

// ErrColumnOutOfRange reports a summary request for a column the model does
// not have.
var ErrColumnOutOfRange = fmt.Errorf("stats: column out of range")

// Summarize computes a numeric summary of the given column across rows that
// pass the active filters. Cells holding numbers or numeric strings
// contribute; everything else is counted as skipped.
func Summarize(m *model.TableModel, col int) (Summary, error) {
	if col < 0 || col >= m.ColumnCount() {
		return Summary{}, fmt.Errorf("%w: %d", ErrColumnOutOfRange, col)
	}

	s := Summary{Column: m.Header()[col].Label}

	var values []float64
	for i := 0; i < m.RowCount(); i++ {
		if m.RowFiltered(i) {
			continue
		}
		v, ok := NumericValue(m.CellAt(i, col))
		if !ok {
			s.Skipped++
			continue
		}
		values = append(values, v)
	}

	s.Count = len(values)
	if s.Count == 0 {
		return s, nil
	}

	s.Min = math.Inf(1)
	s.Max = math.Inf(-1)
	for _, v := range values {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	if s.Count == 1 {
		s.StdDev = 0
	}
	return s, nil
}

// NumericValue extracts a float64 from a cell holding a number or a numeric
// string.
func NumericValue(c model.Cell) (float64, bool) {
	switch v := c.Data.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// String renders the summary the way the status line shows it.
func (s Summary) String() string {
	if s.Count == 0 {
		return fmt.Sprintf("%s: no numeric values", s.Column)
	}
	return fmt.Sprintf("%s: n=%d min=%.4g max=%.4g mean=%.4g stddev=%.4g",
		s.Column, s.Count, s.Min, s.Max, s.Mean, s.StdDev)
}
