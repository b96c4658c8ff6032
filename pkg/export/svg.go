package export

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/vanderheijden86/tabel/pkg/model"
	"github.com/vanderheijden86/tabel/pkg/stats"
)

const (
	chartWidth   = 800
	chartBarH    = 22
	chartGap     = 6
	chartLabelW  = 180
	chartPadding = 40
)

// GenerateSVGChart writes a horizontal bar chart of one numeric column,
// labelled by another column, covering the rows that pass the active
// filters. Non-numeric cells are skipped.
func GenerateSVGChart(w io.Writer, m *model.TableModel, labelCol, valueCol int) error {
	if labelCol < 0 || labelCol >= m.ColumnCount() || valueCol < 0 || valueCol >= m.ColumnCount() {
		return fmt.Errorf("%w: label=%d value=%d", stats.ErrColumnOutOfRange, labelCol, valueCol)
	}

	summary, err := stats.Summarize(m, valueCol)
	if err != nil {
		return err
	}
	if summary.Count == 0 {
		return fmt.Errorf("column %q has no numeric values", m.Header()[valueCol].Label)
	}

	type bar struct {
		label string
		value float64
	}
	var bars []bar
	for i := 0; i < m.RowCount(); i++ {
		if m.RowFiltered(i) {
			continue
		}
		v, ok := stats.NumericValue(m.CellAt(i, valueCol))
		if !ok {
			continue
		}
		bars = append(bars, bar{label: m.CellAt(i, labelCol).String(), value: v})
	}

	maxVal := summary.Max
	if maxVal <= 0 {
		maxVal = 1
	}

	height := chartPadding*2 + len(bars)*(chartBarH+chartGap)
	plotW := chartWidth - chartLabelW - chartPadding*2

	canvas := svg.New(w)
	canvas.Start(chartWidth, height)
	canvas.Title(fmt.Sprintf("%s by %s", m.Header()[valueCol].Label, m.Header()[labelCol].Label))
	canvas.Rect(0, 0, chartWidth, height, "fill:white")

	y := chartPadding
	for _, b := range bars {
		barW := int(float64(plotW) * b.value / maxVal)
		if barW < 1 {
			if b.value > 0 {
				barW = 1
			} else {
				barW = 0
			}
		}
		canvas.Text(chartPadding, y+chartBarH-6, b.label,
			"font-family:monospace;font-size:12px;fill:#333")
		canvas.Rect(chartPadding+chartLabelW, y, barW, chartBarH, "fill:#4c78a8")
		canvas.Text(chartPadding+chartLabelW+barW+4, y+chartBarH-6,
			fmt.Sprintf("%.4g", b.value),
			"font-family:monospace;font-size:11px;fill:#666")
		y += chartBarH + chartGap
	}
	canvas.End()

	return nil
}
