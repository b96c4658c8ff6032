package stats

import (
	"math"
	"testing"

	"github.com/vanderheijden86/tabel/pkg/model"
)

func newStatsModel() *model.TableModel {
	m := model.NewFromLabels("Name", "Port")
	m.SetData([]*model.Row{
		model.NewRow("gateway", 8080),
		model.NewRow("worker", 9090),
		model.NewRow("db", 5432),
		model.NewRow("broken", "n/a"),
	})
	return m
}

func TestSummarize(t *testing.T) {
	m := newStatsModel()

	s, err := Summarize(m, 1)
	if err != nil {
		t.Fatal(err)
	}

	if s.Column != "Port" {
		t.Errorf("expected column Port, got %q", s.Column)
	}
	if s.Count != 3 {
		t.Errorf("expected 3 numeric values, got %d", s.Count)
	}
	if s.Skipped != 1 {
		t.Errorf("expected 1 skipped cell, got %d", s.Skipped)
	}
	if s.Min != 5432 || s.Max != 9090 {
		t.Errorf("unexpected min/max: %v/%v", s.Min, s.Max)
	}
	want := (8080.0 + 9090.0 + 5432.0) / 3
	if math.Abs(s.Mean-want) > 1e-9 {
		t.Errorf("expected mean %v, got %v", want, s.Mean)
	}
	if s.StdDev <= 0 {
		t.Errorf("expected positive stddev, got %v", s.StdDev)
	}
}

func TestSummarizeHonorsFilters(t *testing.T) {
	m := newStatsModel()
	m.Header()[0].SetFilter(model.SubstringFilter("gateway"), 1)

	s, err := Summarize(m, 1)
	if err != nil {
		t.Fatal(err)
	}
	if s.Count != 1 {
		t.Fatalf("expected 1 value after filtering, got %d", s.Count)
	}
	if s.Mean != 8080 {
		t.Errorf("expected mean 8080, got %v", s.Mean)
	}
	if s.StdDev != 0 {
		t.Errorf("expected zero stddev for a single value, got %v", s.StdDev)
	}
}

func TestSummarizeNumericStrings(t *testing.T) {
	m := model.NewFromLabels("Latency")
	m.SetData([]*model.Row{
		model.NewRow("1.5"),
		model.NewRow("2.5"),
	})

	s, err := Summarize(m, 0)
	if err != nil {
		t.Fatal(err)
	}
	if s.Count != 2 || s.Mean != 2.0 {
		t.Errorf("expected numeric strings to parse, got %+v", s)
	}
}

func TestSummarizeNoNumericColumn(t *testing.T) {
	m := newStatsModel()

	s, err := Summarize(m, 0)
	if err != nil {
		t.Fatal(err)
	}
	if s.Count != 0 || s.Skipped != 4 {
		t.Errorf("expected every cell skipped, got %+v", s)
	}
}

func TestSummarizeOutOfRange(t *testing.T) {
	m := newStatsModel()
	if _, err := Summarize(m, 5); err == nil {
		t.Error("expected an error for an out-of-range column")
	}
}
