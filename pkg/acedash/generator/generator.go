// Package generator turns raw tables into per-month category counts and
// render-ready chart datasets.
//
// Every chart is a Spec in a static catalog indexed by Kind. A Generator is
// bound to one time window and aggregation mode; it scans whole tables,
// keeps rows whose date falls inside the window and whose fields classify,
// and drops everything else without error.
package generator

import (
	"fmt"

	"github.com/ukaji3/acedash-go/pkg/acedash/calendar"
	"github.com/ukaji3/acedash-go/pkg/acedash/classify"
	"github.com/ukaji3/acedash-go/pkg/acedash/models"
)

// Counts holds month -> category -> count.
type Counts map[calendar.MonthKey]map[classify.Category]int

// Generator aggregates tables over a fixed window.
type Generator struct {
	window []calendar.MonthKey
	inWin  map[calendar.MonthKey]bool
	mode   models.AggregationMode
}

// New returns a Generator for window, which must be ascending and free of
// duplicates, and mode.
func New(window []calendar.MonthKey, mode models.AggregationMode) *Generator {
	in := make(map[calendar.MonthKey]bool, len(window))
	for _, m := range window {
		in[m] = true
	}
	return &Generator{window: window, inWin: in, mode: mode}
}

// InitCounts returns zeroed counters for every month of the window and every
// category.
func (g *Generator) InitCounts(categories []classify.Category) Counts {
	counts := make(Counts, len(g.window))
	for _, m := range g.window {
		row := make(map[classify.Category]int, len(categories))
		for _, c := range categories {
			row[c] = 0
		}
		counts[m] = row
	}
	return counts
}

// BuildDatasets turns counts into one series per category, in category
// order. Cumulative mode reports running sums. Categories whose series is
// all zero are omitted.
func (g *Generator) BuildDatasets(counts Counts, categories []classify.Category) []models.Dataset {
	datasets := make([]models.Dataset, 0, len(categories))
	for _, c := range categories {
		values := make([]int, len(g.window))
		nonzero := false
		sum := 0
		for i, m := range g.window {
			n := counts[m][c]
			if g.mode == models.ModeCumulative {
				sum += n
				n = sum
			}
			values[i] = n
			if n != 0 {
				nonzero = true
			}
		}
		if nonzero {
			datasets = append(datasets, models.Dataset{Label: c, Values: values})
		}
	}
	return datasets
}

// ChartKind returns the render hint for a chart.
func (g *Generator) ChartKind(line bool) string {
	switch {
	case line:
		return models.ChartLine
	case len(g.window) == 1:
		return models.ChartPie
	default:
		return models.ChartBar
	}
}

// Run aggregates the tables of spec. tables must hold every role the spec
// reads; o relabels fields and may be nil.
func (g *Generator) Run(spec Spec, tables map[Role]*models.Table, o Overrides) (*models.ChartResult, error) {
	counts := g.InitCounts(spec.Categories)
	for _, src := range spec.Sources {
		t := tables[src.Role]
		if t == nil {
			return nil, fmt.Errorf("%s: %w: %s", spec.Kind, ErrMissingTable, src.Role)
		}
		if err := g.count(counts, src, t, o); err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Kind, err)
		}
	}

	labels := make([]calendar.MonthKey, len(g.window))
	copy(labels, g.window)
	return &models.ChartResult{
		Title:     spec.TitleFor(g.mode),
		ChartKind: g.ChartKind(spec.Line),
		Labels:    labels,
		Datasets:  g.BuildDatasets(counts, spec.Categories),
	}, nil
}

func (g *Generator) count(counts Counts, src Source, t *models.Table, o Overrides) error {
	fields := make([]int, len(src.Fields))
	for i, f := range src.Fields {
		idx, err := f.Resolve(t.Columns, o)
		if err != nil {
			return fmt.Errorf("table %q: %w", t.Name, err)
		}
		fields[i] = idx
	}
	date := -1
	if !src.ScanDate {
		idx, err := src.Date.Resolve(t.Columns, o)
		if err != nil {
			return fmt.Errorf("table %q: %w", t.Name, err)
		}
		date = idx
	}

	text := make([]string, len(fields))
	for _, r := range t.Rows {
		var (
			m  calendar.MonthKey
			ok bool
		)
		if src.ScanDate {
			m, ok = FirstMonth(r)
		} else {
			m, ok = calendar.ParseMonthKey(r.At(date))
		}
		if !ok || !g.inWin[m] {
			continue
		}
		for i, idx := range fields {
			text[i] = Text(r.At(idx))
		}
		if c, ok := src.Classify(text); ok {
			counts[m][c]++
		}
	}
	return nil
}
