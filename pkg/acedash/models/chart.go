package models

import "github.com/ukaji3/acedash-go/pkg/acedash/calendar"

// Chart kinds understood by the dashboard renderer.
const (
	ChartLine = "line"
	ChartPie  = "pie"
	ChartBar  = "bar"
)

// Dataset is one category series of a chart.
type Dataset struct {
	// Label is the category name.
	Label string `json:"label"`
	// Values are aligned 1:1 with ChartResult.Labels.
	Values []int `json:"values"`
}

// ChartResult is the render-ready output of a chart generator.
// Field names are consumed by the rendering code and must stay stable.
type ChartResult struct {
	// Title is the display title (differs between new and cumulative mode).
	Title string `json:"title"`
	// ChartKind is one of ChartLine, ChartPie or ChartBar.
	ChartKind string `json:"chartKind"`
	// Labels is the time window (x-axis).
	Labels []calendar.MonthKey `json:"labels"`
	// Datasets holds only categories with at least one nonzero value,
	// in the chart's fixed category order.
	Datasets []Dataset `json:"datasets"`
}
