package models

import "github.com/ukaji3/acedash-go/pkg/acedash/calendar"

// AggregationMode selects per-period counts or running totals.
type AggregationMode string

const (
	// ModeNew reports raw per-month counts.
	ModeNew AggregationMode = "new"
	// ModeCumulative reports running sums across the window.
	ModeCumulative AggregationMode = "cumulative"
)

// TimeMode is the granularity of a user time selection.
type TimeMode string

const (
	TimeModeMonth    TimeMode = "month"
	TimeModeSemester TimeMode = "semester"
	TimeModeYear     TimeMode = "year"
)

// TimeOptions lists the selectable periods, each ascending and deduplicated.
type TimeOptions struct {
	Months    []calendar.MonthKey `json:"months"`
	Semesters []string            `json:"semesters"`
	Years     []string            `json:"years"`
}
