package acedash

import (
	"fmt"
	"slices"

	"github.com/ukaji3/acedash-go/pkg/acedash/calendar"
	"github.com/ukaji3/acedash-go/pkg/acedash/models"
)

// ResolveTimeWindow expands selections in the granularity of mode into an
// ascending, deduplicated window of available months. Semester and year
// keys expand to their months; months that are not available are dropped.
// A selection that leaves no month fails with ErrEmptySelection.
func ResolveTimeWindow(mode models.TimeMode, selections []string, available []calendar.MonthKey) ([]calendar.MonthKey, error) {
	var expand func(string) []calendar.MonthKey
	switch mode {
	case models.TimeModeMonth:
		expand = func(key string) []calendar.MonthKey {
			return []calendar.MonthKey{calendar.MonthKey(key)}
		}
	case models.TimeModeSemester:
		expand = calendar.SemesterToMonths
	case models.TimeModeYear:
		expand = calendar.YearToMonths
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimeMode, mode)
	}

	avail := make(map[calendar.MonthKey]bool, len(available))
	for _, m := range available {
		avail[m] = true
	}

	var window []calendar.MonthKey
	for _, key := range selections {
		for _, m := range expand(key) {
			if avail[m] {
				window = append(window, m)
			}
		}
	}
	if len(window) == 0 {
		return nil, ErrEmptySelection
	}
	slices.Sort(window)
	return slices.Compact(window), nil
}
