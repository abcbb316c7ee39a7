// Package validate gates user input before it reaches the aggregation core.
package validate

import (
	"regexp"
	"strings"

	"github.com/ukaji3/acedash-go/pkg/acedash/models"
)

// MaxTextLen is the rune limit applied by Sanitize.
const MaxTextLen = 1000

var (
	chartID      = regexp.MustCompile(`^chart(?:[0-9]|1[01])$`)
	scriptScheme = regexp.MustCompile(`(?i)javascript:`)
	angles       = strings.NewReplacer("<", "", ">", "")
)

// Sanitize strips angle brackets and javascript: schemes, trims the result
// and truncates it to MaxTextLen runes.
func Sanitize(s string) string {
	s = angles.Replace(s)
	s = scriptScheme.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > MaxTextLen {
		s = string(r[:MaxTextLen])
	}
	return s
}

// IsValidChartID reports whether id is one of chart0 through chart11.
func IsValidChartID(id string) bool {
	return chartID.MatchString(id)
}

// IsValidAggregationMode reports whether mode is exactly "new" or "cumulative".
func IsValidAggregationMode(mode string) bool {
	switch models.AggregationMode(mode) {
	case models.ModeNew, models.ModeCumulative:
		return true
	}
	return false
}

// IsValidTimeMode reports whether mode is month, semester or year.
func IsValidTimeMode(mode string) bool {
	switch models.TimeMode(mode) {
	case models.TimeModeMonth, models.TimeModeSemester, models.TimeModeYear:
		return true
	}
	return false
}
