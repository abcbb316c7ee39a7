package calendar

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const msPerDay = 86_400_000

// maxTimeMillis bounds serial conversions to the range a spreadsheet date
// value can represent.
const maxTimeMillis = 8.64e15

// serialEpoch is day zero of spreadsheet serial dates.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// literalDate matches the Date(Y,M,D[,h,m,s]) literal used by the Sheets
// visualization API. M is zero-based.
var literalDate = regexp.MustCompile(`Date\((\d+),\s*(\d+),\s*(\d+)(?:,\s*\d+)*\)`)

// dateLayouts are tried in order for free-form date strings.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-1-2",
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"2006/1/2",
	"2006.1.2",
	"2006年1月2日",
	"1/2/2006 15:04:05",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"Mon Jan 2 2006",
	"Mon Jan 02 2006 15:04:05 GMT-0700",
	time.RFC1123,
	time.RFC1123Z,
	time.UnixDate,
	"2006-01",
	"2006/1",
	"2006年1月",
}

// ParseMonthKey converts a raw cell into a month key.
//
// Accepted inputs: time.Time; a number of days since 1899-12-30 (spreadsheet
// serial date, fractions allowed); a string holding a Date(Y,M,D) literal with
// zero-based month; or a date string in one of the supported layouts.
// Absent, zero, unparseable or out-of-range values report false. The function
// never panics.
func ParseMonthKey(value any) (MonthKey, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case time.Time:
		return fromTime(v)
	case *time.Time:
		if v == nil {
			return "", false
		}
		return fromTime(*v)
	case float64:
		return fromSerial(v)
	case float32:
		return fromSerial(float64(v))
	case int:
		return fromSerial(float64(v))
	case int32:
		return fromSerial(float64(v))
	case int64:
		return fromSerial(float64(v))
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return "", false
		}
		return fromSerial(f)
	case string:
		return fromString(v)
	default:
		return "", false
	}
}

func fromTime(t time.Time) (MonthKey, bool) {
	if t.IsZero() {
		return "", false
	}
	return newMonthKey(t.Year(), t.Month())
}

func fromSerial(days float64) (MonthKey, bool) {
	if days == 0 || math.IsNaN(days) || math.IsInf(days, 0) {
		return "", false
	}
	total := days * msPerDay
	if math.Abs(total) > maxTimeMillis {
		return "", false
	}
	ms := int64(total)
	t := serialEpoch.AddDate(0, 0, int(ms/msPerDay)).Add(time.Duration(ms%msPerDay) * time.Millisecond)
	return newMonthKey(t.Year(), t.Month())
}

func fromString(s string) (MonthKey, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if m := literalDate.FindStringSubmatch(s); m != nil {
		year, errY := strconv.Atoi(m[1])
		month, errM := strconv.Atoi(m[2])
		day, errD := strconv.Atoi(m[3])
		if errY != nil || errM != nil || errD != nil {
			return "", false
		}
		// two-digit years follow the legacy 1900-based convention
		if year <= 99 {
			year += 1900
		}
		t := time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC)
		return newMonthKey(t.Year(), t.Month())
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return newMonthKey(t.Year(), t.Month())
		}
	}
	return "", false
}
