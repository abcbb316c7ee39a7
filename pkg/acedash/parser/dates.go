package parser

import (
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// dateNumFmts are the built-in number formats that render a calendar date.
// Time-only formats (18-21, 45-47) are excluded: their serials carry no day.
var dateNumFmts = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 22: true,
	// East Asian locale formats, including the era-year forms.
	27: true, 28: true, 29: true, 30: true, 31: true,
	34: true, 35: true, 36: true,
	50: true, 51: true, 52: true, 53: true, 54: true,
	57: true, 58: true,
}

// IsDateFormat reports whether a cell style renders its number as a date.
func IsDateFormat(numFmt int, custom *string) bool {
	if custom != nil {
		return isDateCode(*custom)
	}
	return dateNumFmts[numFmt]
}

// isDateCode inspects a custom format code. Literal text, bracketed
// sections and escaped characters are ignored; what remains is a date when
// it names a year, day or era, or months without hours or seconds.
func isDateCode(code string) bool {
	var b strings.Builder
	inQuote, inBracket, escaped := false, false, false
	for _, r := range strings.ToLower(code) {
		switch {
		case escaped:
			escaped = false
		case inQuote:
			inQuote = r != '"'
		case inBracket:
			inBracket = r != ']'
		case r == '\\':
			escaped = true
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		default:
			b.WriteRune(r)
		}
	}
	s := strings.ReplaceAll(b.String(), "general", "")
	if strings.ContainsAny(s, "yde") {
		// "e" is also the scientific-notation marker ("0.00e+00")
		return !strings.Contains(s, "e+") && !strings.Contains(s, "e-")
	}
	return strings.Contains(s, "m") && !strings.ContainsAny(s, "hs")
}

// dateStyles memoizes the date check per style index.
type dateStyles struct {
	f        *excelize.File
	date1904 bool
	byStyle  map[int]bool
}

func newDateStyles(f *excelize.File) *dateStyles {
	d := &dateStyles{f: f, byStyle: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

// toTime converts serial to a time when the cell carries a date format.
func (d *dateStyles) toTime(sheetName, cellName string, serial float64) (time.Time, bool) {
	idx, err := d.f.GetCellStyle(sheetName, cellName)
	if err != nil || idx == 0 {
		return time.Time{}, false
	}
	isDate, seen := d.byStyle[idx]
	if !seen {
		if style, err := d.f.GetStyle(idx); err == nil && style != nil {
			isDate = IsDateFormat(style.NumFmt, style.CustomNumFmt)
		}
		d.byStyle[idx] = isDate
	}
	if !isDate {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
