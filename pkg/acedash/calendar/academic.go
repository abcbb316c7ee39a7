package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// eraOffset converts Gregorian years to era years. The academic year that
// starts in August of Gregorian year Y carries era year Y-eraOffset.
const eraOffset = 1911

// Semester is a half-year academic term. Term 1 runs August to January,
// term 2 runs February to July.
type Semester struct {
	// Year is the era year of the academic year containing the term.
	Year int
	// Term is 1 or 2.
	Term int
}

// String renders the semester as "E-S".
func (s Semester) String() string {
	return fmt.Sprintf("%d-%d", s.Year, s.Term)
}

// Months returns the six months of the term in ascending order.
func (s Semester) Months() []MonthKey {
	y := s.Year + eraOffset
	if s.Term == 1 {
		return []MonthKey{
			mustMonthKey(y, time.August), mustMonthKey(y, time.September),
			mustMonthKey(y, time.October), mustMonthKey(y, time.November),
			mustMonthKey(y, time.December), mustMonthKey(y+1, time.January),
		}
	}
	months := make([]MonthKey, 0, 6)
	for m := time.February; m <= time.July; m++ {
		months = append(months, mustMonthKey(y+1, m))
	}
	return months
}

// ParseSemester parses an "E-S" key. S must be 1 or 2.
func ParseSemester(key string) (Semester, error) {
	key = strings.TrimSpace(key)
	// era years before 1912 are negative, so split on the last dash
	idx := strings.LastIndex(key, "-")
	if idx <= 0 {
		return Semester{}, fmt.Errorf("%w: semester %q", ErrMalformedKey, key)
	}
	year, err := strconv.Atoi(key[:idx])
	if err != nil {
		return Semester{}, fmt.Errorf("%w: semester %q", ErrMalformedKey, key)
	}
	term, err := strconv.Atoi(key[idx+1:])
	if err != nil || (term != 1 && term != 2) {
		return Semester{}, fmt.Errorf("%w: semester %q", ErrMalformedKey, key)
	}
	if !yearInRange(year) {
		return Semester{}, fmt.Errorf("%w: semester %q out of range", ErrMalformedKey, key)
	}
	return Semester{Year: year, Term: term}, nil
}

// AcademicYear is an August-to-July academic year identified by its era year.
type AcademicYear int

// String renders the era year.
func (y AcademicYear) String() string {
	return strconv.Itoa(int(y))
}

// Months returns the twelve months from August through the following July.
func (y AcademicYear) Months() []MonthKey {
	months := make([]MonthKey, 0, 12)
	months = append(months, Semester{Year: int(y), Term: 1}.Months()...)
	return append(months, Semester{Year: int(y), Term: 2}.Months()...)
}

// ParseAcademicYear parses an era-year key.
func ParseAcademicYear(key string) (AcademicYear, error) {
	year, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil {
		return 0, fmt.Errorf("%w: academic year %q", ErrMalformedKey, key)
	}
	if !yearInRange(year) {
		return 0, fmt.Errorf("%w: academic year %q out of range", ErrMalformedKey, key)
	}
	return AcademicYear(year), nil
}

// yearInRange keeps every expanded month within four-digit Gregorian years.
func yearInRange(era int) bool {
	return era+eraOffset >= 0 && era+eraOffset+1 <= 9999
}

// Semester returns the term containing m. January still belongs to the
// term that started the previous August.
func (m MonthKey) Semester() (Semester, error) {
	year, month, err := m.Split()
	if err != nil {
		return Semester{}, err
	}
	switch {
	case month >= 8:
		return Semester{Year: year - eraOffset, Term: 1}, nil
	case month == 1:
		return Semester{Year: year - eraOffset - 1, Term: 1}, nil
	default:
		return Semester{Year: year - eraOffset - 1, Term: 2}, nil
	}
}

// AcademicYear returns the academic year containing m.
func (m MonthKey) AcademicYear() (AcademicYear, error) {
	year, month, err := m.Split()
	if err != nil {
		return 0, err
	}
	if month >= 8 {
		return AcademicYear(year - eraOffset), nil
	}
	return AcademicYear(year - eraOffset - 1), nil
}

// MonthToSemester returns the "E-S" key of the term containing m, or "" when
// m is malformed.
func MonthToSemester(m MonthKey) string {
	s, err := m.Semester()
	if err != nil {
		return ""
	}
	return s.String()
}

// SemesterToMonths expands an "E-S" key, or returns nil when it is malformed.
func SemesterToMonths(key string) []MonthKey {
	s, err := ParseSemester(key)
	if err != nil {
		return nil
	}
	return s.Months()
}

// MonthToYear returns the era-year key of the academic year containing m, or
// "" when m is malformed.
func MonthToYear(m MonthKey) string {
	y, err := m.AcademicYear()
	if err != nil {
		return ""
	}
	return y.String()
}

// YearToMonths expands an era-year key, or returns nil when it is malformed.
func YearToMonths(key string) []MonthKey {
	y, err := ParseAcademicYear(key)
	if err != nil {
		return nil
	}
	return y.Months()
}
