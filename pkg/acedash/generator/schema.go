package generator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/acedash-go/pkg/acedash/calendar"
	"github.com/ukaji3/acedash-go/pkg/acedash/models"
)

var (
	// ErrMissingTable indicates a chart was run without one of its tables.
	ErrMissingTable = errors.New("missing table")
	// ErrFieldNotFound indicates a configured header label is absent.
	ErrFieldNotFound = errors.New("field not found")
)

// Role names a backing table by what it holds.
type Role string

const (
	RoleIdentity Role = "identity"
	RoleStaff    Role = "staff"
	RoleStudent  Role = "student"
	RoleTeacher  Role = "teacher"
)

// Roles lists every table role.
var Roles = []Role{RoleIdentity, RoleStaff, RoleStudent, RoleTeacher}

// TableNames maps table roles to sheet names.
type TableNames map[Role]string

// DefaultTableNames returns the sheet names of the registration workbook.
func DefaultTableNames() TableNames {
	return TableNames{
		RoleIdentity: "身分數據",
		RoleStaff:    "臺大教職員工數據庫",
		RoleStudent:  "臺大學生數據",
		RoleTeacher:  "臺大教師數據",
	}
}

// Name returns the sheet name for role, falling back to the defaults.
func (n TableNames) Name(role Role) string {
	if name, ok := n[role]; ok && name != "" {
		return name
	}
	return DefaultTableNames()[role]
}

// FieldRef declares a field a chart reads from a table.
//
// A field is located by header label when one is known, otherwise by its
// column position in the sheet layout the dashboard was built against.
type FieldRef struct {
	// Name is "<role>.<field>", the key used by Overrides.
	Name string
	// Label is the header label, empty when the field is positional.
	Label string
	// Position is the zero-based column index used when Label is empty.
	Position int
}

// Overrides maps FieldRef names to header labels.
type Overrides map[string]string

// Resolve returns the column index of f within columns.
func (f FieldRef) Resolve(columns []string, o Overrides) (int, error) {
	label := f.Label
	if l, ok := o[f.Name]; ok {
		label = l
	}
	if label == "" {
		return f.Position, nil
	}
	for i, c := range columns {
		if strings.TrimSpace(c) == label {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s (label %q)", ErrFieldNotFound, f.Name, label)
}

// Fields of the registration workbook.
var (
	IdentityTag  = FieldRef{Name: "identity.identity", Position: 0}
	IdentityDate = FieldRef{Name: "identity.date", Position: 24}

	StaffTag  = FieldRef{Name: "staff.identity", Position: 4}
	StaffDate = FieldRef{Name: "staff.date", Position: 17}

	StudentTag     = FieldRef{Name: "student.identity", Position: 1}
	StudentLevel   = FieldRef{Name: "student.level", Position: 2}
	StudentCollege = FieldRef{Name: "student.college", Position: 7}
	StudentDate    = FieldRef{Name: "student.date", Position: 12}

	TeacherCollege = FieldRef{Name: "teacher.college", Position: 4}
	TeacherJob     = FieldRef{Name: "teacher.job", Position: 6}
	TeacherDate    = FieldRef{Name: "teacher.date", Position: 12}
)

// Fields returns every declared field.
func Fields() []FieldRef {
	return []FieldRef{
		IdentityTag, IdentityDate,
		StaffTag, StaffDate,
		StudentTag, StudentLevel, StudentCollege, StudentDate,
		TeacherCollege, TeacherJob, TeacherDate,
	}
}

// Text renders a raw cell as classification input.
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

// FirstMonth returns the month of the first cell of r that parses as a date.
func FirstMonth(r models.Record) (calendar.MonthKey, bool) {
	for _, v := range r.Values {
		if m, ok := calendar.ParseMonthKey(v); ok {
			return m, true
		}
	}
	return "", false
}
