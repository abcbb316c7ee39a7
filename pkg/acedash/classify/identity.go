package classify

// Registrant categories of the identity chart.
const (
	IdentityTeacher    = "教師"
	IdentityStudent    = "學生"
	IdentityResearcher = "研究員"
	IdentityOther      = "其他"
)

// IdentityCategories is the fixed category set of the identity chart.
var IdentityCategories = []Category{IdentityTeacher, IdentityStudent, IdentityResearcher, IdentityOther}

var identityRules = []rule{
	{[]string{"教師"}, IdentityTeacher},
	{[]string{"學生"}, IdentityStudent},
	{[]string{"研究員"}, IdentityResearcher},
}

// Identity classifies a registrant identity tag; non-empty tags that match
// nothing count as IdentityOther.
func Identity(s string) (Category, bool) {
	if s == "" {
		return "", false
	}
	if c, ok := firstMatch(identityRules, s); ok {
		return c, true
	}
	return IdentityOther, true
}

// Campus registrant categories, split between the staff and student tables.
const (
	CampusTeacher    = "臺大教師"
	CampusStudent    = "臺大學生"
	CampusResearcher = "研究員"
)

// CampusCategories is the fixed category set of the campus chart.
var CampusCategories = []Category{CampusTeacher, CampusStudent, CampusResearcher}

var staffRules = []rule{
	{[]string{"教師"}, CampusTeacher},
	{[]string{"研究員"}, CampusResearcher},
}

// CampusStaff classifies a row of the staff table. Staff that are neither
// teachers nor researchers are not counted.
func CampusStaff(s string) (Category, bool) {
	return firstMatch(staffRules, s)
}

// CampusStudentTag classifies a row of the student table.
func CampusStudentTag(s string) (Category, bool) {
	if ContainsAny(s, "學生") {
		return CampusStudent, true
	}
	return "", false
}
