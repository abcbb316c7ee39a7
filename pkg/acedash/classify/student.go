package classify

// Student levels in display order.
const (
	LevelUndergraduate = "大學生"
	LevelGraduate      = "研究生"
	LevelDoctoral      = "博士生"
)

// StudentLevels is the fixed category set of the student-level chart.
var StudentLevels = []Category{LevelUndergraduate, LevelGraduate, LevelDoctoral}

// levelRules run doctoral before graduate before undergraduate; the
// undergraduate rule also accepts the generic "學生" tag, so it must stay last.
var levelRules = []rule{
	{[]string{"博士", "PhD", "Doctoral"}, LevelDoctoral},
	{[]string{"碩士", "研究", "Master", "Graduate"}, LevelGraduate},
	{[]string{"大學", "學士", "Undergraduate", "Bachelor", "學生"}, LevelUndergraduate},
}

// StudentLevel classifies a student from the identity tag and level tag
// concatenated.
func StudentLevel(identity, level string) (Category, bool) {
	s := identity + level
	if s == "" {
		return "", false
	}
	return firstMatch(levelRules, s)
}
