package classify

import "strings"

// Teacher employment types in display order.
const (
	TypeFullTime = "專任教師"
	TypeAdjunct  = "兼任教師"
	TypeProject  = "專案教師"
	TypeClinical = "臨床教師"
)

// TeacherTypes is the fixed category set of the employment-type chart.
var TeacherTypes = []Category{TypeFullTime, TypeAdjunct, TypeProject, TypeClinical}

// Teacher ranks in display order.
const (
	RankProfessor          = "教授"
	RankAssociateProfessor = "副教授"
	RankAssistantProfessor = "助理教授"
	RankLecturer           = "講師"
)

// TeacherRanks is the fixed category set of the rank charts.
var TeacherRanks = []Category{RankProfessor, RankAssociateProfessor, RankAssistantProfessor, RankLecturer}

// typeRules: qualifiers are checked before the plain title list, so a
// "臨床教授 Clinical Professor" never counts as full-time.
var typeRules = []rule{
	{[]string{"臨床", "Clinical"}, TypeClinical},
	{[]string{"專案", "Project"}, TypeProject},
	{[]string{"兼任", "Adjunct"}, TypeAdjunct},
}

// fullTimeTitles must match exactly after trimming.
var fullTimeTitles = map[string]bool{
	"教授 Professor":             true,
	"副教授 Associate Professor":  true,
	"助理教授 Assistant Professor": true,
	"講師 Lecturer":              true,
}

// TeacherType returns the employment type of a bilingual job title.
func TeacherType(job string) (Category, bool) {
	if job == "" {
		return "", false
	}
	if c, ok := firstMatch(typeRules, job); ok {
		return c, true
	}
	if fullTimeTitles[strings.TrimSpace(job)] {
		return TypeFullTime, true
	}
	return "", false
}

// rankRules order is load-bearing: "教授"/"Professor" is a substring of both
// assistant and associate titles, so the compound ranks come first.
var rankRules = []rule{
	{[]string{"助理教授", "Assistant Professor"}, RankAssistantProfessor},
	{[]string{"副教授", "Associate Professor"}, RankAssociateProfessor},
	{[]string{"教授", "Professor"}, RankProfessor},
	{[]string{"講師", "Lecturer"}, RankLecturer},
}

// TeacherRank returns the academic rank named in a job title.
func TeacherRank(job string) (Category, bool) {
	if job == "" {
		return "", false
	}
	return firstMatch(rankRules, job)
}

// RankTable maps complete bilingual job titles to ranks. It is used when the
// employment type is already fixed by the chart.
type RankTable map[string]Category

// Lookup returns the rank of an exact (trimmed) title.
func (t RankTable) Lookup(job string) (Category, bool) {
	c, ok := t[strings.TrimSpace(job)]
	return c, ok
}

// FullTimeRanks maps full-time titles.
var FullTimeRanks = RankTable{
	"教授 Professor":             RankProfessor,
	"副教授 Associate Professor":  RankAssociateProfessor,
	"助理教授 Assistant Professor": RankAssistantProfessor,
	"講師 Lecturer":              RankLecturer,
}

// AdjunctRanks maps adjunct titles.
var AdjunctRanks = RankTable{
	"兼任教授 Adjunct Professor":             RankProfessor,
	"兼任副教授 Adjunct Associate Professor":  RankAssociateProfessor,
	"兼任助理教授 Adjunct Assistant Professor": RankAssistantProfessor,
	"兼任講師 Adjunct Lecturer":              RankLecturer,
}

// ClinicalRanks maps clinical titles.
var ClinicalRanks = RankTable{
	"臨床教授 Clinical Professor":             RankProfessor,
	"臨床副教授 Clinical Associate Professor":  RankAssociateProfessor,
	"臨床助理教授 Clinical Assistant Professor": RankAssistantProfessor,
	"臨床講師 Clinical Lecturer":              RankLecturer,
}

// ProjectKeywords select project-funded teachers before rank classification.
var ProjectKeywords = []string{"專案", "Project"}
