package generator

import (
	"strings"

	"github.com/ukaji3/acedash-go/pkg/acedash/classify"
	"github.com/ukaji3/acedash-go/pkg/acedash/models"
)

// Classifier maps the text of a source's fields to a category.
type Classifier func(fields []string) (classify.Category, bool)

// Source binds one table to the fields a chart reads from it.
type Source struct {
	Role Role
	// Fields are passed to Classify in order.
	Fields []FieldRef
	// Date is the date field. It is ignored when ScanDate is set.
	Date FieldRef
	// ScanDate takes the date from the first cell of the row that parses.
	ScanDate bool
	Classify Classifier
}

// Spec is the static description of one chart.
type Spec struct {
	Kind       Kind
	Categories []classify.Category
	Sources    []Source
	// Titles by aggregation mode.
	Title, CumulativeTitle string
	// Line charts are always rendered as a line, whatever the window size.
	Line bool
}

// Roles returns the distinct table roles the chart reads, in source order.
func (s Spec) Roles() []Role {
	var roles []Role
	seen := make(map[Role]bool, len(s.Sources))
	for _, src := range s.Sources {
		if !seen[src.Role] {
			seen[src.Role] = true
			roles = append(roles, src.Role)
		}
	}
	return roles
}

// TitleFor returns the chart title for mode.
func (s Spec) TitleFor(mode models.AggregationMode) string {
	if mode == models.ModeCumulative {
		return s.CumulativeTitle
	}
	return s.Title
}

// Lookup returns the spec of k.
func Lookup(k Kind) (Spec, bool) {
	if !k.Valid() {
		return Spec{}, false
	}
	return catalog[k], true
}

// TotalCategory is the single category of the total-registrations chart.
const TotalCategory = "總計"

// Population scopes of the college charts.
type Population int

const (
	TeachersOnly Population = iota
	StudentsOnly
	TeachersAndStudents
)

// catalog is indexed by Kind; its length is fixed by kindCount.
var catalog = [kindCount]Spec{
	Chart0: {
		Categories: []classify.Category{TotalCategory},
		Sources: []Source{{
			Role:     RoleIdentity,
			ScanDate: true,
			Classify: func([]string) (classify.Category, bool) { return TotalCategory, true },
		}},
		Title:           "總報名人數",
		CumulativeTitle: "總報名人數累計",
		Line:            true,
	},
	Chart1: distribution("校內外報名者", classify.IdentityCategories,
		Source{Role: RoleIdentity, Fields: []FieldRef{IdentityTag}, Date: IdentityDate, Classify: single(classify.Identity)}),
	Chart2: distribution("台大報名者", classify.CampusCategories,
		Source{Role: RoleStaff, Fields: []FieldRef{StaffTag}, Date: StaffDate, Classify: single(classify.CampusStaff)},
		Source{Role: RoleStudent, Fields: []FieldRef{StudentTag}, Date: StudentDate, Classify: single(classify.CampusStudentTag)}),
	Chart3: distribution("教師所有職級", classify.TeacherTypes,
		Source{Role: RoleTeacher, Fields: []FieldRef{TeacherJob}, Date: TeacherDate, Classify: single(classify.TeacherType)}),
	Chart4:  rankChart(classify.TypeFullTime, byTable(classify.FullTimeRanks)),
	Chart5:  rankChart(classify.TypeAdjunct, byTable(classify.AdjunctRanks)),
	Chart6:  rankChart(classify.TypeProject, byKeywords(classify.ProjectKeywords...)),
	Chart7:  rankChart(classify.TypeClinical, byTable(classify.ClinicalRanks)),
	Chart8:  distribution("學生所有職級", classify.StudentLevels, Source{Role: RoleStudent, Fields: []FieldRef{StudentTag, StudentLevel}, Date: StudentDate, Classify: studentLevel}),
	Chart9:  collegeChart(TeachersOnly),
	Chart10: collegeChart(StudentsOnly),
	Chart11: collegeChart(TeachersAndStudents),
}

func init() {
	for k := range catalog {
		catalog[k].Kind = Kind(k)
	}
}

func distribution(name string, categories []classify.Category, sources ...Source) Spec {
	return Spec{
		Categories:      categories,
		Sources:         sources,
		Title:           name + "分布",
		CumulativeTitle: name + "累計分布",
	}
}

func rankChart(teacherType classify.Category, c Classifier) Spec {
	return distribution(teacherType+"職級", classify.TeacherRanks,
		Source{Role: RoleTeacher, Fields: []FieldRef{TeacherJob}, Date: TeacherDate, Classify: c})
}

func collegeChart(p Population) Spec {
	teachers := Source{Role: RoleTeacher, Fields: []FieldRef{TeacherCollege}, Date: TeacherDate, Classify: college}
	students := Source{Role: RoleStudent, Fields: []FieldRef{StudentCollege}, Date: StudentDate, Classify: college}
	switch p {
	case TeachersOnly:
		return distribution("教師學院", classify.CollegeCategories, teachers)
	case StudentsOnly:
		return distribution("學生學院", classify.CollegeCategories, students)
	default:
		return distribution("教師與學生學院", classify.CollegeCategories, teachers, students)
	}
}

func single(fn func(string) (classify.Category, bool)) Classifier {
	return func(fields []string) (classify.Category, bool) {
		return fn(fields[0])
	}
}

// college skips empty cells; classify.College would count them as Other.
func college(fields []string) (classify.Category, bool) {
	if fields[0] == "" {
		return "", false
	}
	return classify.College(fields[0]), true
}

func studentLevel(fields []string) (classify.Category, bool) {
	return classify.StudentLevel(fields[0], fields[1])
}

func byTable(t classify.RankTable) Classifier {
	return func(fields []string) (classify.Category, bool) {
		return t.Lookup(fields[0])
	}
}

func byKeywords(keywords ...string) Classifier {
	return func(fields []string) (classify.Category, bool) {
		job := strings.TrimSpace(fields[0])
		if !classify.ContainsAny(job, keywords...) {
			return "", false
		}
		return classify.TeacherRank(job)
	}
}
