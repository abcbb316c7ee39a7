package generator

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/acedash-go/pkg/acedash/calendar"
	"github.com/ukaji3/acedash-go/pkg/acedash/classify"
	"github.com/ukaji3/acedash-go/pkg/acedash/models"
)

var twoMonths = []calendar.MonthKey{"2023-08", "2023-09"}

// sheet builds a table of width positional columns. Each row maps a column
// position to its value; other cells stay empty.
func sheet(name string, width int, rows ...map[int]any) *models.Table {
	cols := make([]string, width)
	for i := range cols {
		cols[i] = fmt.Sprintf("col%d", i)
	}
	data := make([][]any, 0, len(rows))
	for _, r := range rows {
		values := make([]any, width)
		for pos, v := range r {
			values[pos] = v
		}
		data = append(data, values)
	}
	return models.NewTable(name, cols, data)
}

func TestBuildDatasetsPrunesZeroSeries(t *testing.T) {
	categories := []classify.Category{"A", "B"}

	tests := []struct {
		mode models.AggregationMode
		want []models.Dataset
	}{
		{models.ModeNew, []models.Dataset{{Label: "B", Values: []int{1, 2}}}},
		{models.ModeCumulative, []models.Dataset{{Label: "B", Values: []int{1, 3}}}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			g := New(twoMonths, tt.mode)
			counts := g.InitCounts(categories)
			counts["2023-08"]["B"] = 1
			counts["2023-09"]["B"] = 2

			got := g.BuildDatasets(counts, categories)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("BuildDatasets() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInitCounts(t *testing.T) {
	g := New(twoMonths, models.ModeNew)
	counts := g.InitCounts([]classify.Category{"A", "B"})

	require.Len(t, counts, 2)
	for _, m := range twoMonths {
		assert.Equal(t, map[classify.Category]int{"A": 0, "B": 0}, counts[m])
	}
}

func TestBuildDatasetsKeepsCategoryOrder(t *testing.T) {
	categories := []classify.Category{"C", "A", "B"}
	g := New(twoMonths, models.ModeNew)
	counts := g.InitCounts(categories)
	counts["2023-09"]["B"] = 4
	counts["2023-08"]["C"] = 1

	got := g.BuildDatasets(counts, categories)
	require.Len(t, got, 2)
	assert.Equal(t, "C", got[0].Label)
	assert.Equal(t, "B", got[1].Label)
}

func TestBuildDatasetsEmpty(t *testing.T) {
	g := New(twoMonths, models.ModeNew)
	got := g.BuildDatasets(g.InitCounts(classify.TeacherRanks), classify.TeacherRanks)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCumulativeIsMonotonic(t *testing.T) {
	window := []calendar.MonthKey{"2023-08", "2023-09", "2023-10", "2023-11", "2023-12", "2024-01"}
	g := New(window, models.ModeCumulative)
	categories := []classify.Category{"A", "B"}
	counts := g.InitCounts(categories)
	for i, m := range window {
		counts[m]["A"] = i % 3
		counts[m]["B"] = (i * 7) % 4
	}

	for _, ds := range g.BuildDatasets(counts, categories) {
		for i := 1; i < len(ds.Values); i++ {
			assert.GreaterOrEqual(t, ds.Values[i], ds.Values[i-1], "%s at %d", ds.Label, i)
		}
	}
}

func TestChartKind(t *testing.T) {
	one := New([]calendar.MonthKey{"2023-08"}, models.ModeNew)
	two := New(twoMonths, models.ModeNew)

	assert.Equal(t, models.ChartLine, one.ChartKind(true))
	assert.Equal(t, models.ChartLine, two.ChartKind(true))
	assert.Equal(t, models.ChartPie, one.ChartKind(false))
	assert.Equal(t, models.ChartBar, two.ChartKind(false))
}

func TestRunTotal(t *testing.T) {
	identity := sheet("身分數據", 25,
		map[int]any{0: "教師", 3: "2023-08-15"},
		map[int]any{0: "學生", 10: 45184.0},          // 2023-09-15
		map[int]any{0: "學生", 24: "Date(2023,8,1)"}, // 2023-09-01
		map[int]any{0: "學生", 5: "2022-01-01"},      // outside window
		map[int]any{0: "其他", 5: "not a date"},
	)
	spec, _ := Lookup(Chart0)

	got, err := New(twoMonths, models.ModeCumulative).Run(spec, map[Role]*models.Table{RoleIdentity: identity}, nil)
	require.NoError(t, err)

	want := &models.ChartResult{
		Title:     "總報名人數累計",
		ChartKind: models.ChartLine,
		Labels:    twoMonths,
		Datasets:  []models.Dataset{{Label: TotalCategory, Values: []int{1, 3}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Run() mismatch (-want +got):\n%s", diff)
	}
}

func TestRunIdentity(t *testing.T) {
	identity := sheet("身分數據", 25,
		map[int]any{0: "教師 Faculty", 24: "2023-08-01"},
		map[int]any{0: "學生 Student", 24: "2023-08-02"},
		map[int]any{0: "學生 Student", 24: "2023-09-02"},
		map[int]any{0: "校外人士", 24: "2023-09-03"},
		map[int]any{0: "", 24: "2023-09-04"},
		map[int]any{0: "教師", 23: "2023-09-05"},
	)
	spec, _ := Lookup(Chart1)

	got, err := New(twoMonths, models.ModeNew).Run(spec, map[Role]*models.Table{RoleIdentity: identity}, nil)
	require.NoError(t, err)

	assert.Equal(t, "校內外報名者分布", got.Title)
	assert.Equal(t, models.ChartBar, got.ChartKind)
	assert.Equal(t, []models.Dataset{
		{Label: classify.IdentityTeacher, Values: []int{1, 0}},
		{Label: classify.IdentityStudent, Values: []int{1, 1}},
		{Label: classify.IdentityOther, Values: []int{0, 1}},
	}, got.Datasets)
}

func TestRunCampusReadsBothTables(t *testing.T) {
	staff := sheet("臺大教職員工數據庫", 18,
		map[int]any{4: "專任教師", 17: 45153.0},
		map[int]any{4: "研究員", 17: 45153.0},
		map[int]any{4: "職員", 17: 45153.0},
	)
	student := sheet("臺大學生數據", 13,
		map[int]any{1: "學生", 12: 45153.0},
		map[int]any{1: "學生", 12: 45153.0},
	)
	spec, _ := Lookup(Chart2)

	got, err := New([]calendar.MonthKey{"2023-08"}, models.ModeNew).Run(spec,
		map[Role]*models.Table{RoleStaff: staff, RoleStudent: student}, nil)
	require.NoError(t, err)

	assert.Equal(t, models.ChartPie, got.ChartKind)
	assert.Equal(t, []models.Dataset{
		{Label: classify.CampusTeacher, Values: []int{1}},
		{Label: classify.CampusStudent, Values: []int{2}},
		{Label: classify.CampusResearcher, Values: []int{1}},
	}, got.Datasets)
}

func teacherSheet(rows ...[2]string) *models.Table {
	data := make([]map[int]any, 0, len(rows))
	for _, r := range rows {
		data = append(data, map[int]any{4: r[0], 6: r[1], 12: "2023-08-20"})
	}
	return sheet("臺大教師數據", 13, data...)
}

func TestRunRanks(t *testing.T) {
	teacher := teacherSheet(
		[2]string{"醫學院", "教授 Professor"},
		[2]string{"工學院", " 助理教授 Assistant Professor "},
		[2]string{"工學院", "兼任副教授 Adjunct Associate Professor"},
		[2]string{"工學院", "專案助理教授 Project Assistant Professor"},
		[2]string{"工學院", "專案講師"},
		[2]string{"工學院", "臨床教授 Clinical Professor"},
	)
	tables := map[Role]*models.Table{RoleTeacher: teacher}
	g := New([]calendar.MonthKey{"2023-08"}, models.ModeNew)

	tests := []struct {
		kind  Kind
		title string
		want  []models.Dataset
	}{
		{Chart3, "教師所有職級分布", []models.Dataset{
			{Label: classify.TypeFullTime, Values: []int{2}},
			{Label: classify.TypeAdjunct, Values: []int{1}},
			{Label: classify.TypeProject, Values: []int{2}},
			{Label: classify.TypeClinical, Values: []int{1}},
		}},
		{Chart4, "專任教師職級分布", []models.Dataset{
			{Label: classify.RankProfessor, Values: []int{1}},
			{Label: classify.RankAssistantProfessor, Values: []int{1}},
		}},
		{Chart5, "兼任教師職級分布", []models.Dataset{
			{Label: classify.RankAssociateProfessor, Values: []int{1}},
		}},
		{Chart6, "專案教師職級分布", []models.Dataset{
			{Label: classify.RankAssistantProfessor, Values: []int{1}},
			{Label: classify.RankLecturer, Values: []int{1}},
		}},
		{Chart7, "臨床教師職級分布", []models.Dataset{
			{Label: classify.RankProfessor, Values: []int{1}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			spec, ok := Lookup(tt.kind)
			require.True(t, ok)
			got, err := g.Run(spec, tables, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.title, got.Title)
			if diff := cmp.Diff(tt.want, got.Datasets); diff != "" {
				t.Errorf("datasets mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunStudentLevels(t *testing.T) {
	student := sheet("臺大學生數據", 13,
		map[int]any{1: "學生", 2: "博士班", 12: "2023-08-01"},
		map[int]any{1: "學生", 2: "碩士班", 12: "2023-08-01"},
		map[int]any{1: "學生", 2: "學士班", 12: "2023-09-01"},
		map[int]any{1: "職員", 2: "", 12: "2023-09-01"},
	)
	spec, _ := Lookup(Chart8)

	got, err := New(twoMonths, models.ModeNew).Run(spec, map[Role]*models.Table{RoleStudent: student}, nil)
	require.NoError(t, err)
	assert.Equal(t, []models.Dataset{
		{Label: classify.LevelUndergraduate, Values: []int{0, 1}},
		{Label: classify.LevelGraduate, Values: []int{1, 0}},
		{Label: classify.LevelDoctoral, Values: []int{1, 0}},
	}, got.Datasets)
}

func TestRunCollegeScopes(t *testing.T) {
	teacher := teacherSheet(
		[2]string{"醫學院", "教授 Professor"},
		[2]string{"", "教授 Professor"},
	)
	student := sheet("臺大學生數據", 13,
		map[int]any{7: "醫學院", 12: "2023-08-01"},
		map[int]any{7: "電機資訊學院", 12: "2023-08-01"},
		map[int]any{7: "外校", 12: "2023-08-01"},
	)
	tables := map[Role]*models.Table{RoleTeacher: teacher, RoleStudent: student}
	g := New([]calendar.MonthKey{"2023-08"}, models.ModeNew)

	run := func(k Kind) *models.ChartResult {
		spec, _ := Lookup(k)
		res, err := g.Run(spec, tables, nil)
		require.NoError(t, err)
		return res
	}

	teachers := run(Chart9)
	assert.Equal(t, "教師學院分布", teachers.Title)
	assert.Equal(t, []models.Dataset{{Label: classify.CollegeMedicine, Values: []int{1}}}, teachers.Datasets)

	students := run(Chart10)
	assert.Equal(t, "學生學院分布", students.Title)
	assert.Equal(t, []models.Dataset{
		{Label: classify.CollegeMedicine, Values: []int{1}},
		{Label: classify.CollegeEECS, Values: []int{1}},
		{Label: classify.CollegeOther, Values: []int{1}},
	}, students.Datasets)

	both := run(Chart11)
	assert.Equal(t, "教師與學生學院分布", both.Title)
	assert.Equal(t, []models.Dataset{
		{Label: classify.CollegeMedicine, Values: []int{2}},
		{Label: classify.CollegeEECS, Values: []int{1}},
		{Label: classify.CollegeOther, Values: []int{1}},
	}, both.Datasets)
}

func TestRunMissingTable(t *testing.T) {
	spec, _ := Lookup(Chart11)
	_, err := New(twoMonths, models.ModeNew).Run(spec,
		map[Role]*models.Table{RoleTeacher: teacherSheet()}, nil)
	require.ErrorIs(t, err, ErrMissingTable)
}

func TestRunFieldOverrides(t *testing.T) {
	identity := models.NewTable("身分數據",
		[]string{"時間戳記", "身分別"},
		[][]any{
			{"2023-08-03", "教師"},
			{"2023-09-03", "研究員"},
		})
	spec, _ := Lookup(Chart1)
	o := Overrides{
		IdentityTag.Name:  "身分別",
		IdentityDate.Name: "時間戳記",
	}

	got, err := New(twoMonths, models.ModeNew).Run(spec, map[Role]*models.Table{RoleIdentity: identity}, o)
	require.NoError(t, err)
	assert.Equal(t, []models.Dataset{
		{Label: classify.IdentityTeacher, Values: []int{1, 0}},
		{Label: classify.IdentityResearcher, Values: []int{0, 1}},
	}, got.Datasets)

	_, err = New(twoMonths, models.ModeNew).Run(spec, map[Role]*models.Table{RoleIdentity: identity},
		Overrides{IdentityTag.Name: "missing"})
	require.ErrorIs(t, err, ErrFieldNotFound)
}

func TestRunEmptyWindow(t *testing.T) {
	spec, _ := Lookup(Chart1)
	identity := sheet("身分數據", 25, map[int]any{0: "教師", 24: "2023-08-01"})

	got, err := New(nil, models.ModeNew).Run(spec, map[Role]*models.Table{RoleIdentity: identity}, nil)
	require.NoError(t, err)
	assert.NotNil(t, got.Labels)
	assert.Empty(t, got.Datasets)
}
