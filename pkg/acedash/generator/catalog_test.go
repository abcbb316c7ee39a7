package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/acedash-go/pkg/acedash/models"
)

func TestCatalogIsComplete(t *testing.T) {
	kinds := Kinds()
	require.Len(t, kinds, 12)

	for _, k := range kinds {
		spec, ok := Lookup(k)
		require.True(t, ok, k.String())
		assert.Equal(t, k, spec.Kind)
		assert.NotEmpty(t, spec.Categories, k.String())
		assert.NotEmpty(t, spec.Sources, k.String())
		assert.NotEmpty(t, spec.Title, k.String())
		assert.NotEqual(t, spec.Title, spec.CumulativeTitle, k.String())
		assert.Equal(t, k == Chart0, spec.Line, k.String())
		for _, src := range spec.Sources {
			assert.NotNil(t, src.Classify, k.String())
			assert.Contains(t, Roles, src.Role)
		}
	}

	_, ok := Lookup(kindCount)
	assert.False(t, ok)
	_, ok = Lookup(-1)
	assert.False(t, ok)
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := ParseKind(k.String())
		require.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}
	for _, id := range []string{"chart12", "Chart0", "chart", ""} {
		_, ok := ParseKind(id)
		assert.False(t, ok, id)
	}
}

func TestSpecRoles(t *testing.T) {
	tests := []struct {
		kind Kind
		want []Role
	}{
		{Chart0, []Role{RoleIdentity}},
		{Chart1, []Role{RoleIdentity}},
		{Chart2, []Role{RoleStaff, RoleStudent}},
		{Chart5, []Role{RoleTeacher}},
		{Chart8, []Role{RoleStudent}},
		{Chart9, []Role{RoleTeacher}},
		{Chart10, []Role{RoleStudent}},
		{Chart11, []Role{RoleTeacher, RoleStudent}},
	}
	for _, tt := range tests {
		spec, _ := Lookup(tt.kind)
		assert.Equal(t, tt.want, spec.Roles(), tt.kind.String())
	}
}

func TestTitleFor(t *testing.T) {
	spec, _ := Lookup(Chart4)
	assert.Equal(t, "專任教師職級分布", spec.TitleFor(models.ModeNew))
	assert.Equal(t, "專任教師職級累計分布", spec.TitleFor(models.ModeCumulative))
}

func TestTableNames(t *testing.T) {
	names := TableNames{RoleStudent: "students"}
	assert.Equal(t, "students", names.Name(RoleStudent))
	assert.Equal(t, "臺大教師數據", names.Name(RoleTeacher))

	var empty TableNames
	assert.Equal(t, "身分數據", empty.Name(RoleIdentity))
}

func TestText(t *testing.T) {
	assert.Equal(t, "", Text(nil))
	assert.Equal(t, "教授", Text("教授"))
	assert.Equal(t, "45153", Text(45153.0))
	assert.Equal(t, "1.5", Text(1.5))
	assert.Equal(t, "12", Text(int64(12)))
}
