package checktest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripMarkers(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		want  string
		marks [][2]int
	}{
		{"none", "type A struct{}", "type A struct{}", nil},
		{"one", "type [|A|] struct{}", "type A struct{}", [][2]int{{5, 6}}},
		{"two", "[|a|] [|bc|]", "a bc", [][2]int{{0, 1}, {2, 4}}},
		{"unopened close", "x |] y", "x |] y", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, marks := stripMarkers(tt.src)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.marks, marks)
		})
	}
}

func TestLoad(t *testing.T) {
	p := Load(t, Files{
		"b.go": "package app\n\nimport \"github.com/mpyw/mvvm\"\n\ntype [|HomeViewModel|] struct{ mvvm.ViewModelBase }\n",
		"a.go": "package app\n",
		"home.page": "@page \"/home\"\n",
	})

	require.Len(t, p.Files, 2)
	assert.Equal(t, "a.go", p.Fset.File(p.Files[0].Pos()).Name())
	assert.Equal(t, PkgPath, p.Pkg.Path())

	require.Len(t, p.Spans, 1)
	assert.Equal(t, "b.go", p.Spans[0].File)
	assert.Equal(t, "HomeViewModel", string(p.Sources["b.go"][p.Fset.Position(p.Spans[0].Pos).Offset:p.Fset.Position(p.Spans[0].End).Offset]))

	src, err := p.ReadFile("home.page")
	require.NoError(t, err)
	assert.Equal(t, "@page \"/home\"\n", string(src))

	assert.NotNil(t, p.Pkg.Scope().Lookup("HomeViewModel"))
}
