package symbols

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, srcs ...string) *Snapshot {
	t.Helper()

	fset := token.NewFileSet()
	var files []*ast.File
	for i, src := range srcs {
		f, err := parser.ParseFile(fset, string(rune('a'+i))+".go", src, parser.ParseComments)
		require.NoError(t, err)
		files = append(files, f)
	}

	info := &types.Info{
		Types: make(map[ast.Expr]types.TypeAndValue),
		Defs:  make(map[*ast.Ident]types.Object),
		Uses:  make(map[*ast.Ident]types.Object),
	}
	pkg, err := (&types.Config{}).Check("example.com/p", fset, files, info)
	require.NoError(t, err)

	snap, err := Build(fset, files, pkg, info)
	require.NoError(t, err)
	return snap
}

func TestBuildRequiresTypes(t *testing.T) {
	_, err := Build(token.NewFileSet(), nil, nil, nil)
	assert.ErrorIs(t, err, ErrNoTypesInfo)
}

func TestTypesAndMethodsAcrossFiles(t *testing.T) {
	snap := build(t, `package p

type Base struct{}

func (Base) Refresh() {}

// Profile view-model.
//
//mvvm:key profile
type ProfileViewModel struct {
	Base
	first, last string
}
`, `package p

func (vm *ProfileViewModel) Save() {}

func (vm *ProfileViewModel) Refresh() {}
`)

	require.Len(t, snap.Units(), 2)
	vm := snap.Lookup("ProfileViewModel")
	require.NotNil(t, vm)

	assert.True(t, vm.IsExported())
	assert.True(t, vm.IsStruct())
	assert.False(t, vm.IsAbstract())
	require.Len(t, vm.Attrs, 1)
	assert.Equal(t, "key", vm.Attrs[0].Name)

	require.Len(t, vm.Bases(), 1)
	assert.Equal(t, "Base", vm.Bases()[0].Obj().Name())

	names := []string{}
	for _, f := range vm.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Base", "first", "last"}, names)
	assert.True(t, vm.Fields[0].Embedded)

	require.Len(t, vm.Methods, 2)
	assert.Equal(t, "Save", vm.Methods[0].Name)
	assert.Same(t, snap.Units()[1], vm.Methods[0].Unit)
	assert.False(t, vm.Method("Save").IsOverride())
	assert.True(t, vm.Method("Refresh").IsOverride())
}

func TestMethodShapes(t *testing.T) {
	snap := build(t, `package p

type T struct{ name string }

func (t *T) Name() string        { return t.name }
func (t *T) SetName(v string)    { t.name = v }
func (t *T) Load() error         { return nil }
func (t *T) Pair() (int, int)    { return 0, 0 }
func (t *T) Settle()             {}
`)

	ty := snap.Lookup("T")
	tests := []struct {
		method   string
		getter   bool
		setter   bool
		voidLike bool
	}{
		{"Name", true, false, false},
		{"SetName", false, true, true},
		{"Load", false, false, true},
		{"Pair", false, false, false},
		{"Settle", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			m := ty.Method(tt.method)
			require.NotNil(t, m)
			assert.Equal(t, tt.getter, m.IsGetter())
			assert.Equal(t, tt.setter, m.IsSetter())
			assert.Equal(t, tt.voidLike, m.ReturnsVoidLike())
		})
	}
}

func TestProperties(t *testing.T) {
	snap := build(t, `package p

type T struct {
	//mvvm:observable
	firstName string
	lastName  string
}

func (t *T) LastName() string      { return t.lastName }
func (t *T) SetLastName(v string)  { t.lastName = v }
func (t *T) FullName() string      { return t.firstName + " " + t.lastName }
func (t *T) String() string        { return "" }
`)

	ty := snap.Lookup("T")
	require.Len(t, ty.Properties, 3)

	first := ty.Property("FirstName")
	require.NotNil(t, first)
	assert.True(t, first.Observable())
	assert.False(t, first.Computed())

	last := ty.Property("LastName")
	require.NotNil(t, last)
	assert.NotNil(t, last.Setter)
	assert.Equal(t, "lastName", last.Field.Name)
	assert.False(t, last.Computed())

	full := ty.Property("FullName")
	require.NotNil(t, full)
	assert.True(t, full.Computed())

	assert.Nil(t, ty.Property("String"))
	assert.Len(t, snap.Units()[0].Properties, 3)
}

func TestAbstractAndInterfaces(t *testing.T) {
	snap := build(t, `package p

type Service interface{ Run() }

//mvvm:abstract
type BaseViewModel struct{}

type (
	//mvvm:abstract
	Inner struct{}
	Outer struct{}
)
`)

	assert.True(t, snap.Lookup("Service").IsAbstract())
	assert.True(t, snap.Lookup("BaseViewModel").IsAbstract())
	assert.True(t, snap.Lookup("Inner").IsAbstract())
	assert.False(t, snap.Lookup("Outer").IsAbstract())
}

func TestDeclaringText(t *testing.T) {
	snap := build(t, `package p

type T struct{}

func (t *T) Tick() { t.Refresh() }

func (t *T) Refresh() {}
`)

	ty := snap.Lookup("T")
	text := snap.TypeText(ty)
	assert.Contains(t, text, "T struct{}")
	assert.Contains(t, text, "t.Refresh()")

	// Memoized: the same node renders to the same string.
	assert.Equal(t, snap.DeclaringText(ty.Spec), snap.DeclaringText(ty.Spec))
	assert.Same(t, snap.Units()[0], snap.UnitOf(ty.Spec.Pos()))
}

func TestEmptyUnit(t *testing.T) {
	snap := build(t, "package p\n")
	require.Len(t, snap.Units(), 1)
	assert.Empty(t, snap.Types())
	assert.False(t, snap.Units()[0].Generated)
}

func TestCaseHelpers(t *testing.T) {
	assert.Equal(t, "Save", UpperFirst("save"))
	assert.Equal(t, "save", LowerFirst("Save"))
	assert.Equal(t, "", LowerFirst(""))
}
