package attr

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseComment(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantOK   bool
		wantName string
		wantArgs []string
	}{
		{name: "plain", text: "//mvvm:command", wantOK: true, wantName: "command"},
		{name: "space after slashes", text: "// mvvm:command", wantOK: true, wantName: "command"},
		{name: "comma args", text: "//mvvm:notify FullName, Initials", wantOK: true, wantName: "notify", wantArgs: []string{"FullName", "Initials"}},
		{name: "quoted arg", text: `//mvvm:page "/users/{id}"`, wantOK: true, wantName: "page", wantArgs: []string{"/users/{id}"}},
		{name: "quoted arg with space", text: `//mvvm:key "a b"`, wantOK: true, wantName: "key", wantArgs: []string{"a b"}},
		{name: "trailing reason", text: "//mvvm:key settings - the settings page", wantOK: true, wantName: "key", wantArgs: []string{"settings"}},
		{name: "trailing comment", text: "//mvvm:nocommand // not a command", wantOK: true, wantName: "nocommand"},
		{name: "other directive", text: "//go:generate foo", wantOK: false},
		{name: "block comment", text: "/* mvvm:command */", wantOK: false},
		{name: "empty name", text: "//mvvm:", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ok := parseComment(tt.text)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantName, a.Name)
			assert.Equal(t, tt.wantArgs, a.Args)
		})
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name      string
		attr      string
		canonical string
		want      bool
	}{
		{"exact", "RelayCommand", "RelayCommand", true},
		{"attribute suffix", "RelayCommandAttribute", "RelayCommand", true},
		{"lower case", "relaycommand", "RelayCommand", true},
		{"canonical with suffix", "RelayCommand", "RelayCommandAttribute", true},
		{"different", "command", "RelayCommand", false},
		{"bare attribute", "Attribute", "attribute", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(Attr{Name: tt.attr}, tt.canonical))
		})
	}
}

func TestParseFromDecl(t *testing.T) {
	src := `package p

// Doc line.
//mvvm:ObservableObject
//mvvm:key settings
type SettingsViewModel struct {
	//mvvm:observable
	//mvvm:NotifyPropertyChangedFor FullName
	//mvvm:notify Initials
	firstName string
}
`
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "p.go", src, parser.ParseComments)
	require.NoError(t, err)

	gd := f.Decls[0].(*ast.GenDecl)
	attrs := Parse(gd.Doc)
	require.Len(t, attrs, 2)
	assert.True(t, Has(attrs, ObservableObject))
	assert.Equal(t, []string{"settings"}, Args(attrs, Key, ViewModelKeyAlias))

	field := gd.Specs[0].(*ast.TypeSpec).Type.(*ast.StructType).Fields.List[0]
	fieldAttrs := Parse(field.Doc, field.Comment)
	assert.True(t, Has(fieldAttrs, Observable, ObservableShort))
	assert.Equal(t, []string{"FullName", "Initials"}, Args(fieldAttrs, NotifyFor, NotifyForShort))
}

func TestDirective(t *testing.T) {
	assert.Equal(t, "//mvvm:relayCommand", Directive(RelayCommand))
	assert.Equal(t, "//mvvm:notifyPropertyChangedFor FullName", Directive(NotifyFor, "FullName"))
	assert.Equal(t, `//mvvm:page "/a b", x`, Directive(Page, "/a b", "x"))

	a, ok := parseComment(Directive(Page, "/a b", "x"))
	require.True(t, ok)
	assert.Equal(t, []string{"/a b", "x"}, a.Args)
}
