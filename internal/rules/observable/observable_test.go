package observable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpyw/mvvmlint/internal/checktest"
	"github.com/mpyw/mvvmlint/internal/fix"
	"github.com/mpyw/mvvmlint/internal/rule"
	"github.com/mpyw/mvvmlint/internal/rules/observable"
)

func harness() *checktest.Harness {
	return &checktest.Harness{
		Rules:     []rule.Rule{observable.New()},
		Providers: []fix.Provider{observable.Fixer{}},
	}
}

func TestObservable(t *testing.T) {
	harness().Verify(t, checktest.Files{
		"a.go": `package app

import "github.com/mpyw/mvvm"

type ProfileViewModel struct {
	mvvm.ViewModelBase

	//mvvm:observableProperty
	[|Name|] string

	//mvvm:observable
	email string

	Bio string

	age   int
	title string
}

func (vm *ProfileViewModel) Age() int { return vm.age }

func (vm *ProfileViewModel) [|SetAge|](v int) { vm.age = v }

func (vm *ProfileViewModel) Title() string { return vm.title }

func (vm *ProfileViewModel) SetTitle(v string) {
	vm.title = v
	vm.OnPropertyChanged("Title")
}

type Settings struct{ theme string }

func (s *Settings) SetTheme(v string) { s.theme = v }
`,
	},
		checktest.Want{ID: "observable-field-exported", Args: []string{"Name"}},
		checktest.Want{ID: "setter-not-notifying", Args: []string{"Age"}},
	)
}

func TestFixUnexportsField(t *testing.T) {
	harness().VerifyFix(t, checktest.Files{
		"a.go": `package app

import "github.com/mpyw/mvvm"

type ProfileViewModel struct {
	mvvm.ViewModelBase

	//mvvm:observable
	Name string
}

func greeting(vm *ProfileViewModel) string { return "hi " + vm.Name }
`,
	}, checktest.Files{
		"a.go": `package app

import "github.com/mpyw/mvvm"

type ProfileViewModel struct {
	mvvm.ViewModelBase

	//mvvm:observable
	name string
}

func greeting(vm *ProfileViewModel) string { return "hi " + vm.name }
`,
	})
}

func TestFixDeclinesOnCollision(t *testing.T) {
	harness().VerifyFix(t, checktest.Files{
		"a.go": `package app

import "github.com/mpyw/mvvm"

type ProfileViewModel struct {
	mvvm.ViewModelBase

	//mvvm:observable
	Name string

	name string
}
`,
	}, nil)
}

func TestFixUnexportsGroupedFields(t *testing.T) {
	h := harness()
	files := checktest.Files{
		"a.go": `package app

import "github.com/mpyw/mvvm"

type ArticleViewModel struct {
	mvvm.ViewModelBase

	//mvvm:observable
	Name, Title string
}

func heading(vm *ArticleViewModel) string { return vm.Title + ": " + vm.Name }
`,
	}

	res := h.VerifyFix(t, files, checktest.Files{
		"a.go": `package app

import "github.com/mpyw/mvvm"

type ArticleViewModel struct {
	mvvm.ViewModelBase

	//mvvm:observable
	name, title string
}

func heading(vm *ArticleViewModel) string { return vm.title + ": " + vm.name }
`,
	})
	assert.Len(t, res.Applied, 2)
	assert.Empty(t, res.Skipped)

	h.VerifyFixAllMatchesEach(t, files)
}
