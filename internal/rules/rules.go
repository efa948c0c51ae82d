package rules

import (
	"github.com/mpyw/mvvmlint/internal/fix"
	"github.com/mpyw/mvvmlint/internal/rule"
	"github.com/mpyw/mvvmlint/internal/rules/command"
	"github.com/mpyw/mvvmlint/internal/rules/dispose"
	"github.com/mpyw/mvvmlint/internal/rules/messenger"
	"github.com/mpyw/mvvmlint/internal/rules/navigation"
	"github.com/mpyw/mvvmlint/internal/rules/notify"
	"github.com/mpyw/mvvmlint/internal/rules/observable"
	"github.com/mpyw/mvvmlint/internal/rules/route"
	"github.com/mpyw/mvvmlint/internal/rules/staterefresh"
	"github.com/mpyw/mvvmlint/internal/rules/viewmodelbase"
)

// All returns a fresh instance of every built-in rule.
func All() []rule.Rule {
	return []rule.Rule{
		viewmodelbase.New(),
		command.New(),
		dispose.New(),
		notify.New(),
		observable.New(),
		navigation.New(),
		route.New(),
		messenger.New(),
		staterefresh.New(),
	}
}

// Providers returns every built-in fix provider.
func Providers() []fix.Provider {
	return []fix.Provider{
		viewmodelbase.Fixer{},
		command.Fixer{},
		dispose.Fixer{},
		notify.Fixer{},
		observable.Fixer{},
		staterefresh.Fixer{},
	}
}
