// Package messenger checks that view-models registering messenger
// recipients also unregister them.
//
// The check is textual: a Register call anywhere in the declaration of the
// type or its methods, with no Unregister or UnregisterAll call, is
// reported.
package messenger

import (
	"github.com/mpyw/mvvmlint/internal/diag"
	"github.com/mpyw/mvvmlint/internal/heuristic"
	"github.com/mpyw/mvvmlint/internal/rule"
	"github.com/mpyw/mvvmlint/internal/symbols"
	"github.com/mpyw/mvvmlint/internal/typeutil"
)

// Rule reports view-models that leak messenger registrations.
type Rule struct{}

// New creates the rule.
func New() *Rule {
	return &Rule{}
}

func (r *Rule) Name() string { return "messenger" }

func (r *Rule) Descriptors() []*diag.Descriptor {
	return []*diag.Descriptor{diag.MessengerMissingUnregister}
}

// CheckType implements rule.TypeVisitor. Recipient view-models are
// unregistered by the framework and are skipped.
func (r *Rule) CheckType(ctx *rule.Context, t *symbols.TypeSymbol) {
	if ctx.Framework == nil || !ctx.IsViewModelLike(t) || t.IsAbstract() {
		return
	}
	if ctx.Framework.EmbedsAny(t.Type(), typeutil.RecipientViewModelBase) {
		return
	}

	text := ctx.Snapshot.TypeText(t)
	if !heuristic.MessengerRegister.Match(text) || heuristic.MessengerUnregister.Match(text) {
		return
	}
	ctx.Report(diag.MessengerMissingUnregister, t.Spec.Name, t.Name)
}
