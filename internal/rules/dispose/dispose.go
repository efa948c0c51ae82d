// Package dispose checks that view-models and views holding disposable
// resources release them.
//
// A type holds resources when one of its fields is disposable (precise: the
// field type has Close or Dispose, or a configured release method) or when
// its declaration subscribes to events (heuristic, see package heuristic).
package dispose

import (
	"github.com/mpyw/mvvmlint/internal/diag"
	"github.com/mpyw/mvvmlint/internal/directive/attr"
	"github.com/mpyw/mvvmlint/internal/funcspec"
	"github.com/mpyw/mvvmlint/internal/heuristic"
	"github.com/mpyw/mvvmlint/internal/rule"
	"github.com/mpyw/mvvmlint/internal/symbols"
)

// Rule reports types that hold disposable resources without a Close method.
type Rule struct{}

// New creates the rule.
func New() *Rule {
	return &Rule{}
}

func (r *Rule) Name() string { return "dispose" }

func (r *Rule) Descriptors() []*diag.Descriptor {
	return []*diag.Descriptor{diag.MissingDispose}
}

// CheckType implements rule.TypeVisitor.
func (r *Rule) CheckType(ctx *rule.Context, t *symbols.TypeSymbol) {
	if ctx.Framework == nil || !t.IsStruct() || t.IsAbstract() {
		return
	}
	if !ctx.IsViewModelLike(t) && ctx.Framework.ViewModelOf(t.Type()) == nil {
		return
	}
	if hasCloser(t.Type()) || attr.Has(t.Attrs, attr.AutoDispose) {
		return
	}

	specs := funcspec.ParseList(ctx.Config.Disposables)
	if len(releases(t.Type(), ctx.Pkg, specs)) == 0 &&
		!heuristic.Subscription.Match(ctx.Snapshot.TypeText(t)) {
		return
	}

	ctx.Report(diag.MissingDispose, t.Spec.Name, t.Name)
}
