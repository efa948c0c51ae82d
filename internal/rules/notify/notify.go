// Package notify checks that members a computed property depends on notify
// that property when they change.
package notify

import (
	"slices"

	"github.com/mpyw/mvvmlint/internal/diag"
	"github.com/mpyw/mvvmlint/internal/directive/attr"
	"github.com/mpyw/mvvmlint/internal/heuristic"
	"github.com/mpyw/mvvmlint/internal/refs"
	"github.com/mpyw/mvvmlint/internal/rule"
	"github.com/mpyw/mvvmlint/internal/symbols"
)

// Rule reports observable fields and notifying setters that a computed
// property reads but that do not name it in a notify directive.
type Rule struct{}

// New creates the rule.
func New() *Rule {
	return &Rule{}
}

func (r *Rule) Name() string { return "notify" }

func (r *Rule) Descriptors() []*diag.Descriptor {
	return []*diag.Descriptor{diag.MissingNotifyFor}
}

// CheckType implements rule.TypeVisitor.
func (r *Rule) CheckType(ctx *rule.Context, t *symbols.TypeSymbol) {
	if ctx.Framework == nil || !ctx.IsViewModelLike(t) {
		return
	}

	for _, p := range t.Properties {
		if !p.Computed() || p.Getter.Decl.Body == nil {
			continue
		}
		used := refs.Collect(p.Getter.Decl.Body)

		for _, f := range t.Fields {
			if !f.IsObservable() || f.Embedded {
				continue
			}
			if !used[f.Name] && !used[symbols.UpperFirst(f.Name)] {
				continue
			}
			if names(f.Attrs, p.Name) {
				continue
			}
			ctx.Report(diag.MissingNotifyFor, f.Ident, f.Name, p.Name)
		}

		for _, q := range t.Properties {
			if q == p || q.Setter == nil || q.Observable() {
				continue
			}
			if !used[q.Name] && (q.Field == nil || !used[q.Field.Name]) {
				continue
			}
			if !raises(ctx, q.Setter) {
				continue
			}
			if names(q.Setter.Attrs, p.Name) || slices.Contains(refs.StringLiterals(q.Setter.Decl.Body), p.Name) {
				continue
			}
			ctx.Report(diag.MissingNotifyFor, q.Setter.Decl.Name, q.Setter.Name, p.Name)
		}
	}
}

// names reports whether a notify directive among attrs lists prop.
func names(attrs []attr.Attr, prop string) bool {
	return slices.Contains(attr.Args(attrs, attr.NotifyFor, attr.NotifyForShort), prop)
}

// raises reports whether the setter body raises change notification.
func raises(ctx *rule.Context, m *symbols.MethodSymbol) bool {
	return m.Decl.Body != nil && heuristic.ChangeNotification.Match(ctx.Snapshot.DeclaringText(m.Decl.Body))
}
