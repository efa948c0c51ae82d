package notify

import (
	"go/ast"

	"github.com/mpyw/mvvmlint/internal/diag"
	"github.com/mpyw/mvvmlint/internal/directive/attr"
	"github.com/mpyw/mvvmlint/internal/fix"
)

// Fixer adds the missing notify directive to the field or setter.
type Fixer struct{}

func (Fixer) FixableIDs() []string { return []string{diag.MissingNotifyFor.ID} }

func (Fixer) Fix(ctx *fix.Context) []fix.Action {
	d := ctx.Diagnostic
	if len(d.Args) < 2 {
		return nil
	}
	prop := d.Args[1]
	directive := attr.Directive(attr.NotifyFor, prop)

	var (
		target ast.Node
		edit   fix.Edit
	)
search:
	for _, n := range fix.Path(ctx.Doc, d.Pos, d.End) {
		switch n := n.(type) {
		case *ast.Field:
			// A directive on a grouped field would apply to every name.
			if len(n.Names) > 1 {
				return nil
			}
			target = n
			edit = fix.InsertBefore(n.Pos(), directive+"\n\t")
			break search
		case *ast.FuncDecl:
			target = n
			edit = fix.InsertBefore(n.Pos(), directive+"\n")
			break search
		}
	}
	if target == nil {
		return nil
	}

	return []fix.Action{{
		Title:          "Notify " + prop,
		EquivalenceKey: "notify-for:" + prop,
		Target:         target,
		Edits:          []fix.Edit{edit},
	}}
}
