// Package observable checks observable fields and property setters.
package observable

import (
	"go/ast"
	"go/types"

	"github.com/mpyw/mvvmlint/internal/diag"
	"github.com/mpyw/mvvmlint/internal/fix"
	"github.com/mpyw/mvvmlint/internal/heuristic"
	"github.com/mpyw/mvvmlint/internal/rule"
	"github.com/mpyw/mvvmlint/internal/symbols"
)

// Rule reports exported observable fields and setters that never raise
// change notification.
type Rule struct{}

// New creates the rule.
func New() *Rule {
	return &Rule{}
}

func (r *Rule) Name() string { return "observable" }

func (r *Rule) Descriptors() []*diag.Descriptor {
	return []*diag.Descriptor{diag.ObservableFieldExported, diag.SetterNotNotifying}
}

// CheckField implements rule.FieldVisitor. The property generated for an
// observable field is exported, so the field itself must not be.
func (r *Rule) CheckField(ctx *rule.Context, f *symbols.FieldSymbol) {
	if ctx.Framework == nil || f.Embedded || !f.IsObservable() || !f.IsExported() {
		return
	}
	ctx.Report(diag.ObservableFieldExported, f.Ident, f.Name)
}

// CheckProperty implements rule.PropertyVisitor.
func (r *Rule) CheckProperty(ctx *rule.Context, p *symbols.PropertySymbol) {
	if ctx.Framework == nil || p.Setter == nil || p.Setter.Decl.Body == nil {
		return
	}
	if !ctx.IsViewModelLike(p.Owner) {
		return
	}
	if heuristic.ChangeNotification.Match(ctx.Snapshot.DeclaringText(p.Setter.Decl.Body)) {
		return
	}
	ctx.Report(diag.SetterNotNotifying, p.Setter.Decl.Name, p.Name)
}

// Fixer unexports observable fields.
type Fixer struct{}

func (Fixer) FixableIDs() []string { return []string{diag.ObservableFieldExported.ID} }

func (Fixer) Fix(ctx *fix.Context) []fix.Action {
	d := ctx.Diagnostic
	id := fix.Enclosing[*ast.Ident](ctx.Doc, d.Pos, d.End)
	field := fix.Enclosing[*ast.Field](ctx.Doc, d.Pos, d.End)
	if id == nil || field == nil {
		return nil
	}
	v, ok := ctx.Doc.Info.Defs[id].(*types.Var)
	if !ok || !v.IsField() {
		return nil
	}

	name := symbols.LowerFirst(v.Name())
	if name == v.Name() || ownerHas(ctx.Doc, field, name) {
		return nil
	}

	return []fix.Action{{
		Title:          "Unexport " + v.Name(),
		EquivalenceKey: "unexport-observable:" + v.Name(),
		Target:         id,
		Edits:          fix.Rename(ctx.Doc, v, name),
	}}
}

// ownerHas reports whether the struct declaring field already has a member
// called name.
func ownerHas(doc *fix.Document, field *ast.Field, name string) bool {
	ts := fix.Enclosing[*ast.TypeSpec](doc, field.Pos(), field.End())
	if ts == nil {
		return true
	}
	tn, ok := doc.Info.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return true
	}
	obj, _, _ := types.LookupFieldOrMethod(types.NewPointer(tn.Type()), true, tn.Pkg(), name)
	return obj != nil
}
