// Package viewmodelbase checks that view-models embed a framework base.
package viewmodelbase

import (
	"go/ast"
	"strings"

	"github.com/mpyw/mvvmlint/internal/diag"
	"github.com/mpyw/mvvmlint/internal/directive/attr"
	"github.com/mpyw/mvvmlint/internal/fix"
	"github.com/mpyw/mvvmlint/internal/rule"
	"github.com/mpyw/mvvmlint/internal/symbols"
	"github.com/mpyw/mvvmlint/internal/typeutil"
)

// Rule reports view-model types that embed none of the framework bases.
type Rule struct{}

// New creates the rule.
func New() *Rule {
	return &Rule{}
}

func (r *Rule) Name() string { return "viewmodelbase" }

func (r *Rule) Descriptors() []*diag.Descriptor {
	return []*diag.Descriptor{diag.ViewModelMissingBase}
}

// CheckType implements rule.TypeVisitor.
func (r *Rule) CheckType(ctx *rule.Context, t *symbols.TypeSymbol) {
	if ctx.Framework.TypeName(typeutil.ViewModelBase) == nil {
		return
	}
	if !t.IsStruct() || t.IsAbstract() || !strings.HasSuffix(t.Name, ctx.Config.ViewModelSuffix) {
		return
	}
	if ctx.Framework.EmbedsAny(t.Type(),
		typeutil.ViewModelBase, typeutil.ObservableObject, typeutil.RecipientViewModelBase) {
		return
	}
	if attr.Has(t.Attrs, attr.ObservableObject) {
		return
	}

	ctx.Report(diag.ViewModelMissingBase, t.Spec.Name, t.Name)
}

// Fixer embeds ViewModelBase as the first field.
type Fixer struct{}

func (Fixer) FixableIDs() []string { return []string{diag.ViewModelMissingBase.ID} }

func (Fixer) Fix(ctx *fix.Context) []fix.Action {
	d := ctx.Diagnostic
	ts := fix.Enclosing[*ast.TypeSpec](ctx.Doc, d.Pos, d.End)
	if ts == nil || ctx.Framework == nil {
		return nil
	}
	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return nil
	}
	file := ctx.File()

	var edits []fix.Edit
	qual, imported := fix.ImportName(file, ctx.Framework.Path())
	if !imported {
		qual = ctx.Framework.Name()
		if te, ok := fix.AddImport(ctx.Doc.Fset, file, ctx.Framework.Path()); ok {
			edits = append(edits, te)
		}
	}

	base := &ast.SelectorExpr{X: ast.NewIdent(qual), Sel: ast.NewIdent(typeutil.ViewModelBase)}
	text, err := fix.Render(ctx.Doc.Fset, base)
	if err != nil {
		return nil
	}
	edits = append(edits, fix.InsertBefore(st.Fields.Opening+1, "\n\t"+text+"\n"))

	return []fix.Action{{
		Title:          "Embed " + text,
		EquivalenceKey: "embed-viewmodelbase",
		Target:         ts,
		Edits:          edits,
	}}
}
