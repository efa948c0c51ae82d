// Package command checks that view-model actions are exposed as commands.
package command

import (
	"go/ast"
	"go/types"

	"github.com/mpyw/mvvmlint/internal/diag"
	"github.com/mpyw/mvvmlint/internal/directive/attr"
	"github.com/mpyw/mvvmlint/internal/fix"
	"github.com/mpyw/mvvmlint/internal/rule"
	"github.com/mpyw/mvvmlint/internal/symbols"
)

// wellKnown methods implement standard interfaces and are never commands.
var wellKnown = map[string]bool{
	"Close":    true,
	"Dispose":  true,
	"String":   true,
	"GoString": true,
	"Error":    true,
}

// Rule reports exported action methods of view-models that are not marked
// as commands.
type Rule struct{}

// New creates the rule.
func New() *Rule {
	return &Rule{}
}

func (r *Rule) Name() string { return "command" }

func (r *Rule) Descriptors() []*diag.Descriptor {
	return []*diag.Descriptor{diag.MethodShouldBeCommand}
}

// CheckMethod implements rule.MethodVisitor.
func (r *Rule) CheckMethod(ctx *rule.Context, m *symbols.MethodSymbol) {
	if ctx.Framework == nil || m.Receiver == nil || !ctx.IsViewModelLike(m.Receiver) {
		return
	}
	if !isCandidate(m) {
		return
	}

	ctx.Report(diag.MethodShouldBeCommand, m.Decl.Name, m.Name)
}

func isCandidate(m *symbols.MethodSymbol) bool {
	switch {
	case !m.IsExported(), wellKnown[m.Name]:
		return false
	case !m.ReturnsVoidLike(), m.Signature().Params().Len() > 1:
		return false
	case m.IsOverride(), m.IsAccessor():
		return false
	}
	return !attr.Has(m.Attrs, attr.RelayCommand, attr.Command, attr.NoCommand)
}

// Fixer unexports the method and marks it as a command, so the framework
// generates the exported command for it.
type Fixer struct{}

func (Fixer) FixableIDs() []string { return []string{diag.MethodShouldBeCommand.ID} }

func (Fixer) Fix(ctx *fix.Context) []fix.Action {
	d := ctx.Diagnostic
	fd := fix.Enclosing[*ast.FuncDecl](ctx.Doc, d.Pos, d.End)
	if fd == nil || fd.Recv == nil {
		return nil
	}
	fn, ok := ctx.Doc.Info.Defs[fd.Name].(*types.Func)
	if !ok {
		return nil
	}

	name := symbols.LowerFirst(fn.Name())
	if name == fn.Name() || collides(fn, name) {
		return nil
	}

	edits := fix.Rename(ctx.Doc, fn, name)
	edits = append(edits, fix.InsertBefore(fd.Pos(), attr.Directive(attr.RelayCommand)+"\n"))

	return []fix.Action{{
		Title:          "Convert " + fn.Name() + " to a command",
		EquivalenceKey: "relay-command",
		Target:         fd,
		Edits:          edits,
	}}
}

// collides reports whether the receiver already has a field or method
// called name.
func collides(fn *types.Func, name string) bool {
	recv := fn.Signature().Recv()
	if recv == nil {
		return true
	}
	obj, _, _ := types.LookupFieldOrMethod(recv.Type(), true, fn.Pkg(), name)
	return obj != nil
}
