// Package staterefresh flags excessive state refresh calls.
//
// Refresh calls are recognised by callee name through heuristic.StateRefresh,
// so any StateHasChanged or NotifyStateChanged method counts.
package staterefresh

import (
	"go/ast"
	"strconv"

	"github.com/mpyw/mvvmlint/internal/diag"
	"github.com/mpyw/mvvmlint/internal/fix"
	"github.com/mpyw/mvvmlint/internal/funcspec"
	"github.com/mpyw/mvvmlint/internal/heuristic"
	"github.com/mpyw/mvvmlint/internal/rule"
)

// Rule reports refresh calls inside loops and functions that refresh too
// often.
type Rule struct{}

// New creates the rule.
func New() *Rule {
	return &Rule{}
}

func (r *Rule) Name() string { return "staterefresh" }

func (r *Rule) Descriptors() []*diag.Descriptor {
	return []*diag.Descriptor{diag.StateRefreshInLoop, diag.StateRefreshOveruse}
}

func (r *Rule) NodeFilter() []ast.Node {
	return []ast.Node{(*ast.CallExpr)(nil), (*ast.FuncDecl)(nil)}
}

// CheckNode implements rule.NodeVisitor.
func (r *Rule) CheckNode(ctx *rule.Context, n ast.Node, stack []ast.Node) {
	if ctx.Framework == nil {
		return
	}

	switch n := n.(type) {
	case *ast.CallExpr:
		name, ok := refreshCall(n)
		if !ok || outermostLoop(stack) == nil {
			return
		}
		ctx.Report(diag.StateRefreshInLoop, n, name)

	case *ast.FuncDecl:
		if n.Body == nil {
			return
		}
		count := 0
		for _, m := range heuristic.StateRefresh.Find(ctx.Fset, n.Body) {
			if call, ok := m.(*ast.CallExpr); ok {
				if _, ok := refreshCall(call); ok {
					count++
				}
			}
		}
		if count > ctx.Config.StateRefresh.MaxCalls {
			ctx.Report(diag.StateRefreshOveruse, n.Name, n.Name.Name, strconv.Itoa(count))
		}
	}
}

// refreshCall reports whether call is an argument-less state refresh and
// returns the callee name.
func refreshCall(call *ast.CallExpr) (string, bool) {
	id := funcspec.Callee(call)
	if id == nil || len(call.Args) > 0 {
		return "", false
	}
	return id.Name, heuristic.StateRefresh.Match(id.Name + "()")
}

// outermostLoop returns the outermost loop whose body encloses the last
// node of stack, without crossing a function boundary.
func outermostLoop(stack []ast.Node) ast.Stmt {
	if len(stack) == 0 {
		return nil
	}
	n := stack[len(stack)-1]

	var loop ast.Stmt
	for i := len(stack) - 2; i >= 0; i-- {
		switch s := stack[i].(type) {
		case *ast.FuncLit, *ast.FuncDecl:
			return loop
		case *ast.ForStmt:
			if encloses(s.Body, n) {
				loop = s
			}
		case *ast.RangeStmt:
			if encloses(s.Body, n) {
				loop = s
			}
		}
	}
	return loop
}

func encloses(outer, inner ast.Node) bool {
	return outer.Pos() <= inner.Pos() && inner.End() <= outer.End()
}

// Fixer moves a refresh statement from a loop to right after it.
type Fixer struct{}

func (Fixer) FixableIDs() []string { return []string{diag.StateRefreshInLoop.ID} }

func (Fixer) Fix(ctx *fix.Context) []fix.Action {
	d := ctx.Diagnostic
	path := fix.Path(ctx.Doc, d.Pos, d.End)
	if len(path) < 2 {
		return nil
	}
	call, ok := path[0].(*ast.CallExpr)
	if !ok {
		return nil
	}
	stmt, ok := path[1].(*ast.ExprStmt)
	if !ok || stmt.X != call {
		return nil
	}

	// The path runs innermost first; the stack form runs outermost first.
	stack := make([]ast.Node, len(path))
	for i, n := range path {
		stack[len(path)-1-i] = n
	}
	loop := outermostLoop(stack)
	if loop == nil {
		return nil
	}

	text, err := fix.Render(ctx.Doc.Fset, stmt)
	if err != nil {
		return nil
	}
	del, err := fix.DeleteStmt(ctx.Doc, stmt)
	if err != nil {
		return nil
	}

	edits := []fix.Edit{del}
	if next := following(path, loop); next == nil || !sameText(ctx.Doc, next, text) {
		edits = append(edits, fix.InsertAfter(loop, "\n"+text))
	}

	return []fix.Action{{
		Title:          "Move " + text + " after the loop",
		EquivalenceKey: "move-refresh-after-loop",
		Target:         stmt,
		Edits:          edits,
	}}
}

// following returns the statement right after loop in its enclosing
// statement list, or nil. path runs innermost first and contains loop.
func following(path []ast.Node, loop ast.Stmt) ast.Stmt {
	i := 0
	for i < len(path) && path[i] != loop {
		i++
	}
	var cur ast.Stmt = loop
	i++
	if i < len(path) {
		if l, ok := path[i].(*ast.LabeledStmt); ok {
			cur = l
			i++
		}
	}
	if i >= len(path) {
		return nil
	}

	var list []ast.Stmt
	switch n := path[i].(type) {
	case *ast.BlockStmt:
		list = n.List
	case *ast.CaseClause:
		list = n.Body
	case *ast.CommClause:
		list = n.Body
	}
	for j, st := range list {
		if st == cur && j+1 < len(list) {
			return list[j+1]
		}
	}
	return nil
}

func sameText(doc *fix.Document, n ast.Node, text string) bool {
	got, err := fix.Render(doc.Fset, n)
	return err == nil && got == text
}
