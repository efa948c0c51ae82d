package dispose

import (
	"go/ast"
	"go/types"
	"unicode/utf8"

	"github.com/mpyw/mvvmlint/internal/diag"
	"github.com/mpyw/mvvmlint/internal/fix"
	"github.com/mpyw/mvvmlint/internal/funcspec"
	"github.com/mpyw/mvvmlint/internal/symbols"
)

// Fixer adds a Close method releasing every disposable field.
type Fixer struct{}

func (Fixer) FixableIDs() []string { return []string{diag.MissingDispose.ID} }

func (Fixer) Fix(ctx *fix.Context) []fix.Action {
	d := ctx.Diagnostic
	gd := fix.Enclosing[*ast.GenDecl](ctx.Doc, d.Pos, d.End)
	ts := fix.Enclosing[*ast.TypeSpec](ctx.Doc, d.Pos, d.End)
	if gd == nil || ts == nil || ts.TypeParams != nil {
		return nil
	}
	tn, ok := ctx.Doc.Info.Defs[ts.Name].(*types.TypeName)
	if !ok || hasCloser(tn.Type()) {
		return nil
	}

	file := ctx.File()
	recv := receiverName(ctx.Doc, tn)
	rels := releases(tn.Type(), ctx.Doc.Pkg, funcspec.ParseList(ctx.Config.Disposables))

	var (
		edits   []fix.Edit
		body    []ast.Stmt
		failing []ast.Expr
	)
	for _, rel := range rels {
		call := &ast.CallExpr{Fun: &ast.SelectorExpr{
			X:   &ast.SelectorExpr{X: ast.NewIdent(recv), Sel: ast.NewIdent(rel.Field)},
			Sel: ast.NewIdent(rel.Method),
		}}
		if rel.ReturnsError {
			failing = append(failing, call)
			continue
		}
		body = append(body, &ast.ExprStmt{X: call})
	}

	var result ast.Expr
	switch len(failing) {
	case 0:
		result = ast.NewIdent("nil")
	case 1:
		result = failing[0]
	default:
		qual, imported := fix.ImportName(file, "errors")
		if !imported {
			qual = "errors"
			if te, ok := fix.AddImport(ctx.Doc.Fset, file, "errors"); ok {
				edits = append(edits, te)
			}
		}
		result = &ast.CallExpr{
			Fun:  &ast.SelectorExpr{X: ast.NewIdent(qual), Sel: ast.NewIdent("Join")},
			Args: failing,
		}
	}
	body = append(body, &ast.ReturnStmt{Results: []ast.Expr{result}})

	decl := &ast.FuncDecl{
		Recv: &ast.FieldList{List: []*ast.Field{{
			Names: []*ast.Ident{ast.NewIdent(recv)},
			Type:  &ast.StarExpr{X: ast.NewIdent(tn.Name())},
		}}},
		Name: ast.NewIdent("Close"),
		Type: &ast.FuncType{
			Params:  &ast.FieldList{},
			Results: &ast.FieldList{List: []*ast.Field{{Type: ast.NewIdent("error")}}},
		},
		Body: &ast.BlockStmt{List: body},
	}

	te, err := fix.InsertDeclAfter(ctx.Doc.Fset, gd, decl)
	if err != nil {
		return nil
	}
	edits = append(edits, te)

	return []fix.Action{{
		Title:          "Implement Close on " + tn.Name(),
		EquivalenceKey: "implement-close",
		Target:         ts,
		Edits:          edits,
	}}
}

// receiverName reuses the receiver name of an existing method of tn, or
// derives one from the type name.
func receiverName(doc *fix.Document, tn *types.TypeName) string {
	for _, f := range doc.Files {
		for _, decl := range f.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Recv == nil || len(fd.Recv.List) == 0 || len(fd.Recv.List[0].Names) == 0 {
				continue
			}
			name := fd.Recv.List[0].Names[0].Name
			if name == "_" {
				continue
			}
			if obj, ok := doc.Info.Defs[fd.Name].(*types.Func); ok && recvNamed(obj) == tn {
				return name
			}
		}
	}
	r, n := utf8.DecodeRuneInString(tn.Name())
	if n == 0 {
		return "v"
	}
	return symbols.LowerFirst(string(r))
}

func recvNamed(fn *types.Func) *types.TypeName {
	recv := fn.Signature().Recv()
	if recv == nil {
		return nil
	}
	t := recv.Type()
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	if named, ok := t.(*types.Named); ok {
		return named.Obj()
	}
	return nil
}
