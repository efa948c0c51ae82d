package fix

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/token"
	"go/types"
	"path"
	"strconv"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// ErrNoInsertionPoint is returned by builders that cannot place new code.
var ErrNoInsertionPoint = errors.New("fix: no insertion point")

// Edit is a text edit in the form the host applies.
type Edit = analysis.TextEdit

// Render prints n as formatted Go source.
func Render(fset *token.FileSet, n any) (string, error) {
	var buf bytes.Buffer
	if err := format.Node(&buf, fset, n); err != nil {
		return "", fmt.Errorf("rendering %T: %w", n, err)
	}
	return buf.String(), nil
}

// ReplaceNode replaces old with the rendering of repl.
func ReplaceNode(fset *token.FileSet, old ast.Node, repl any) (analysis.TextEdit, error) {
	text, err := Render(fset, repl)
	if err != nil {
		return analysis.TextEdit{}, err
	}
	return analysis.TextEdit{Pos: old.Pos(), End: old.End(), NewText: []byte(text)}, nil
}

// InsertBefore inserts text at pos.
func InsertBefore(pos token.Pos, text string) analysis.TextEdit {
	return analysis.TextEdit{Pos: pos, End: pos, NewText: []byte(text)}
}

// InsertAfter inserts text right after n.
func InsertAfter(n ast.Node, text string) analysis.TextEdit {
	return analysis.TextEdit{Pos: n.End(), End: n.End(), NewText: []byte(text)}
}

// InsertDeclAfter renders decl and places it after anchor, separated by a
// blank line.
func InsertDeclAfter(fset *token.FileSet, anchor ast.Node, decl ast.Decl) (analysis.TextEdit, error) {
	var (
		text string
		err  error
	)
	if fd, ok := decl.(*ast.FuncDecl); ok && fd.Body != nil {
		text, err = RenderFunc(fset, fd)
	} else {
		text, err = Render(fset, decl)
	}
	if err != nil {
		return analysis.TextEdit{}, err
	}
	return InsertAfter(anchor, "\n\n"+text), nil
}

// RenderFunc renders decl with one body statement per line. Printing a
// constructed body directly may collapse it onto the signature line, since
// the nodes carry no positions.
func RenderFunc(fset *token.FileSet, decl *ast.FuncDecl) (string, error) {
	header := *decl
	header.Body = nil
	text, err := Render(fset, &header)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(text)
	b.WriteString(" {\n")
	for _, stmt := range decl.Body.List {
		s, err := Render(fset, stmt)
		if err != nil {
			return "", err
		}
		b.WriteString("\t")
		b.WriteString(strings.ReplaceAll(s, "\n", "\n\t"))
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String(), nil
}

// DeleteStmt removes stmt. When the statement sits alone on its lines the
// lines go too, so no blank line is left behind.
func DeleteStmt(doc *Document, stmt ast.Stmt) (analysis.TextEdit, error) {
	pos, end := stmt.Pos(), stmt.End()
	tf := doc.Fset.File(pos)
	if tf == nil {
		return analysis.TextEdit{}, ErrNoInsertionPoint
	}
	src, err := doc.Source(tf.Name())
	if err != nil {
		return analysis.TextEdit{}, err
	}

	start, stop := tf.Offset(pos), tf.Offset(end)
	lineStart := start
	for lineStart > 0 && isBlank(src[lineStart-1]) {
		lineStart--
	}
	lineEnd := stop
	for lineEnd < len(src) && isBlank(src[lineEnd]) {
		lineEnd++
	}
	if (lineStart == 0 || src[lineStart-1] == '\n') && (lineEnd == len(src) || src[lineEnd] == '\n') {
		if lineEnd < len(src) {
			lineEnd++
		}
		return analysis.TextEdit{Pos: tf.Pos(lineStart), End: tf.Pos(lineEnd)}, nil
	}

	return analysis.TextEdit{Pos: pos, End: end}, nil
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' }

// Rename renames obj, at its declaration and at every use in the document.
func Rename(doc *Document, obj types.Object, name string) []analysis.TextEdit {
	var edits []analysis.TextEdit
	add := func(id *ast.Ident, o types.Object) {
		if sameObject(o, obj) {
			edits = append(edits, analysis.TextEdit{Pos: id.Pos(), End: id.End(), NewText: []byte(name)})
		}
	}
	for id, o := range doc.Info.Defs {
		add(id, o)
	}
	for id, o := range doc.Info.Uses {
		add(id, o)
	}
	sortEdits(edits)
	return edits
}

func sameObject(o, target types.Object) bool {
	if o == nil {
		return false
	}
	if o == target {
		return true
	}
	switch o := o.(type) {
	case *types.Func:
		return o.Origin() == target
	case *types.Var:
		return o.Origin() == target
	}
	return false
}

// ImportName returns the name under which file imports pkgPath.
func ImportName(file *ast.File, pkgPath string) (string, bool) {
	for _, spec := range file.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil || p != pkgPath {
			continue
		}
		if spec.Name != nil {
			return spec.Name.Name, true
		}
		return path.Base(pkgPath), true
	}
	return "", false
}

// AddImport returns the edit importing pkgPath into file. The existing
// imports are checked by exact path first; when pkgPath is already imported
// the second result is false and no edit is needed.
func AddImport(fset *token.FileSet, file *ast.File, pkgPath string) (analysis.TextEdit, bool) {
	if _, ok := ImportName(file, pkgPath); ok {
		return analysis.TextEdit{}, false
	}
	quoted := strconv.Quote(pkgPath)

	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.IMPORT {
			continue
		}
		if gd.Lparen.IsValid() {
			text := "\t" + quoted + "\n"
			if len(gd.Specs) > 0 && fset.Position(gd.Specs[len(gd.Specs)-1].End()).Line == fset.Position(gd.Rparen).Line {
				text = "\n" + text
			}
			return InsertBefore(gd.Rparen, text), true
		}
		return InsertAfter(gd, "\nimport "+quoted), true
	}

	return InsertAfter(file.Name, "\n\nimport "+quoted), true
}
