package fix

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"os"

	"golang.org/x/tools/go/ast/astutil"
)

// Document is the tree snapshot fixes are computed against. Callers must not
// mutate the files while an Engine works on them.
type Document struct {
	Fset  *token.FileSet
	Files []*ast.File
	Pkg   *types.Package
	Info  *types.Info

	// ReadFile returns the source of a file. Defaults to os.ReadFile.
	ReadFile func(name string) ([]byte, error)
}

// File returns the file containing pos, or nil.
func (d *Document) File(pos token.Pos) *ast.File {
	for _, f := range d.Files {
		if f.FileStart <= pos && pos <= f.FileEnd {
			return f
		}
	}
	return nil
}

// Filename returns the name of the file containing pos.
func (d *Document) Filename(pos token.Pos) string {
	return d.Fset.Position(pos).Filename
}

// Source returns the content of the named file.
func (d *Document) Source(name string) ([]byte, error) {
	read := d.ReadFile
	if read == nil {
		read = os.ReadFile
	}
	src, err := read(name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return src, nil
}

// Enclosing returns the innermost node of type T enclosing [pos, end), or
// the zero T when there is none.
func Enclosing[T ast.Node](d *Document, pos, end token.Pos) T {
	var zero T
	file := d.File(pos)
	if file == nil {
		return zero
	}

	path, _ := astutil.PathEnclosingInterval(file, pos, end)
	for _, n := range path {
		if t, ok := n.(T); ok {
			return t
		}
	}
	return zero
}

// Path returns the nodes enclosing [pos, end), innermost first.
func Path(d *Document, pos, end token.Pos) []ast.Node {
	file := d.File(pos)
	if file == nil {
		return nil
	}
	path, _ := astutil.PathEnclosingInterval(file, pos, end)
	return path
}

// ObjectAt returns the object defined or used by the identifier at pos.
func (d *Document) ObjectAt(pos token.Pos) types.Object {
	id := Enclosing[*ast.Ident](d, pos, pos)
	if id == nil || d.Info == nil {
		return nil
	}
	if obj := d.Info.Defs[id]; obj != nil {
		return obj
	}
	return d.Info.Uses[id]
}
