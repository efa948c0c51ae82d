// Package rule defines the rule contract: what a rule subscribes to, and the
// context it reports through.
package rule

import (
	"go/ast"

	"github.com/mpyw/mvvmlint/internal/diag"
	"github.com/mpyw/mvvmlint/internal/symbols"
)

// Rule is one unit of detection logic. A rule implements at least one of the
// visitor interfaces below, or Compilation.
type Rule interface {
	Name() string
	Descriptors() []*diag.Descriptor
}

// TypeVisitor is called once per declared named type.
type TypeVisitor interface {
	CheckType(ctx *Context, t *symbols.TypeSymbol)
}

// MethodVisitor is called once per declared method.
type MethodVisitor interface {
	CheckMethod(ctx *Context, m *symbols.MethodSymbol)
}

// PropertyVisitor is called once per property.
type PropertyVisitor interface {
	CheckProperty(ctx *Context, p *symbols.PropertySymbol)
}

// FieldVisitor is called once per struct field.
type FieldVisitor interface {
	CheckField(ctx *Context, f *symbols.FieldSymbol)
}

// NodeVisitor is called for every node whose type appears in NodeFilter, in
// document order. stack holds the path from the file to n, n included.
type NodeVisitor interface {
	NodeFilter() []ast.Node
	CheckNode(ctx *Context, n ast.Node, stack []ast.Node)
}

// Compilation is a two-pass rule. Start runs once before any unit is
// visited and returns the session that collects state during the first pass.
// A nil session means the rule does not apply to this package.
type Compilation interface {
	Start(env *Env) Session
}

// Session is the per-run state of a Compilation rule. The session may also
// implement any visitor interface to join the first pass. End runs once,
// after every unit has been visited.
type Session interface {
	End(ctx *Context)
}

// Kind tags the triggers a visitor subscribes to.
type Kind int

const (
	KindType Kind = iota
	KindMethod
	KindProperty
	KindField
	KindNode
	KindCompilation
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindMethod:
		return "method"
	case KindProperty:
		return "property"
	case KindField:
		return "field"
	case KindNode:
		return "node"
	case KindCompilation:
		return "compilation"
	}
	return "unknown"
}

// Kinds returns every trigger v subscribes to, in Kind order.
func Kinds(v any) []Kind {
	var kinds []Kind
	if _, ok := v.(TypeVisitor); ok {
		kinds = append(kinds, KindType)
	}
	if _, ok := v.(MethodVisitor); ok {
		kinds = append(kinds, KindMethod)
	}
	if _, ok := v.(PropertyVisitor); ok {
		kinds = append(kinds, KindProperty)
	}
	if _, ok := v.(FieldVisitor); ok {
		kinds = append(kinds, KindField)
	}
	if nv, ok := v.(NodeVisitor); ok && len(nv.NodeFilter()) > 0 {
		kinds = append(kinds, KindNode)
	}
	if _, ok := v.(Compilation); ok {
		kinds = append(kinds, KindCompilation)
	}
	return kinds
}
