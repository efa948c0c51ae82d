package symbols

import (
	"go/ast"
	"go/types"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mpyw/mvvmlint/internal/directive/attr"
	"github.com/mpyw/mvvmlint/internal/typeutil"
)

// Unit is one compilation unit: a source file and what it declares.
type Unit struct {
	Filename  string
	File      *ast.File
	Generated bool

	// Symbols declared in this file, each list in declaration order.
	Types      []*TypeSymbol
	Methods    []*MethodSymbol
	Fields     []*FieldSymbol
	Properties []*PropertySymbol
}

// TypeSymbol is a named type declared in the package.
type TypeSymbol struct {
	Name  string
	Obj   *types.TypeName
	Spec  *ast.TypeSpec
	Decl  *ast.GenDecl
	Unit  *Unit
	Attrs []attr.Attr

	// Methods are the methods declared on the type, in any file of the package.
	Methods    []*MethodSymbol
	Fields     []*FieldSymbol
	Properties []*PropertySymbol

	bases []*types.Named
}

// Type returns the declared type.
func (t *TypeSymbol) Type() types.Type { return t.Obj.Type() }

// Bases returns the embedded-type chain, breadth-first, root-most last.
func (t *TypeSymbol) Bases() []*types.Named { return t.bases }

// IsInterface reports whether the type is an interface.
func (t *TypeSymbol) IsInterface() bool { return types.IsInterface(t.Obj.Type()) }

// IsStruct reports whether the type is a struct.
func (t *TypeSymbol) IsStruct() bool {
	_, ok := t.Obj.Type().Underlying().(*types.Struct)
	return ok
}

// IsAbstract reports whether the type is deliberately incomplete: an
// interface, or a type marked //mvvm:abstract.
func (t *TypeSymbol) IsAbstract() bool {
	return t.IsInterface() || attr.Has(t.Attrs, attr.Abstract)
}

// IsExported reports whether the type name is exported.
func (t *TypeSymbol) IsExported() bool { return ast.IsExported(t.Name) }

// Method returns the method declared on t called name, or nil.
func (t *TypeSymbol) Method(name string) *MethodSymbol {
	for _, m := range t.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Field returns the field of t called name, or nil.
func (t *TypeSymbol) Field(name string) *FieldSymbol {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Property returns the property of t called name, or nil.
func (t *TypeSymbol) Property(name string) *PropertySymbol {
	for _, p := range t.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// MethodSymbol is a method declared in the package.
type MethodSymbol struct {
	Name     string
	Obj      *types.Func
	Decl     *ast.FuncDecl
	Unit     *Unit
	Receiver *TypeSymbol
	Attrs    []attr.Attr
}

// Signature returns the method signature.
func (m *MethodSymbol) Signature() *types.Signature { return typeutil.Signature(m.Obj) }

// IsExported reports whether the method is exported.
func (m *MethodSymbol) IsExported() bool { return ast.IsExported(m.Name) }

// IsOverride reports whether the method shadows one promoted from an
// embedded type.
func (m *MethodSymbol) IsOverride() bool {
	return m.Receiver != nil && typeutil.PromotedMethod(m.Receiver.Type(), m.Name) != nil
}

// ReturnsVoidLike reports whether the method has no results or only an error.
func (m *MethodSymbol) ReturnsVoidLike() bool {
	res := m.Signature().Results()
	switch res.Len() {
	case 0:
		return true
	case 1:
		return typeutil.IsError(res.At(0).Type())
	}
	return false
}

// IsGetter reports whether the method has the shape X() T with T not error.
func (m *MethodSymbol) IsGetter() bool {
	sig := m.Signature()
	if sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return false
	}
	return !typeutil.IsError(sig.Results().At(0).Type())
}

// IsSetter reports whether the method has the shape SetX(v) or
// SetX(v) error.
func (m *MethodSymbol) IsSetter() bool {
	if setterProperty(m.Name) == "" {
		return false
	}
	return m.Signature().Params().Len() == 1 && m.ReturnsVoidLike()
}

// IsAccessor reports whether the method is a property getter or setter.
func (m *MethodSymbol) IsAccessor() bool { return m.IsGetter() || m.IsSetter() }

// FieldSymbol is a struct field of a declared type. Fields declared together
// (a, b int) get one symbol each and share the ast.Field.
type FieldSymbol struct {
	Name     string
	Obj      *types.Var
	Field    *ast.Field
	Ident    *ast.Ident
	Owner    *TypeSymbol
	Unit     *Unit
	Attrs    []attr.Attr
	Embedded bool
}

// IsExported reports whether the field is exported.
func (f *FieldSymbol) IsExported() bool { return ast.IsExported(f.Name) }

// IsObservable reports whether the field is marked //mvvm:observable.
func (f *FieldSymbol) IsObservable() bool {
	return attr.Has(f.Attrs, attr.Observable, attr.ObservableShort)
}

// PropertySymbol is a property of a declared type. A property is a getter
// method, an optional SetX setter, and an optional backing field; an
// observable field alone also defines a property named after it.
type PropertySymbol struct {
	Name   string
	Owner  *TypeSymbol
	Getter *MethodSymbol
	Setter *MethodSymbol
	Field  *FieldSymbol
	Unit   *Unit
}

// Observable reports whether the property is generated from an observable
// field.
func (p *PropertySymbol) Observable() bool {
	return p.Field != nil && p.Field.IsObservable()
}

// Computed reports whether the property is getter-only and not backed by an
// observable field.
func (p *PropertySymbol) Computed() bool {
	return p.Getter != nil && p.Setter == nil && !p.Observable()
}

// Node returns the declaration that defines the property.
func (p *PropertySymbol) Node() ast.Node {
	switch {
	case p.Getter != nil:
		return p.Getter.Decl
	case p.Setter != nil:
		return p.Setter.Decl
	case p.Field != nil:
		return p.Field.Field
	}
	return nil
}

// setterProperty returns X for a method named SetX, or "".
func setterProperty(name string) string {
	rest, ok := strings.CutPrefix(name, "Set")
	if !ok || rest == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(rest)
	if !unicode.IsUpper(r) {
		return ""
	}
	return rest
}

// UpperFirst returns s with its first letter upper-cased.
func UpperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

// LowerFirst returns s with its first letter lower-cased.
func LowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}
