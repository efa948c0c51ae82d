package symbols

import (
	"errors"
	"go/ast"
	"go/token"
	"go/types"
	"sort"
	"strings"
	"sync"

	"github.com/mpyw/mvvmlint/internal/directive/attr"
	"github.com/mpyw/mvvmlint/internal/heuristic"
	"github.com/mpyw/mvvmlint/internal/typeutil"
)

// ErrNoTypesInfo is returned by Build when the package has no type
// information to project.
var ErrNoTypesInfo = errors.New("symbols: missing type information")

// Snapshot is the read-only view of one analyzed package. It is fully built
// by Build and never mutated afterwards, so any number of goroutines may
// query it.
type Snapshot struct {
	Fset *token.FileSet
	Pkg  *types.Package
	Info *types.Info

	units []*Unit
	types []*TypeSymbol
	byObj map[*types.TypeName]*TypeSymbol

	text sync.Map // ast.Node -> string
}

// Build projects the package into a Snapshot.
func Build(fset *token.FileSet, files []*ast.File, pkg *types.Package, info *types.Info) (*Snapshot, error) {
	if fset == nil || pkg == nil || info == nil || info.Defs == nil {
		return nil, ErrNoTypesInfo
	}

	s := &Snapshot{
		Fset:  fset,
		Pkg:   pkg,
		Info:  info,
		byObj: make(map[*types.TypeName]*TypeSymbol),
	}

	for _, file := range files {
		if file == nil {
			continue
		}
		u := &Unit{
			Filename:  fset.Position(file.Package).Filename,
			File:      file,
			Generated: ast.IsGenerated(file),
		}
		s.units = append(s.units, u)
		s.collectTypes(u)
	}

	// Methods may live in a different file than their receiver type, so they
	// are attached only after every type is known.
	for _, u := range s.units {
		s.collectMethods(u)
	}

	for _, t := range s.types {
		t.Properties = buildProperties(t)
		for _, p := range t.Properties {
			p.Unit.Properties = append(p.Unit.Properties, p)
		}
	}
	for _, u := range s.units {
		sort.SliceStable(u.Properties, func(i, j int) bool {
			return u.Properties[i].Node().Pos() < u.Properties[j].Node().Pos()
		})
	}

	return s, nil
}

func (s *Snapshot) collectTypes(u *Unit) {
	for _, decl := range u.File.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}

		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			tn, _ := s.Info.Defs[ts.Name].(*types.TypeName)
			if tn == nil || tn.IsAlias() {
				continue
			}

			t := &TypeSymbol{
				Name:  ts.Name.Name,
				Obj:   tn,
				Spec:  ts,
				Decl:  gd,
				Unit:  u,
				Attrs: typeAttrs(gd, ts),
				bases: typeutil.EmbeddedChain(tn.Type()),
			}
			t.Fields = collectFields(t)

			s.types = append(s.types, t)
			s.byObj[tn] = t
			u.Types = append(u.Types, t)
			u.Fields = append(u.Fields, t.Fields...)
		}
	}
}

// typeAttrs returns the directives on a type. The GenDecl doc belongs to the
// spec only when the declaration is not parenthesized.
func typeAttrs(gd *ast.GenDecl, ts *ast.TypeSpec) []attr.Attr {
	if gd.Lparen.IsValid() {
		return attr.Parse(ts.Doc, ts.Comment)
	}
	return attr.Parse(gd.Doc, ts.Doc, ts.Comment)
}

func collectFields(t *TypeSymbol) []*FieldSymbol {
	st, ok := t.Spec.Type.(*ast.StructType)
	if !ok || st.Fields == nil {
		return nil
	}
	tst, ok := t.Obj.Type().Underlying().(*types.Struct)
	if !ok {
		return nil
	}

	var fields []*FieldSymbol
	i := 0
	for _, f := range st.Fields.List {
		attrs := attr.Parse(f.Doc, f.Comment)

		if len(f.Names) == 0 {
			if i >= tst.NumFields() {
				break
			}
			v := tst.Field(i)
			i++
			fields = append(fields, &FieldSymbol{
				Name:     v.Name(),
				Obj:      v,
				Field:    f,
				Ident:    embeddedIdent(f.Type),
				Owner:    t,
				Unit:     t.Unit,
				Attrs:    attrs,
				Embedded: true,
			})
			continue
		}

		for _, name := range f.Names {
			if i >= tst.NumFields() {
				break
			}
			v := tst.Field(i)
			i++
			fields = append(fields, &FieldSymbol{
				Name:  name.Name,
				Obj:   v,
				Field: f,
				Ident: name,
				Owner: t,
				Unit:  t.Unit,
				Attrs: attrs,
			})
		}
	}

	return fields
}

// embeddedIdent returns the identifier naming an embedded field's type.
func embeddedIdent(expr ast.Expr) *ast.Ident {
	for {
		switch e := expr.(type) {
		case *ast.Ident:
			return e
		case *ast.StarExpr:
			expr = e.X
		case *ast.SelectorExpr:
			return e.Sel
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.ParenExpr:
			expr = e.X
		default:
			return nil
		}
	}
}

func (s *Snapshot) collectMethods(u *Unit) {
	for _, decl := range u.File.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Recv == nil {
			continue
		}
		fn, _ := s.Info.Defs[fd.Name].(*types.Func)
		if fn == nil {
			continue
		}
		sig := typeutil.Signature(fn)
		if sig == nil || sig.Recv() == nil {
			continue
		}
		named := typeutil.Named(sig.Recv().Type())
		if named == nil {
			continue
		}
		recv := s.byObj[named.Origin().Obj()]
		if recv == nil {
			continue
		}

		m := &MethodSymbol{
			Name:     fd.Name.Name,
			Obj:      fn,
			Decl:     fd,
			Unit:     u,
			Receiver: recv,
			Attrs:    attr.Parse(fd.Doc),
		}
		recv.Methods = append(recv.Methods, m)
		u.Methods = append(u.Methods, m)
	}
}

// Methods that look like getters but are interface conventions.
var notProperties = map[string]bool{
	"String":   true,
	"GoString": true,
	"Error":    true,
}

func buildProperties(t *TypeSymbol) []*PropertySymbol {
	var props []*PropertySymbol
	seen := make(map[string]bool)

	add := func(p *PropertySymbol) {
		seen[p.Name] = true
		props = append(props, p)
	}

	for _, m := range t.Methods {
		switch {
		case m.IsGetter() && !notProperties[m.Name]:
			if seen[m.Name] {
				continue
			}
			p := &PropertySymbol{Name: m.Name, Owner: t, Getter: m, Unit: m.Unit}
			if setter := t.Method("Set" + m.Name); setter != nil && setter.IsSetter() {
				p.Setter = setter
			}
			p.Field = t.Field(LowerFirst(m.Name))
			add(p)
		case m.IsSetter():
			name := setterProperty(m.Name)
			if seen[name] {
				continue
			}
			if getter := t.Method(name); getter != nil && getter.IsGetter() {
				// Registered with the getter.
				continue
			}
			add(&PropertySymbol{Name: name, Owner: t, Setter: m, Field: t.Field(LowerFirst(name)), Unit: m.Unit})
		}
	}

	for _, f := range t.Fields {
		if !f.IsObservable() || f.Embedded {
			continue
		}
		name := UpperFirst(f.Name)
		if p := findProperty(props, name); p != nil {
			p.Field = f
			continue
		}
		add(&PropertySymbol{Name: name, Owner: t, Field: f, Unit: f.Unit})
	}

	sort.SliceStable(props, func(i, j int) bool {
		return props[i].Node().Pos() < props[j].Node().Pos()
	})

	return props
}

func findProperty(props []*PropertySymbol, name string) *PropertySymbol {
	for _, p := range props {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Units returns the compilation units in file order.
func (s *Snapshot) Units() []*Unit { return s.units }

// Types returns every declared named type in declaration order.
func (s *Snapshot) Types() []*TypeSymbol { return s.types }

// Type returns the symbol for obj, or nil when obj is not declared in this
// package.
func (s *Snapshot) Type(obj *types.TypeName) *TypeSymbol {
	if obj == nil {
		return nil
	}
	return s.byObj[obj]
}

// TypeOf returns the symbol for the named type behind t, or nil.
func (s *Snapshot) TypeOf(t types.Type) *TypeSymbol {
	named := typeutil.Named(t)
	if named == nil {
		return nil
	}
	return s.Type(named.Origin().Obj())
}

// Lookup returns the declared type called name, or nil.
func (s *Snapshot) Lookup(name string) *TypeSymbol {
	tn, _ := s.Pkg.Scope().Lookup(name).(*types.TypeName)
	return s.Type(tn)
}

// UnitOf returns the unit containing pos, or nil.
func (s *Snapshot) UnitOf(pos token.Pos) *Unit {
	for _, u := range s.units {
		if u.File.FileStart <= pos && pos <= u.File.FileEnd {
			return u
		}
	}
	return nil
}

// DeclaringText returns n rendered as source. Results are memoized per node.
func (s *Snapshot) DeclaringText(n ast.Node) string {
	if n == nil {
		return ""
	}
	if v, ok := s.text.Load(n); ok {
		return v.(string)
	}
	text := heuristic.Render(s.Fset, n)
	v, _ := s.text.LoadOrStore(n, text)
	return v.(string)
}

// TypeText returns the rendered declaration of t followed by the rendered
// declarations of its methods.
func (s *Snapshot) TypeText(t *TypeSymbol) string {
	var b strings.Builder
	b.WriteString(s.DeclaringText(t.Spec))
	for _, m := range t.Methods {
		b.WriteByte('\n')
		b.WriteString(s.DeclaringText(m.Decl))
	}
	return b.String()
}
