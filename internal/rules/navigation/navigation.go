// Package navigation cross-checks declared view-model keys against the
// navigation calls of the package.
//
// The rule runs in two passes. While the dispatcher walks the units it
// collects key declarations, routable view-models and navigation call sites;
// once every unit is done it reports:
//
//	┌───────────────────────────┬──────────────────────────────────────────┐
//	│ duplicate-viewmodel-key   │ two view-models declare the same key     │
//	│ unused-viewmodel-key      │ a declared key is never navigated to     │
//	│ navigation-unknown-key    │ a call names a key nobody declares       │
//	│ navigation-unknown-target │ a call targets a view-model with no key  │
//	│                           │ and no view                              │
//	└───────────────────────────┴──────────────────────────────────────────┘
//
// Keys and routable types of imported packages arrive as a KeysFact.
package navigation

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"sort"

	"github.com/mpyw/mvvmlint/internal/aggregate"
	"github.com/mpyw/mvvmlint/internal/diag"
	"github.com/mpyw/mvvmlint/internal/directive/attr"
	"github.com/mpyw/mvvmlint/internal/funcspec"
	"github.com/mpyw/mvvmlint/internal/rule"
	"github.com/mpyw/mvvmlint/internal/symbols"
	"github.com/mpyw/mvvmlint/internal/typeutil"
)

// Rule is the navigation registry rule.
type Rule struct{}

// New creates the rule.
func New() *Rule {
	return &Rule{}
}

func (r *Rule) Name() string { return "navigation" }

func (r *Rule) Descriptors() []*diag.Descriptor {
	return []*diag.Descriptor{
		diag.UnusedViewModelKey,
		diag.NavigationUnknownKey,
		diag.NavigationUnknownTarget,
		diag.DuplicateViewModelKey,
	}
}

// Start implements rule.Compilation.
func (r *Rule) Start(env *rule.Env) rule.Session {
	if env.Framework == nil {
		return nil
	}

	s := &session{
		env:       env,
		keyFuncs:  funcspec.ParseList(env.Config.KeyFuncs()),
		typeFuncs: funcspec.ParseList(env.Config.TypeFuncs()),
		imported:  make(map[*types.Package]*KeysFact),
	}
	s.importFacts()
	return s
}

// keyDecl is one //mvvm:key argument.
type keyDecl struct {
	Key      string
	Type     *symbols.TypeSymbol
	Pos, End token.Pos
}

type session struct {
	env       *rule.Env
	keyFuncs  []funcspec.Spec
	typeFuncs []funcspec.Spec

	// imported holds the facts of every imported package that has one.
	imported map[*types.Package]*KeysFact

	keys     aggregate.Multi[string, keyDecl]
	routable aggregate.Set[*types.TypeName]
	keyUses  aggregate.Multi[string, ast.Expr]
	typeUses aggregate.Multi[*types.TypeName, *ast.CallExpr]
}

func (s *session) importFacts() {
	if s.env.Facts == nil {
		return
	}

	seen := make(map[*types.Package]bool)
	queue := append([]*types.Package(nil), s.env.Pkg.Imports()...)
	for len(queue) > 0 {
		pkg := queue[0]
		queue = queue[1:]
		if seen[pkg] {
			continue
		}
		seen[pkg] = true

		fact := new(KeysFact)
		if s.env.Facts.ImportPackageFact(pkg, fact) {
			s.imported[pkg] = fact
		}
		queue = append(queue, pkg.Imports()...)
	}
}

// CheckType collects key declarations and routable view-models.
func (s *session) CheckType(_ *rule.Context, t *symbols.TypeSymbol) {
	if vm := s.env.Framework.ViewModelOf(t.Type()); vm != nil {
		if named := typeutil.Named(vm); named != nil {
			s.routable.Add(named.Origin().Obj())
		}
	}

	for _, a := range t.Attrs {
		if !attr.Matches(a, attr.Key) && !attr.Matches(a, attr.ViewModelKeyAlias) {
			continue
		}
		for _, key := range a.Args {
			s.keys.Add(key, keyDecl{Key: key, Type: t, Pos: a.Pos, End: a.End})
		}
		if len(a.Args) > 0 {
			s.routable.Add(t.Obj)
		}
	}
}

func (s *session) NodeFilter() []ast.Node {
	return []ast.Node{(*ast.CallExpr)(nil)}
}

// CheckNode collects navigation call sites.
func (s *session) CheckNode(_ *rule.Context, n ast.Node, _ []ast.Node) {
	call := n.(*ast.CallExpr)
	fn := funcspec.ExtractFunc(s.env.Info, call)
	if fn == nil {
		return
	}

	switch {
	case funcspec.MatchesAny(s.keyFuncs, fn):
		if arg, key, ok := s.keyArg(call); ok {
			s.keyUses.Add(key, arg)
		}
	case funcspec.MatchesAny(s.typeFuncs, fn):
		if target := s.target(call); target != nil {
			s.typeUses.Add(target, call)
		}
	}
}

// keyArg returns the first constant string argument of call. Calls with a
// computed key cannot be checked.
func (s *session) keyArg(call *ast.CallExpr) (ast.Expr, string, bool) {
	for _, arg := range call.Args {
		tv, ok := s.env.Info.Types[arg]
		if ok && tv.Value != nil && tv.Value.Kind() == constant.String {
			return arg, constant.StringVal(tv.Value), true
		}
	}
	return nil, "", false
}

// target returns the view-model a type navigation call goes to: its first
// type argument, or else its first argument that is not the navigator or a
// string.
func (s *session) target(call *ast.CallExpr) *types.TypeName {
	var t types.Type
	if targs := funcspec.TypeArgs(s.env.Info, call); targs != nil && targs.Len() > 0 {
		t = targs.At(0)
	} else {
		nav := s.env.Framework.TypeName(typeutil.Navigator)
		for _, arg := range call.Args {
			at := s.env.Info.TypeOf(arg)
			if at == nil || isString(at) {
				continue
			}
			if named := typeutil.Named(at); named != nil && named.Obj() == nav {
				continue
			}
			t = at
			break
		}
	}

	named := typeutil.Named(t)
	if named == nil || types.IsInterface(named) {
		return nil
	}
	return named.Origin().Obj()
}

func isString(t types.Type) bool {
	b, ok := t.Underlying().(*types.Basic)
	return ok && b.Info()&types.IsString != 0
}

// End reports, now that every unit has been collected.
func (s *session) End(ctx *rule.Context) {
	declared := make(map[string][]keyDecl)
	s.keys.Range(func(key string, decls []keyDecl) bool {
		sort.Slice(decls, func(i, j int) bool { return decls[i].Pos < decls[j].Pos })
		declared[key] = decls
		return true
	})

	for key, decls := range declared {
		first := decls[0]
		for _, d := range decls[1:] {
			ctx.ReportRange(diag.DuplicateViewModelKey, d.Pos, d.End, key, first.Type.Name, d.Type.Name)
		}

		if s.keyUses.Count(key) > 0 {
			continue
		}
		for _, d := range decls {
			if s.typeUses.Count(d.Type.Obj) == 0 {
				ctx.ReportRange(diag.UnusedViewModelKey, d.Pos, d.End, key)
			}
		}
	}

	s.keyUses.Range(func(key string, uses []ast.Expr) bool {
		if _, ok := declared[key]; ok || s.importedKey(key) {
			return true
		}
		for _, use := range uses {
			ctx.Report(diag.NavigationUnknownKey, use, key)
		}
		return true
	})

	s.typeUses.Range(func(tn *types.TypeName, calls []*ast.CallExpr) bool {
		if s.isRoutable(tn) {
			return true
		}
		name := types.TypeString(tn.Type(), s.qualifier)
		for _, call := range calls {
			ctx.Report(diag.NavigationUnknownTarget, call, name)
		}
		return true
	})

	s.exportFact(declared)
}

// qualifier names types of other packages by package name.
func (s *session) qualifier(pkg *types.Package) string {
	if pkg == s.env.Pkg {
		return ""
	}
	return pkg.Name()
}

func (s *session) importedKey(key string) bool {
	for _, fact := range s.imported {
		if fact.HasKey(key) {
			return true
		}
	}
	return false
}

// isRoutable reports whether navigating to tn can resolve. Types from
// packages that exported no fact are assumed routable.
func (s *session) isRoutable(tn *types.TypeName) bool {
	if tn.Pkg() == s.env.Pkg {
		return s.routable.Has(tn)
	}
	fact, ok := s.imported[tn.Pkg()]
	return !ok || fact.IsRoutable(tn.Name())
}

func (s *session) exportFact(declared map[string][]keyDecl) {
	if s.env.Facts == nil {
		return
	}

	fact := &KeysFact{}
	for key := range declared {
		fact.Keys = append(fact.Keys, key)
	}
	s.routable.Range(func(tn *types.TypeName) bool {
		fact.Routable = append(fact.Routable, tn.Name())
		return true
	})
	sort.Strings(fact.Keys)
	sort.Strings(fact.Routable)

	s.env.Facts.ExportPackageFact(fact)
}
