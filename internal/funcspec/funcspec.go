package funcspec

import (
	"go/ast"
	"go/types"
	"strings"
	"unicode"

	"github.com/mpyw/mvvmlint/internal/typeutil"
)

// Spec holds parsed components of a function specification.
// Format: "pkg/path.Func" or "pkg/path.Type.Method".
type Spec struct {
	PkgPath  string
	TypeName string // empty for package-level functions
	FuncName string
}

// Parse parses a single function specification string into components.
// Format: "pkg/path.Func" or "pkg/path.Type.Method".
func Parse(s string) Spec {
	spec := Spec{}

	lastDot := strings.LastIndex(s, ".")
	if lastDot == -1 {
		spec.FuncName = s

		return spec
	}

	spec.FuncName = s[lastDot+1:]
	prefix := s[:lastDot]

	// Check if there's another dot (indicating Type.Method)
	// Type names start with uppercase in Go.
	secondLastDot := strings.LastIndex(prefix, ".")
	if secondLastDot != -1 && secondLastDot > strings.LastIndex(prefix, "/") {
		possibleType := prefix[secondLastDot+1:]
		if len(possibleType) > 0 && unicode.IsUpper(rune(possibleType[0])) {
			spec.TypeName = possibleType
			spec.PkgPath = prefix[:secondLastDot]

			return spec
		}
	}

	spec.PkgPath = prefix

	return spec
}

// ParseList parses a list of specifications, skipping blank entries.
func ParseList(ss []string) []Spec {
	specs := make([]Spec, 0, len(ss))
	for _, s := range ss {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		specs = append(specs, Parse(s))
	}
	return specs
}

// FullName returns a short display name such as "mvvm.Navigator.NavigateToKey".
func (s Spec) FullName() string {
	pkg := s.PkgPath
	if idx := strings.LastIndex(pkg, "/"); idx >= 0 {
		pkg = pkg[idx+1:]
	}

	parts := make([]string, 0, 3)
	if pkg != "" {
		parts = append(parts, pkg)
	}
	if s.TypeName != "" {
		parts = append(parts, s.TypeName)
	}
	parts = append(parts, s.FuncName)

	return strings.Join(parts, ".")
}

// Matches checks if a types.Func matches this specification.
func (s Spec) Matches(fn *types.Func) bool {
	if fn == nil || fn.Name() != s.FuncName {
		return false
	}

	pkg := fn.Pkg()
	if pkg == nil || !typeutil.MatchPkg(pkg.Path(), s.PkgPath) {
		return false
	}

	// Check if it's a method
	sig := typeutil.Signature(fn)
	if sig == nil {
		return false
	}
	recv := sig.Recv()

	if s.TypeName == "" {
		// Package-level function: should have no receiver
		return recv == nil
	}

	// Method: should have receiver of correct type
	if recv == nil {
		return false
	}

	named := typeutil.Named(recv.Type())
	if named == nil {
		return false
	}

	return named.Origin().Obj().Name() == s.TypeName
}

// MatchesAny reports whether fn matches one of specs.
func MatchesAny(specs []Spec, fn *types.Func) bool {
	for _, spec := range specs {
		if spec.Matches(fn) {
			return true
		}
	}
	return false
}

// Callee returns the identifier naming the called function, looking through
// explicit generic instantiation (f[T](...)). It returns nil for calls of
// function values that are not plain or selected names.
func Callee(call *ast.CallExpr) *ast.Ident {
	fun := ast.Unparen(call.Fun)

	switch f := fun.(type) {
	case *ast.IndexExpr:
		fun = f.X
	case *ast.IndexListExpr:
		fun = f.X
	}

	switch f := fun.(type) {
	case *ast.Ident:
		return f
	case *ast.SelectorExpr:
		return f.Sel
	}

	return nil
}

// ExtractFunc extracts the types.Func from a call expression.
// Returns nil if the callee cannot be determined statically.
// For generic functions the uninstantiated declaration is returned.
func ExtractFunc(info *types.Info, call *ast.CallExpr) *types.Func {
	id := Callee(call)
	if id == nil {
		return nil
	}

	if sel, ok := ast.Unparen(call.Fun).(*ast.SelectorExpr); ok {
		if selection := info.Selections[sel]; selection != nil {
			f, _ := selection.Obj().(*types.Func)
			return originOf(f)
		}
	}

	f, _ := info.ObjectOf(id).(*types.Func)
	return originOf(f)
}

func originOf(f *types.Func) *types.Func {
	if f == nil {
		return nil
	}
	return f.Origin()
}

// TypeArgs returns the type arguments the callee of call was instantiated
// with, or nil when the callee is not generic.
func TypeArgs(info *types.Info, call *ast.CallExpr) *types.TypeList {
	id := Callee(call)
	if id == nil {
		return nil
	}
	inst, ok := info.Instances[id]
	if !ok {
		return nil
	}
	return inst.TypeArgs
}
