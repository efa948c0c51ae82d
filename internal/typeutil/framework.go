package typeutil

import "go/types"

// Well-known framework type names.
const (
	ViewModelBase          = "ViewModelBase"
	ObservableObject       = "ObservableObject"
	RecipientViewModelBase = "RecipientViewModelBase"
	View                   = "View"
	Navigator              = "Navigator"
)

// Framework is the MVVM framework package as seen from the analyzed package.
// A nil *Framework means the package does not use the framework; every lookup
// on it returns nil so callers can treat the rule as not applicable.
type Framework struct {
	pkg *types.Package
}

// ResolveFramework finds the framework package among the transitive imports
// of pkg. It returns nil when the framework is not imported, or when pkg is the
// framework itself.
func ResolveFramework(pkg *types.Package, path string) *Framework {
	if pkg == nil || path == "" || MatchPkg(pkg.Path(), path) {
		return nil
	}

	seen := make(map[*types.Package]bool)
	queue := []*types.Package{pkg}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, imp := range cur.Imports() {
			if seen[imp] {
				continue
			}
			seen[imp] = true
			if MatchPkg(imp.Path(), path) {
				return &Framework{pkg: imp}
			}
			queue = append(queue, imp)
		}
	}

	return nil
}

// Package returns the framework package, or nil.
func (f *Framework) Package() *types.Package {
	if f == nil {
		return nil
	}
	return f.pkg
}

// Path returns the framework import path, or "".
func (f *Framework) Path() string {
	if f == nil {
		return ""
	}
	return f.pkg.Path()
}

// Name returns the framework package name, or "".
func (f *Framework) Name() string {
	if f == nil {
		return ""
	}
	return f.pkg.Name()
}

// TypeName returns the framework type called name, or nil when the
// framework or the type is missing.
func (f *Framework) TypeName(name string) *types.TypeName {
	if f == nil {
		return nil
	}
	tn, _ := f.pkg.Scope().Lookup(name).(*types.TypeName)
	return tn
}

// Func returns the package-level framework function called name, or nil.
func (f *Framework) Func(name string) *types.Func {
	if f == nil {
		return nil
	}
	fn, _ := f.pkg.Scope().Lookup(name).(*types.Func)
	return fn
}

// EmbedsAny reports whether t embeds any of the named framework types.
func (f *Framework) EmbedsAny(t types.Type, names ...string) bool {
	for _, name := range names {
		if Embeds(t, f.TypeName(name)) {
			return true
		}
	}
	return false
}

// ViewModelOf returns the view-model type argument of the View[VM] that t
// embeds, or nil when t is not a view.
func (f *Framework) ViewModelOf(t types.Type) types.Type {
	inst := EmbeddedInstance(t, f.TypeName(View))
	if inst == nil || inst.TypeArgs().Len() == 0 {
		return nil
	}
	return inst.TypeArgs().At(0)
}
