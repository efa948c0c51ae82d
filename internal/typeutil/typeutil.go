package typeutil

import (
	"go/types"
	"strings"
)

// UnwrapPointer returns the element type if t is a pointer, otherwise returns t.
func UnwrapPointer(t types.Type) types.Type {
	if ptr, ok := types.Unalias(t).(*types.Pointer); ok {
		return ptr.Elem()
	}

	return t
}

// Named returns the named type behind t, looking through one pointer and
// aliases. It returns nil for unnamed types.
func Named(t types.Type) *types.Named {
	if t == nil {
		return nil
	}
	named, _ := types.Unalias(UnwrapPointer(types.Unalias(t))).(*types.Named)
	return named
}

// IsNamedType checks if the type matches the given package path and type name.
// Package paths match with or without a major version suffix (/v2, /v3, ...).
// It handles pointer types automatically.
func IsNamedType(t types.Type, pkgPath, typeName string) bool {
	named := Named(t)
	if named == nil {
		return false
	}

	obj := named.Obj()
	if obj == nil || obj.Pkg() == nil {
		return false
	}

	return MatchPkg(obj.Pkg().Path(), pkgPath) && obj.Name() == typeName
}

// MatchPkg checks if pkgPath matches targetPkg, allowing version suffixes.
func MatchPkg(pkgPath, targetPkg string) bool {
	if pkgPath == targetPkg {
		return true
	}
	// Check for version suffix like /v2, /v3, etc.
	prefix := targetPkg + "/v"
	if !strings.HasPrefix(pkgPath, prefix) {
		return false
	}
	rest := pkgPath[len(prefix):]
	return len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9'
}

// Struct returns the struct underlying t, or nil.
func Struct(t types.Type) *types.Struct {
	if t == nil {
		return nil
	}
	s, _ := UnwrapPointer(t).Underlying().(*types.Struct)
	return s
}

// EmbeddedChain returns the named types embedded in t, transitively, in
// breadth-first order: direct embeddings first, root-most bases last. Each
// type appears once.
func EmbeddedChain(t types.Type) []*types.Named {
	var chain []*types.Named

	seen := make(map[*types.TypeName]bool)
	if named := Named(t); named != nil {
		seen[named.Obj()] = true
	}

	queue := []types.Type{t}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		st := Struct(cur)
		if st == nil {
			continue
		}

		for i := range st.NumFields() {
			f := st.Field(i)
			if !f.Embedded() {
				continue
			}
			named := Named(f.Type())
			if named == nil || seen[named.Origin().Obj()] {
				continue
			}
			seen[named.Origin().Obj()] = true
			chain = append(chain, named)
			queue = append(queue, named)
		}
	}

	return chain
}

// Embeds reports whether t embeds, directly or transitively, the type
// declared by target. Generic instantiations match their origin.
func Embeds(t types.Type, target *types.TypeName) bool {
	if target == nil {
		return false
	}
	for _, named := range EmbeddedChain(t) {
		if named.Origin().Obj() == target {
			return true
		}
	}
	return false
}

// EmbeddedInstance returns the instantiation of the generic type target that
// t embeds, or nil.
func EmbeddedInstance(t types.Type, target *types.TypeName) *types.Named {
	if target == nil {
		return nil
	}
	for _, named := range EmbeddedChain(t) {
		if named.Origin().Obj() == target {
			return named
		}
	}
	return nil
}

// Method looks up a method by name in the pointer method set of t, including
// promoted methods. It returns nil when there is none.
func Method(t types.Type, name string) *types.Func {
	named := Named(t)
	if named == nil {
		return nil
	}

	obj, _, _ := types.LookupFieldOrMethod(types.NewPointer(named), true, named.Obj().Pkg(), name)
	fn, _ := obj.(*types.Func)
	return fn
}

// PromotedMethod returns the method called name that t inherits from one of
// its embedded types, or nil.
func PromotedMethod(t types.Type, name string) *types.Func {
	for _, named := range EmbeddedChain(t) {
		if fn := Method(named, name); fn != nil {
			return fn
		}
	}
	return nil
}

// Signature returns the signature of fn.
func Signature(fn *types.Func) *types.Signature {
	sig, _ := fn.Type().(*types.Signature)
	return sig
}

// IsError reports whether t is the predeclared error type.
func IsError(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}
