// Package typeutil provides type checking utilities for mvvmlint.
//
// # Overview
//
// This package answers the symbol-level questions rules ask about go/types
// objects: what a type embeds, which methods it has (including promoted
// ones), and where the MVVM framework's well-known types live.
//
// # Base Chains
//
// Go has no inheritance; a type's "base types" are its embedded fields.
// [EmbeddedChain] walks them breadth-first:
//
//	type A struct{ B }
//	type B struct{ mvvm.ViewModelBase }
//
//	EmbeddedChain(A) // [B, mvvm.ViewModelBase]
//
// # Framework Resolution
//
// [ResolveFramework] searches the transitive imports of the analyzed package
// for the framework path. When it is absent the result is nil, and every
// lookup through a nil [*Framework] returns nil:
//
//	fw := typeutil.ResolveFramework(pass.Pkg, "github.com/mpyw/mvvm")
//	base := fw.TypeName(typeutil.ViewModelBase) // nil if not imported
//
// Rules use this to return zero diagnostics instead of failing when a
// well-known type cannot be resolved.
package typeutil
