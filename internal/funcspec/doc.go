// Package funcspec provides function specification parsing and matching.
//
// # Overview
//
// This package parses function specifications from configuration values and
// provides matching against types.Func objects. Rules use it for precise,
// symbol-resolved call matching (navigation APIs, resource release methods).
//
// # Specification Format
//
// A function specification has the format:
//
//	pkg/path.FuncName           # Package-level function
//	pkg/path.TypeName.Method    # Method on type
//
// Examples:
//
//	github.com/mpyw/mvvm.Navigator.NavigateToKey
//	github.com/mpyw/mvvm.NavigateTo
//	time.Ticker.Stop
//
// # Parsing
//
// Use [Parse] to create a Spec from a string:
//
//	spec := funcspec.Parse("github.com/mpyw/mvvm.Navigator.NavigateToKey")
//	// spec.PkgPath  = "github.com/mpyw/mvvm"
//	// spec.TypeName = "Navigator"
//	// spec.FuncName = "NavigateToKey"
//
// # Matching
//
// Use [Spec.Matches] to check if a types.Func matches. Package paths match
// with or without a major version suffix, and generic receivers match their
// origin type:
//
//	fn := funcspec.ExtractFunc(pass.TypesInfo, call)
//	if spec.Matches(fn) {
//	    // Call matches the specification
//	}
//
// [ExtractFunc] handles plain calls, method calls through selections, and
// explicitly instantiated generic calls such as mvvm.NavigateTo[VM](nav).
// [TypeArgs] returns the instantiation's type arguments.
package funcspec
