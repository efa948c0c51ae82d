// Package symbols builds the read-only projection of an analyzed package
// that every rule queries.
//
// A Snapshot is built once per analysis pass, arena style: all symbols are
// created and indexed up front, then only read.
//
//	Build(fset, files, pkg, info)
//	       │
//	       ├── Unit per file ── Types, Methods, Fields, Properties (declaration order)
//	       ├── TypeSymbol ───── Bases() (embedded chain, root-most last), Attrs
//	       └── DeclaringText ── rendered source for heuristic matchers
package symbols
