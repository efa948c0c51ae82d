// Package internal holds the analysis and code-fix engine of mvvmlint.
//
// # Architecture Overview
//
// The analyzer follows a modular architecture with clear separation of concerns:
//
//	                            +------------------+
//	                            |   analyzer.go    |  Entry point (go/analysis)
//	                            +--------+---------+
//	                                     |
//	              +----------------------+----------------------+
//	              |                      |                      |
//	     +--------v---------+   +--------v---------+   +--------v---------+
//	     |      config      |   |     symbols      |   |      rules       |
//	     |  .mvvmlint.yml   |   |  Snapshot/Units  |   |  built-in rules  |
//	     +------------------+   +--------+---------+   +--------+---------+
//	                                     |                      |
//	                            +--------v---------+            |
//	                            |     dispatch     |<-----------+
//	                            |  pass 1 ∥, End   |
//	                            +--------+---------+
//	                                     |
//	                     +---------------+---------------+
//	                     |                               |
//	            +--------v---------+            +--------v---------+
//	            |  diag (+ignore)  |            |       fix        |
//	            |   Diagnostics    |----------->|  Engine, FixAll  |
//	            +------------------+            +------------------+
//
// Rules are built from a few shared helpers:
//
//	┌──────────────┬────────────────────────────────────────────────────┐
//	│ Package      │ Provides                                           │
//	├──────────────┼────────────────────────────────────────────────────┤
//	│ rule         │ Rule, visitor interfaces, Env, Context             │
//	│ aggregate    │ Set, Map, Multi, Index safe for concurrent Add     │
//	│ typeutil     │ embedding chains, methods, framework resolution    │
//	│ funcspec     │ pkg.Type.Method specs and callee matching          │
//	│ directive    │ //mvvm: attributes and //mvvmlint:ignore           │
//	│ heuristic    │ approximate text matchers                          │
//	│ refs         │ identifier and string literal collection           │
//	│ checktest    │ in-memory verification harness for tests           │
//	└──────────────┴────────────────────────────────────────────────────┘
//
// # Execution Flow
//
//  1. The analyzer loads the configuration and builds a symbols.Snapshot
//     of the package.
//  2. The dispatcher starts every two-pass rule, then visits the units
//     concurrently: types, fields, methods and properties in declaration
//     order, then the subscribed AST nodes in document order.
//  3. After every unit is done, two-pass sessions run End serially.
//  4. Diagnostics are sorted, filtered through ignore directives and
//     reported with the fixes the fix.Engine offers for them.
package internal
