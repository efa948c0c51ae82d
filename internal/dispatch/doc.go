// Package dispatch drives registered rules over a symbol snapshot.
//
// A run has two passes separated by a barrier:
//
//	Start(env) ─────────── once per compilation rule
//	      │
//	pass 1: units in parallel (errgroup, bounded by jobs)
//	      │   per unit: types → fields → methods → properties (declaration order)
//	      │             nodes (document order, inspector.WithStack)
//	      │   diagnostics buffered per unit
//	      ▼
//	barrier (Wait)
//	      │
//	pass 2: End(ctx) ───── once per session, sequentially
//	      │
//	merge → sort → //mvvmlint:ignore filter → Result
//
// A panic in a visitor is recovered, logged and recorded as a Fault; the rule
// keeps receiving later symbols and nodes. Cancelling the context abandons
// the run between visits and yields no diagnostics.
package dispatch
