// Package fix computes and applies code fixes for diagnostics.
//
// Providers turn a diagnostic into Actions: text edits built from
// structurally constructed go/ast nodes. The Engine applies them:
//
//	FixAll(doc, diagnostics)
//	    │  position order
//	    ├── first action per diagnostic
//	    ├── dedupe by (target position, equivalence key)
//	    ├── overlapping action → Skipped (never applied in part)
//	    ├── identical edits coalesce (imports are added once)
//	    └── splice + go/format per file; unformattable → original kept
//
// A provider that cannot find a safe edit returns no actions, and the
// document is left unchanged.
package fix
