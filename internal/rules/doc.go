// Package rules assembles the built-in rules and fix providers.
//
// # Rule Overview
//
//	┌──────────────────┬──────────────┬────────────────────────────────────────┐
//	│ Rule             │ Triggers     │ Diagnostics                            │
//	├──────────────────┼──────────────┼────────────────────────────────────────┤
//	│ viewmodelbase    │ type         │ viewmodel-missing-base          (fix)  │
//	│ command          │ method       │ method-should-be-command        (fix)  │
//	│ dispose          │ type         │ missing-dispose                 (fix)  │
//	│ notify           │ type         │ missing-notify-for              (fix)  │
//	│ observable       │ field        │ observable-field-exported       (fix)  │
//	│                  │ property     │ setter-not-notifying                   │
//	│ navigation       │ two-pass     │ unused-viewmodel-key                   │
//	│                  │              │ navigation-unknown-key                 │
//	│                  │              │ navigation-unknown-target              │
//	│                  │              │ duplicate-viewmodel-key                │
//	│ route            │ two-pass     │ route-parameter-unbound                │
//	│                  │              │ view-parameter-unbound                 │
//	│ messenger        │ type         │ messenger-missing-unregister           │
//	│ staterefresh     │ node         │ state-refresh-in-loop           (fix)  │
//	│                  │              │ state-refresh-overuse                  │
//	└──────────────────┴──────────────┴────────────────────────────────────────┘
//
// Rules marked two-pass collect into concurrent aggregators while units are
// visited and report once every unit is done:
//
//	Start ──► CheckType / CheckNode (parallel, per file) ──► End (serial)
//
// Rules that use the heuristic package match rendered source text and are
// approximate. Every rule reports nothing when the analyzed package does not
// import the framework.
package rules
