// Package ignore provides //mvvmlint:ignore directive parsing.
//
// # Overview
//
// The ignore directive suppresses diagnostics for specific lines or specific
// rule IDs.
//
// # Directive Placement
//
// The directive can appear on the line before or the same line:
//
//	//mvvmlint:ignore
//	type LegacyViewModel struct{}    // Diagnostic suppressed
//
//	type LegacyViewModel struct{}    //mvvmlint:ignore  // Also works
//
// # Rule-Specific Ignores
//
// Specify diagnostic IDs to ignore only those:
//
//	//mvvmlint:ignore missing-dispose
//	type ClockViewModel struct{ ... }  // Only missing-dispose ignored
//
//	//mvvmlint:ignore missing-dispose,method-should-be-command
//	func (vm *ClockViewModel) Tick() {}
//
// Anything after " - " is a free-form reason:
//
//	//mvvmlint:ignore missing-dispose - the view owns the ticker
//
// # Map Structure
//
//	type Map map[int]*Entry  // line number → directive
//
// Use [Build] once per file and [Map.ShouldIgnore] per diagnostic:
//
//	m := ignore.Build(fset, file)
//	if m.ShouldIgnore(line, ignore.RuleID(d.ID())) {
//	    return  // Drop the diagnostic
//	}
//
// # Unused Ignore Detection
//
// Each entry records which IDs it actually suppressed. [Map.UnusedEntries]
// returns the directives that suppressed nothing for an enabled rule; the
// dispatcher reports them as unused-ignore:
//
//	//mvvmlint:ignore missing-dispose  // Warning: unused ignore directive
//	type PlainViewModel struct{ mvvm.ViewModelBase }
package ignore
