// Package directive provides comment directive parsing for mvvmlint.
//
// # Overview
//
// Two kinds of comment directives are understood:
//
//	directive/
//	├── attr/      # //mvvm:<name> attributes on declarations
//	└── ignore/    # //mvvmlint:ignore suppressions
//
// # Attributes
//
// Attributes annotate types, fields and methods the way the framework's code
// generator reads them:
//
//	//mvvm:key settings
//	type SettingsViewModel struct {
//	    mvvm.ViewModelBase
//
//	    //mvvm:observable
//	    //mvvm:notify Summary
//	    theme string
//	}
//
//	//mvvm:relayCommand
//	func (vm *SettingsViewModel) save() {}
//
// Names are matched case-insensitively, with an optional "Attribute" suffix.
// Canonical names start lower-case so gofmt keeps them as directives. See
// [attr] package for details.
//
// # Ignore Directive
//
// Suppresses diagnostics for the next line or same line:
//
//	//mvvmlint:ignore
//	type LegacyViewModel struct{}  // No diagnostic
//
//	//mvvmlint:ignore missing-dispose
//	type ClockViewModel struct{ ... }  // Only missing-dispose ignored
//
// See [ignore] package for details.
package directive
