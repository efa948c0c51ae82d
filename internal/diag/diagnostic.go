// Package diag defines diagnostic descriptors, the built-in catalog, and the
// diagnostics rules produce.
package diag

import (
	"go/token"
	"sort"
)

// Diagnostic is one reported violation. It is created by a rule and never
// modified afterwards.
type Diagnostic struct {
	Descriptor *Descriptor
	Severity   Severity
	Pos        token.Pos
	End        token.Pos
	Args       []string
}

// ID returns the descriptor ID.
func (d Diagnostic) ID() string {
	return d.Descriptor.ID
}

// Message renders the descriptor template with the diagnostic arguments.
func (d Diagnostic) Message() string {
	return d.Descriptor.Format(d.Args...)
}

// Sort orders diagnostics by position, then by descriptor ID. The sort is
// stable so diagnostics reported at the same place keep their report order.
func Sort(ds []Diagnostic) {
	sort.SliceStable(ds, func(i, j int) bool {
		if ds[i].Pos != ds[j].Pos {
			return ds[i].Pos < ds[j].Pos
		}
		return ds[i].Descriptor.ID < ds[j].Descriptor.ID
	})
}
