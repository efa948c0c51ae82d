package navigation

import (
	"fmt"
	"slices"
	"strings"
)

// KeysFact lists the view-model keys a package declares and its routable
// view-model types, so importers can resolve navigation into it.
type KeysFact struct {
	Keys     []string
	Routable []string
}

// AFact implements analysis.Fact.
func (*KeysFact) AFact() {}

func (f *KeysFact) String() string {
	return fmt.Sprintf("keys(%s) routable(%s)", strings.Join(f.Keys, ", "), strings.Join(f.Routable, ", "))
}

// HasKey reports whether key is declared.
func (f *KeysFact) HasKey(key string) bool {
	_, ok := slices.BinarySearch(f.Keys, key)
	return ok
}

// IsRoutable reports whether the type called name is routable.
func (f *KeysFact) IsRoutable(name string) bool {
	_, ok := slices.BinarySearch(f.Routable, name)
	return ok
}
