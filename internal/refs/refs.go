// Package refs extracts identifier and literal references from syntax trees.
package refs

import (
	"go/ast"
	"go/token"
	"sort"
	"strconv"
)

// Set is a set of identifier names.
type Set map[string]bool

// Collect returns every identifier token under n, selector names included.
func Collect(n ast.Node) Set {
	s := make(Set)
	if n == nil {
		return s
	}

	ast.Inspect(n, func(node ast.Node) bool {
		if id, ok := node.(*ast.Ident); ok {
			s[id.Name] = true
		}
		return true
	})

	return s
}

// Sorted returns the names in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Intersects reports whether s and other share a name.
func (s Set) Intersects(other Set) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for k := range small {
		if large[k] {
			return true
		}
	}
	return false
}

// StringLiterals returns the unquoted values of string literals under n in
// source order.
func StringLiterals(n ast.Node) []string {
	var out []string
	if n == nil {
		return out
	}

	ast.Inspect(n, func(node ast.Node) bool {
		lit, ok := node.(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			return true
		}
		if v, err := strconv.Unquote(lit.Value); err == nil {
			out = append(out, v)
		}
		return true
	})

	return out
}
