// Package heuristic holds the approximate, text-based matchers some rules use.
//
// Every matcher here works on rendered source text, not on resolved symbols.
// A call to an unrelated method with a matching name is a false positive; an
// aliased or wrapped call is a false negative. Rules that need exact answers
// use go/types through typeutil and funcspec instead; rules that use this
// package are approximate by construction.
package heuristic

import (
	"bytes"
	"go/ast"
	"go/printer"
	"go/token"
	"strings"
)

// Matcher is a named set of substrings. Text matches when it contains any of
// them.
type Matcher struct {
	Name     string
	Patterns []string
}

// Match reports whether text contains one of the patterns.
func (m Matcher) Match(text string) bool {
	for _, p := range m.Patterns {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// MatchNode renders n and matches the result.
func (m Matcher) MatchNode(fset *token.FileSet, n ast.Node) bool {
	return m.Match(Render(fset, n))
}

// Find returns the call expressions and assignments under root whose rendered
// text matches. Nested matches inside a matching node are not reported again.
func (m Matcher) Find(fset *token.FileSet, root ast.Node) []ast.Node {
	var out []ast.Node
	if root == nil {
		return out
	}

	ast.Inspect(root, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.CallExpr, *ast.AssignStmt:
			if m.MatchNode(fset, n) {
				out = append(out, n)
				return false
			}
		}
		return true
	})

	return out
}

// Render prints n as Go source. Nodes that cannot be printed render as "".
func Render(fset *token.FileSet, n ast.Node) string {
	if n == nil {
		return ""
	}
	if fset == nil {
		fset = token.NewFileSet()
	}

	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, n); err != nil {
		return ""
	}
	return buf.String()
}

// Built-in matchers.
var (
	// Subscription looks like attaching an event handler.
	Subscription = Matcher{
		Name: "subscription",
		Patterns: []string{
			".Subscribe(",
			".AddHandler(",
			".AddListener(",
			"Handlers = append(",
			"Listeners = append(",
		},
	}

	// MessengerRegister looks like registering a messenger recipient.
	MessengerRegister = Matcher{
		Name:     "messenger-register",
		Patterns: []string{".Register(", ".RegisterAll("},
	}

	// MessengerUnregister looks like undoing a messenger registration.
	MessengerUnregister = Matcher{
		Name:     "messenger-unregister",
		Patterns: []string{".Unregister(", ".UnregisterAll("},
	}

	// StateRefresh looks like asking the view to re-render.
	StateRefresh = Matcher{
		Name:     "state-refresh",
		Patterns: []string{"StateHasChanged()", "NotifyStateChanged()"},
	}

	// ChangeNotification looks like raising a property-changed notification.
	ChangeNotification = Matcher{
		Name:     "change-notification",
		Patterns: []string{"SetProperty(", "OnPropertyChanged(", "NotifyPropertyChanged("},
	}
)
