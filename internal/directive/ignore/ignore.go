package ignore

import (
	"go/ast"
	"go/token"
	"sort"
	"strings"
)

const directive = "mvvmlint:ignore"

// RuleID names the diagnostic an ignore directive suppresses.
type RuleID string

// Entry tracks an ignore directive and its usage.
type Entry struct {
	pos   token.Pos       // Position of the ignore comment
	rules []RuleID        // List of rule IDs (empty = all)
	used  map[RuleID]bool // Track usage per rule
}

// Map tracks ignore entries by line number.
type Map map[int]*Entry

// Enabled tracks which rule IDs are active in the current run.
type Enabled map[RuleID]bool

// Build scans a file for ignore comments and returns a map.
func Build(fset *token.FileSet, file *ast.File) Map {
	m := make(Map)

	for _, cg := range file.Comments {
		for _, c := range cg.List {
			if rules, ok := parseComment(c.Text); ok {
				line := fset.Position(c.Pos()).Line
				m[line] = &Entry{
					pos:   c.Pos(),
					rules: rules,
					used:  make(map[RuleID]bool),
				}
			}
		}
	}

	return m
}

// parseComment parses an ignore directive and returns the rule IDs.
// Returns nil slice if no specific rules are specified (ignore all).
// Returns false if not an ignore comment.
//
// Supported formats:
//   - //mvvmlint:ignore                                         -> ignore all rules
//   - //mvvmlint:ignore method-should-be-command                -> ignore one rule
//   - //mvvmlint:ignore missing-dispose,missing-notify-for      -> ignore several rules
//   - //mvvmlint:ignore - reason                                -> ignore all with comment
//   - //mvvmlint:ignore missing-dispose - reason                -> ignore one with comment
func parseComment(text string) ([]RuleID, bool) {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, directive) {
		return nil, false
	}

	rest := strings.TrimSpace(strings.TrimPrefix(text, directive))
	if rest == "" {
		return nil, true
	}

	// Stop at comment markers: " - " or " //"
	if idx := strings.Index(rest, " - "); idx >= 0 {
		rest = rest[:idx]
	}
	if idx := strings.Index(rest, " //"); idx >= 0 {
		rest = rest[:idx]
	}
	if strings.HasPrefix(rest, "- ") || rest == "-" {
		return nil, true
	}

	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil, true
	}

	parts := strings.Split(rest, ",")
	rules := make([]RuleID, 0, len(parts))

	for _, part := range parts {
		id := RuleID(strings.TrimSpace(part))
		if id != "" {
			rules = append(rules, id)
		}
	}

	return rules, true
}

// ShouldIgnore returns true if the given line should be ignored for the rule.
// It checks the same line and the previous line, and marks the entry as used.
func (m Map) ShouldIgnore(line int, rule RuleID) bool {
	if m.shouldIgnoreEntry(m[line], rule) {
		return true
	}
	if m.shouldIgnoreEntry(m[line-1], rule) {
		return true
	}

	return false
}

func (m Map) shouldIgnoreEntry(entry *Entry, rule RuleID) bool {
	if entry == nil {
		return false
	}

	if len(entry.rules) == 0 {
		entry.used[rule] = true
		return true
	}

	for _, r := range entry.rules {
		if r == rule {
			entry.used[rule] = true
			return true
		}
	}

	return false
}

// Unused represents an unused ignore directive.
type Unused struct {
	Pos   token.Pos
	Rules []RuleID // Unused rule IDs (empty if entire directive is unused)
}

// UnusedEntries returns ignore directives that suppressed nothing, ordered by
// position. Rule IDs that are not enabled are reported as unused.
func (m Map) UnusedEntries(enabled Enabled) []Unused {
	var unused []Unused

	for _, entry := range m {
		if len(entry.rules) == 0 {
			anyUsed := false
			for rule := range enabled {
				if entry.used[rule] {
					anyUsed = true
					break
				}
			}
			if !anyUsed {
				unused = append(unused, Unused{Pos: entry.pos})
			}
			continue
		}

		var rules []RuleID
		for _, rule := range entry.rules {
			if !enabled[rule] || !entry.used[rule] {
				rules = append(rules, rule)
			}
		}
		if len(rules) > 0 {
			unused = append(unused, Unused{Pos: entry.pos, Rules: rules})
		}
	}

	sort.Slice(unused, func(i, j int) bool { return unused[i].Pos < unused[j].Pos })

	return unused
}
