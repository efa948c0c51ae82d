// Package attr parses //mvvm:<name> directive comments, the attributes of
// declarations in MVVM code.
package attr

import (
	"go/ast"
	"go/token"
	"strconv"
	"strings"
	"unicode"
)

// Prefix starts every framework directive.
const Prefix = "mvvm:"

// Attr is one directive attached to a declaration.
type Attr struct {
	Name string
	Args []string
	Pos  token.Pos
	End  token.Pos
}

// Parse collects directives from the given comment groups in source order.
// Nil groups are skipped.
func Parse(groups ...*ast.CommentGroup) []Attr {
	var attrs []Attr

	for _, cg := range groups {
		if cg == nil {
			continue
		}
		for _, c := range cg.List {
			a, ok := parseComment(c.Text)
			if !ok {
				continue
			}
			a.Pos = c.Pos()
			a.End = c.End()
			attrs = append(attrs, a)
		}
	}

	return attrs
}

// parseComment parses a single comment. Supported formats:
//   - //mvvm:command
//   - //mvvm:notify FullName, Initials
//   - //mvvm:page "/users/{id}"
//   - //mvvm:key settings - trailing explanation
func parseComment(text string) (Attr, bool) {
	if !strings.HasPrefix(text, "//") {
		return Attr{}, false
	}
	text = strings.TrimSpace(strings.TrimPrefix(text, "//"))

	if !strings.HasPrefix(text, Prefix) {
		return Attr{}, false
	}
	text = text[len(Prefix):]

	end := strings.IndexFunc(text, unicode.IsSpace)
	if end < 0 {
		end = len(text)
	}
	name := text[:end]
	if name == "" {
		return Attr{}, false
	}

	return Attr{Name: name, Args: splitArgs(text[end:])}, true
}

// splitArgs splits directive arguments on commas and spaces. Double-quoted
// arguments are unquoted and may contain either separator. Parsing stops at a
// " - " or "//" comment marker.
func splitArgs(s string) []string {
	var args []string

	s = strings.TrimSpace(s)
	for s != "" {
		switch {
		case strings.HasPrefix(s, "//"), s == "-", strings.HasPrefix(s, "- "):
			return args
		case s[0] == ',' || unicode.IsSpace(rune(s[0])):
			s = s[1:]
			continue
		case s[0] == '"':
			if q, err := strconv.QuotedPrefix(s); err == nil {
				v, _ := strconv.Unquote(q)
				args = append(args, v)
				s = s[len(q):]
				continue
			}
		}

		end := strings.IndexFunc(s, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
		if end < 0 {
			end = len(s)
		}
		args = append(args, s[:end])
		s = s[end:]
	}

	return args
}

// Normalize folds an attribute name for comparison: case-insensitive, with an
// optional "Attribute" suffix removed.
func Normalize(name string) string {
	name = strings.ToLower(name)
	if trimmed := strings.TrimSuffix(name, "attribute"); trimmed != "" {
		name = trimmed
	}
	return name
}

// Matches reports whether a is the attribute named canonical. Both "Foo" and
// "FooAttribute" spellings match, in any letter case.
func Matches(a Attr, canonical string) bool {
	return Normalize(a.Name) == Normalize(canonical)
}

// Find returns the first attribute matching any of the names.
func Find(attrs []Attr, names ...string) (Attr, bool) {
	for _, a := range attrs {
		for _, n := range names {
			if Matches(a, n) {
				return a, true
			}
		}
	}
	return Attr{}, false
}

// Has reports whether any attribute matches any of the names.
func Has(attrs []Attr, names ...string) bool {
	_, ok := Find(attrs, names...)
	return ok
}

// Args returns the arguments of every attribute matching any of the names,
// concatenated in source order.
func Args(attrs []Attr, names ...string) []string {
	var out []string
	for _, a := range attrs {
		for _, n := range names {
			if Matches(a, n) {
				out = append(out, a.Args...)
				break
			}
		}
	}
	return out
}

// Directive renders a directive comment line for name and args, quoting
// arguments that would not survive splitArgs.
func Directive(name string, args ...string) string {
	var b strings.Builder
	b.WriteString("//")
	b.WriteString(Prefix)
	b.WriteString(name)
	for i, a := range args {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}
		if a == "" || strings.ContainsAny(a, " ,\t\"") || strings.HasPrefix(a, "-") {
			a = strconv.Quote(a)
		}
		b.WriteString(a)
	}
	return b.String()
}
