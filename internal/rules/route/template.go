package route

import "strings"

// Segment is a named parameter of a path template.
type Segment struct {
	Name       string
	Constraint string
	Optional   bool
	CatchAll   bool
}

// ParseTemplate returns the parameters of a path template such as
// "/users/{id:int}/{tab?}/{*rest}", in order. Literal text and malformed
// braces are skipped.
func ParseTemplate(tmpl string) []Segment {
	var segs []Segment
	for {
		open := strings.IndexByte(tmpl, '{')
		if open < 0 {
			return segs
		}
		if strings.HasPrefix(tmpl[open:], "{{") {
			tmpl = tmpl[open+2:]
			continue
		}
		closing := strings.IndexByte(tmpl[open:], '}')
		if closing < 0 {
			return segs
		}
		if seg, ok := parseSegment(tmpl[open+1 : open+closing]); ok {
			segs = append(segs, seg)
		}
		tmpl = tmpl[open+closing+1:]
	}
}

func parseSegment(s string) (Segment, bool) {
	var seg Segment
	if rest, ok := strings.CutPrefix(s, "**"); ok {
		seg.CatchAll, s = true, rest
	} else if rest, ok := strings.CutPrefix(s, "*"); ok {
		seg.CatchAll, s = true, rest
	}
	if name, constraint, ok := strings.Cut(s, ":"); ok {
		s, seg.Constraint = name, constraint
	}
	if rest, ok := strings.CutSuffix(s, "?"); ok {
		seg.Optional, s = true, rest
	}
	if strings.HasSuffix(seg.Constraint, "?") {
		seg.Optional = true
		seg.Constraint = strings.TrimSuffix(seg.Constraint, "?")
	}
	seg.Name = strings.TrimSpace(s)
	return seg, seg.Name != ""
}

// companionTemplates returns the templates of the @page lines in a companion
// file.
func companionTemplates(src []byte) []string {
	var out []string
	for _, line := range strings.Split(string(src), "\n") {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), "@page")
		if !ok {
			continue
		}
		rest = strings.TrimSpace(rest)
		if len(rest) >= 2 && rest[0] == '"' {
			if end := strings.IndexByte(rest[1:], '"'); end >= 0 {
				out = append(out, rest[1:end+1])
			}
		}
	}
	return out
}

// companionName returns the companion file of a Go source file.
func companionName(filename string) string {
	return strings.TrimSuffix(filename, ".go") + ".page"
}
