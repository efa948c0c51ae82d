package fix

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/token"
	"io"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/tools/go/analysis"

	"github.com/mpyw/mvvmlint/internal/config"
	"github.com/mpyw/mvvmlint/internal/diag"
	"github.com/mpyw/mvvmlint/internal/typeutil"
)

// ErrNoFixes is returned when no registered provider produced an
// applicable action.
var ErrNoFixes = errors.New("fix: no applicable fixes")

var errOverlap = errors.New("fix: overlapping edits")

// Action is one candidate edit resolving a diagnostic. Actions with the same
// EquivalenceKey on the same Target are the same transformation.
type Action struct {
	Title          string
	EquivalenceKey string
	Target         ast.Node
	Edits          []analysis.TextEdit
}

// Context is handed to providers.
type Context struct {
	Diagnostic diag.Diagnostic
	Doc        *Document
	Config     *config.Config
	Framework  *typeutil.Framework
}

// File returns the file the diagnostic was reported in.
func (c *Context) File() *ast.File {
	return c.Doc.File(c.Diagnostic.Pos)
}

// Provider computes fix actions for the diagnostic IDs it declares. A
// provider that cannot find a safe transformation returns no actions.
type Provider interface {
	FixableIDs() []string
	Fix(ctx *Context) []Action
}

// Result is the outcome of applying fixes.
type Result struct {
	// Files maps changed file names to their new, formatted content.
	Files   map[string][]byte
	Applied []Action
	// Skipped actions conflicted with an applied one or produced
	// unformattable code. Actions equivalent to an applied one are in
	// neither list.
	Skipped []Action
}

// Engine routes diagnostics to providers and applies their actions.
type Engine struct {
	logger    logrus.FieldLogger
	cfg       *config.Config
	providers map[string][]Provider
}

// NewEngine creates an Engine. A nil logger discards the operational log; a
// nil cfg means defaults.
func NewEngine(logger logrus.FieldLogger, cfg *config.Config) *Engine {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return &Engine{logger: logger, cfg: cfg, providers: make(map[string][]Provider)}
}

// Register adds p for every ID it can fix.
func (e *Engine) Register(p Provider) {
	for _, id := range p.FixableIDs() {
		e.providers[id] = append(e.providers[id], p)
	}
}

// Fixable reports whether any provider handles id.
func (e *Engine) Fixable(id string) bool {
	return len(e.providers[id]) > 0
}

// Actions returns every action the providers offer for d. A provider that
// panics offers nothing.
func (e *Engine) Actions(doc *Document, d diag.Diagnostic) []Action {
	ctx := &Context{
		Diagnostic: d,
		Doc:        doc,
		Config:     e.cfg,
		Framework:  typeutil.ResolveFramework(doc.Pkg, e.cfg.Framework),
	}

	var actions []Action
	for _, p := range e.providers[d.ID()] {
		actions = append(actions, e.safeFix(p, ctx)...)
	}
	return actions
}

func (e *Engine) safeFix(p Provider, ctx *Context) (actions []Action) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.WithFields(logrus.Fields{
				"rule":  ctx.Diagnostic.ID(),
				"panic": r,
			}).Error("fix provider fault")
			actions = nil
		}
	}()

	for _, a := range p.Fix(ctx) {
		if a.Target != nil && len(a.Edits) > 0 {
			actions = append(actions, a)
		}
	}
	return actions
}

// Fix applies the first action offered for d.
func (e *Engine) Fix(doc *Document, d diag.Diagnostic) (*Result, error) {
	return e.FixAll(doc, []diag.Diagnostic{d})
}

// FixAll applies, for each diagnostic in position order, the first action
// offered for it. Actions equal by (target, equivalence key) are applied
// once; identical edits coalesce; an action whose edits overlap an already
// accepted edit is skipped whole.
func (e *Engine) FixAll(doc *Document, ds []diag.Diagnostic) (*Result, error) {
	ordered := append([]diag.Diagnostic(nil), ds...)
	diag.Sort(ordered)

	type key struct {
		pos   token.Pos
		equiv string
	}
	seen := make(map[key]bool)
	res := &Result{Files: make(map[string][]byte)}

	var accepted []analysis.TextEdit
	for _, d := range ordered {
		actions := e.Actions(doc, d)
		if len(actions) == 0 {
			continue
		}
		a := actions[0]

		k := key{pos: a.Target.Pos(), equiv: a.EquivalenceKey}
		if seen[k] {
			continue
		}
		seen[k] = true

		if conflicts(accepted, a.Edits) {
			res.Skipped = append(res.Skipped, a)
			continue
		}
		accepted = append(accepted, a.Edits...)
		res.Applied = append(res.Applied, a)
	}

	// A file that does not format after editing keeps its original content,
	// and every action touching it is withdrawn; the remaining actions are
	// then applied again without it.
	for len(res.Applied) > 0 {
		files := make(map[string][]analysis.TextEdit)
		owners := make(map[string][]int)
		for i, a := range res.Applied {
			for _, te := range a.Edits {
				name := doc.Filename(te.Pos)
				files[name] = append(files[name], te)
				if n := len(owners[name]); n == 0 || owners[name][n-1] != i {
					owners[name] = append(owners[name], i)
				}
			}
		}

		res.Files = make(map[string][]byte, len(files))
		failed := make(map[int]bool)
		for name, edits := range files {
			out, err := e.apply(doc, name, edits)
			if err != nil {
				for _, i := range owners[name] {
					failed[i] = true
				}
				continue
			}
			res.Files[name] = out
		}
		if len(failed) == 0 {
			break
		}

		var kept []Action
		for i, a := range res.Applied {
			if failed[i] {
				res.Skipped = append(res.Skipped, a)
				continue
			}
			kept = append(kept, a)
		}
		res.Applied = kept
		res.Files = make(map[string][]byte)
	}

	if len(res.Applied) == 0 {
		return res, ErrNoFixes
	}
	return res, nil
}

// conflicts reports whether an edit overlaps an accepted edit it is not
// identical to.
func conflicts(accepted, edits []analysis.TextEdit) bool {
	for _, te := range edits {
		for _, prev := range accepted {
			if !sameEdit(prev, te) && overlaps(prev, te) {
				return true
			}
		}
	}
	return false
}

func sameEdit(a, b analysis.TextEdit) bool {
	return a.Pos == b.Pos && a.End == b.End && bytes.Equal(a.NewText, b.NewText)
}

// overlaps reports whether two edits touch the same text. Insertions at the
// same point do not overlap; they apply in acceptance order.
func overlaps(a, b analysis.TextEdit) bool {
	if a.Pos == a.End && b.Pos == b.End {
		return false
	}
	if a.Pos == a.End {
		return b.Pos < a.Pos && a.Pos < b.End
	}
	if b.Pos == b.End {
		return a.Pos < b.Pos && b.Pos < a.End
	}
	return a.Pos < b.End && b.Pos < a.End
}

// sortEdits orders edits by position, keeping insertions at the same point
// in their original order.
func sortEdits(edits []analysis.TextEdit) {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].Pos != edits[j].Pos {
			return edits[i].Pos < edits[j].Pos
		}
		return edits[i].End < edits[j].End
	})
}

// apply splices edits into the named file and formats the result.
func (e *Engine) apply(doc *Document, name string, edits []analysis.TextEdit) ([]byte, error) {
	src, err := doc.Source(name)
	if err != nil {
		return nil, err
	}
	tf := doc.Fset.File(edits[0].Pos)

	sorted := append([]analysis.TextEdit(nil), edits...)
	sortEdits(sorted)

	type editKey struct {
		pos, end token.Pos
		text     string
	}
	done := make(map[editKey]bool)

	var buf bytes.Buffer
	last := 0
	for _, te := range sorted {
		k := editKey{te.Pos, te.End, string(te.NewText)}
		if done[k] {
			continue
		}
		done[k] = true

		start, end := tf.Offset(te.Pos), tf.Offset(te.End)
		if start < last || end < start || end > len(src) {
			return nil, fmt.Errorf("%w: %s", errOverlap, name)
		}
		buf.Write(src[last:start])
		buf.Write(te.NewText)
		last = end
	}
	buf.Write(src[last:])

	out, err := format.Source(buf.Bytes())
	if err != nil {
		e.logger.WithFields(logrus.Fields{
			"file":  name,
			"error": err,
		}).Warn("fixed source does not format; keeping original")
		return nil, err
	}
	return out, nil
}

// SuggestedFixes converts actions for an analysis.Diagnostic.
func SuggestedFixes(actions []Action) []analysis.SuggestedFix {
	fixes := make([]analysis.SuggestedFix, 0, len(actions))
	for _, a := range actions {
		fixes = append(fixes, analysis.SuggestedFix{Message: a.Title, TextEdits: a.Edits})
	}
	return fixes
}
