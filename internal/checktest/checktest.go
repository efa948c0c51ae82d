// Package checktest runs rules and fix providers over in-memory sources.
//
// Sources may mark expected diagnostic spans with [|...|]. The markers are
// removed before parsing; Verify then requires one diagnostic per span, in
// position order, starting and ending exactly at the span.
//
// Packages are type-checked against the framework stub under the module's
// testdata directory and against GOROOT sources for everything else.
package checktest

import (
	"context"
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpyw/mvvmlint/internal/config"
	"github.com/mpyw/mvvmlint/internal/diag"
	"github.com/mpyw/mvvmlint/internal/dispatch"
	"github.com/mpyw/mvvmlint/internal/fix"
	"github.com/mpyw/mvvmlint/internal/rule"
	"github.com/mpyw/mvvmlint/internal/symbols"
)

// PkgPath is the import path the sources are checked as.
const PkgPath = "example.com/app"

// Files maps file names to content. Names ending in .go are parsed; any other
// file is only visible through ReadFile.
type Files map[string]string

// Span is a marked range.
type Span struct {
	File     string
	Pos, End token.Pos
}

// Want describes an expected diagnostic. Nil Args are not compared.
type Want struct {
	ID   string
	Args []string
}

// Package is a loaded, type-checked package.
type Package struct {
	Fset    *token.FileSet
	Files   []*ast.File
	Pkg     *types.Package
	Info    *types.Info
	Spans   []Span
	Sources map[string][]byte
}

// ReadFile serves the in-memory sources, falling back to the file system.
func (p *Package) ReadFile(name string) ([]byte, error) {
	if src, ok := p.Sources[name]; ok {
		return src, nil
	}
	return os.ReadFile(name)
}

// Document returns the package as a fix document.
func (p *Package) Document() *fix.Document {
	return &fix.Document{
		Fset:     p.Fset,
		Files:    p.Files,
		Pkg:      p.Pkg,
		Info:     p.Info,
		ReadFile: p.ReadFile,
	}
}

// Harness bundles what a test runs.
type Harness struct {
	Rules     []rule.Rule
	Providers []fix.Provider

	// Config defaults to config.Default().
	Config *config.Config
	Logger logrus.FieldLogger

	// Facts stands in for the analysis pass when set.
	Facts rule.Facts
}

func (h *Harness) config() *config.Config {
	if h.Config != nil {
		return h.Config
	}
	return config.Default()
}

// Load parses and type-checks files. Type errors fail the test.
func Load(t testing.TB, files Files) *Package {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	p := &Package{
		Fset:    token.NewFileSet(),
		Sources: make(map[string][]byte, len(files)),
		Info: &types.Info{
			Types:      make(map[ast.Expr]types.TypeAndValue),
			Instances:  make(map[*ast.Ident]types.Instance),
			Defs:       make(map[*ast.Ident]types.Object),
			Uses:       make(map[*ast.Ident]types.Object),
			Implicits:  make(map[ast.Node]types.Object),
			Selections: make(map[*ast.SelectorExpr]*types.Selection),
			Scopes:     make(map[ast.Node]*types.Scope),
		},
	}

	for _, name := range names {
		src, marks := stripMarkers(files[name])
		p.Sources[name] = []byte(src)
		if !strings.HasSuffix(name, ".go") {
			continue
		}

		f, err := parser.ParseFile(p.Fset, name, src, parser.ParseComments)
		require.NoError(t, err, "parsing %s", name)
		p.Files = append(p.Files, f)

		tf := p.Fset.File(f.Pos())
		for _, m := range marks {
			p.Spans = append(p.Spans, Span{File: name, Pos: tf.Pos(m[0]), End: tf.Pos(m[1])})
		}
	}

	conf := &types.Config{Importer: newImporter(p.Fset)}
	pkg, err := conf.Check(PkgPath, p.Fset, p.Files, p.Info)
	require.NoError(t, err, "type-checking")
	p.Pkg = pkg

	return p
}

// stripMarkers removes [| and |] and returns the byte offsets of each span.
func stripMarkers(src string) (string, [][2]int) {
	var (
		b     strings.Builder
		marks [][2]int
		open  = -1
	)
	for i := 0; i < len(src); {
		switch {
		case strings.HasPrefix(src[i:], "[|"):
			open = b.Len()
			i += 2
		case strings.HasPrefix(src[i:], "|]") && open >= 0:
			marks = append(marks, [2]int{open, b.Len()})
			open = -1
			i += 2
		default:
			b.WriteByte(src[i])
			i++
		}
	}
	return b.String(), marks
}

// Analyze runs the harness rules over p. Rule faults fail the test.
func (h *Harness) Analyze(t testing.TB, p *Package) []diag.Diagnostic {
	t.Helper()

	snap, err := symbols.Build(p.Fset, p.Files, p.Pkg, p.Info)
	require.NoError(t, err)

	env := rule.NewEnv(snap, h.config())
	env.ReadFile = p.ReadFile
	env.Facts = h.Facts

	d := dispatch.New(h.Logger, dispatch.WithJobs(4))
	for _, r := range h.Rules {
		require.NoError(t, d.Register(r))
	}

	res, err := d.Run(context.Background(), env)
	require.NoError(t, err)
	for _, f := range res.Faults {
		t.Errorf("rule fault: %s", f)
	}

	return res.Diagnostics
}

// Diagnostics loads files and analyzes them.
func (h *Harness) Diagnostics(t testing.TB, files Files) []diag.Diagnostic {
	t.Helper()
	return h.Analyze(t, Load(t, files))
}

// Verify requires the diagnostics to match the marked spans one to one, with
// the IDs and arguments of want in the same order.
func (h *Harness) Verify(t testing.TB, files Files, want ...Want) {
	t.Helper()

	p := Load(t, files)
	got := h.Analyze(t, p)

	require.Len(t, p.Spans, len(want), "marked spans")
	require.Len(t, got, len(want), "diagnostics: %s", Describe(p.Fset, got))

	for i, w := range want {
		d, span := got[i], p.Spans[i]
		assert.Equal(t, w.ID, d.ID(), "diagnostic %d", i)
		if w.Args != nil {
			assert.Equal(t, w.Args, d.Args, "diagnostic %d arguments", i)
		}
		assert.Equal(t, p.Fset.Position(span.Pos), p.Fset.Position(d.Pos), "diagnostic %d start", i)
		assert.Equal(t, p.Fset.Position(span.End), p.Fset.Position(d.End), "diagnostic %d end", i)
	}
}

// VerifyFix applies every fix offered for the diagnostics of files and
// compares the result with fixed. Files absent from fixed must be left
// unchanged.
func (h *Harness) VerifyFix(t testing.TB, files, fixed Files) *fix.Result {
	t.Helper()

	p := Load(t, files)
	ds := h.Analyze(t, p)

	res, err := h.engine().FixAll(p.Document(), ds)
	if len(fixed) == 0 {
		require.ErrorIs(t, err, fix.ErrNoFixes)
		return res
	}
	require.NoError(t, err)

	for name := range files {
		want, ok := fixed[name]
		if !ok {
			assert.NotContains(t, res.Files, name, "%s must be unchanged", name)
			continue
		}
		got, ok := res.Files[name]
		if !assert.True(t, ok, "%s must be changed", name) {
			continue
		}
		assert.Equal(t, want, string(got), "fixed %s", name)
	}

	return res
}

func (h *Harness) engine() *fix.Engine {
	engine := fix.NewEngine(h.Logger, h.config())
	for _, pr := range h.Providers {
		engine.Register(pr)
	}
	return engine
}

// FixEach fixes one diagnostic at a time: it applies the first fix offered
// for the earliest fixable diagnostic, analyzes the result again and repeats
// until no diagnostic has a fix. It returns the content of every file.
func (h *Harness) FixEach(t testing.TB, files Files) Files {
	t.Helper()

	p := Load(t, files)
	cur := make(Files, len(p.Sources))
	for name, src := range p.Sources {
		cur[name] = string(src)
	}

	engine := h.engine()
	for step := 0; ; step++ {
		require.Less(t, step, 100, "fixes do not converge")

		applied := false
		for _, d := range h.Analyze(t, p) {
			res, err := engine.Fix(p.Document(), d)
			if err != nil {
				continue
			}
			for name, out := range res.Files {
				cur[name] = string(out)
			}
			applied = true
			break
		}
		if !applied {
			return cur
		}
		p = Load(t, cur)
	}
}

// VerifyFixAllMatchesEach requires FixAll over the diagnostics of files to
// end in the same content as FixEach.
func (h *Harness) VerifyFixAllMatchesEach(t testing.TB, files Files) {
	t.Helper()

	p := Load(t, files)
	res, err := h.engine().FixAll(p.Document(), h.Analyze(t, p))
	require.NoError(t, err)

	each := h.FixEach(t, files)
	for name, src := range p.Sources {
		got := string(src)
		if out, ok := res.Files[name]; ok {
			got = string(out)
		}
		assert.Equal(t, each[name], got, "%s after FixAll", name)
	}
}

// Describe renders diagnostics for failure messages.
func Describe(fset *token.FileSet, ds []diag.Diagnostic) string {
	lines := make([]string, 0, len(ds))
	for _, d := range ds {
		lines = append(lines, fmt.Sprintf("%s: %s: %s", fset.Position(d.Pos), d.ID(), d.Message()))
	}
	return "[" + strings.Join(lines, "; ") + "]"
}

// frameworkDir holds the framework stub shared with the analyzer tests.
func frameworkDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "testdata", "src", filepath.FromSlash(config.DefaultFramework))
}

// stubImporter resolves the framework to the stub and everything else from
// GOROOT sources.
type stubImporter struct {
	fset     *token.FileSet
	fallback types.Importer

	once sync.Once
	fw   *types.Package
	err  error
}

func newImporter(fset *token.FileSet) *stubImporter {
	return &stubImporter{fset: fset, fallback: importer.ForCompiler(fset, "source", nil)}
}

func (im *stubImporter) Import(path string) (*types.Package, error) {
	if path != config.DefaultFramework {
		return im.fallback.Import(path)
	}
	im.once.Do(func() { im.fw, im.err = im.loadFramework() })
	return im.fw, im.err
}

func (im *stubImporter) loadFramework() (*types.Package, error) {
	dir := frameworkDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading framework stub: %w", err)
	}

	var files []*ast.File
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".go") {
			continue
		}
		f, err := parser.ParseFile(im.fset, filepath.Join(dir, e.Name()), nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parsing framework stub: %w", err)
		}
		files = append(files, f)
	}

	conf := &types.Config{Importer: im.fallback}
	pkg, err := conf.Check(config.DefaultFramework, im.fset, files, nil)
	if err != nil {
		return nil, fmt.Errorf("type-checking framework stub: %w", err)
	}
	return pkg, nil
}
