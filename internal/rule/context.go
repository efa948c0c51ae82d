package rule

import (
	"go/ast"
	"go/token"
	"go/types"
	"os"
	"strings"

	"golang.org/x/tools/go/analysis"

	"github.com/mpyw/mvvmlint/internal/config"
	"github.com/mpyw/mvvmlint/internal/diag"
	"github.com/mpyw/mvvmlint/internal/symbols"
	"github.com/mpyw/mvvmlint/internal/typeutil"
)

// Facts is the subset of the analysis pass that exchanges package facts.
type Facts interface {
	ImportPackageFact(pkg *types.Package, fact analysis.Fact) bool
	ExportPackageFact(fact analysis.Fact)
}

// Env is the read-only environment of one run.
type Env struct {
	Fset      *token.FileSet
	Pkg       *types.Package
	Info      *types.Info
	Snapshot  *symbols.Snapshot
	Config    *config.Config
	Framework *typeutil.Framework

	// ReadFile reads companion files next to sources. Defaults to os.ReadFile.
	ReadFile func(name string) ([]byte, error)

	// Facts is nil outside an analysis pass.
	Facts Facts
}

// NewEnv builds an Env over snap. A nil cfg means defaults.
func NewEnv(snap *symbols.Snapshot, cfg *config.Config) *Env {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Env{
		Fset:      snap.Fset,
		Pkg:       snap.Pkg,
		Info:      snap.Info,
		Snapshot:  snap,
		Config:    cfg,
		Framework: typeutil.ResolveFramework(snap.Pkg, cfg.Framework),
		ReadFile:  os.ReadFile,
	}
}

// IsViewModelLike reports whether t is a struct named with the view-model
// suffix or embedding a framework view-model base.
func (e *Env) IsViewModelLike(t *symbols.TypeSymbol) bool {
	if !t.IsStruct() {
		return false
	}
	if strings.HasSuffix(t.Name, e.Config.ViewModelSuffix) {
		return true
	}
	return e.Framework.EmbedsAny(t.Type(),
		typeutil.ViewModelBase, typeutil.ObservableObject, typeutil.RecipientViewModelBase)
}

// Context is handed to every visitor call. Diagnostics reported through it go
// to the dispatcher's buffer for the current unit, never to the host.
type Context struct {
	*Env

	// Unit is the unit being visited, or nil during the second pass.
	Unit *symbols.Unit

	sink func(diag.Diagnostic)
}

// NewContext returns a Context that delivers diagnostics to sink.
func NewContext(env *Env, unit *symbols.Unit, sink func(diag.Diagnostic)) *Context {
	return &Context{Env: env, Unit: unit, sink: sink}
}

// Report reports desc over node. Rules disabled in the configuration report
// nothing.
func (c *Context) Report(desc *diag.Descriptor, node ast.Node, args ...string) {
	if node == nil {
		return
	}
	c.ReportRange(desc, node.Pos(), node.End(), args...)
}

// ReportRange reports desc over [pos, end).
func (c *Context) ReportRange(desc *diag.Descriptor, pos, end token.Pos, args ...string) {
	if !pos.IsValid() {
		return
	}
	sev := c.Config.Severity(desc)
	if sev == diag.SeverityOff {
		return
	}
	c.sink(diag.Diagnostic{
		Descriptor: desc,
		Severity:   sev,
		Pos:        pos,
		End:        end,
		Args:       append([]string(nil), args...),
	})
}
