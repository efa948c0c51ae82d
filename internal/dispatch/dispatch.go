package dispatch

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"io"
	"path/filepath"
	"reflect"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/mpyw/mvvmlint/internal/diag"
	"github.com/mpyw/mvvmlint/internal/directive/ignore"
	"github.com/mpyw/mvvmlint/internal/rule"
	"github.com/mpyw/mvvmlint/internal/symbols"
)

var (
	// ErrNoSnapshot is returned by Run when the environment has no snapshot
	// to traverse.
	ErrNoSnapshot = errors.New("dispatch: no symbol snapshot")

	// ErrNoTrigger is returned by Register for a rule that subscribes to
	// nothing.
	ErrNoTrigger = errors.New("dispatch: rule subscribes to no trigger")
)

// Fault records a panic raised by a rule visitor.
type Fault struct {
	Rule  string
	Unit  string
	Panic any
	Stack string
}

func (f Fault) String() string {
	if f.Unit == "" {
		return fmt.Sprintf("%s: %v", f.Rule, f.Panic)
	}
	return fmt.Sprintf("%s (%s): %v", f.Rule, f.Unit, f.Panic)
}

// Result is the outcome of one run.
type Result struct {
	// Diagnostics are sorted by position, with ignored ones removed.
	Diagnostics []diag.Diagnostic
	Faults      []Fault
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithSkipGenerated excludes generated files from every visit.
func WithSkipGenerated(skip bool) Option {
	return func(d *Dispatcher) { d.skipGenerated = skip }
}

// WithJobs bounds the number of units visited concurrently. Zero or less
// means GOMAXPROCS.
func WithJobs(n int) Option {
	return func(d *Dispatcher) { d.jobs = n }
}

// WithUnusedIgnores controls whether ignore directives that suppress nothing
// are reported.
func WithUnusedIgnores(report bool) Option {
	return func(d *Dispatcher) { d.reportUnused = report }
}

// Dispatcher owns the registered rules and drives them over a snapshot.
type Dispatcher struct {
	logger        logrus.FieldLogger
	rules         []rule.Rule
	skipGenerated bool
	jobs          int
	reportUnused  bool
}

// New creates a Dispatcher. A nil logger discards the operational log.
func New(logger logrus.FieldLogger, opts ...Option) *Dispatcher {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	d := &Dispatcher{logger: logger, reportUnused: true}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register adds r. Rules are visited in registration order.
func (d *Dispatcher) Register(r rule.Rule) error {
	if len(rule.Kinds(r)) == 0 {
		return fmt.Errorf("%w: %s", ErrNoTrigger, r.Name())
	}
	d.rules = append(d.rules, r)
	return nil
}

// Rules returns the registered rules.
func (d *Dispatcher) Rules() []rule.Rule { return d.rules }

// visitor is a rule, or a compilation session, taking part in the first pass.
type visitor struct {
	name  string
	v     any
	nodes map[reflect.Type]bool
}

type faultLog struct {
	mu     sync.Mutex
	faults []Fault
}

func (f *faultLog) add(fault Fault) {
	f.mu.Lock()
	f.faults = append(f.faults, fault)
	f.mu.Unlock()
}

// Run traverses env.Snapshot with every registered rule. On cancellation it
// returns the context error and no diagnostics.
func (d *Dispatcher) Run(ctx context.Context, env *rule.Env) (*Result, error) {
	if env == nil || env.Snapshot == nil {
		return nil, ErrNoSnapshot
	}
	start := time.Now()
	faults := &faultLog{}

	active := d.activeRules(env)

	var (
		visitors []visitor
		sessions []visitor
	)
	for _, r := range active {
		if !isCompilationOnly(r) {
			visitors = append(visitors, newVisitor(r.Name(), r))
		}
		c, ok := r.(rule.Compilation)
		if !ok {
			continue
		}
		var s rule.Session
		d.call(faults, r.Name(), "", func() { s = c.Start(env) })
		if s == nil {
			continue
		}
		sessions = append(sessions, visitor{name: r.Name(), v: s})
		visitors = append(visitors, newVisitor(r.Name(), s))
	}

	units := d.units(env.Snapshot)
	buffers := make([][]diag.Diagnostic, len(units))

	jobs := d.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(units))))

	for i, u := range units {
		g.Go(func() error {
			return d.visitUnit(gctx, env, u, visitors, faults, &buffers[i])
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Every unit is done; sessions may now read what they collected.
	var final []diag.Diagnostic
	endCtx := rule.NewContext(env, nil, func(dg diag.Diagnostic) { final = append(final, dg) })
	for _, s := range sessions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d.call(faults, s.name, "", func() { s.v.(rule.Session).End(endCtx) })
	}

	var all []diag.Diagnostic
	for _, buf := range buffers {
		all = append(all, buf...)
	}
	all = append(all, d.dropSkipped(env, units, final)...)
	diag.Sort(all)

	all = d.filterIgnored(env, units, active, all)

	d.logger.WithFields(logrus.Fields{
		"package":     env.Snapshot.Pkg.Path(),
		"units":       len(units),
		"rules":       len(active),
		"diagnostics": len(all),
		"faults":      len(faults.faults),
		"elapsed":     time.Since(start),
	}).Debug("dispatch finished")

	return &Result{Diagnostics: all, Faults: faults.faults}, nil
}

// activeRules returns the registered rules with at least one enabled
// descriptor.
func (d *Dispatcher) activeRules(env *rule.Env) []rule.Rule {
	var active []rule.Rule
	for _, r := range d.rules {
		for _, desc := range r.Descriptors() {
			if env.Config.Enabled(desc) {
				active = append(active, r)
				break
			}
		}
	}
	return active
}

func isCompilationOnly(r rule.Rule) bool {
	kinds := rule.Kinds(r)
	return len(kinds) == 1 && kinds[0] == rule.KindCompilation
}

func newVisitor(name string, v any) visitor {
	vis := visitor{name: name, v: v}
	if nv, ok := v.(rule.NodeVisitor); ok {
		vis.nodes = make(map[reflect.Type]bool)
		for _, n := range nv.NodeFilter() {
			vis.nodes[reflect.TypeOf(n)] = true
		}
	}
	return vis
}

// units returns the units to visit.
func (d *Dispatcher) units(snap *symbols.Snapshot) []*symbols.Unit {
	var units []*symbols.Unit
	for _, u := range snap.Units() {
		if d.skipGenerated && u.Generated {
			continue
		}
		units = append(units, u)
	}
	return units
}

func (d *Dispatcher) visitUnit(
	ctx context.Context,
	env *rule.Env,
	u *symbols.Unit,
	visitors []visitor,
	faults *faultLog,
	buf *[]diag.Diagnostic,
) error {
	rctx := rule.NewContext(env, u, func(dg diag.Diagnostic) { *buf = append(*buf, dg) })
	name := filepath.Base(u.Filename)

	for _, t := range u.Types {
		for _, vis := range visitors {
			if tv, ok := vis.v.(rule.TypeVisitor); ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				d.call(faults, vis.name, name, func() { tv.CheckType(rctx, t) })
			}
		}
	}

	for _, f := range u.Fields {
		for _, vis := range visitors {
			if fv, ok := vis.v.(rule.FieldVisitor); ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				d.call(faults, vis.name, name, func() { fv.CheckField(rctx, f) })
			}
		}
	}

	for _, m := range u.Methods {
		for _, vis := range visitors {
			if mv, ok := vis.v.(rule.MethodVisitor); ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				d.call(faults, vis.name, name, func() { mv.CheckMethod(rctx, m) })
			}
		}
	}

	for _, p := range u.Properties {
		for _, vis := range visitors {
			if pv, ok := vis.v.(rule.PropertyVisitor); ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				d.call(faults, vis.name, name, func() { pv.CheckProperty(rctx, p) })
			}
		}
	}

	return d.visitNodes(ctx, rctx, u, visitors, faults, name)
}

func (d *Dispatcher) visitNodes(
	ctx context.Context,
	rctx *rule.Context,
	u *symbols.Unit,
	visitors []visitor,
	faults *faultLog,
	name string,
) error {
	var (
		filter   []ast.Node
		seen     = make(map[reflect.Type]bool)
		watching []visitor
	)
	for _, vis := range visitors {
		nv, ok := vis.v.(rule.NodeVisitor)
		if !ok || len(vis.nodes) == 0 {
			continue
		}
		watching = append(watching, vis)
		for _, n := range nv.NodeFilter() {
			if rt := reflect.TypeOf(n); !seen[rt] {
				seen[rt] = true
				filter = append(filter, n)
			}
		}
	}
	if len(watching) == 0 {
		return nil
	}

	insp := inspector.New([]*ast.File{u.File})
	insp.WithStack(filter, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push || ctx.Err() != nil {
			return false
		}
		rt := reflect.TypeOf(n)
		for _, vis := range watching {
			if !vis.nodes[rt] {
				continue
			}
			nv := vis.v.(rule.NodeVisitor)
			d.call(faults, vis.name, name, func() { nv.CheckNode(rctx, n, stack) })
		}
		return true
	})

	return ctx.Err()
}

// call runs fn, turning a panic into a recorded fault.
func (d *Dispatcher) call(faults *faultLog, ruleName, unit string, fn func()) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		d.logger.WithFields(logrus.Fields{
			"rule":  ruleName,
			"unit":  unit,
			"panic": p,
		}).Error("rule fault")
		faults.add(Fault{Rule: ruleName, Unit: unit, Panic: p, Stack: string(debug.Stack())})
	}()
	fn()
}

// dropSkipped removes second-pass diagnostics that point into units that
// were not visited.
func (d *Dispatcher) dropSkipped(env *rule.Env, units []*symbols.Unit, ds []diag.Diagnostic) []diag.Diagnostic {
	if !d.skipGenerated {
		return ds
	}
	visited := make(map[*symbols.Unit]bool, len(units))
	for _, u := range units {
		visited[u] = true
	}

	out := ds[:0]
	for _, dg := range ds {
		if visited[env.Snapshot.UnitOf(dg.Pos)] {
			out = append(out, dg)
		}
	}
	return out
}

// filterIgnored removes diagnostics suppressed by //mvvmlint:ignore and,
// when enabled, reports directives that suppressed nothing. It runs after
// the barrier because ignore maps record usage.
func (d *Dispatcher) filterIgnored(env *rule.Env, units []*symbols.Unit, active []rule.Rule, ds []diag.Diagnostic) []diag.Diagnostic {
	maps := make(map[string]ignore.Map, len(units))
	for _, u := range units {
		maps[u.Filename] = ignore.Build(env.Fset, u.File)
	}

	out := make([]diag.Diagnostic, 0, len(ds))
	for _, dg := range ds {
		pos := env.Fset.Position(dg.Pos)
		if m, ok := maps[pos.Filename]; ok && m.ShouldIgnore(pos.Line, ignore.RuleID(dg.ID())) {
			continue
		}
		out = append(out, dg)
	}

	if !d.reportUnused || !env.Config.Enabled(diag.UnusedIgnore) {
		return out
	}

	enabled := make(ignore.Enabled)
	for _, r := range active {
		for _, desc := range r.Descriptors() {
			if env.Config.Enabled(desc) {
				enabled[ignore.RuleID(desc.ID)] = true
			}
		}
	}

	sev := env.Config.Severity(diag.UnusedIgnore)
	for _, u := range units {
		for _, unused := range maps[u.Filename].UnusedEntries(enabled) {
			suffix := ""
			if len(unused.Rules) > 0 {
				ids := make([]string, len(unused.Rules))
				for i, r := range unused.Rules {
					ids[i] = string(r)
				}
				suffix = " for rule(s): " + strings.Join(ids, ", ")
			}
			out = append(out, diag.Diagnostic{
				Descriptor: diag.UnusedIgnore,
				Severity:   sev,
				Pos:        unused.Pos,
				End:        unused.Pos,
				Args:       []string{suffix},
			})
		}
	}
	diag.Sort(out)

	return out
}
