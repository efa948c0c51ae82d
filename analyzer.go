// Package mvvmlint provides a go/analysis based analyzer for detecting
// MVVM convention violations in Go code built on github.com/mpyw/mvvm.
package mvvmlint

import (
	"context"
	"flag"
	"fmt"
	"go/types"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/tools/go/analysis"

	"github.com/mpyw/mvvmlint/internal/config"
	"github.com/mpyw/mvvmlint/internal/diag"
	"github.com/mpyw/mvvmlint/internal/dispatch"
	"github.com/mpyw/mvvmlint/internal/fix"
	"github.com/mpyw/mvvmlint/internal/rule"
	"github.com/mpyw/mvvmlint/internal/rules"
	"github.com/mpyw/mvvmlint/internal/rules/navigation"
	"github.com/mpyw/mvvmlint/internal/symbols"
)

// Flags for the analyzer. Flags that are set override the config file.
var (
	configPath    string
	framework     string
	disable       string
	skipGenerated bool
	jobs          int
	logLevel      string
	timeout       time.Duration
)

func init() {
	// Run is assigned here rather than in the literal to break the
	// initialization cycle Analyzer -> run -> loadConfig -> Analyzer.
	Analyzer.Run = run
	Analyzer.Flags.StringVar(&configPath, "config", config.DefaultFile,
		"path to the configuration file; a missing file means defaults")
	Analyzer.Flags.StringVar(&framework, "framework", "",
		"import path of the MVVM framework (default "+config.DefaultFramework+")")
	Analyzer.Flags.StringVar(&disable, "disable", "",
		"comma-separated list of rule IDs to disable (e.g., missing-dispose,state-refresh-overuse)")
	Analyzer.Flags.BoolVar(&skipGenerated, "skip-generated", true,
		"do not report diagnostics in generated files")
	Analyzer.Flags.IntVar(&jobs, "jobs", 0,
		"number of files analyzed concurrently (0 means GOMAXPROCS)")
	Analyzer.Flags.StringVar(&logLevel, "log-level", "",
		"operational log level written to stderr (panic, fatal, error, warn, info, debug, trace)")
	Analyzer.Flags.DurationVar(&timeout, "timeout", 0,
		"abort the analysis of a package after this duration (0 means no limit)")
}

// Analyzer is the main analyzer for mvvmlint.
var Analyzer = &analysis.Analyzer{
	Name:      "mvvmlint",
	Doc:       "checks MVVM view-model, view and navigation conventions",
	Flags:     flag.FlagSet{},
	FactTypes: []analysis.Fact{new(navigation.KeysFact)},
}

func run(pass *analysis.Pass) (any, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg.LogLevel)

	snap, err := symbols.Build(pass.Fset, pass.Files, pass.Pkg, pass.TypesInfo)
	if err != nil {
		return nil, err
	}

	env := rule.NewEnv(snap, cfg)
	env.ReadFile = readFile(pass)
	env.Facts = passFacts{pass}

	d := dispatch.New(logger.WithField("package", pass.Pkg.Path()),
		dispatch.WithJobs(cfg.Jobs),
		dispatch.WithSkipGenerated(cfg.SkipGenerated),
	)
	for _, r := range rules.All() {
		if err := d.Register(r); err != nil {
			return nil, err
		}
	}

	ctx := context.Background()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	res, err := d.Run(ctx, env)
	if err != nil {
		return nil, fmt.Errorf("analyzing %s: %w", pass.Pkg.Path(), err)
	}

	engine := fix.NewEngine(logger, cfg)
	for _, p := range rules.Providers() {
		engine.Register(p)
	}
	doc := &fix.Document{
		Fset:     pass.Fset,
		Files:    pass.Files,
		Pkg:      pass.Pkg,
		Info:     pass.TypesInfo,
		ReadFile: env.ReadFile,
	}

	for _, dg := range res.Diagnostics {
		report(pass, engine, doc, dg)
	}

	return nil, nil
}

// loadConfig reads the config file and applies the flags that were set.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		return nil, err
	}

	Analyzer.Flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "framework":
			if framework != "" {
				cfg.Framework = framework
			}
		case "disable":
			cfg.Disable(disable)
		case "skip-generated":
			cfg.SkipGenerated = skipGenerated
		case "jobs":
			cfg.Jobs = jobs
		case "log-level":
			cfg.LogLevel = logLevel
		case "timeout":
			cfg.Timeout = timeout
		}
	})
	if err := cfg.Validate(diag.Default); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if lvl, err := logrus.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// report hands one diagnostic and its fixes to the driver.
func report(pass *analysis.Pass, engine *fix.Engine, doc *fix.Document, d diag.Diagnostic) {
	pass.Report(analysis.Diagnostic{
		Pos:            d.Pos,
		End:            d.End,
		Category:       d.ID(),
		Message:        d.Message(),
		SuggestedFixes: fix.SuggestedFixes(engine.Actions(doc, d)),
	})
}

// readFile serves files through the pass first. Companion files such as
// .page templates are not part of the package file lists, so they fall back
// to the file system.
func readFile(pass *analysis.Pass) func(string) ([]byte, error) {
	return func(name string) ([]byte, error) {
		if pass.ReadFile != nil {
			if src, err := pass.ReadFile(name); err == nil {
				return src, nil
			}
		}
		return os.ReadFile(name)
	}
}

// passFacts exposes the fact functions of a pass as rule.Facts.
type passFacts struct {
	pass *analysis.Pass
}

func (f passFacts) ImportPackageFact(pkg *types.Package, fact analysis.Fact) bool {
	return f.pass.ImportPackageFact(pkg, fact)
}

func (f passFacts) ExportPackageFact(fact analysis.Fact) {
	f.pass.ExportPackageFact(fact)
}
