// Package config loads the .mvvmlint.yml configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mpyw/mvvmlint/internal/diag"
)

// DefaultFile is the configuration file name looked up by the analyzer.
const DefaultFile = ".mvvmlint.yml"

// DefaultFramework is the import path of the MVVM framework.
const DefaultFramework = "github.com/mpyw/mvvm"

// Config represents the .mvvmlint.yml configuration.
type Config struct {
	Framework       string                   `yaml:"framework"`
	ViewModelSuffix string                   `yaml:"view_model_suffix"`
	SkipGenerated   bool                     `yaml:"skip_generated"`
	Jobs            int                      `yaml:"jobs"`
	Timeout         time.Duration            `yaml:"timeout"`
	LogLevel        string                   `yaml:"log_level"`
	Rules           map[string]diag.Severity `yaml:"rules"`
	StateRefresh    StateRefreshConfig       `yaml:"state_refresh"`
	Disposables     []string                 `yaml:"disposables"`
	Navigation      NavigationConfig         `yaml:"navigation"`
}

// StateRefreshConfig tunes the state-refresh rules.
type StateRefreshConfig struct {
	MaxCalls int `yaml:"max_calls"`
}

// NavigationConfig lists the functions that navigate by key or by type, as
// pkg.Func or pkg.Type.Method. Empty lists fall back to the framework's own
// navigator.
type NavigationConfig struct {
	KeyFuncs  []string `yaml:"key_funcs"`
	TypeFuncs []string `yaml:"type_funcs"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Framework:       DefaultFramework,
		ViewModelSuffix: "ViewModel",
		SkipGenerated:   true,
		LogLevel:        "warn",
		Rules:           make(map[string]diag.Severity),
		StateRefresh: StateRefreshConfig{
			MaxCalls: 3,
		},
		Disposables: []string{
			"time.Ticker.Stop",
			"time.Timer.Stop",
		},
	}
}

// Load reads a configuration file from the given path.
// Missing fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	return Parse(data, path)
}

// LoadOptional is Load, except that a missing file yields the defaults.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes YAML data over the defaults. name is used in error messages.
func Parse(data []byte, name string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", name, err)
	}

	// Ensure required defaults
	if cfg.Framework == "" {
		cfg.Framework = DefaultFramework
	}
	if cfg.ViewModelSuffix == "" {
		cfg.ViewModelSuffix = "ViewModel"
	}
	if cfg.StateRefresh.MaxCalls <= 0 {
		cfg.StateRefresh.MaxCalls = 3
	}
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]diag.Severity)
	}

	if err := cfg.Validate(diag.Default); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", name, err)
	}

	return cfg, nil
}

// ErrUnknownRule is returned when a configuration names a rule ID the
// catalog does not know.
var ErrUnknownRule = errors.New("unknown rule")

// Validate checks rule IDs against catalog.
func (c *Config) Validate(catalog *diag.Catalog) error {
	var errs []error
	for id := range c.Rules {
		if _, ok := catalog.Lookup(id); !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownRule, id))
		}
	}
	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("jobs must not be negative, got %d", c.Jobs))
	}
	return errors.Join(errs...)
}

// Disable turns off the comma-separated rule IDs in list.
func (c *Config) Disable(list string) {
	for _, id := range strings.Split(list, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			c.Rules[id] = diag.SeverityOff
		}
	}
}

// Severity returns the effective severity of d.
func (c *Config) Severity(d *diag.Descriptor) diag.Severity {
	if s, ok := c.Rules[d.ID]; ok {
		return s
	}
	return d.Severity
}

// Enabled reports whether diagnostics with d's ID are reported at all.
func (c *Config) Enabled(d *diag.Descriptor) bool {
	return c.Severity(d) != diag.SeverityOff
}

// KeyFuncs returns the key-navigation function specs.
func (c *Config) KeyFuncs() []string {
	if len(c.Navigation.KeyFuncs) > 0 {
		return c.Navigation.KeyFuncs
	}
	return []string{c.Framework + ".Navigator.NavigateToKey"}
}

// TypeFuncs returns the type-navigation function specs.
func (c *Config) TypeFuncs() []string {
	if len(c.Navigation.TypeFuncs) > 0 {
		return c.Navigation.TypeFuncs
	}
	return []string{c.Framework + ".NavigateTo", c.Framework + ".Navigator.NavigateToType"}
}
