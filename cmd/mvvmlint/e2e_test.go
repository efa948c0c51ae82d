package main_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary once for all tests
	tmpDir, err := os.MkdirTemp("", "mvvmlint-e2e-*")
	if err != nil {
		panic(err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	binaryPath = filepath.Join(tmpDir, "mvvmlint")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	cmd.Dir = filepath.Join(getModuleRoot(), "cmd", "mvvmlint")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic(string(out) + ": " + err.Error())
	}

	os.Exit(m.Run())
}

func getModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			if _, err := os.Stat(filepath.Join(dir, "analyzer.go")); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("module root not found")
		}
		dir = parent
	}
}

// framework is a minimal framework package served from inside the
// throwaway module, selected with -framework.
const framework = `package mvvm

type ObservableObject struct{}

func (o *ObservableObject) OnPropertyChanged(name string) {}

type ViewModelBase struct{ ObservableObject }

func (vm *ViewModelBase) NotifyStateChanged() {}

func (vm *ViewModelBase) Close() error { return nil }

type View[VM any] struct{ ViewModel VM }

func (v *View[VM]) StateHasChanged() {}

type Navigator struct{}

func (n *Navigator) NavigateToKey(key string, params ...string) {}
`

// writeModule creates a module named example.com/e2e with the framework at
// example.com/e2e/mvvm and the given files in its root package.
func writeModule(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	all := map[string]string{
		"go.mod":       "module example.com/e2e\n\ngo 1.24\n",
		"mvvm/mvvm.go": framework,
	}
	for name, src := range files {
		all[name] = src
	}

	for name, src := range all {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

const commandSource = `package app

import "example.com/e2e/mvvm"

type EditorViewModel struct {
	mvvm.ViewModelBase
	text string
}

func (vm *EditorViewModel) Save() {
	vm.text = ""
}
`

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestE2E_Command(t *testing.T) {
	dir := writeModule(t, map[string]string{"app.go": commandSource})

	output, err := run(t, dir, "-framework", "example.com/e2e/mvvm", "./...")
	if err == nil {
		t.Fatal("expected non-zero exit code for code with issues")
	}

	if !strings.Contains(output, "method Save should be a command") {
		t.Errorf("expected command warning, got:\n%s", output)
	}
	if !strings.Contains(output, "app.go:") {
		t.Errorf("expected file location in output, got:\n%s", output)
	}
}

func TestE2E_FrameworkNotImported(t *testing.T) {
	dir := writeModule(t, map[string]string{"app.go": commandSource})

	// The default framework path is not imported, so no rule applies.
	output, err := run(t, dir, "./...")
	if err != nil {
		t.Errorf("expected zero exit code without the framework, got error: %v\noutput:\n%s", err, output)
	}
}

func TestE2E_Fix(t *testing.T) {
	dir := writeModule(t, map[string]string{"app.go": commandSource})

	if output, _ := run(t, dir, "-framework", "example.com/e2e/mvvm", "-fix", "./..."); strings.Contains(output, "panic") {
		t.Fatalf("unexpected panic:\n%s", output)
	}

	got, err := os.ReadFile(filepath.Join(dir, "app.go"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), "//mvvm:relayCommand\nfunc (vm *EditorViewModel) save() {") {
		t.Errorf("expected the method to become a command, got:\n%s", got)
	}

	output, err := run(t, dir, "-framework", "example.com/e2e/mvvm", "./...")
	if err != nil {
		t.Errorf("expected zero exit code after fixing, got error: %v\noutput:\n%s", err, output)
	}
}

func TestE2E_ConfigFile(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"app.go": commandSource,
		".mvvmlint.yml": `framework: example.com/e2e/mvvm
rules:
  method-should-be-command: off
`,
	})

	output, err := run(t, dir, "./...")
	if err != nil {
		t.Errorf("expected zero exit code with the rule disabled, got error: %v\noutput:\n%s", err, output)
	}
}

func TestE2E_InvalidConfig(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"app.go":        commandSource,
		".mvvmlint.yml": "rules:\n  no-such-rule: warning\n",
	})

	output, err := run(t, dir, "./...")
	if err == nil {
		t.Fatal("expected non-zero exit code for an invalid config")
	}
	if !strings.Contains(output, "no-such-rule") {
		t.Errorf("expected the unknown rule to be named, got:\n%s", output)
	}
}

func TestE2E_DisableFlag(t *testing.T) {
	dir := writeModule(t, map[string]string{"app.go": commandSource})

	output, err := run(t, dir, "-framework", "example.com/e2e/mvvm", "-disable", "method-should-be-command", "./...")
	if err != nil {
		t.Errorf("expected zero exit code when the rule is disabled, got error: %v\noutput:\n%s", err, output)
	}
}

func TestE2E_HelpFlag(t *testing.T) {
	cmd := exec.Command(binaryPath, "-help")
	out, _ := cmd.CombinedOutput()

	output := string(out)

	expectedFlags := []string{
		"-config",
		"-framework",
		"-disable",
		"-skip-generated",
		"-jobs",
		"-log-level",
		"-timeout",
	}

	for _, flag := range expectedFlags {
		if !strings.Contains(output, flag) {
			t.Errorf("expected flag %q in help output, got:\n%s", flag, output)
		}
	}
}

func TestE2E_InvalidFlag(t *testing.T) {
	cmd := exec.Command(binaryPath, "-invalid-flag-xyz", "./...")
	_, err := cmd.CombinedOutput()

	if err == nil {
		t.Error("expected non-zero exit code for invalid flag")
	}
}

func TestE2E_Version(t *testing.T) {
	cmd := exec.Command(binaryPath, "-V=full")
	out, err := cmd.CombinedOutput()

	if err != nil {
		t.Errorf("unexpected error: %v\noutput:\n%s", err, out)
	}

	if !strings.Contains(string(out), "mvvmlint") {
		t.Errorf("expected analyzer name in version output, got:\n%s", out)
	}
}
