package funcspec

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Spec
	}{
		{
			in:   "github.com/mpyw/mvvm.Navigator.NavigateToKey",
			want: Spec{PkgPath: "github.com/mpyw/mvvm", TypeName: "Navigator", FuncName: "NavigateToKey"},
		},
		{
			in:   "github.com/mpyw/mvvm.NavigateTo",
			want: Spec{PkgPath: "github.com/mpyw/mvvm", FuncName: "NavigateTo"},
		},
		{
			in:   "time.Ticker.Stop",
			want: Spec{PkgPath: "time", TypeName: "Ticker", FuncName: "Stop"},
		},
		{
			in:   "Close",
			want: Spec{FuncName: "Close"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Parse(tt.in); got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFullName(t *testing.T) {
	spec := Parse("github.com/mpyw/mvvm.Navigator.NavigateToKey")
	if got := spec.FullName(); got != "mvvm.Navigator.NavigateToKey" {
		t.Errorf("FullName() = %q", got)
	}
}

func TestParseList(t *testing.T) {
	specs := ParseList([]string{"time.Ticker.Stop", " ", ""})
	if len(specs) != 1 {
		t.Fatalf("ParseList returned %d specs, want 1", len(specs))
	}
}

func TestExtractFuncAndMatches(t *testing.T) {
	src := `package p

import "time"

type Box[T any] struct{ v T }

func (b *Box[T]) Get() T { return b.v }

func Make[T any]() *Box[T] { return new(Box[T]) }

func use(t *time.Ticker) {
	t.Stop()
	_ = Make[int]().Get()
}
`
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "p.go", src, 0)
	if err != nil {
		t.Fatal(err)
	}

	info := &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Instances:  make(map[*ast.Ident]types.Instance),
	}
	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	if _, err := conf.Check("example.com/p", fset, []*ast.File{f}, info); err != nil {
		t.Fatal(err)
	}

	var calls []*ast.CallExpr
	ast.Inspect(f, func(n ast.Node) bool {
		if call, ok := n.(*ast.CallExpr); ok {
			calls = append(calls, call)
		}
		return true
	})

	found := map[string]bool{}
	for _, call := range calls {
		fn := ExtractFunc(info, call)
		if fn == nil {
			continue
		}
		found[fn.Name()] = true

		switch fn.Name() {
		case "Stop":
			if !Parse("time.Ticker.Stop").Matches(fn) {
				t.Error("time.Ticker.Stop should match")
			}
		case "Make":
			if !Parse("example.com/p.Make").Matches(fn) {
				t.Error("generic Make should match its origin")
			}
			args := TypeArgs(info, call)
			if args == nil || args.Len() != 1 || args.At(0).String() != "int" {
				t.Errorf("TypeArgs = %v, want [int]", args)
			}
		case "Get":
			if !Parse("example.com/p.Box.Get").Matches(fn) {
				t.Error("method on generic receiver should match")
			}
		}
	}

	for _, name := range []string{"Stop", "Make", "Get"} {
		if !found[name] {
			t.Errorf("callee %s not extracted", name)
		}
	}
}
