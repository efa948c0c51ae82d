package heuristic

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchers(t *testing.T) {
	tests := []struct {
		name    string
		matcher Matcher
		text    string
		want    bool
	}{
		{"subscribe", Subscription, "vm.clock.Subscribe(vm.onTick)", true},
		{"handler append", Subscription, "src.Handlers = append(src.Handlers, vm.onChange)", true},
		{"plain call", Subscription, "vm.clock.Tick()", false},
		{"register", MessengerRegister, "vm.messenger.Register(vm, vm.onMessage)", true},
		{"unregister is not register", MessengerRegister, "vm.messenger.Unregister(vm)", false},
		{"unregister", MessengerUnregister, "vm.messenger.UnregisterAll(vm)", true},
		{"state has changed", StateRefresh, "v.StateHasChanged()", true},
		{"notify state changed", StateRefresh, "vm.NotifyStateChanged()", true},
		{"set property", ChangeNotification, `vm.SetProperty("Name")`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.matcher.Match(tt.text))
		})
	}
}

func TestFind(t *testing.T) {
	src := `package p

func f() {
	a.Subscribe(func() { b.Subscribe(nil) })
	c.Handlers = append(c.Handlers, h)
	d.Other()
}
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "p.go", src, 0)
	require.NoError(t, err)

	fn := file.Decls[0].(*ast.FuncDecl)
	found := Subscription.Find(fset, fn.Body)
	require.Len(t, found, 2)
	assert.IsType(t, &ast.CallExpr{}, found[0])
	assert.IsType(t, &ast.AssignStmt{}, found[1])
}

func TestRender(t *testing.T) {
	expr, err := parser.ParseExpr("x.StateHasChanged()")
	require.NoError(t, err)

	assert.Equal(t, "x.StateHasChanged()", Render(nil, expr))
	assert.Equal(t, "", Render(nil, nil))
}
