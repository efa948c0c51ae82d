package route

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpyw/mvvmlint/internal/checktest"
	"github.com/mpyw/mvvmlint/internal/rule"
)

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		want []Segment
	}{
		{name: "literal", tmpl: "/settings", want: nil},
		{name: "plain", tmpl: "/users/{id}", want: []Segment{{Name: "id"}}},
		{name: "constraint", tmpl: "/users/{id:int}", want: []Segment{{Name: "id", Constraint: "int"}}},
		{name: "optional", tmpl: "/tabs/{tab?}", want: []Segment{{Name: "tab", Optional: true}}},
		{name: "optional constraint", tmpl: "/p/{page:int?}", want: []Segment{{Name: "page", Constraint: "int", Optional: true}}},
		{name: "catch-all", tmpl: "/files/{*path}", want: []Segment{{Name: "path", CatchAll: true}}},
		{name: "double catch-all", tmpl: "/files/{**path}", want: []Segment{{Name: "path", CatchAll: true}}},
		{name: "several", tmpl: "/{a}/x-{b}", want: []Segment{{Name: "a"}, {Name: "b"}}},
		{name: "escaped brace", tmpl: "/{{literal}}/{id}", want: []Segment{{Name: "id"}}},
		{name: "unclosed", tmpl: "/{id", want: nil},
		{name: "empty", tmpl: "/{}", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTemplate(tt.tmpl))
		})
	}
}

func TestCompanionTemplates(t *testing.T) {
	src := []byte("@page \"/orders\"\n  @page \"/orders/{id}\"\n<h1>Orders</h1>\n@page broken\n")
	assert.Equal(t, []string{"/orders", "/orders/{id}"}, companionTemplates(src))
	assert.Equal(t, "views/orders.page", companionName("views/orders.go"))
}

func TestRoute(t *testing.T) {
	h := &checktest.Harness{Rules: []rule.Rule{New()}}

	h.Verify(t, checktest.Files{
		"user.go": `package app

import "github.com/mpyw/mvvm"

type UserViewModel struct {
	mvvm.ViewModelBase

	//mvvm:viewParameter
	ID string

	//mvvm:viewParameter
	[|Tab|] string
}

[|//mvvm:page "/users/{id:int}/{section?}"|]
type UserView struct {
	mvvm.View[*UserViewModel]
}
`,
		"profile.go": `package app

import "github.com/mpyw/mvvm"

type ProfileViewModel struct{ mvvm.ViewModelBase }

type ProfileView struct {
	mvvm.View[*ProfileViewModel]

	//mvvm:parameter rest
	Path string
}
`,
		"profile.page": "@page \"/profile/{*rest}\"\n<h1>Profile</h1>\n",
		"orders.go": `package app

import "github.com/mpyw/mvvm"

type OrdersViewModel struct {
	mvvm.ViewModelBase

	//mvvm:viewParameter
	Filter string
}

type [|OrdersView|] struct {
	mvvm.View[*OrdersViewModel]
}
`,
		"orders.page": "@page \"/orders/{filter}/{orderId}\"\n",
		"widget.go": `package app

import "github.com/mpyw/mvvm"

type OrdersWidget struct {
	mvvm.View[*OrdersViewModel]
}
`,
	},
		checktest.Want{ID: "route-parameter-unbound", Args: []string{"orderId", "OrdersView"}},
		checktest.Want{ID: "view-parameter-unbound", Args: []string{"Tab", "UserViewModel"}},
		checktest.Want{ID: "route-parameter-unbound", Args: []string{"section", "UserView"}},
	)
}
