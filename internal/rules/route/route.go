// Package route cross-references the path templates of views with the
// parameters they bind.
//
// A view declares its routes with //mvvm:page "<template>" or with @page lines
// in a companion file named after its source file (settings.go ->
// settings.page). Parameters are fields marked //mvvm:parameter on the view
// or //mvvm:viewParameter on its view-model; a directive argument overrides
// the field name. Names compare case-insensitively.
package route

import (
	"go/token"
	"go/types"
	"sort"
	"strings"

	"github.com/mpyw/mvvmlint/internal/aggregate"
	"github.com/mpyw/mvvmlint/internal/diag"
	"github.com/mpyw/mvvmlint/internal/directive/attr"
	"github.com/mpyw/mvvmlint/internal/rule"
	"github.com/mpyw/mvvmlint/internal/symbols"
	"github.com/mpyw/mvvmlint/internal/typeutil"
)

// Rule is the route/parameter cross-reference rule.
type Rule struct{}

// New creates the rule.
func New() *Rule {
	return &Rule{}
}

func (r *Rule) Name() string { return "route" }

func (r *Rule) Descriptors() []*diag.Descriptor {
	return []*diag.Descriptor{diag.RouteParameterUnbound, diag.ViewParameterUnbound}
}

// Start implements rule.Compilation.
func (r *Rule) Start(env *rule.Env) rule.Session {
	if env.Framework.TypeName(typeutil.View) == nil {
		return nil
	}
	return &session{env: env}
}

// route is one template of a view. Routes read from a companion file have
// no position of their own.
type route struct {
	Template string
	Pos, End token.Pos
}

type view struct {
	Type   *symbols.TypeSymbol
	VM     *types.TypeName
	Routes []route
}

type param struct {
	Field *symbols.FieldSymbol
	Name  string
	View  bool
}

type session struct {
	env *rule.Env

	views  aggregate.Set[*view]
	index  aggregate.Index[*types.TypeName, *view]
	params aggregate.Multi[*types.TypeName, param]
	pages  aggregate.Map[string, []string]
}

// CheckType collects views and their routes.
func (s *session) CheckType(_ *rule.Context, t *symbols.TypeSymbol) {
	vm := typeutil.Named(s.env.Framework.ViewModelOf(t.Type()))
	if vm == nil {
		return
	}

	v := &view{Type: t, VM: vm.Origin().Obj()}
	for _, a := range t.Attrs {
		if !attr.Matches(a, attr.Page) {
			continue
		}
		for _, tmpl := range a.Args {
			v.Routes = append(v.Routes, route{Template: tmpl, Pos: a.Pos, End: a.End})
		}
	}
	for _, tmpl := range s.companion(t.Unit.Filename) {
		v.Routes = append(v.Routes, route{Template: tmpl})
	}

	s.views.Add(v)
	s.index.Put(v.VM, v)
}

// companion returns the templates of the companion file of filename, reading
// it at most once.
func (s *session) companion(filename string) []string {
	name := companionName(filename)
	if tmpls, ok := s.pages.Load(name); ok {
		return tmpls
	}
	var tmpls []string
	if s.env.ReadFile != nil {
		if src, err := s.env.ReadFile(name); err == nil {
			tmpls = companionTemplates(src)
		}
	}
	tmpls, _ = s.pages.LoadOrStore(name, tmpls)
	return tmpls
}

// CheckField collects parameter fields.
func (s *session) CheckField(_ *rule.Context, f *symbols.FieldSymbol) {
	a, ok := attr.Find(f.Attrs, attr.Parameter, attr.ViewParameter)
	if !ok {
		return
	}
	name := f.Name
	if len(a.Args) > 0 {
		name = a.Args[0]
	}
	s.params.Add(f.Owner.Obj, param{Field: f, Name: name, View: attr.Matches(a, attr.ViewParameter)})
}

// End reports, now that every view and parameter is known.
func (s *session) End(ctx *rule.Context) {
	s.index.Freeze()

	var views []*view
	s.views.Range(func(v *view) bool {
		views = append(views, v)
		return true
	})
	sort.Slice(views, func(i, j int) bool { return views[i].Type.Spec.Pos() < views[j].Type.Spec.Pos() })

	for _, v := range views {
		s.checkRoutes(ctx, v)
	}
	s.checkViewParameters(ctx)
}

// checkRoutes reports template parameters of v that bind to nothing. Views
// of view-models from other packages are skipped: their parameters are not
// visible here.
func (s *session) checkRoutes(ctx *rule.Context, v *view) {
	if v.VM.Pkg() != s.env.Pkg {
		return
	}

	bound := make(map[string]bool)
	for _, owner := range []*types.TypeName{v.Type.Obj, v.VM} {
		for _, p := range s.params.Get(owner) {
			bound[strings.ToLower(p.Name)] = true
		}
	}

	for _, r := range v.Routes {
		for _, seg := range ParseTemplate(r.Template) {
			if bound[strings.ToLower(seg.Name)] {
				continue
			}
			if r.Pos.IsValid() {
				ctx.ReportRange(diag.RouteParameterUnbound, r.Pos, r.End, seg.Name, v.Type.Name)
			} else {
				ctx.Report(diag.RouteParameterUnbound, v.Type.Spec.Name, seg.Name, v.Type.Name)
			}
		}
	}
}

// checkViewParameters reports view-model parameters that no route of the
// view-model's views supplies. View-models without a routed view are
// skipped.
func (s *session) checkViewParameters(ctx *rule.Context) {
	var owners []*types.TypeName
	s.params.Range(func(owner *types.TypeName, _ []param) bool {
		owners = append(owners, owner)
		return true
	})
	sort.Slice(owners, func(i, j int) bool { return owners[i].Pos() < owners[j].Pos() })

	for _, vm := range owners {
		var views []*view
		if v, ok := s.index.Get(vm); ok {
			views = append(views, v)
		}
		views = append(views, s.index.Conflicts(vm)...)

		supplied := make(map[string]bool)
		routed := false
		for _, v := range views {
			for _, r := range v.Routes {
				routed = true
				for _, seg := range ParseTemplate(r.Template) {
					supplied[strings.ToLower(seg.Name)] = true
				}
			}
		}
		if !routed {
			continue
		}

		for _, p := range s.params.Get(vm) {
			if !p.View || supplied[strings.ToLower(p.Name)] {
				continue
			}
			ctx.Report(diag.ViewParameterUnbound, p.Field.Ident, p.Field.Name, vm.Name())
		}
	}
}
