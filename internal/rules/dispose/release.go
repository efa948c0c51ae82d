package dispose

import (
	"go/types"

	"github.com/mpyw/mvvmlint/internal/funcspec"
	"github.com/mpyw/mvvmlint/internal/typeutil"
)

// closers are the method names that release a value, in preference order.
var closers = []string{"Close", "Dispose"}

// release is a field and the method that releases it.
type release struct {
	Field        string
	Method       string
	ReturnsError bool
}

// releases returns the fields of t that hold disposable values, in field
// order. Embedded fields are skipped: a disposable embedded value already
// promotes its closer to t.
func releases(t types.Type, pkg *types.Package, specs []funcspec.Spec) []release {
	st := typeutil.Struct(t)
	if st == nil {
		return nil
	}

	var out []release
	for i := range st.NumFields() {
		f := st.Field(i)
		if f.Embedded() || f.Name() == "_" {
			continue
		}
		if fn := releaser(f.Type(), pkg, specs); fn != nil {
			out = append(out, release{
				Field:        f.Name(),
				Method:       fn.Name(),
				ReturnsError: returnsError(fn),
			})
		}
	}
	return out
}

// releaser returns the method that releases a value of type t, or nil when t
// is not disposable.
func releaser(t types.Type, pkg *types.Package, specs []funcspec.Spec) *types.Func {
	if named := typeutil.Named(t); named != nil {
		for _, spec := range specs {
			if spec.TypeName == "" || spec.TypeName != named.Origin().Obj().Name() {
				continue
			}
			if fn := lookup(t, pkg, spec.FuncName); fn != nil && spec.Matches(fn) {
				return fn
			}
		}
	}

	for _, name := range closers {
		if fn := lookup(t, pkg, name); fn != nil && typeutil.Signature(fn).Params().Len() == 0 {
			return fn
		}
	}
	return nil
}

// lookup finds a method callable on an addressable value of type t.
func lookup(t types.Type, pkg *types.Package, name string) *types.Func {
	recv := t
	switch t.Underlying().(type) {
	case *types.Pointer, *types.Interface:
	default:
		recv = types.NewPointer(t)
	}
	obj, _, _ := types.LookupFieldOrMethod(recv, true, pkg, name)
	fn, _ := obj.(*types.Func)
	return fn
}

func returnsError(fn *types.Func) bool {
	res := typeutil.Signature(fn).Results()
	return res.Len() == 1 && typeutil.IsError(res.At(0).Type())
}

// hasCloser reports whether t can already release itself.
func hasCloser(t types.Type) bool {
	for _, name := range closers {
		if typeutil.Method(t, name) != nil {
			return true
		}
	}
	return false
}
