package native

import (
	"github.com/arion-lang/mylang/internal/core"
	"github.com/arion-lang/mylang/internal/value"
	"github.com/arion-lang/mylang/internal/verror"
)

// nativeRef builds a Ref. A word/symbol/path specifier must name a binding
// visible from the calling scope (a LookupError otherwise) and captures it
// live (`ref x`, later read or rebound through Deref/Rebind without
// re-resolving `x`); an existing Ref is returned as is rather than wrapped
// again; anything else is wrapped as a standalone value-carrying Ref. There
// is no separate `ref.of` builtin.
func nativeRef(args *value.Args, ev core.Evaluator) (core.Value, error) {
	v, ok := args.At(0)
	if !ok {
		return nil, verror.Arity(verror.IDArgCount, "ref", "1", "0")
	}
	switch spec := v.(type) {
	case *value.Ref:
		return spec, nil
	case value.String, value.Symbol, *value.Path:
		scope := ev.CurrentFrame().Scope
		if _, found := scope.Get(spec); !found {
			return nil, verror.Lookup(verror.IDNoValue, spec.String())
		}
		get := func() (core.Value, bool) { return scope.Get(spec) }
		set := func(newV core.Value) bool { return scope.Set(spec, newV) }
		return value.NewRefToBinding(get, set), nil
	default:
		return value.NewRefOfValue(v), nil
	}
}
