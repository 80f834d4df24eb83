package native

import (
	"fmt"

	"github.com/arion-lang/mylang/internal/core"
	"github.com/arion-lang/mylang/internal/value"
	"github.com/arion-lang/mylang/internal/verror"
)

// nativeCall re-enters dispatch with args unchanged: args' own
// positional[0] is the real callee-specifier, exactly the shape Call
// expects, since `call` is reached only when a statement's head word
// itself resolved to this builtin.
func nativeCall(args *value.Args, ev core.Evaluator) (core.Value, error) {
	return ev.Call(args)
}

func nativeGet(args *value.Args, ev core.Evaluator) (core.Value, error) {
	key, ok := args.At(0)
	if !ok {
		return nil, verror.Arity(verror.IDArgCount, "get", "1", "0")
	}
	return ev.Get(key)
}

func nativeSet(args *value.Args, ev core.Evaluator) (core.Value, error) {
	return ev.Set(args)
}

func nativeEcho(args *value.Args, ev core.Evaluator) (core.Value, error) {
	for i, v := range args.Positional() {
		if i > 0 {
			fmt.Fprint(ev.Stdout(), " ")
		}
		fmt.Fprint(ev.Stdout(), v.String())
	}
	fmt.Fprintln(ev.Stdout())
	if n := args.Len(); n > 0 {
		v, _ := args.At(n - 1)
		return v, nil
	}
	return value.UndefinedValue, nil
}

// nativeIgnore evaluates nothing further (its argument is already
// evaluated per normal call-argument rules) and always discards the
// result, returning Undefined -- a no-op escape hatch.
func nativeIgnore(args *value.Args, ev core.Evaluator) (core.Value, error) {
	return value.UndefinedValue, nil
}

// nativeContext returns a read-only Dict snapshot of the caller's current
// local bindings, for introspection and the REPL's `env` command.
func nativeContext(args *value.Args, ev core.Evaluator) (core.Value, error) {
	frame := ev.CurrentFrame()
	d := value.NewDict()
	keys, values := frame.Scope.Entries()
	for i, k := range keys {
		d.Set(k, values[i])
	}
	return d, nil
}

// nativeSymbol allocates a fresh Symbol with an identity distinct from
// every other Symbol, even one created with the same display name.
func nativeSymbol(args *value.Args, ev core.Evaluator) (core.Value, error) {
	name := ""
	if v, ok := args.At(0); ok {
		if s, ok := v.(value.String); ok {
			name = string(s)
		}
	}
	return value.NewSymbol(name), nil
}

// nativeDoc returns the docstring of a Function/Class/Instance, or "" if none.
func nativeDoc(args *value.Args, ev core.Evaluator) (core.Value, error) {
	v, ok := args.At(0)
	if !ok {
		return nil, verror.Arity(verror.IDArgCount, "doc", "1", "0")
	}
	switch t := v.(type) {
	case *value.Function:
		return value.String(t.Doc), nil
	case *value.Class:
		return value.String(t.Doc), nil
	default:
		return value.String(""), nil
	}
}
