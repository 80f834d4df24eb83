package native

import (
	"github.com/arion-lang/mylang/internal/core"
	"github.com/arion-lang/mylang/internal/value"
	"github.com/arion-lang/mylang/internal/verror"
)

// baseErrorClass is the built-in Error class, set once by Register and read
// by nativeError to build a default Instance when no class= override is given.
var baseErrorClass *value.Class

// objectClass is the root of every class hierarchy, set once by Register.
// A `class` declaration with no explicit base list derives from it.
var objectClass *value.Class

// nativeClass builds a class from a name, zero or more base-class
// specifiers, and a trailing StatementList body. The body runs in a fresh
// child frame chained to the caller's own scope (so it can still read outer
// names) with CurrentClassKey pointing at the class under construction, so
// a nested `init` call can find it; every name the body itself defines
// becomes a prototype member.
func nativeClass(args *value.Args, ev core.Evaluator) (core.Value, error) {
	positional := args.Positional()
	if len(positional) < 2 {
		return nil, verror.Arity(verror.IDArgCount, "class", "2+", "")
	}
	body, ok := positional[len(positional)-1].(*value.StatementList)
	if !ok {
		return nil, verror.Type(verror.IDTypeMismatch, "class body", "StatementList", positional[len(positional)-1].Kind().String())
	}
	nameVal := positional[0]
	name, ok := wordName(nameVal)
	if !ok {
		return nil, verror.Type(verror.IDTypeMismatch, "class name", "word", nameVal.Kind().String())
	}

	var bases []*value.Class
	for _, b := range positional[1 : len(positional)-1] {
		resolved, err := ev.Get(b)
		if err != nil {
			return nil, err
		}
		cls, ok := resolved.(*value.Class)
		if !ok {
			return nil, verror.Type(verror.IDTypeMismatch, "base class", "Class", resolved.Kind().String())
		}
		bases = append(bases, cls)
	}
	if len(bases) == 0 && objectClass != nil && objectClass.Name != name {
		bases = []*value.Class{objectClass}
	}
	cls := &value.Class{Name: name, Bases: bases, Prototype: value.NewDict()}

	frame := core.NewFrame(ev.CurrentFrame().Scope, ev.CurrentFrame().Depth+1, "<class:"+name+">")
	frame.Scope.SetCustomData(core.CurrentClassKey, cls)
	pop := ev.PushFrame(frame)
	_, err := ev.ExecStatementList(body)
	pop()
	if err != nil {
		return nil, err
	}

	keys, values := frame.Scope.Entries()
	for i, k := range keys {
		memberName, ok := wordName(k)
		if !ok {
			continue
		}
		cls.Prototype.Set(value.String(memberName), values[i])
	}

	ev.CurrentFrame().Scope.Bind(value.String(name), cls)
	return cls, nil
}

// nativeInit declares the enclosing class's initializer: positional
// arguments before the trailing StatementList name required parameters,
// keyed arguments name defaulted ones, exactly like `fun`. `self` is bound
// automatically by instantiation, not declared here.
func nativeInit(args *value.Args, ev core.Evaluator) (core.Value, error) {
	raw, _, found := core.FindCustomData(ev.CurrentFrame().Scope, core.CurrentClassKey)
	if !found {
		return nil, verror.Type(verror.IDInvalidOperation, "init", "outside class body")
	}
	cls := raw.(*value.Class)

	positional := args.Positional()
	if len(positional) == 0 {
		return nil, verror.Arity(verror.IDArgCount, "init", "1+", "0")
	}
	body, ok := positional[len(positional)-1].(*value.StatementList)
	if !ok {
		return nil, verror.Type(verror.IDTypeMismatch, "init body", "StatementList", positional[len(positional)-1].Kind().String())
	}
	var params []value.Param
	for _, p := range positional[:len(positional)-1] {
		name, ok := wordName(p)
		if !ok {
			return nil, verror.Type(verror.IDTypeMismatch, "init parameter", "word", p.Kind().String())
		}
		params = append(params, value.Param{Name: name})
	}
	for _, kn := range args.KeyedNames() {
		v, _ := args.Keyed(kn)
		params = append(params, value.Param{Name: kn, HasDefault: true, Default: v})
	}
	cls.Initializer = &value.Function{Name: cls.Name + ".init", Params: params, Body: body, Closure: ev.CurrentFrame().Scope}
	return value.UndefinedValue, nil
}

// nativeThrow raises v as a MyLang-level exception, to be caught by the
// nearest enclosing try whose class filter isinstance-matches it (or to
// propagate to the host if none does).
func nativeThrow(args *value.Args, ev core.Evaluator) (core.Value, error) {
	v, ok := args.At(0)
	if !ok {
		return nil, verror.Arity(verror.IDArgCount, "throw", "1", "0")
	}
	return nil, core.Throw(v)
}

// nativeTry installs a CatchSpec on the current frame: the positional
// arguments together form one catch clause (zero or more class specifiers
// followed by a StatementList body; with no specifier the clause catches
// every thrown value), and a keyed `as=` argument names the local binding
// the thrown value is exposed under inside a matching clause. The spec is
// consumed by the next call on this same frame that throws -- in practice
// the statement immediately following `try` in its StatementList.
func nativeTry(args *value.Args, ev core.Evaluator) (core.Value, error) {
	positional := args.Positional()
	if len(positional) == 0 {
		return nil, verror.Arity(verror.IDArgCount, "try", "1+", "0")
	}
	spec := &core.CatchSpec{Body: []core.Value{value.ArgsFromPositional(positional...)}}
	if v, ok := args.Keyed("as"); ok {
		if s, ok := v.(value.String); ok {
			spec.HasKey = true
			spec.Key = string(s)
		}
	}
	ev.CurrentFrame().CatchSpec = spec
	return value.UndefinedValue, nil
}

// nativeError constructs (without throwing) an Instance of the Error class,
// or of a `class=` override naming a declared Error subclass, running that
// class's own initializer against the given message the same way a direct
// instantiation call would.
func nativeError(args *value.Args, ev core.Evaluator) (core.Value, error) {
	msg, ok := args.At(0)
	if !ok {
		msg = value.String("")
	}
	cls := baseErrorClass
	if v, ok := args.Keyed("class"); ok {
		if c, ok := v.(*value.Class); ok {
			cls = c
		}
	} else if v, ok := args.At(1); ok {
		if c, ok := v.(*value.Class); ok {
			cls = c
		}
	}
	if cls == nil {
		return nil, verror.Type(verror.IDInvalidOperation, "error", "no Error class registered")
	}
	callArgs := value.NewArgs()
	callArgs.AppendPositional(cls)
	callArgs.AppendPositional(msg)
	return ev.Call(callArgs)
}
