// Package native implements MyLang's built-in vocabulary: the control-flow
// primitives (if/loop/while/break/continue/for/return/try/throw/class),
// the call/get/set dispatch wrappers, operators, and small utility
// builtins (doc/context/ignore/echo/symbol/error). Every built-in is a
// *value.Function with a Go Native body and is registered directly into
// the evaluator's root scope -- this package depends only on core, value
// and verror, never on eval, so eval can depend on native to populate its
// root scope without an import cycle.
package native

import (
	"github.com/arion-lang/mylang/internal/core"
	"github.com/arion-lang/mylang/internal/value"
)

func fn(name string, f value.NativeFunc) *value.Function {
	return &value.Function{Name: name, Native: f}
}

// Register binds every built-in into root and returns the Error class so
// the caller can wire it into eval.SetBaseErrorClass.
func Register(root *core.Scope) *value.Class {
	bind := func(name string, f value.NativeFunc) {
		root.Bind(value.String(name), fn(name, f))
	}

	// singletons
	root.Bind(value.String("null"), value.NullValue)
	root.Bind(value.String("undefined"), value.UndefinedValue)
	root.Bind(value.String("true"), value.True)
	root.Bind(value.String("false"), value.False)

	// dispatch primitives
	bind("call", nativeCall)
	bind("get", nativeGet)
	bind("set", nativeSet)

	// utility builtins
	bind("echo", nativeEcho)
	bind("ignore", nativeIgnore)
	bind("context", nativeContext)
	bind("symbol", nativeSymbol)
	bind("Symbol", nativeSymbol)
	bind("doc", nativeDoc)

	// control flow
	bind("fun", nativeFun)
	bind("return", nativeReturn)
	bind("if", nativeIf)
	bind("else", nativeElse)
	bind("loop", nativeLoop)
	bind("while", nativeWhile)
	bind("break", nativeBreak)
	bind("continue", nativeContinue)
	bind("for", nativeFor)

	// classes, references, errors
	bind("ref", nativeRef)
	bind("op", nativeOp)
	bind("use", nativeUse)
	bind("export", nativeExport)
	bind("throw", nativeThrow)
	bind("try", nativeTry)
	bind("error", nativeError)

	objectClass = &value.Class{Name: "Object", Prototype: value.NewDict()}
	root.Bind(value.String("Object"), objectClass)

	errorClass := &value.Class{Name: "Error", Bases: []*value.Class{objectClass}, Prototype: value.NewDict()}
	errorClass.Initializer = fn("Error.init", func(args *value.Args, ev core.Evaluator) (core.Value, error) {
		self, _ := ev.Lookup(value.String("self"))
		inst := self.(*value.Instance)
		msg, _ := args.At(0)
		if msg == nil {
			msg = value.String("")
		}
		inst.Attrs.Set(value.String("message"), msg)
		return value.UndefinedValue, nil
	})
	root.Bind(value.String("Error"), errorClass)
	baseErrorClass = errorClass

	root.Bind(value.String("class"), fn("class", nativeClass))
	root.Bind(value.String("init"), fn("init", nativeInit))

	bindTypeTags(root)
	bindTypeValues(root)

	return errorClass
}
