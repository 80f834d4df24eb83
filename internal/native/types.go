package native

import (
	"github.com/arion-lang/mylang/internal/core"
	"github.com/arion-lang/mylang/internal/value"
)

// bindTypeTags exposes each Kind as a callable predicate `<kind>?` (e.g.
// `int?`), plus `type` and `isinstance`, so MyLang source can branch on a
// value's runtime type without a separate reflection primitive.
func bindTypeTags(root *core.Scope) {
	tags := map[string]func(core.Value) bool{
		"null":      func(v core.Value) bool { return v.Kind() == core.KindNull },
		"undefined": func(v core.Value) bool { return v.Kind() == core.KindUndefined },
		"bool":      func(v core.Value) bool { return v.Kind() == core.KindBool },
		"int":       func(v core.Value) bool { return v.Kind() == core.KindInt },
		"float":     func(v core.Value) bool { return v.Kind() == core.KindFloat },
		"string":    func(v core.Value) bool { return v.Kind() == core.KindString },
		"symbol":    func(v core.Value) bool { return v.Kind() == core.KindSymbol },
		"dict":      func(v core.Value) bool { return v.Kind() == core.KindDict },
		"args":      func(v core.Value) bool { return v.Kind() == core.KindArgs },
		"array":     func(v core.Value) bool { return v.Kind() == core.KindArray },
		"path":      func(v core.Value) bool { return v.Kind() == core.KindPath },
		"function":  func(v core.Value) bool { return v.Kind() == core.KindFunction || v.Kind() == core.KindBoundMethod },
		"class":     func(v core.Value) bool { return v.Kind() == core.KindClass },
		"object":    func(v core.Value) bool { return v.Kind() == core.KindInstance },
		"ref":       func(v core.Value) bool { return v.Kind() == core.KindRef },
	}
	for name, pred := range tags {
		predicate := pred
		root.Bind(value.String(name+"?"), fn(name+"?", func(args *value.Args, ev core.Evaluator) (core.Value, error) {
			v, ok := args.At(0)
			if !ok {
				return value.False, nil
			}
			return value.BoolOf(predicate(v)), nil
		}))
	}

	root.Bind(value.String("type"), fn("type", func(args *value.Args, ev core.Evaluator) (core.Value, error) {
		v, ok := args.At(0)
		if !ok {
			return value.String("undefined"), nil
		}
		if inst, ok := v.(*value.Instance); ok {
			return value.String(inst.Class.Name), nil
		}
		return value.String(v.Kind().String()), nil
	}))

	root.Bind(value.String("isinstance"), fn("isinstance", func(args *value.Args, ev core.Evaluator) (core.Value, error) {
		v, ok := args.At(0)
		clsVal, okCls := args.At(1)
		if !ok || !okCls {
			return value.False, nil
		}
		inst, ok := v.(*value.Instance)
		if !ok {
			return value.False, nil
		}
		cls, ok := clsVal.(*value.Class)
		if !ok {
			return value.False, nil
		}
		return value.BoolOf(inst.IsInstanceOf(cls)), nil
	}))
}

// bindTypeValues exposes spec.md §4.2/§6's capitalized standard-library
// type names (`Int`, `Float`, `Bool`, `String`, `Null`, `Undefined`,
// `Path`, `Dots`, `Array`, `Dict`) as the corresponding type values.
// `type` (above) already reduces any Value to the String naming its Kind
// (e.g. `type(5)` -> `"int"`); binding each capitalized name to that same
// String lets `type($x) == Int` compare equal the ordinary way MyLang
// compares two Strings, with no separate type-value representation to
// maintain. `Object` is excluded here -- it is already bound as the real,
// instantiable `Object` Class by Register (register.go), which serves as
// the corresponding type value for Instances.
func bindTypeValues(root *core.Scope) {
	names := map[string]core.Kind{
		"Int":       core.KindInt,
		"Float":     core.KindFloat,
		"Bool":      core.KindBool,
		"String":    core.KindString,
		"Null":      core.KindNull,
		"Undefined": core.KindUndefined,
		"Path":      core.KindPath,
		"Dots":      core.KindDots,
		"Array":     core.KindArray,
		"Dict":      core.KindDict,
	}
	for name, kind := range names {
		root.Bind(value.String(name), value.String(kind.String()))
	}
}
