package native

import (
	"github.com/arion-lang/mylang/internal/core"
	"github.com/arion-lang/mylang/internal/value"
	"github.com/arion-lang/mylang/internal/verror"
)

// nativeUse delegates to the installed core.Loader, which resolves source
// in order: a host companion module, then a stdlib file, then a third-party
// file path, caching by source so a module is only ever executed once.
func nativeUse(args *value.Args, ev core.Evaluator) (core.Value, error) {
	source, ok := args.At(0)
	if !ok {
		return nil, verror.Arity(verror.IDArgCount, "use", "1", "0")
	}
	loader := ev.Loader()
	if loader == nil {
		return nil, verror.Type(verror.IDInvalidOperation, "use", "no module loader installed")
	}
	return loader.Use(source, ev.CurrentFrame(), ev)
}

// nativeExport records the module-level bindings a `use`r of this file
// should receive: positional word arguments re-export an existing local
// under its own name, keyed arguments export a fresh name=value pair. The
// resulting Dict is installed on the current frame's scope under
// core.ExportsKey for the loader to collect once the file's top-level
// StatementList finishes.
func nativeExport(args *value.Args, ev core.Evaluator) (core.Value, error) {
	scope := ev.CurrentFrame().Scope
	raw, found := scope.CustomData(core.ExportsKey)
	exports, _ := raw.(*value.Dict)
	if !found || exports == nil {
		exports = value.NewDict()
		scope.SetCustomData(core.ExportsKey, exports)
	}

	for _, p := range args.Positional() {
		name, ok := wordName(p)
		if !ok {
			return nil, verror.Type(verror.IDTypeMismatch, "export", "word", p.Kind().String())
		}
		v, ok := scope.Get(value.String(name))
		if !ok {
			return nil, verror.Lookup(verror.IDNoValue, name)
		}
		exports.Set(value.String(name), v)
	}
	for _, name := range args.KeyedNames() {
		v, _ := args.Keyed(name)
		exports.Set(value.String(name), v)
	}
	return value.UndefinedValue, nil
}
