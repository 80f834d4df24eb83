// Package loader implements `use`'s module resolution: the resolver order
// (host companion module, then stdlib .my file, then third-party .my file
// path), the use-cache keyed by (source, loader-kind), and the companion-
// module bridge a host-language package can use to extend a stdlib .my
// file's exports -- all grounded on
// original_source/mylang/stdlib/core/func.py's `use` class, adapted from a
// Python classmethod-on-a-singleton into a Go value the evaluator holds by
// interface (core.Loader), since this repo has no class-as-namespace
// mechanism at the host level.
package loader

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arion-lang/mylang/internal/core"
	"github.com/arion-lang/mylang/internal/parse"
	"github.com/arion-lang/mylang/internal/value"
	"github.com/arion-lang/mylang/internal/verror"
)

// Companion is a host-language module that extends (or entirely produces,
// if no stdlib .my file of the same name exists) a module's export. myExport
// is the Dict a same-named stdlib .my file exported, or nil if there was
// none -- mirroring func.py's `current_module_mylang_counterpart` task-local
// slot, which a companion Python module reads to merge its own exposed
// names into the .my file's exports rather than replacing them.
type Companion func(myExport *value.Dict, ev core.Evaluator) (core.Value, error)

// Loader is the concrete core.Loader the evaluator is wired against.
type Loader struct {
	cache      map[string]core.Value
	companions map[string]Companion
	stdlibFS   fs.FS
	searchDirs []string
}

// New builds a Loader. stdlibFS serves `<stdlib>/<source>.my` lookups (an
// embedded filesystem in production, a plain os.DirFS in tests);
// searchDirs is consulted, in order, for third-party `.my` files when
// source is not a companion module or stdlib file (CWD is always tried
// first regardless of searchDirs, per spec.md's resolver order).
func New(stdlibFS fs.FS, searchDirs []string) *Loader {
	l := &Loader{
		cache:      map[string]core.Value{},
		companions: map[string]Companion{},
		stdlibFS:   stdlibFS,
		searchDirs: searchDirs,
	}
	RegisterDefaultCompanions(l)
	return l
}

// RegisterCompanion installs (or replaces) the host-language companion for
// a module name, consulted before any stdlib/third-party .my file lookup.
func (l *Loader) RegisterCompanion(name string, c Companion) {
	l.companions[name] = c
}

// Use implements core.Loader. source must be a value.String or *value.Path
// per spec.md §4.5; moduleName turns it into the resolver key, and `use`
// binds the export under source itself in the caller's scope -- `use "json"` binds
// a local named "json", mirroring func.py's `cls._caller_locals()[source]
// = exported_value`.
func (l *Loader) Use(source core.Value, caller *core.Frame, ev core.Evaluator) (core.Value, error) {
	name, err := moduleName(source)
	if err != nil {
		return nil, err
	}

	cacheID := "mylang-module:" + name
	if cached, ok := l.cache[cacheID]; ok {
		caller.Scope.Bind(source, cached)
		return cached, nil
	}

	exported, err := l.resolve(name, ev)
	if err != nil {
		return nil, err
	}
	l.cache[cacheID] = exported
	caller.Scope.Bind(source, exported)
	return exported, nil
}

func moduleName(source core.Value) (string, error) {
	switch s := source.(type) {
	case value.String:
		return string(s), nil
	case *value.Path:
		var parts []string
		for _, seg := range s.Segments {
			switch p := seg.(type) {
			case value.String:
				parts = append(parts, string(p))
			case value.Symbol:
				parts = append(parts, p.Name())
			default:
				return "", verror.Type(verror.IDTypeMismatch, "use source", "String/Path of words", seg.Kind().String())
			}
		}
		return strings.Join(parts, "/"), nil
	default:
		return "", verror.Type(verror.IDTypeMismatch, "use", "String or Path", source.Kind().String())
	}
}

// resolve implements the §4.5 resolver order: (1) host companion module;
// (2) a `<stdlib>/<name>.my` file, possibly combined with a same-named
// companion (the bridge case -- both exist, the companion extends the
// .my export); (3) a third-party `.my` file path.
func (l *Loader) resolve(name string, ev core.Evaluator) (core.Value, error) {
	stdlibPath := name + ".my"

	var myExport *value.Dict
	sawStdlibFile := false
	if l.stdlibFS != nil {
		if content, err := fs.ReadFile(l.stdlibFS, stdlibPath); err == nil {
			sawStdlibFile = true
			exported, err := l.execModule(string(content), ev)
			if err != nil {
				return nil, err
			}
			if d, ok := exported.(*value.Dict); ok {
				myExport = d
			} else {
				// A .my module that set an explicit return value exports that
				// value verbatim; a companion bridge only applies to the
				// Dict-of-locals default export shape.
				return exported, nil
			}
		}
	}

	if companion, ok := l.companions[name]; ok {
		return companion(myExport, ev)
	}
	if sawStdlibFile {
		return myExport, nil
	}

	return l.loadThirdParty(name, ev)
}

// execModule parses and runs a stdlib/third-party .my file's source in a
// fresh frame chained to the root (built-ins) scope, returning the
// module's export: its explicit return value if `return` was called, else
// the Dict `export` accumulated under core.ExportsKey, else a Dict copy of
// the frame's own locals -- exactly the three-way fallback
// func.py's `_load_mylang_module` implements.
func (l *Loader) execModule(src string, ev core.Evaluator) (core.Value, error) {
	sl, err := parse.Parse(src)
	if err != nil {
		return nil, err
	}

	frame := newModuleFrame(ev)
	pop := ev.PushFrame(frame)
	defer pop()

	if _, err := ev.ExecStatementList(sl); err != nil {
		return nil, err
	}

	if frame.HasReturn {
		return frame.ReturnValue, nil
	}
	if raw, found := frame.Scope.CustomData(core.ExportsKey); found {
		if d, ok := raw.(*value.Dict); ok {
			return d, nil
		}
	}
	return localsAsDict(frame), nil
}

func (l *Loader) loadThirdParty(name string, ev core.Evaluator) (core.Value, error) {
	path := name + ".my"
	candidates := append([]string{"."}, l.searchDirs...)
	for _, dir := range candidates {
		full := filepath.Join(dir, path)
		content, err := os.ReadFile(full)
		if err != nil {
			continue
		}
		return l.execModule(string(content), ev)
	}
	return nil, verror.Lookup(verror.IDModuleNotFound, name)
}

// newModuleFrame builds the frame a .my module executes in: a fresh scope
// chained directly to the built-ins root (found by walking the calling
// frame's own scope chain outward, since core.Evaluator exposes no direct
// root-scope accessor to avoid an eval<->loader import cycle), so a
// module's top level never sees the caller's own locals -- matching
// func.py's `stack_frame.set_parent_lexical_scope(LexicalScope(builtins_
// .create_locals_dict()))`. Depth continues from the caller's rather than
// resetting to 0, so a pathological `use` cycle still eventually trips the
// evaluator's MaxDepth guard instead of recursing forever.
func newModuleFrame(ev core.Evaluator) *core.Frame {
	root := ev.CurrentFrame().Scope
	for root.Parent() != nil {
		root = root.Parent()
	}
	scope := core.NewScope(root)
	return core.NewFrame(scope, ev.CurrentFrame().Depth+1, "<module>")
}

// localsAsDict snapshots a frame's own scope (not its parents) as an
// insertion-ordered Dict, the default export of a module that neither
// returned nor called `export`.
func localsAsDict(f *core.Frame) *value.Dict {
	keys, vals := f.Scope.Entries()
	d := value.NewDict()
	for i, k := range keys {
		d.Set(k, vals[i])
	}
	return d
}
