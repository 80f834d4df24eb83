// Package bootstrap assembles a ready-to-run evaluator: native built-ins
// registered, the base Error class wired for host-level error wrapping,
// the module loader installed, and the script's own command-line
// arguments bound into the root scope -- the single place cmd/mylang's
// subcommands (run/eval/repl/check) call into to get from "nothing" to
// "an evaluator that behaves like the spec".
package bootstrap

import (
	"io"

	"github.com/arion-lang/mylang/internal/config"
	"github.com/arion-lang/mylang/internal/core"
	"github.com/arion-lang/mylang/internal/debug"
	"github.com/arion-lang/mylang/internal/eval"
	"github.com/arion-lang/mylang/internal/loader"
	"github.com/arion-lang/mylang/internal/loader/stdlib"
	"github.com/arion-lang/mylang/internal/native"
	"github.com/arion-lang/mylang/internal/trace"
	"github.com/arion-lang/mylang/internal/value"
)

// New builds an Evaluator with every built-in bound, the base Error
// class registered for host-level error wrapping (eval.wrapVError), and
// a Loader installed that resolves `use` against the embedded stdlib
// .my files, then the current directory, then searchDirs.
func New(stdout, stderr io.Writer, stdin io.Reader, searchDirs []string) *eval.Evaluator {
	ev := eval.New(stdout, stderr, stdin)
	errorClass := native.Register(ev.RootScope())
	eval.SetBaseErrorClass(errorClass)
	ev.SetLoader(loader.New(stdlib.FS(), searchDirs))
	return ev
}

// InitObservability wires internal/trace and internal/debug in from
// cfg.TraceOn (the --trace flag / mylang.yaml `trace:` / MYLANG_DEBUG
// env var, per internal/config's layering) -- both packages are no-ops
// by construction when never enabled, so the debugger is always
// initialized (cheap: an empty breakpoint map) while the trace session
// only opens a sink and starts emitting when tracing was asked for.
func InitObservability(cfg *config.Config) error {
	debug.InitDebugger()
	if !cfg.TraceOn {
		return nil
	}
	if err := trace.InitTrace("", 50); err != nil {
		return err
	}
	trace.GlobalTraceSession.Enable(trace.TraceFilters{})
	return nil
}

// InjectArgs binds the script's own command-line arguments (the ones
// following the script path, or following `--` in the REPL) as `args`,
// an Array of String, in the evaluator's root scope -- this repo's
// equivalent of original_source/mylang/stdlib/shell/__init__.py binding
// `sys.argv` as `_py_args` into the module-local scope.
func InjectArgs(ev *eval.Evaluator, args []string) {
	elements := make([]core.Value, len(args))
	for i, a := range args {
		elements[i] = value.String(a)
	}
	ev.RootScope().Bind(value.String("args"), value.NewArray(elements...))
}
