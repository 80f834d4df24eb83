// Package eval implements the MyLang evaluator: StatementList execution,
// call/get/set dispatch, path traversal and the closure/frame machinery
// native built-ins are written against via core.Evaluator.
package eval

import (
	"fmt"
	"io"

	"github.com/arion-lang/mylang/internal/core"
	"github.com/arion-lang/mylang/internal/verror"
)

// MaxDepth bounds recursive Call nesting, raising a Fatal stack-overflow
// error rather than letting a runaway MyLang recursion crash the host
// process with a real Go stack overflow.
const MaxDepth = 4000

// Evaluator is the concrete core.Evaluator implementation.
type Evaluator struct {
	root   *core.Scope
	frames []*core.Frame
	loader core.Loader

	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader
}

// New builds an Evaluator with a fresh root (global) scope and pushes the
// top-level frame scripts execute against.
func New(stdout io.Writer, stderr io.Writer, stdin io.Reader) *Evaluator {
	root := core.NewScope(nil)
	e := &Evaluator{root: root, stdout: stdout, stderr: stderr, stdin: stdin}
	top := core.NewFrame(root, 0, "<top-level>")
	e.frames = []*core.Frame{top}
	return e
}

// SetLoader installs the module loader (wired after construction since
// internal/loader itself depends on core.Evaluator, not the reverse).
func (e *Evaluator) SetLoader(l core.Loader) { e.loader = l }

// RootScope exposes the global scope so bootstrap/native registration can
// bind built-ins before any script runs.
func (e *Evaluator) RootScope() *core.Scope { return e.root }

func (e *Evaluator) CurrentFrame() *core.Frame { return e.frames[len(e.frames)-1] }

func (e *Evaluator) Lookup(key core.Value) (core.Value, bool) {
	return e.CurrentFrame().Scope.Get(key)
}

func (e *Evaluator) PushFrame(f *core.Frame) func() {
	e.frames = append(e.frames, f)
	return func() {
		e.frames = e.frames[:len(e.frames)-1]
	}
}

func (e *Evaluator) CallStack() []string {
	names := make([]string, 0, len(e.frames))
	for i := len(e.frames) - 1; i >= 0; i-- {
		names = append(names, e.frames[i].Name)
	}
	return names
}

func (e *Evaluator) Loader() core.Loader { return e.loader }

func (e *Evaluator) Stdout() io.Writer { return e.stdout }
func (e *Evaluator) Stderr() io.Writer { return e.stderr }
func (e *Evaluator) Stdin() io.Reader  { return e.stdin }

// nextFrame allocates a child frame parented to closure (or the current
// scope, for constructs that inherit the caller's lexical scope rather
// than a captured one), enforcing MaxDepth.
func (e *Evaluator) nextFrame(parentScope *core.Scope, name string) (*core.Frame, error) {
	depth := e.CurrentFrame().Depth + 1
	if depth > MaxDepth {
		return nil, verror.Fatal(verror.IDStackOverflow, fmt.Sprintf("%d", MaxDepth))
	}
	return core.NewFrame(parentScope, depth, name), nil
}

// annotate attaches Near/Where context to a *verror.Error bubbling out of
// dispatch, leaving any other error type (including *core.Thrown, which
// already carries a full MyLang Instance) untouched.
func (e *Evaluator) annotate(err error, near string) error {
	if verr, ok := err.(*verror.Error); ok {
		if verr.Near == "" {
			verr.WithNear(near)
		}
		if len(verr.Where) == 0 {
			verr.WithWhere(e.CallStack())
		}
	}
	return err
}
