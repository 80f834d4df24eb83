package eval

import (
	"time"

	"github.com/arion-lang/mylang/internal/core"
	"github.com/arion-lang/mylang/internal/debug"
	"github.com/arion-lang/mylang/internal/trace"
	"github.com/arion-lang/mylang/internal/value"
	"github.com/arion-lang/mylang/internal/verror"
)

// errorClass is the built-in Error class every *verror.Error still
// in flight as a plain Go error gets wrapped into before it is visible to
// MyLang-level catch matching. Installed once at bootstrap.
var errorClassHolder struct{ cls *value.Class }

// SetBaseErrorClass installs the built-in Error class (bootstrap wiring).
func SetBaseErrorClass(cls *value.Class) { errorClassHolder.cls = cls }

// BaseErrorClass returns the built-in Error class, or nil before bootstrap.
func BaseErrorClass() *value.Class { return errorClassHolder.cls }

// wrapVError turns a bare *verror.Error into a thrown Instance of the
// built-in Error class, so catch-matching can treat every failure
// uniformly as "an Instance whose class isinstance-matches the catch
// clause", whether it came from MyLang `throw` or from a native failure.
func wrapVError(verr *verror.Error) error {
	cls := errorClassHolder.cls
	if cls == nil {
		return verr
	}
	inst := value.NewInstance(cls)
	inst.Attrs.Set(value.String("message"), value.String(verr.Message))
	inst.Attrs.Set(value.String("category"), value.String(verr.Category.String()))
	inst.Attrs.Set(value.String("id"), value.String(verr.ID))
	return core.Throw(inst)
}

// Call implements `call`: positional[0] of args is the callee-specifier;
// the remaining positional entries plus every keyed entry form the Args
// passed to the resolved callee.
func (e *Evaluator) Call(args core.Value) (core.Value, error) {
	a := value.AsArgs(args)
	callerFrame := e.CurrentFrame()

	if a.Len() == 0 {
		return nil, e.annotate(wrapVError(verror.Arity(verror.IDArgCount, "call", "1+", "0")), a.String())
	}

	spec, _ := a.At(0)
	rest := value.NewArgs()
	for _, v := range a.Positional()[1:] {
		rest.AppendPositional(v)
	}
	for _, name := range a.KeyedNames() {
		v, _ := a.Keyed(name)
		rest.SetKeyed(name, v)
	}

	callee, err := e.resolveCallee(spec)
	if err != nil {
		return nil, e.annotate(wrapErr(err), a.String())
	}

	result, err := e.dispatch(callee, rest)
	if err != nil {
		err = wrapErr(err)
		if catchSpec := callerFrame.ConsumeCatch(); catchSpec != nil {
			if thrown, ok := core.AsThrown(err); ok {
				if handled, res, herr := e.tryCatch(catchSpec, thrown); handled {
					return res, herr
				}
			}
		}
		return nil, e.annotate(err, a.String())
	}
	return result, nil
}

// resolveCallee follows the Ref-vs-lookup rule: a Ref is dereferenced, a
// String/Symbol/Path is resolved via Get, anything else is already a
// concrete callable/value and is used as-is.
func (e *Evaluator) resolveCallee(spec core.Value) (core.Value, error) {
	switch s := spec.(type) {
	case *value.Ref:
		v, ok := s.Deref()
		if !ok {
			return nil, verror.Lookup(verror.IDNoValue, "ref")
		}
		return v, nil
	case value.String, value.Symbol, *value.Path:
		return e.Get(spec)
	default:
		return spec, nil
	}
}

// dispatch invokes a resolved callee value against args.
func (e *Evaluator) dispatch(callee core.Value, args *value.Args) (core.Value, error) {
	switch c := callee.(type) {
	case *value.Function:
		return e.callFunction(c, args)
	case *value.BoundMethod:
		return e.callBoundMethod(c, args)
	case *value.Class:
		return e.instantiate(c, args)
	default:
		return nil, verror.Type(verror.IDNotCallable, callee.String())
	}
}

func (e *Evaluator) callFunction(fn *value.Function, args *value.Args) (core.Value, error) {
	if fn.Native != nil {
		return e.callNative(fn, args)
	}
	traceCall(fn.Name, len(e.CallStack()))
	if debug.GlobalDebugger != nil {
		debug.GlobalDebugger.HandleBreakpoint(fn.Name)
	}
	parent := fn.Closure
	if parent == nil {
		parent = e.root
	}
	frame, err := e.nextFrame(parent, fn.Name)
	if err != nil {
		return nil, err
	}
	if err := bindParams(frame.Scope, fn.Params, args); err != nil {
		return nil, err
	}
	pop := e.PushFrame(frame)
	defer pop()

	var result core.Value = value.UndefinedValue
	if fn.Body != nil {
		v, err := e.ExecStatementList(fn.Body)
		if err != nil {
			return nil, err
		}
		result = v
	}
	if frame.HasReturn {
		return frame.ReturnValue, nil
	}
	return result, nil
}

// callNative runs a built-in directly against the caller's own current
// frame, with no frame of its own -- built-ins read their operands from
// args directly rather than via scope-bound parameters, and control-flow
// primitives (if/loop/break/return/try/class/...) specifically depend on
// sharing the caller's frame/scope.
func (e *Evaluator) callNative(fn *value.Function, args *value.Args) (core.Value, error) {
	return fn.Native(args, e)
}

func (e *Evaluator) callBoundMethod(bm *value.BoundMethod, args *value.Args) (core.Value, error) {
	parent := bm.Fn.Closure
	if parent == nil {
		parent = e.root
	}
	frame, err := e.nextFrame(parent, bm.Fn.Name)
	if err != nil {
		return nil, err
	}
	// Inject `self` before binding the declared parameters so the body can
	// reference it unconditionally.
	frame.Scope.Bind(value.String("self"), bm.Receiver)
	if err := bindParams(frame.Scope, bm.Fn.Params, args); err != nil {
		return nil, err
	}
	pop := e.PushFrame(frame)
	defer pop()

	if bm.Fn.Native != nil {
		v, err := bm.Fn.Native(args, e)
		if err != nil {
			return nil, err
		}
		if frame.HasReturn {
			return frame.ReturnValue, nil
		}
		return v, nil
	}

	var result core.Value = value.UndefinedValue
	if bm.Fn.Body != nil {
		v, err := e.ExecStatementList(bm.Fn.Body)
		if err != nil {
			return nil, err
		}
		result = v
	}
	if frame.HasReturn {
		return frame.ReturnValue, nil
	}
	return result, nil
}

// instantiate allocates a new Instance of cls and invokes its initializer
// (bound with `self`) against args, returning the new Instance.
func (e *Evaluator) instantiate(cls *value.Class, args *value.Args) (core.Value, error) {
	inst := value.NewInstance(cls)
	if cls.Initializer != nil {
		bm := &value.BoundMethod{Receiver: inst, Fn: cls.Initializer}
		if _, err := e.callBoundMethod(bm, args); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// bindParams binds fn's declared parameters from args: positional entries
// fill undefaulted (then defaulted) parameters left to right by index,
// falling back to a same-named keyed argument, then to the parameter's own
// default expression, erroring only when a required parameter has none of
// the three.
func bindParams(scope *core.Scope, params []value.Param, args *value.Args) error {
	positional := args.Positional()
	idx := 0
	for _, p := range params {
		if idx < len(positional) {
			scope.Bind(value.String(p.Name), positional[idx])
			idx++
			continue
		}
		if v, ok := args.Keyed(p.Name); ok {
			scope.Bind(value.String(p.Name), v)
			continue
		}
		if p.HasDefault {
			scope.Bind(value.String(p.Name), p.Default)
			continue
		}
		return verror.Arity(verror.IDMissingArgument, p.Name, "function")
	}
	return nil
}

// traceCall emits a "call" trace event for fn, a no-op unless a trace
// session was installed and enabled (internal/bootstrap wires this from
// the --trace CLI flag).
func traceCall(name string, depth int) {
	if trace.GlobalTraceSession == nil || !trace.GlobalTraceSession.IsEnabled() {
		return
	}
	trace.GlobalTraceSession.Emit(trace.TraceEvent{
		Timestamp: time.Now(),
		Word:      name,
		EventType: "call",
		Depth:     depth,
	})
}

func wrapErr(err error) error {
	if verr, ok := err.(*verror.Error); ok {
		return wrapVError(verr)
	}
	return err
}
