package native

import (
	"github.com/arion-lang/mylang/internal/core"
	"github.com/arion-lang/mylang/internal/value"
	"github.com/arion-lang/mylang/internal/verror"
)

// nativeFun builds a named closure: the first positional argument is the
// function's name, every further positional argument before the trailing
// StatementList names a required parameter, and every keyed argument
// (other than the reserved `name=` diagnostic label) names a defaulted
// parameter bound to that keyed value when the call omits it. The Function
// is bound under its name in the caller's scope and also returned.
func nativeFun(args *value.Args, ev core.Evaluator) (core.Value, error) {
	positional := args.Positional()
	if len(positional) < 2 {
		return nil, verror.Arity(verror.IDArgCount, "fun", "2+", "")
	}
	body, ok := positional[len(positional)-1].(*value.StatementList)
	if !ok {
		return nil, verror.Type(verror.IDTypeMismatch, "fun body", "StatementList", positional[len(positional)-1].Kind().String())
	}
	var params []value.Param
	for _, p := range positional[1 : len(positional)-1] {
		name, ok := wordName(p)
		if !ok {
			return nil, verror.Type(verror.IDTypeMismatch, "fun parameter", "word", p.Kind().String())
		}
		params = append(params, value.Param{Name: name})
	}
	fnName := ""
	for _, kn := range args.KeyedNames() {
		v, _ := args.Keyed(kn)
		if kn == "name" {
			if s, ok := v.(value.String); ok {
				fnName = string(s)
			}
			continue
		}
		params = append(params, value.Param{Name: kn, HasDefault: true, Default: v})
	}
	name, ok := wordName(positional[0])
	if !ok {
		return nil, verror.Type(verror.IDTypeMismatch, "fun name", "word", positional[0].Kind().String())
	}
	if fnName == "" {
		fnName = name
	}
	fn := &value.Function{Name: fnName, Params: params, Body: body, Closure: ev.CurrentFrame().Scope}
	ev.CurrentFrame().Scope.Bind(value.String(name), fn)
	return fn, nil
}

func wordName(v core.Value) (string, bool) {
	switch s := v.(type) {
	case value.String:
		return string(s), true
	case value.Symbol:
		return s.Name(), true
	default:
		return "", false
	}
}

// nativeReturn sets the current frame's return slot; every StatementList
// execution loop checks it after each statement and stops early.
func nativeReturn(args *value.Args, ev core.Evaluator) (core.Value, error) {
	var v core.Value = value.UndefinedValue
	if first, ok := args.At(0); ok {
		v = first
	}
	ev.CurrentFrame().SetReturn(v)
	return v, nil
}

// nativeIf evaluates a condition/body pair. It installs IfBlockState on
// the caller's own current scope so a sibling `else` statement later in
// the same StatementList can tell whether an earlier clause already
// matched -- the multi-clause coordination the original interpreter does
// via a custom-data record on the shared lexical scope.
func nativeIf(args *value.Args, ev core.Evaluator) (core.Value, error) {
	cond, ok := args.At(0)
	if !ok {
		return nil, verror.Arity(verror.IDArgCount, "if", "2", "0")
	}
	body, ok := args.At(1)
	if !ok {
		return nil, verror.Arity(verror.IDArgCount, "if", "2", "1")
	}
	scope := ev.CurrentFrame().Scope
	state := &core.IfBlockState{}
	scope.SetCustomData(core.IfBlockKey, state)

	if !value.Truthy(cond) {
		return value.UndefinedValue, nil
	}
	state.Matched = true
	return execBody(ev, body)
}

// nativeElse runs only if no earlier sibling `if`/`else` in the same
// scope already matched. With one argument it is an unconditional final
// clause; with two, the first is treated as a condition (an "else if").
func nativeElse(args *value.Args, ev core.Evaluator) (core.Value, error) {
	scope := ev.CurrentFrame().Scope
	raw, _, found := core.FindCustomData(scope, core.IfBlockKey)
	state, _ := raw.(*core.IfBlockState)
	if found && state != nil && state.Matched {
		return value.UndefinedValue, nil
	}
	if state == nil {
		state = &core.IfBlockState{}
		scope.SetCustomData(core.IfBlockKey, state)
	}

	var body core.Value
	if args.Len() >= 2 {
		cond, _ := args.At(0)
		if !value.Truthy(cond) {
			return value.UndefinedValue, nil
		}
		body, _ = args.At(1)
	} else {
		body, _ = args.At(0)
	}
	if body == nil {
		return nil, verror.Arity(verror.IDArgCount, "else", "1+", "0")
	}
	state.Matched = true
	return execBody(ev, body)
}

func execBody(ev core.Evaluator, body core.Value) (core.Value, error) {
	switch b := body.(type) {
	case *value.StatementList:
		return ev.ExecBlock(b.Elements)
	case *value.ExecutionBlock:
		return ev.ExecBlock(b.List.Elements)
	default:
		return body, nil
	}
}

// nativeLoop repeats body until break is called from inside it (or a
// propagated error/return ends it). The body runs directly in the caller's
// frame, so `set` inside it rebinds the caller's own variables. Each
// iteration runs against a fresh LoopControl record so `continue` only ends
// the current pass; when the loop ends, the caller scope's previous loop
// record (if any) is put back, so statements after the loop run normally.
func nativeLoop(args *value.Args, ev core.Evaluator) (core.Value, error) {
	body, ok := args.At(0)
	if !ok {
		return nil, verror.Arity(verror.IDArgCount, "loop", "1", "0")
	}
	sl, err := asStatementList(body)
	if err != nil {
		return nil, err
	}
	scope := ev.CurrentFrame().Scope
	if prev, had := scope.CustomData(core.LoopControlKey); had {
		defer scope.SetCustomData(core.LoopControlKey, prev)
	} else {
		defer scope.ClearCustomData(core.LoopControlKey)
	}
	var result core.Value = value.UndefinedValue
	for {
		frame := ev.CurrentFrame()
		ctrl := &core.LoopControl{}
		frame.Scope.SetCustomData(core.LoopControlKey, ctrl)
		v, err := ev.ExecStatementList(sl.Clone())
		if err != nil {
			return nil, err
		}
		result = v
		if ctrl.Broken || frame.HasReturn {
			break
		}
	}
	return result, nil
}

// nativeWhile is a loop-guard companion, not a loop of its own: called
// with a single condition argument from inside a `loop` body (per spec
// §4.4 and scenario S6, e.g. `loop { while ($x > 0); echo $x; ... }`), it
// sets the nearest enclosing loop's break flag and aborts the remainder
// of the current body when cond is falsy, exactly like `break` -- the
// enclosing StatementList's own execution loop (which already checks
// LoopControl.Broken after every statement) is what actually stops the
// body early; `while` never iterates anything itself.
func nativeWhile(args *value.Args, ev core.Evaluator) (core.Value, error) {
	cond, ok := args.At(0)
	if !ok {
		return nil, verror.Arity(verror.IDArgCount, "while", "1", "0")
	}
	if value.Truthy(cond) {
		return value.UndefinedValue, nil
	}
	raw, _, found := core.FindCustomData(ev.CurrentFrame().Scope, core.LoopControlKey)
	if !found {
		return nil, verror.Type(verror.IDInvalidOperation, "while", "outside loop")
	}
	raw.(*core.LoopControl).Broken = true
	return value.UndefinedValue, nil
}

func asStatementList(v core.Value) (*value.StatementList, error) {
	switch b := v.(type) {
	case *value.StatementList:
		return b, nil
	case *value.ExecutionBlock:
		return b.List, nil
	default:
		return nil, verror.Type(verror.IDTypeMismatch, "loop body", "StatementList", v.Kind().String())
	}
}

// nativeBreak stops the nearest enclosing loop after the current statement.
func nativeBreak(args *value.Args, ev core.Evaluator) (core.Value, error) {
	raw, _, found := core.FindCustomData(ev.CurrentFrame().Scope, core.LoopControlKey)
	if !found {
		return nil, verror.Type(verror.IDInvalidOperation, "break", "outside loop")
	}
	raw.(*core.LoopControl).Broken = true
	return value.UndefinedValue, nil
}

// nativeContinue ends the current pass of the nearest enclosing loop.
func nativeContinue(args *value.Args, ev core.Evaluator) (core.Value, error) {
	raw, _, found := core.FindCustomData(ev.CurrentFrame().Scope, core.LoopControlKey)
	if !found {
		return nil, verror.Type(verror.IDInvalidOperation, "continue", "outside loop")
	}
	raw.(*core.LoopControl).Continuing = true
	return value.UndefinedValue, nil
}

// nativeFor iterates an Array's elements, a Dict's values or an Args'
// positional entries, running body once per iteration in a fresh child
// frame. The loop variable is bound in the caller's own scope, not in that
// per-iteration frame, so it stays visible after the loop ends. When the
// loop ends, the caller scope's previous loop record (if any) is put back.
func nativeFor(args *value.Args, ev core.Evaluator) (core.Value, error) {
	nameVal, ok := args.At(0)
	if !ok {
		return nil, verror.Arity(verror.IDArgCount, "for", "3", "0")
	}
	name, ok := wordName(nameVal)
	if !ok {
		return nil, verror.Type(verror.IDTypeMismatch, "for variable", "word", nameVal.Kind().String())
	}
	iterable, ok := args.At(1)
	if !ok {
		return nil, verror.Arity(verror.IDArgCount, "for", "3", "1")
	}
	bodyVal, ok := args.At(2)
	if !ok {
		return nil, verror.Arity(verror.IDArgCount, "for", "3", "2")
	}
	bodySL, err := asStatementList(bodyVal)
	if err != nil {
		return nil, err
	}

	elements, err := iterElements(iterable)
	if err != nil {
		return nil, err
	}

	var result core.Value = value.UndefinedValue
	frame := ev.CurrentFrame()
	if prev, had := frame.Scope.CustomData(core.LoopControlKey); had {
		defer frame.Scope.SetCustomData(core.LoopControlKey, prev)
	} else {
		defer frame.Scope.ClearCustomData(core.LoopControlKey)
	}
	for _, el := range elements {
		frame.Scope.Bind(value.String(name), el)
		ctrl := &core.LoopControl{}
		frame.Scope.SetCustomData(core.LoopControlKey, ctrl)
		v, err := ev.ExecBlock(bodySL.Clone().Elements)
		if err != nil {
			return nil, err
		}
		result = v
		if ctrl.Broken || frame.HasReturn {
			break
		}
	}
	return result, nil
}

func iterElements(v core.Value) ([]core.Value, error) {
	switch t := v.(type) {
	case *value.Array:
		return t.Elements(), nil
	case *value.Dict:
		return t.Values(), nil
	case *value.Args:
		return t.Positional(), nil
	default:
		return nil, verror.Type(verror.IDTypeMismatch, "for iterable", "Array/Dict/Args", v.Kind().String())
	}
}
