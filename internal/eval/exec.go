package eval

import (
	"github.com/arion-lang/mylang/internal/core"
	"github.com/arion-lang/mylang/internal/value"
	"github.com/arion-lang/mylang/internal/verror"
)

// ExecStatementList runs sl's statements in order against the current
// frame (it never pushes a frame of its own -- that is the job of whatever
// wraps it: a function call, an ExecutionBlock, `for`'s per-iteration
// frame, or `class`'s body execution). Execution stops early once the
// frame's return slot is set or the nearest enclosing loop-control record
// reports break/continue.
func (e *Evaluator) ExecStatementList(slv core.Value) (core.Value, error) {
	sl, ok := slv.(*value.StatementList)
	if !ok {
		return nil, verror.Type(verror.IDTypeMismatch, "statement list", "StatementList", slv.Kind().String())
	}
	frame := e.CurrentFrame()
	var result core.Value = value.UndefinedValue
	for _, stmt := range sl.Elements {
		v, err := e.execStatement(value.AsArgs(stmt))
		if err != nil {
			sl.Aborted = true
			return nil, err
		}
		result = v
		if frame.HasReturn {
			sl.Aborted = true
			break
		}
		if lc, _, found := core.FindCustomData(frame.Scope, core.LoopControlKey); found {
			if ctrl := lc.(*core.LoopControl); ctrl.Broken || ctrl.Continuing {
				sl.Aborted = true
				break
			}
		}
	}
	return result, nil
}

// ExecBlock evaluates elements as an ExecutionBlock: a fresh child frame
// inheriting the caller's lexical scope, run to completion immediately. A
// `return` executed inside the block also sets the caller's frame return
// slot, so it ends the enclosing body (e.g. a function body around an `if`).
func (e *Evaluator) ExecBlock(elements []core.Value) (core.Value, error) {
	parent := e.CurrentFrame()
	frame, err := e.nextFrame(parent.Scope, "<block>")
	if err != nil {
		return nil, err
	}
	pop := e.PushFrame(frame)
	defer pop()
	sl := value.NewStatementList(elements...)
	result, err := e.ExecStatementList(sl)
	if err != nil {
		return nil, err
	}
	if frame.HasReturn {
		parent.SetReturn(frame.ReturnValue)
		return frame.ReturnValue, nil
	}
	return result, nil
}
