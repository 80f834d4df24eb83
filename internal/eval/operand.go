package eval

import (
	"github.com/arion-lang/mylang/internal/core"
	"github.com/arion-lang/mylang/internal/value"
)

// execStatement runs one top-level statement: a keyed-only Args (`x=5`) or
// a lone `=` Operation (`a.b = v`, produced by assignment/complex-lvalue
// syntax) is an assignment routed to Set; everything else is a call,
// routed to Call after evalArgs resolves its arguments.
func (e *Evaluator) execStatement(raw *value.Args) (core.Value, error) {
	if raw.IsKeyedOnly() {
		args, err := e.evalArgs(raw)
		if err != nil {
			return nil, err
		}
		return e.Set(args)
	}
	if assign, ok := soleAssignment(raw); ok {
		rhs, err := e.evalOperand(assign.Operands[1])
		if err != nil {
			return nil, err
		}
		resolved := value.NewArgs()
		resolved.AppendPositional(value.NewBinaryOperation("=", assign.Operands[0], rhs))
		return e.Set(resolved)
	}
	args, err := e.evalArgs(raw)
	if err != nil {
		return nil, err
	}
	return e.Call(args)
}

// soleAssignment reports whether raw is a single positional `=` Operation
// and nothing else -- the shape produced when an entire statement is a
// path/word assignment rather than a call.
func soleAssignment(raw *value.Args) (*value.Operation, bool) {
	if raw.Len() != 1 || len(raw.KeyedNames()) != 0 {
		return nil, false
	}
	v, _ := raw.At(0)
	op, ok := v.(*value.Operation)
	if !ok || op.Op != "=" || len(op.Operands) != 2 {
		return nil, false
	}
	return op, true
}

// evalArgs resolves every entry of a statement's Args before it is routed
// to Call or Set, mirroring the original interpreter's "evaluate every
// incomplete expression reachable from this statement's arguments" pass:
// an ExecutionBlock runs immediately, an Operation dispatches to `op`, and
// a Dict/Array literal has its own elements resolved the same way.
// Everything else -- words, Paths, Refs, an inert StatementList destined
// for a control-flow native's own body parameter -- passes through
// unevaluated; deciding whether those run is the receiving native's job,
// not this one's.
func (e *Evaluator) evalArgs(a *value.Args) (*value.Args, error) {
	out := value.NewArgs()
	for _, v := range a.Positional() {
		rv, err := e.evalOperand(v)
		if err != nil {
			return nil, err
		}
		out.AppendPositional(rv)
	}
	for _, name := range a.KeyedNames() {
		v, _ := a.Keyed(name)
		rv, err := e.evalOperand(v)
		if err != nil {
			return nil, err
		}
		out.SetKeyed(name, rv)
	}
	return out, nil
}

// evalOperand resolves a single argument-position value. See evalArgs.
func (e *Evaluator) evalOperand(v core.Value) (core.Value, error) {
	switch t := v.(type) {
	case *value.ExecutionBlock:
		return e.ExecBlock(t.List.Elements)
	case *value.Operation:
		return e.evalOperation(t)
	case *value.Dict:
		out := value.NewDict()
		keys := t.Keys()
		values := t.Values()
		for i, k := range keys {
			rv, err := e.evalOperand(values[i])
			if err != nil {
				return nil, err
			}
			out.Set(k, rv)
		}
		return out, nil
	case *value.Array:
		out := value.NewArray()
		for _, el := range t.Elements() {
			rv, err := e.evalOperand(el)
			if err != nil {
				return nil, err
			}
			out.Append(rv)
		}
		return out, nil
	default:
		return v, nil
	}
}

// evalOperation evaluates op's operands (raw for `$`/`&`'s sole specifier
// and for `=`'s lvalue target, recursively resolved otherwise) and
// dispatches to the `op` builtin bound in the root scope.
func (e *Evaluator) evalOperation(op *value.Operation) (core.Value, error) {
	if op.Op == "=" {
		// A positional assignment entry handed to a call (`set a.b=5`):
		// the lvalue stays raw and only the right-hand side is resolved,
		// leaving the resolved `=` node for Set to apply.
		rhs, err := e.evalOperand(op.Operands[1])
		if err != nil {
			return nil, err
		}
		return value.NewBinaryOperation("=", op.Operands[0], rhs), nil
	}

	operands := make([]core.Value, len(op.Operands))
	switch op.Op {
	case "$", "&":
		operands[0] = op.Operands[0]
	default:
		for i, operand := range op.Operands {
			rv, err := e.evalOperand(operand)
			if err != nil {
				return nil, err
			}
			operands[i] = rv
		}
	}

	opFn, err := e.Get(value.String("op"))
	if err != nil {
		return nil, err
	}
	callArgs := value.NewArgs()
	callArgs.AppendPositional(value.String(op.Op))
	for _, operand := range operands {
		callArgs.AppendPositional(operand)
	}
	return e.dispatch(opFn, callArgs)
}
