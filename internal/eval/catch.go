package eval

import (
	"github.com/arion-lang/mylang/internal/core"
	"github.com/arion-lang/mylang/internal/value"
	"github.com/arion-lang/mylang/internal/verror"
)

// tryCatch walks spec's clauses in order, each of the form
// "ErrorClass1 ErrorClass2 ... catch-clause-body", looking for one whose
// listed classes isinstance-match thrown. A match runs its body in a fresh
// frame (with thrown bound under spec.Key if one was given) and reports
// handled=true. No match reports handled=false so the caller re-throws.
func (e *Evaluator) tryCatch(spec *core.CatchSpec, thrown core.Value) (handled bool, result core.Value, err error) {
	inst, isInstance := thrown.(*value.Instance)

	for _, clauseVal := range spec.Body {
		clause := value.AsArgs(clauseVal)
		positional := clause.Positional()
		if len(positional) == 0 {
			continue
		}
		body, ok := positional[len(positional)-1].(*value.StatementList)
		if !ok {
			continue
		}
		classSpecs := positional[:len(positional)-1]

		matched := len(classSpecs) == 0 // a bare body with no class filter catches anything
		for _, cs := range classSpecs {
			cls, rerr := e.resolveClassSpec(cs)
			if rerr != nil {
				continue
			}
			if isInstance && inst.IsInstanceOf(cls) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		frame, ferr := e.nextFrame(e.CurrentFrame().Scope, "<catch>")
		if ferr != nil {
			return true, nil, ferr
		}
		if spec.HasKey {
			frame.Scope.Bind(value.String(spec.Key), thrown)
		}
		pop := e.PushFrame(frame)
		res, rerr := e.ExecStatementList(body)
		pop()
		if rerr != nil {
			return true, nil, rerr
		}
		if frame.HasReturn {
			return true, frame.ReturnValue, nil
		}
		return true, res, nil
	}
	return false, nil, nil
}

func (e *Evaluator) resolveClassSpec(v core.Value) (*value.Class, error) {
	switch c := v.(type) {
	case *value.Class:
		return c, nil
	case value.String, value.Symbol:
		resolved, err := e.Get(v)
		if err != nil {
			return nil, err
		}
		cls, ok := resolved.(*value.Class)
		if !ok {
			return nil, verror.Type(verror.IDTypeMismatch, "catch class", "Class", resolved.Kind().String())
		}
		return cls, nil
	default:
		return nil, verror.Type(verror.IDTypeMismatch, "catch class", "Class", v.Kind().String())
	}
}
