package native

import (
	"github.com/ericlagergren/decimal"

	"github.com/arion-lang/mylang/internal/core"
	"github.com/arion-lang/mylang/internal/value"
	"github.com/arion-lang/mylang/internal/verror"
)

// decimalContext mirrors value.Float's decimal128 precision so operator
// results round-trip through the same rounding rule as literals do.
var decimalContext = decimal.Context{Precision: 34, RoundingMode: decimal.ToNearestEven}

// nativeOp evaluates a *value.Operation: args carries the operator name
// followed by its operands, set by the evaluator at the point it
// encounters an Operation node produced by the parser for MyLang's
// left-to-right, no-precedence infix operators. `$`/`&` are the two
// operators whose sole operand is a raw, unevaluated word/symbol/path
// specifier rather than a value -- `$x` is sugar for `get x`, `&x` for
// `ref x`, exactly as MyLang's operator table defines them.
func nativeOp(args *value.Args, ev core.Evaluator) (core.Value, error) {
	opVal, ok := args.At(0)
	if !ok {
		return nil, verror.Arity(verror.IDArgCount, "op", "2+", "0")
	}
	op, ok := opVal.(value.String)
	if !ok {
		return nil, verror.Type(verror.IDTypeMismatch, "op", "string", opVal.Kind().String())
	}
	operands := args.Positional()[1:]

	switch string(op) {
	case "$":
		if len(operands) != 1 {
			return nil, verror.Arity(verror.IDArgCount, "$", "1", "")
		}
		oneArg := value.NewArgs()
		oneArg.AppendPositional(operands[0])
		return nativeGet(oneArg, ev)
	case "&":
		if len(operands) != 1 {
			return nil, verror.Arity(verror.IDArgCount, "&", "1", "")
		}
		oneArg := value.NewArgs()
		oneArg.AppendPositional(operands[0])
		return nativeRef(oneArg, ev)
	}

	if len(operands) == 1 {
		return unaryOp(string(op), operands[0])
	}
	if len(operands) == 2 {
		return binaryOp(string(op), operands[0], operands[1])
	}
	return nil, verror.Arity(verror.IDArgCount, "op", "1-2", "")
}

func unaryOp(op string, v core.Value) (core.Value, error) {
	switch op {
	case "!":
		return value.BoolOf(!value.Truthy(v)), nil
	case "-":
		if i, ok := v.(value.Int); ok {
			return -i, nil
		}
		big, ok := asBig(v)
		if !ok {
			return nil, verror.Type(verror.IDInvalidOperation, "-", v.Kind().String())
		}
		neg := new(decimal.Big)
		decimalContext.Sub(neg, new(decimal.Big), big)
		return value.FloatFromBig(neg), nil
	default:
		return nil, verror.Type(verror.IDInvalidOperation, op, v.Kind().String())
	}
}

func binaryOp(op string, a, b core.Value) (core.Value, error) {
	switch op {
	case "==":
		return value.BoolOf(a.Equal(b)), nil
	case "+":
		if as, ok := a.(value.String); ok {
			if bs, ok := b.(value.String); ok {
				return value.String(string(as) + string(bs)), nil
			}
		}
		return arith(op, a, b)
	case "-", "*":
		return arith(op, a, b)
	case ">", ">=", "<", "<=":
		return compare(op, a, b)
	default:
		return nil, verror.Type(verror.IDInvalidOperation, op, a.Kind().String())
	}
}

func arith(op string, a, b core.Value) (core.Value, error) {
	if ai, aok := a.(value.Int); aok {
		if bi, bok := b.(value.Int); bok {
			switch op {
			case "+":
				return ai + bi, nil
			case "-":
				return ai - bi, nil
			case "*":
				return ai * bi, nil
			}
		}
	}
	ab, ok := asBig(a)
	if !ok {
		return nil, verror.Type(verror.IDInvalidOperation, op, a.Kind().String())
	}
	bb, ok := asBig(b)
	if !ok {
		return nil, verror.Type(verror.IDInvalidOperation, op, b.Kind().String())
	}
	result := new(decimal.Big)
	switch op {
	case "+":
		decimalContext.Add(result, ab, bb)
	case "-":
		decimalContext.Sub(result, ab, bb)
	case "*":
		decimalContext.Mul(result, ab, bb)
	default:
		return nil, verror.Type(verror.IDInvalidOperation, op, "")
	}
	return value.FloatFromBig(result), nil
}

func compare(op string, a, b core.Value) (core.Value, error) {
	if as, ok := a.(value.String); ok {
		if bs, ok := b.(value.String); ok {
			return value.BoolOf(stringCompare(op, string(as), string(bs))), nil
		}
	}
	ab, ok := asBig(a)
	if !ok {
		return nil, verror.Type(verror.IDInvalidOperation, op, a.Kind().String())
	}
	bb, ok := asBig(b)
	if !ok {
		return nil, verror.Type(verror.IDInvalidOperation, op, b.Kind().String())
	}
	cmp := ab.Cmp(bb)
	switch op {
	case ">":
		return value.BoolOf(cmp > 0), nil
	case ">=":
		return value.BoolOf(cmp >= 0), nil
	case "<":
		return value.BoolOf(cmp < 0), nil
	case "<=":
		return value.BoolOf(cmp <= 0), nil
	default:
		return nil, verror.Type(verror.IDInvalidOperation, op, "")
	}
}

func stringCompare(op, a, b string) bool {
	switch op {
	case ">":
		return a > b
	case ">=":
		return a >= b
	case "<":
		return a < b
	case "<=":
		return a <= b
	default:
		return false
	}
}

func asBig(v core.Value) (*decimal.Big, bool) {
	switch t := v.(type) {
	case value.Int:
		return decimal.New(int64(t), 0), true
	case value.Float:
		return t.Big(), true
	default:
		return nil, false
	}
}
