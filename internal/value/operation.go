package value

import (
	"strings"

	"github.com/arion-lang/mylang/internal/core"
)

// Operation is an unevaluated unary or binary operator expression produced
// by the parser for MyLang's infix/prefix operators (`== - + * > >= < <=
// ! $ &`), parsed left-to-right with no precedence levels. Evaluating an
// Operation dispatches to the `op` builtin with Op and Operands, each
// already evaluated per ordinary call-argument rules -- except `$`'s and
// `&`'s sole operand, which is left as the raw word/symbol/path specifier
// `get`/`ref` expect (`$x` is sugar for `get x`, `&x` for `ref x`).
type Operation struct {
	Op       string
	Operands []core.Value // len 1 (unary) or 2 (binary)
}

// NewUnaryOperation builds a one-operand Operation (e.g. `!flag`, `$path`).
func NewUnaryOperation(op string, operand core.Value) *Operation {
	return &Operation{Op: op, Operands: []core.Value{operand}}
}

// NewBinaryOperation builds a two-operand Operation (e.g. `a + b`).
func NewBinaryOperation(op string, lhs, rhs core.Value) *Operation {
	return &Operation{Op: op, Operands: []core.Value{lhs, rhs}}
}

func (o *Operation) Kind() core.Kind { return core.KindOperation }

func (o *Operation) String() string {
	parts := make([]string, len(o.Operands))
	for i, v := range o.Operands {
		parts[i] = v.String()
	}
	if len(parts) == 1 {
		return o.Op + parts[0]
	}
	return strings.Join([]string{parts[0], o.Op, parts[1]}, " ")
}

func (o *Operation) Equal(other core.Value) bool {
	oo, ok := other.(*Operation)
	if !ok || o.Op != oo.Op || len(o.Operands) != len(oo.Operands) {
		return false
	}
	for i, v := range o.Operands {
		if !v.Equal(oo.Operands[i]) {
			return false
		}
	}
	return true
}
