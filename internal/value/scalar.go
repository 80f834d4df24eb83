// Package value implements the MyLang value model: the concrete types that
// satisfy core.Value (Null, Undefined, Bool, Int, Float, String, Symbol,
// Dict, Args, Array, Path, Dots, Function, BoundMethod, Class, Instance,
// Ref, StatementList, ExecutionBlock, Operation).
package value

import (
	"fmt"
	"strconv"

	"github.com/ericlagergren/decimal"

	"github.com/arion-lang/mylang/internal/core"
)

// Null is the singleton "intentionally absent" value.
type Null struct{}

var NullValue = Null{}

func (Null) Kind() core.Kind          { return core.KindNull }
func (Null) String() string           { return "null" }
func (Null) Equal(o core.Value) bool  { _, ok := o.(Null); return ok }

// Undefined is the singleton "never assigned" value, distinct from Null.
type Undefined struct{}

var UndefinedValue = Undefined{}

func (Undefined) Kind() core.Kind         { return core.KindUndefined }
func (Undefined) String() string          { return "undefined" }
func (Undefined) Equal(o core.Value) bool { _, ok := o.(Undefined); return ok }

// Bool wraps a boolean.
type Bool bool

func (b Bool) Kind() core.Kind { return core.KindBool }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (b Bool) Equal(o core.Value) bool {
	other, ok := o.(Bool)
	return ok && b == other
}

// True/False are the canonical singletons exposed as `true`/`false`.
var (
	True  = Bool(true)
	False = Bool(false)
)

// BoolOf converts a Go bool into the canonical Bool value.
func BoolOf(b bool) Bool {
	if b {
		return True
	}
	return False
}

// Int is a 64-bit signed integer (Open Question (i) of the spec).
type Int int64

func (i Int) Kind() core.Kind { return core.KindInt }
func (i Int) String() string  { return strconv.FormatInt(int64(i), 10) }
func (i Int) Equal(o core.Value) bool {
	other, ok := o.(Int)
	return ok && i == other
}

// Float is backed by decimal.Big at decimal128 precision (34 significant
// digits, round-half-to-even) rather than a native float64, so that e.g.
// 0.3 * -4 round-trips exactly as -1.2.
type Float struct {
	big *decimal.Big
}

// decimal128Context mirrors the teacher's DecimalValue precision choice.
var decimal128Context = decimal.Context{Precision: 34, RoundingMode: decimal.ToNearestEven}

// NewFloat builds a Float from a float64 literal (parser entry point).
func NewFloat(f float64) Float {
	big := new(decimal.Big)
	big.Context = decimal128Context
	big.SetFloat64(f)
	return Float{big: big}
}

// NewFloatFromString parses a decimal literal exactly, avoiding the binary
// float64 round trip entirely.
func NewFloatFromString(s string) (Float, bool) {
	big := new(decimal.Big)
	big.Context = decimal128Context
	if _, ok := big.SetString(s); !ok {
		return Float{}, false
	}
	return Float{big: big}, true
}

// FloatFromBig wraps an already-computed decimal.Big (used by arithmetic
// natives that produce a new Float from two operands).
func FloatFromBig(b *decimal.Big) Float {
	b.Context = decimal128Context
	return Float{big: b}
}

func (f Float) Big() *decimal.Big { return f.big }

func (f Float) Kind() core.Kind { return core.KindFloat }
func (f Float) String() string {
	if f.big == nil {
		return "0"
	}
	return f.big.String()
}
func (f Float) Equal(o core.Value) bool {
	other, ok := o.(Float)
	if !ok || f.big == nil || other.big == nil {
		return ok && f.big == other.big
	}
	return f.big.Cmp(other.big) == 0
}

// String is a MyLang text value; value equality, used as a Dict/Args key
// under its normalized content (not identity), unlike Symbol.
type String string

func (s String) Kind() core.Kind { return core.KindString }
func (s String) String() string  { return string(s) }
func (s String) Equal(o core.Value) bool {
	other, ok := o.(String)
	return ok && s == other
}

// Symbol is an interned-looking but identity-distinct atom: two Symbol
// values created separately never compare or key equal even if they share
// a display name. See core.IdentityKeyed.
type Symbol struct {
	name *string
}

// NewSymbol allocates a fresh Symbol with the given display name. Every
// call produces a distinct identity even for the same name.
func NewSymbol(name string) Symbol {
	n := name
	return Symbol{name: &n}
}

func (s Symbol) Name() string {
	if s.name == nil {
		return ""
	}
	return *s.name
}

func (s Symbol) Kind() core.Kind { return core.KindSymbol }
func (s Symbol) String() string  { return fmt.Sprintf("symbol(%s)", s.Name()) }
func (s Symbol) Equal(o core.Value) bool {
	other, ok := o.(Symbol)
	return ok && s.name == other.name
}

// IdentityTag satisfies core.IdentityKeyed: the pointer itself is the identity.
func (s Symbol) IdentityTag() any { return s.name }
