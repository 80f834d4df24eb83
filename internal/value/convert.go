package value

import "github.com/arion-lang/mylang/internal/core"

// AsArgs type-asserts v to *Args, wrapping a bare non-Args value in a
// single-positional Args the way call dispatch does for a statement whose
// head position is not already an Args.
func AsArgs(v core.Value) *Args {
	if a, ok := v.(*Args); ok {
		return a
	}
	return ArgsFromPositional(v)
}

// Truthy implements MyLang's truthiness rule: everything is truthy except
// false, null and undefined.
func Truthy(v core.Value) bool {
	switch t := v.(type) {
	case Bool:
		return bool(t)
	case Null:
		return false
	case Undefined:
		return false
	default:
		return true
	}
}

// IsNullish reports whether v is Null or Undefined (used by the
// attribute-access table's "none-path" LookupError rule).
func IsNullish(v core.Value) bool {
	switch v.(type) {
	case Null, Undefined:
		return true
	default:
		return false
	}
}
