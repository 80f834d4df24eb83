// Package verror implements structured error handling for the MyLang
// runtime. Every *Error carries a Category, a symbolic ID, up to three
// interpolation arguments, and the Near/Where diagnostic context the
// evaluator attaches on the way out.
package verror

// Category classifies an Error into MyLang's taxonomy.
type Category uint16

const (
	ErrParse      Category = 100 // malformed source handed to the evaluator by the parse adaptor
	ErrLookup     Category = 200 // undefined word, missing dict/attr key, ref to a missing binding
	ErrType       Category = 300 // wrong value kind at a call/path/operator site
	ErrArity      Category = 400 // wrong positional/keyed argument count
	ErrArithmetic Category = 500 // division by zero, decimal overflow, domain errors
	ErrUser       Category = 600 // raised by `throw`/`error` from MyLang source itself
	ErrFatal      Category = 900 // stack overflow, interpreter invariant violations
)

func (c Category) String() string {
	switch c {
	case ErrParse:
		return "ParseError"
	case ErrLookup:
		return "LookupError"
	case ErrType:
		return "TypeError"
	case ErrArity:
		return "ArityError"
	case ErrArithmetic:
		return "ArithmeticError"
	case ErrUser:
		return "UserError"
	case ErrFatal:
		return "Fatal"
	default:
		return "Error"
	}
}

// Error IDs: symbolic identifiers for programmatic handling, grouped by
// the category that raises them.
const (
	// Parse
	IDUnexpectedEOF  = "unexpected-eof"
	IDInvalidSyntax  = "invalid-syntax"
	IDUnclosedBlock  = "unclosed-block"
	IDInvalidLiteral = "invalid-literal"

	// Lookup
	IDNoValue        = "no-value"
	IDNoSuchKey      = "no-such-key"
	IDNoSuchField    = "no-such-field"
	IDNonePath       = "none-path"
	IDOutOfBounds    = "out-of-bounds"
	IDModuleNotFound = "module-not-found"

	// Type
	IDTypeMismatch      = "type-mismatch"
	IDNotCallable       = "not-callable"
	IDInvalidOperation  = "invalid-operation"
	IDInvalidPathTarget = "invalid-path-target"
	IDImmutableTarget   = "immutable-target"

	// Arity
	IDArgCount        = "arg-count"
	IDMissingArgument = "missing-argument"
	IDKeyedOnly       = "keyed-only"

	// Arithmetic
	IDDivByZero         = "div-zero"
	IDDecimalPrecision  = "decimal-precision"
	IDInvalidDecimal    = "invalid-decimal"
	IDSqrtNegative      = "sqrt-negative"

	// User
	IDUserThrown = "user-thrown"

	// Fatal
	IDStackOverflow   = "stack-overflow"
	IDAssertionFailed = "assertion-failed"
)

var messageTemplates = map[string]string{
	IDUnexpectedEOF:  "unexpected end of input",
	IDInvalidSyntax:  "invalid syntax: %1",
	IDUnclosedBlock:  "unclosed block: missing %1",
	IDInvalidLiteral: "invalid literal: %1",

	IDNoValue:        "no value bound for '%1'",
	IDNoSuchKey:      "no such key: %1",
	IDNoSuchField:    "no such field '%1' on %2",
	IDNonePath:       "path traversal through %1 value at segment '%2'",
	IDOutOfBounds:    "index %1 out of bounds (length %2)",
	IDModuleNotFound: "module not found: %1",

	IDTypeMismatch:      "type mismatch for '%1': expected %2, got %3",
	IDNotCallable:       "value is not callable: %1",
	IDInvalidOperation:  "invalid operation '%1' for %2",
	IDInvalidPathTarget: "cannot assign through path into %1",
	IDImmutableTarget:   "cannot assign to %1",

	IDArgCount:        "wrong argument count for '%1': expected %2, got %3",
	IDMissingArgument: "missing required argument '%1' for '%2'",
	IDKeyedOnly:       "'%1' accepts keyed arguments only",

	IDDivByZero:        "division by zero",
	IDDecimalPrecision: "decimal precision exceeded (%1 significant digits)",
	IDInvalidDecimal:   "invalid decimal literal: %1",
	IDSqrtNegative:     "square root of negative number: %1",

	IDUserThrown: "%1",

	IDStackOverflow:   "call stack depth exceeded (%1)",
	IDAssertionFailed: "assertion failed: %1",
}
