package verror

import (
	"fmt"
	"strings"
)

// Error is a structured MyLang runtime error: a Category, a symbolic ID,
// up to three %1/%2/%3 interpolation arguments, plus the Near (statement
// window) and Where (call stack) context the evaluator annotates it with
// on the way out of a failing call.
type Error struct {
	Category Category
	ID       string
	Args     [3]string
	Near     string
	Where    []string
	Message  string

	// ClassName, when non-empty, names the user-declared Error subclass
	// (via `error key ...` or a `class` deriving from Error) this value
	// throws as; empty means the builtin Error class for Category.
	ClassName string
}

// New builds an Error, formatting Message from id's template and args.
func New(category Category, id string, args [3]string) *Error {
	return &Error{
		Category: category,
		ID:       id,
		Args:     args,
		Message:  formatMessage(id, args),
	}
}

func formatMessage(id string, args [3]string) string {
	template, ok := messageTemplates[id]
	if !ok {
		template = "%1 %2 %3"
	}
	msg := template
	msg = strings.ReplaceAll(msg, "%1", args[0])
	msg = strings.ReplaceAll(msg, "%2", args[1])
	msg = strings.ReplaceAll(msg, "%3", args[2])
	return msg
}

// Error implements the Go error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	name := e.Category.String()
	if e.ClassName != "" {
		name = e.ClassName
	}
	fmt.Fprintf(&sb, "%s: %s\n", name, e.Message)
	if e.Near != "" {
		fmt.Fprintf(&sb, "Near: %s\n", e.Near)
	}
	if len(e.Where) > 0 {
		fmt.Fprintf(&sb, "Where: %s\n", strings.Join(e.Where, " <- "))
	}
	return sb.String()
}

// WithNear attaches the statement-window context and returns e for chaining.
func (e *Error) WithNear(near string) *Error {
	e.Near = near
	return e
}

// WithWhere attaches the call stack (most recent first) and returns e.
func (e *Error) WithWhere(where []string) *Error {
	e.Where = append([]string(nil), where...)
	return e
}

func Parse(id string, args ...string) *Error  { return New(ErrParse, id, pad(args)) }
func Lookup(id string, args ...string) *Error  { return New(ErrLookup, id, pad(args)) }
func Type(id string, args ...string) *Error    { return New(ErrType, id, pad(args)) }
func Arity(id string, args ...string) *Error   { return New(ErrArity, id, pad(args)) }
func Arithmetic(id string, args ...string) *Error {
	return New(ErrArithmetic, id, pad(args))
}
func User(message string) *Error {
	return New(ErrUser, IDUserThrown, pad([]string{message}))
}
func Fatal(id string, args ...string) *Error { return New(ErrFatal, id, pad(args)) }

func pad(args []string) [3]string {
	var out [3]string
	copy(out[:], args)
	return out
}
