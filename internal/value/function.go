package value

import (
	"fmt"

	"github.com/arion-lang/mylang/internal/core"
)

// NativeFunc is the Go-level body of a built-in Function.
type NativeFunc func(args *Args, ev core.Evaluator) (core.Value, error)

// Param describes one formal parameter of a Function: a bare positional
// name, or a keyed name with a default expression bound at call time when
// the corresponding argument is missing.
type Param struct {
	Name       string
	HasDefault bool
	Default    core.Value
}

// Function is a callable: either user-defined (Body + Closure) or a native
// Go implementation (Native). Equality and scope-keying are by identity.
type Function struct {
	Name    string
	Params  []Param
	Body    *StatementList
	Closure *core.Scope
	Native  NativeFunc
	Doc     string
}

func (f *Function) Kind() core.Kind { return core.KindFunction }

func (f *Function) String() string {
	if f.Name == "" {
		return "<function anonymous>"
	}
	return fmt.Sprintf("<function %s>", f.Name)
}

func (f *Function) Equal(o core.Value) bool {
	other, ok := o.(*Function)
	return ok && f == other
}

func (f *Function) IdentityTag() any { return f }

// BoundMethod pairs a receiver (an Instance) with the underlying Function,
// injecting `self` into the callee's frame scope at call time.
type BoundMethod struct {
	Receiver core.Value
	Fn       *Function
}

func (b *BoundMethod) Kind() core.Kind { return core.KindBoundMethod }

func (b *BoundMethod) String() string {
	return fmt.Sprintf("<bound-method %s>", b.Fn.Name)
}

func (b *BoundMethod) Equal(o core.Value) bool {
	other, ok := o.(*BoundMethod)
	return ok && b == other
}

func (b *BoundMethod) IdentityTag() any { return b }
