package value

import (
	"fmt"

	"github.com/arion-lang/mylang/internal/core"
)

// Ref is an indirection cell: `ref key` captures a live binding so it can
// be read or rebound later without re-resolving the original key
// expression, and `ref` given any other value wraps that value for the
// same purpose. Ref compares and keys by identity, not by its current content.
type Ref struct {
	get func() (core.Value, bool)
	set func(core.Value) bool
	val core.Value // used by a value-carrying Ref, which has no backing binding to revisit
}

// NewRefToBinding builds a Ref backed by a live get/set pair (the `ref key`
// form: the binding is re-read/re-written through these closures).
func NewRefToBinding(get func() (core.Value, bool), set func(core.Value) bool) *Ref {
	return &Ref{get: get, set: set}
}

// NewRefOfValue builds a Ref that simply carries value (what `ref` builds
// for a non-word argument).
func NewRefOfValue(v core.Value) *Ref {
	return &Ref{val: v}
}

func (r *Ref) Kind() core.Kind { return core.KindRef }

func (r *Ref) String() string {
	v, ok := r.Deref()
	if !ok {
		return "<ref (unresolved)>"
	}
	return fmt.Sprintf("<ref %s>", v.String())
}

func (r *Ref) Equal(o core.Value) bool {
	other, ok := o.(*Ref)
	return ok && r == other
}

func (r *Ref) IdentityTag() any { return r }

// Deref reads the referent's current value.
func (r *Ref) Deref() (core.Value, bool) {
	if r.get != nil {
		return r.get()
	}
	return r.val, r.val != nil
}

// Rebind writes v through to the referent and reports whether the live
// binding accepted it; a value-carrying Ref (no live backing binding)
// replaces the value it carries and always reports true.
func (r *Ref) Rebind(v core.Value) bool {
	if r.set != nil {
		return r.set(v)
	}
	r.val = v
	return true
}
