package value

import (
	"fmt"

	"github.com/arion-lang/mylang/internal/core"
)

// Class is a prototype: a name, zero or more base classes, an ordered
// member table captured from the class body's locals at definition time,
// and an initializer Function invoked (with `self` bound) on instantiation.
type Class struct {
	Name        string
	Bases       []*Class
	Prototype   *Dict // String name -> Function/Method/*Class/value
	Initializer *Function
	Doc         string
}

func (c *Class) Kind() core.Kind { return core.KindClass }

func (c *Class) String() string { return fmt.Sprintf("<class %s>", c.Name) }

func (c *Class) Equal(o core.Value) bool {
	other, ok := o.(*Class)
	return ok && c == other
}

func (c *Class) IdentityTag() any { return c }

// Member looks up name in this class's own prototype, then each base in
// declaration order (depth-first), returning the first hit.
func (c *Class) Member(name string) (core.Value, bool) {
	if v, ok := c.Prototype.Get(String(name)); ok {
		return v, true
	}
	for _, base := range c.Bases {
		if v, ok := base.Member(name); ok {
			return v, true
		}
	}
	return nil, false
}

// IsSubclassOf reports whether c is other or descends from it, walking
// Bases -- the isinstance-style hierarchy check used by catch matching and
// `is` comparisons, independent of the host language's own type system.
func (c *Class) IsSubclassOf(other *Class) bool {
	if c == other {
		return true
	}
	for _, base := range c.Bases {
		if base.IsSubclassOf(other) {
			return true
		}
	}
	return false
}

// Instance is an object: a class reference plus a per-instance attribute
// dictionary. Errors thrown via `throw` are Instances of the built-in
// Error class (or a user-declared subclass of it); there is no separate
// runtime tag for "error-ness" beyond the class hierarchy, matching the
// original implementation's Error-as-Object design.
type Instance struct {
	Class *Class
	Attrs *Dict
}

// NewInstance allocates a zero-valued instance of cls (attributes filled
// in by the initializer).
func NewInstance(cls *Class) *Instance {
	return &Instance{Class: cls, Attrs: NewDict()}
}

func (i *Instance) Kind() core.Kind { return core.KindInstance }

func (i *Instance) String() string {
	return fmt.Sprintf("<instance of %s>", i.Class.Name)
}

func (i *Instance) Equal(o core.Value) bool {
	other, ok := o.(*Instance)
	return ok && i == other
}

func (i *Instance) IdentityTag() any { return i }

// IsInstanceOf reports whether i's class is, or descends from, cls.
func (i *Instance) IsInstanceOf(cls *Class) bool {
	return i.Class.IsSubclassOf(cls)
}

// Get resolves a member read per the attribute-access table: instance
// attrs first, then the class prototype chain (wrapping a bare Function
// as a BoundMethod so `self` is injected on call).
func (i *Instance) Get(name string) (core.Value, bool) {
	if v, ok := i.Attrs.Get(String(name)); ok {
		return v, true
	}
	if v, ok := i.Class.Member(name); ok {
		if fn, ok := v.(*Function); ok {
			return &BoundMethod{Receiver: i, Fn: fn}, true
		}
		return v, true
	}
	return nil, false
}
