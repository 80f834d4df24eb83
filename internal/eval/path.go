package eval

import (
	"github.com/arion-lang/mylang/internal/core"
	"github.com/arion-lang/mylang/internal/value"
	"github.com/arion-lang/mylang/internal/verror"
)

// Get implements `get`: a String/Symbol resolves through the current
// frame's lexical scope chain; a Path walks its segments per the
// attribute-access table below; a Ref dereferences; anything else is
// already a concrete value and is returned unchanged.
//
// Attribute-access table (base type x segment -> rule):
//
//	Dict/Args   any key   map lookup; LookupError if absent
//	Instance    word      instance attrs, then class prototype chain
//	                      (a bare Function wraps into a BoundMethod)
//	Class       word      prototype lookup (static member)
//	Array       Int       0-based index
//	String      Int       0-based rune index, returns a 1-rune String
//	anything    leading Dots  relative-anchor re-resolution against the
//	                      enclosing lexical scope chain; a Dots segment in
//	                      any later position gets no special handling
//	Null/Undefined (mid-path) any   LookupError ("none-path")
func (e *Evaluator) Get(key core.Value) (core.Value, error) {
	switch k := key.(type) {
	case value.String:
		if v, ok := e.Lookup(k); ok {
			return v, nil
		}
		return nil, verror.Lookup(verror.IDNoValue, string(k))
	case value.Symbol:
		if v, ok := e.Lookup(k); ok {
			return v, nil
		}
		return nil, verror.Lookup(verror.IDNoValue, k.Name())
	case *value.Path:
		return e.evalPath(k)
	case *value.Ref:
		v, ok := k.Deref()
		if !ok {
			return nil, verror.Lookup(verror.IDNoValue, "ref")
		}
		return v, nil
	default:
		return key, nil
	}
}

func (e *Evaluator) evalPath(p *value.Path) (core.Value, error) {
	segs := p.Segments
	if len(segs) == 0 {
		return nil, verror.Type(verror.IDInvalidPathTarget, "<empty path>")
	}

	scope := e.CurrentFrame().Scope
	i := 0
	var current core.Value

	if d, ok := segs[0].(value.Dots); ok {
		for n := 0; n < d.Count && scope.Parent() != nil; n++ {
			scope = scope.Parent()
		}
		i = 1
		if i >= len(segs) {
			return nil, verror.Type(verror.IDInvalidPathTarget, p.String())
		}
		key, err := e.evalOperand(segs[i])
		if err != nil {
			return nil, err
		}
		v, ok := scope.Get(key)
		if !ok {
			return nil, verror.Lookup(verror.IDNoValue, key.String())
		}
		current = v
		i++
	} else {
		key, err := e.evalOperand(segs[0])
		if err != nil {
			return nil, err
		}
		v, ok := scope.Get(key)
		if !ok {
			return nil, verror.Lookup(verror.IDNoValue, key.String())
		}
		current = v
		i = 1
	}

	for ; i < len(segs); i++ {
		seg, err := e.evalOperand(segs[i])
		if err != nil {
			return nil, err
		}
		next, err := traverseOne(current, seg)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// traverseOne applies one path segment to base per the attribute-access table.
func traverseOne(base core.Value, seg core.Value) (core.Value, error) {
	if value.IsNullish(base) {
		return nil, verror.Lookup(verror.IDNonePath, base.Kind().String(), seg.String())
	}
	switch b := base.(type) {
	case *value.Dict:
		if v, ok := b.Get(seg); ok {
			return v, nil
		}
		return nil, verror.Lookup(verror.IDNoSuchKey, seg.String())
	case *value.Args:
		if s, ok := seg.(value.Int); ok {
			if v, ok := b.At(int(s)); ok {
				return v, nil
			}
			return nil, verror.Lookup(verror.IDOutOfBounds, seg.String(), "")
		}
		if s, ok := seg.(value.String); ok {
			if v, ok := b.Keyed(string(s)); ok {
				return v, nil
			}
		}
		return nil, verror.Lookup(verror.IDNoSuchKey, seg.String())
	case *value.Instance:
		name, ok := wordName(seg)
		if !ok {
			return nil, verror.Type(verror.IDInvalidPathTarget, seg.String())
		}
		if v, ok := b.Get(name); ok {
			return v, nil
		}
		return nil, verror.Lookup(verror.IDNoSuchField, name, b.Class.Name)
	case *value.Class:
		name, ok := wordName(seg)
		if !ok {
			return nil, verror.Type(verror.IDInvalidPathTarget, seg.String())
		}
		if v, ok := b.Member(name); ok {
			return v, nil
		}
		return nil, verror.Lookup(verror.IDNoSuchField, name, b.Name)
	case *value.Array:
		idx, ok := seg.(value.Int)
		if !ok {
			return nil, verror.Type(verror.IDTypeMismatch, "array index", "Int", seg.Kind().String())
		}
		if v, ok := b.At(int(idx)); ok {
			return v, nil
		}
		return nil, verror.Lookup(verror.IDOutOfBounds, seg.String(), "")
	case value.String:
		idx, ok := seg.(value.Int)
		if !ok {
			return nil, verror.Type(verror.IDTypeMismatch, "string index", "Int", seg.Kind().String())
		}
		runes := []rune(string(b))
		if int(idx) < 0 || int(idx) >= len(runes) {
			return nil, verror.Lookup(verror.IDOutOfBounds, seg.String(), "")
		}
		return value.String(string(runes[idx])), nil
	default:
		return nil, verror.Type(verror.IDInvalidPathTarget, base.Kind().String())
	}
}

func wordName(seg core.Value) (string, bool) {
	switch s := seg.(type) {
	case value.String:
		return string(s), true
	case value.Symbol:
		return s.Name(), true
	default:
		return "", false
	}
}

// Set implements `set`: pairs is an Args whose keyed entries (k=v) bind
// directly into the current frame's innermost locals, and whose positional
// entries are expected to be "=" Operations (path/word targets produced by
// `a.b = v` syntax) assigned via assignTarget.
func (e *Evaluator) Set(pairs core.Value) (core.Value, error) {
	a := value.AsArgs(pairs)
	var result core.Value = value.UndefinedValue

	for _, name := range a.KeyedNames() {
		v, _ := a.Keyed(name)
		e.CurrentFrame().Scope.Bind(value.String(name), v)
		result = v
	}
	for _, p := range a.Positional() {
		op, ok := p.(*value.Operation)
		if !ok || op.Op != "=" || len(op.Operands) != 2 {
			return nil, verror.Type(verror.IDInvalidOperation, "set", p.Kind().String())
		}
		v, err := e.assignTarget(op.Operands[0], op.Operands[1])
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

func (e *Evaluator) assignTarget(target core.Value, val core.Value) (core.Value, error) {
	switch t := target.(type) {
	case value.String, value.Symbol:
		e.CurrentFrame().Scope.Bind(t, val)
		return val, nil
	case *value.Ref:
		if !t.Rebind(val) {
			return nil, verror.Lookup(verror.IDNoValue, "ref")
		}
		return val, nil
	case *value.Path:
		return val, e.assignPath(t, val)
	default:
		return nil, verror.Type(verror.IDImmutableTarget, target.String())
	}
}

func (e *Evaluator) assignPath(p *value.Path, val core.Value) error {
	if len(p.Segments) == 0 {
		return verror.Type(verror.IDInvalidPathTarget, "<empty path>")
	}
	if len(p.Segments) == 1 {
		key, err := e.evalOperand(p.Segments[0])
		if err != nil {
			return err
		}
		e.CurrentFrame().Scope.Bind(key, val)
		return nil
	}
	container, err := e.evalPath(&value.Path{Segments: p.Segments[:len(p.Segments)-1]})
	if err != nil {
		return err
	}
	last, err := e.evalOperand(p.Segments[len(p.Segments)-1])
	if err != nil {
		return err
	}
	switch c := container.(type) {
	case *value.Dict:
		c.Set(last, val)
		return nil
	case *value.Instance:
		name, ok := wordName(last)
		if !ok {
			return verror.Type(verror.IDInvalidPathTarget, last.String())
		}
		c.Attrs.Set(value.String(name), val)
		return nil
	case *value.Array:
		idx, ok := last.(value.Int)
		if !ok || !c.Set(int(idx), val) {
			return verror.Lookup(verror.IDOutOfBounds, last.String(), "")
		}
		return nil
	default:
		return verror.Type(verror.IDInvalidPathTarget, container.Kind().String())
	}
}
