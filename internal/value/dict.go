package value

import (
	"strings"

	"github.com/arion-lang/mylang/internal/core"
)

// Dict is an ordered key-value mapping over arbitrary Values. Lookup is a
// linear scan over parallel slices rather than a Go map, mirroring the
// teacher's own Frame (Words/Values parallel arrays) -- MyLang dicts are
// small in practice and this keeps key equality general (value equality
// for String/Int/Bool, identity for Symbol) instead of requiring every key
// type to be Go-map-comparable.
type Dict struct {
	keys   []core.Value
	values []core.Value
}

// NewDict builds an empty Dict.
func NewDict() *Dict { return &Dict{} }

// DictOf builds a Dict from key/value pairs in order.
func DictOf(pairs ...[2]core.Value) *Dict {
	d := NewDict()
	for _, p := range pairs {
		d.Set(p[0], p[1])
	}
	return d
}

func (d *Dict) Kind() core.Kind { return core.KindDict }

func (d *Dict) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k.String())
		b.WriteByte('=')
		b.WriteString(d.values[i].String())
	}
	b.WriteByte('}')
	return b.String()
}

func (d *Dict) Equal(o core.Value) bool {
	other, ok := o.(*Dict)
	if !ok || len(d.keys) != len(other.keys) {
		return false
	}
	for i, k := range d.keys {
		ov, ok := other.Get(k)
		if !ok || !d.values[i].Equal(ov) {
			return false
		}
	}
	return true
}

// Get returns the value bound to key, using key's own equality rule.
func (d *Dict) Get(key core.Value) (core.Value, bool) {
	for i, k := range d.keys {
		if valuesEqual(k, key) {
			return d.values[i], true
		}
	}
	return nil, false
}

// Set creates or overwrites the binding for key, preserving insertion order.
func (d *Dict) Set(key core.Value, v core.Value) {
	for i, k := range d.keys {
		if valuesEqual(k, key) {
			d.values[i] = v
			return
		}
	}
	d.keys = append(d.keys, key)
	d.values = append(d.values, v)
}

// Delete removes key if present.
func (d *Dict) Delete(key core.Value) {
	for i, k := range d.keys {
		if valuesEqual(k, key) {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			d.values = append(d.values[:i], d.values[i+1:]...)
			return
		}
	}
}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.keys) }

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []core.Value { return append([]core.Value(nil), d.keys...) }

// Values returns the values in insertion order, parallel to Keys().
func (d *Dict) Values() []core.Value { return append([]core.Value(nil), d.values...) }

// valuesEqual compares two keys using Symbol identity where applicable and
// value equality otherwise -- the same rule core.KeyOf encodes for scopes,
// reimplemented here directly against core.Value so Dict does not need to
// depend on the scope machinery.
func valuesEqual(a, b core.Value) bool {
	if as, ok := a.(Symbol); ok {
		bs, ok := b.(Symbol)
		return ok && as.Equal(bs)
	}
	if _, ok := b.(Symbol); ok {
		return false
	}
	return a.Equal(b)
}
