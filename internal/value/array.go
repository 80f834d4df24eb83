package value

import (
	"strings"

	"github.com/arion-lang/mylang/internal/core"
)

// Array is an ordered, mutable, 0-indexed sequence of Values.
type Array struct {
	elements []core.Value
}

// NewArray builds an Array from the given elements (copied).
func NewArray(elements ...core.Value) *Array {
	return &Array{elements: append([]core.Value(nil), elements...)}
}

func (a *Array) Kind() core.Kind { return core.KindArray }

func (a *Array) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range a.elements {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(e.String())
	}
	b.WriteByte(']')
	return b.String()
}

func (a *Array) Equal(o core.Value) bool {
	other, ok := o.(*Array)
	if !ok || len(a.elements) != len(other.elements) {
		return false
	}
	for i, e := range a.elements {
		if !e.Equal(other.elements[i]) {
			return false
		}
	}
	return true
}

func (a *Array) Len() int { return len(a.elements) }

func (a *Array) At(i int) (core.Value, bool) {
	if i < 0 || i >= len(a.elements) {
		return nil, false
	}
	return a.elements[i], true
}

func (a *Array) Set(i int, v core.Value) bool {
	if i < 0 || i >= len(a.elements) {
		return false
	}
	a.elements[i] = v
	return true
}

func (a *Array) Append(v core.Value) { a.elements = append(a.elements, v) }

func (a *Array) Elements() []core.Value { return append([]core.Value(nil), a.elements...) }
