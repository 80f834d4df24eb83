package value

import (
	"strings"

	"github.com/arion-lang/mylang/internal/core"
)

// Args is a Dict subtype with a distinguished positional part (Int keys
// 0..n-1, contiguous) and a keyed part (String-named keys). It is the
// universal argument-passing value: every call's arguments are collected
// into an Args before dispatch.
type Args struct {
	dict *Dict
}

// NewArgs builds an empty Args.
func NewArgs() *Args { return &Args{dict: NewDict()} }

// ArgsFromPositional builds an Args with only positional entries.
func ArgsFromPositional(vals ...core.Value) *Args {
	a := NewArgs()
	for _, v := range vals {
		a.AppendPositional(v)
	}
	return a
}

func (a *Args) Kind() core.Kind { return core.KindArgs }

func (a *Args) String() string {
	var b strings.Builder
	b.WriteByte('(')
	first := true
	for i, v := range a.Positional() {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		_ = i
		b.WriteString(v.String())
	}
	for _, name := range a.KeyedNames() {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		v, _ := a.Keyed(name)
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(v.String())
	}
	b.WriteByte(')')
	return b.String()
}

func (a *Args) Equal(o core.Value) bool {
	other, ok := o.(*Args)
	return ok && a.dict.Equal(other.dict)
}

// AppendPositional appends v as the next contiguous positional entry.
func (a *Args) AppendPositional(v core.Value) {
	a.dict.Set(Int(a.positionalCount()), v)
}

func (a *Args) positionalCount() int {
	n := 0
	for {
		if _, ok := a.dict.Get(Int(n)); !ok {
			return n
		}
		n++
	}
}

// SetKeyed binds name=v in the keyed part.
func (a *Args) SetKeyed(name string, v core.Value) {
	a.dict.Set(String(name), v)
}

// Positional returns the positional entries 0..n-1 in order.
func (a *Args) Positional() []core.Value {
	n := a.positionalCount()
	out := make([]core.Value, n)
	for i := 0; i < n; i++ {
		v, _ := a.dict.Get(Int(i))
		out[i] = v
	}
	return out
}

// Len returns the number of positional entries.
func (a *Args) Len() int { return a.positionalCount() }

// At returns the i-th positional entry.
func (a *Args) At(i int) (core.Value, bool) {
	return a.dict.Get(Int(i))
}

// Keyed returns the value bound under a keyed (non-positional) name.
func (a *Args) Keyed(name string) (core.Value, bool) {
	return a.dict.Get(String(name))
}

// KeyedNames returns the keyed (String-keyed) names in insertion order,
// skipping the positional Int keys.
func (a *Args) KeyedNames() []string {
	var names []string
	for _, k := range a.dict.Keys() {
		if s, ok := k.(String); ok {
			names = append(names, string(s))
		}
	}
	return names
}

// IsPositionalOnly reports whether a has no keyed entries (class/try
// dispatch requires this for several callables).
func (a *Args) IsPositionalOnly() bool { return len(a.KeyedNames()) == 0 }

// IsKeyedOnly reports whether a statement shaped like this Args is an
// assignment rather than a call: no positional entries, at least one
// keyed one (`x=5` with nothing else). ExecStatementList routes such
// statements to Set instead of Call.
func (a *Args) IsKeyedOnly() bool {
	return a.positionalCount() == 0 && len(a.KeyedNames()) > 0
}

// Dict exposes the underlying ordered map (Args is-a Dict).
func (a *Args) Dict() *Dict { return a.dict }
