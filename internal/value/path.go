package value

import (
	"strconv"
	"strings"

	"github.com/arion-lang/mylang/internal/core"
)

// Dots is the relative-anchor atom (one or more leading/trailing dots in a
// Path literal, e.g. `.foo` or `..foo`): Count dots means "walk Count
// scopes/attributes outward before resolving the remaining segments".
type Dots struct {
	Count int
}

func (d Dots) Kind() core.Kind { return core.KindDots }
func (d Dots) String() string  { return strings.Repeat(".", d.Count) }
func (d Dots) Equal(o core.Value) bool {
	other, ok := o.(Dots)
	return ok && d.Count == other.Count
}

// Path is a chain of segments (words, indices, or a leading/trailing Dots)
// denoting a traversal through Dict/Instance/Class/Array/String values, or
// through enclosing lexical scopes when anchored by Dots.
type Path struct {
	Segments []core.Value
}

// NewPath builds a Path from its segments in left-to-right order.
func NewPath(segments ...core.Value) *Path {
	return &Path{Segments: append([]core.Value(nil), segments...)}
}

func (p *Path) Kind() core.Kind { return core.KindPath }

func (p *Path) String() string {
	var b strings.Builder
	for i, seg := range p.Segments {
		if i > 0 {
			if _, ok := seg.(Dots); !ok {
				b.WriteByte('/')
			}
		}
		switch s := seg.(type) {
		case String:
			b.WriteString(string(s))
		case Int:
			b.WriteString(strconv.FormatInt(int64(s), 10))
		default:
			b.WriteString(seg.String())
		}
	}
	return b.String()
}

func (p *Path) Equal(o core.Value) bool {
	other, ok := o.(*Path)
	if !ok || len(p.Segments) != len(other.Segments) {
		return false
	}
	for i, s := range p.Segments {
		if !s.Equal(other.Segments[i]) {
			return false
		}
	}
	return true
}
