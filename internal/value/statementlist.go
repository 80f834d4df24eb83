package value

import (
	"strings"

	"github.com/arion-lang/mylang/internal/core"
)

// StatementList is the executable body produced by parsing a `{...}` block:
// an ordered sequence of statements, each an Args (or a bare value wrapped
// into a single-positional Args at execution time). Aborted is set once a
// return/break/continue/throw has short-circuited the remaining statements,
// so nested control-flow callables (if's sibling-clause skip, a loop body)
// can detect early exit without re-inspecting the frame's return slot.
type StatementList struct {
	Elements []core.Value
	Aborted  bool
}

// NewStatementList builds a StatementList from parsed statement elements.
func NewStatementList(elements ...core.Value) *StatementList {
	return &StatementList{Elements: append([]core.Value(nil), elements...)}
}

func (s *StatementList) Kind() core.Kind { return core.KindStatementList }

func (s *StatementList) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range s.Elements {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(e.String())
	}
	b.WriteByte('}')
	return b.String()
}

func (s *StatementList) Equal(o core.Value) bool {
	other, ok := o.(*StatementList)
	return ok && s == other
}

// Clone makes a shallow copy sharing Elements but with Aborted reset --
// used by `loop`, which re-enters its body statement list on every
// iteration and must not carry over the previous iteration's abort state.
func (s *StatementList) Clone() *StatementList {
	return &StatementList{Elements: s.Elements}
}

// ExecutionBlock is a StatementList written with `(...)` instead of
// `{...}`: evaluating it as an expression immediately spawns a fresh child
// frame and runs it to completion, rather than staying inert as a value to
// be handed to `if`/`loop`/`fun` the way a bare StatementList does.
type ExecutionBlock struct {
	List *StatementList
}

// NewExecutionBlock wraps elements as an immediately-executable block.
func NewExecutionBlock(elements ...core.Value) *ExecutionBlock {
	return &ExecutionBlock{List: NewStatementList(elements...)}
}

func (e *ExecutionBlock) Kind() core.Kind { return core.KindExecutionBlock }

func (e *ExecutionBlock) String() string {
	inner := e.List.String()
	return "(" + strings.TrimSuffix(strings.TrimPrefix(inner, "{"), "}") + ")"
}

func (e *ExecutionBlock) Equal(o core.Value) bool {
	other, ok := o.(*ExecutionBlock)
	return ok && e == other
}
