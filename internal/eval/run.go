package eval

import (
	"github.com/arion-lang/mylang/internal/core"
	"github.com/arion-lang/mylang/internal/value"
)

// Run executes a parsed program (the module-level StatementList) against
// the top-level frame and returns its final value.
func (e *Evaluator) Run(program *value.StatementList) (core.Value, error) {
	return e.ExecStatementList(program)
}
