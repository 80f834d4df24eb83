package core

// Sentinel keys used by the control-flow-as-callables primitives to
// coordinate through a Scope's custom-data side-table, mirroring the
// original implementation's "_CURRENT_LOOP_DATA"/"_CURRENT_IF_BLOCK_DATA"
// pattern rather than using Go-level signaling for constructs that are
// themselves ordinary sibling statements sharing one lexical scope.
type loopControlKeyType struct{}
type ifBlockKeyType struct{}
type currentClassKeyType struct{}
type exportsKeyType struct{}

var (
	LoopControlKey  = loopControlKeyType{}
	IfBlockKey      = ifBlockKeyType{}
	CurrentClassKey = currentClassKeyType{}

	// ExportsKey holds the *value.Dict a module file built via `export`,
	// installed on that file's top-level frame scope and read back by the
	// loader once the file finishes executing.
	ExportsKey = exportsKeyType{}
)

// LoopControl is installed by `loop`/`while`/`for` on the scope they run
// their body against; `break`/`continue` set flags on it, found by walking
// outward from whatever scope they execute in.
type LoopControl struct {
	Broken     bool
	Continuing bool
}

// IfBlockState is installed by `if` and consulted by subsequent `else`
// statements in the same StatementList (siblings sharing one lexical
// scope) so a matched clause can suppress the remaining ones.
type IfBlockState struct {
	Matched bool
}

// FindCustomData walks s outward (innermost first) for key, returning the
// scope it was found on as well so callers (break/continue) can mutate it
// in place.
func FindCustomData(s *Scope, key any) (any, *Scope, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.CustomData(key); ok {
			return v, cur, true
		}
	}
	return nil, nil, false
}
