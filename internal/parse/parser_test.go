package parse

import (
	"testing"

	"github.com/arion-lang/mylang/internal/core"
	"github.com/arion-lang/mylang/internal/value"
	"github.com/arion-lang/mylang/internal/verror"
)

func TestParseSimpleStatementList(t *testing.T) {
	sl, err := Parse(`set x=1
set y=2`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(sl.Elements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(sl.Elements))
	}
}

func TestParseFunctionDeclaration(t *testing.T) {
	sl, err := Parse(`fun fact n { if ($n <= 1) { return 1 } return $n * fact($n - 1) }`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(sl.Elements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(sl.Elements))
	}
	args, ok := sl.Elements[0].(*value.Args)
	if !ok {
		t.Fatalf("expected *value.Args, got %T", sl.Elements[0])
	}
	spec, ok := args.At(0)
	if !ok || spec.String() != "fun" {
		t.Fatalf("expected leading callee 'fun', got %v", spec)
	}
}

func TestParseExpressionSingleLine(t *testing.T) {
	v, err := ParseExpression(`1 + 2`)
	if err != nil {
		t.Fatalf("ParseExpression: %v", err)
	}
	if v.Kind() != core.KindArgs && v.Kind() != core.KindOperation {
		t.Fatalf("unexpected kind for arithmetic expression: %v", v.Kind())
	}
}

func TestParseArrayLiteral(t *testing.T) {
	v, err := ParseExpression(`[1 2 3]`)
	if err != nil {
		t.Fatalf("ParseExpression: %v", err)
	}
	arr, ok := v.(*value.Array)
	if !ok {
		t.Fatalf("expected *value.Array, got %T", v)
	}
	if arr.Len() != 3 {
		t.Fatalf("expected 3 elements, got %d", arr.Len())
	}
}

func TestParseUnclosedBlockReportsUnclosedBlockOrEOF(t *testing.T) {
	_, err := ParseExpression(`fun f n {`)
	if err == nil {
		t.Fatal("expected an error for an unclosed block")
	}
	verr, ok := err.(*verror.Error)
	if !ok {
		t.Fatalf("expected *verror.Error, got %T", err)
	}
	switch verr.ID {
	case verror.IDUnexpectedEOF, verror.IDUnclosedBlock:
	default:
		t.Fatalf("expected IDUnexpectedEOF or IDUnclosedBlock, got %s", verr.ID)
	}
}
