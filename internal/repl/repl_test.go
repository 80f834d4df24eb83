package repl

import (
	"testing"

	"github.com/arion-lang/mylang/internal/verror"
)

func TestIsExitCommand(t *testing.T) {
	cases := map[string]bool{
		"exit":  true,
		"Exit":  true,
		"quit":  true,
		"QUIT":  true,
		"":      false,
		"1 + 1": false,
	}
	for input, want := range cases {
		if got := isExitCommand(input); got != want {
			t.Errorf("isExitCommand(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNeedsContinuation(t *testing.T) {
	cases := []struct {
		id   string
		want bool
	}{
		{verror.IDUnexpectedEOF, true},
		{verror.IDUnclosedBlock, true},
		{verror.IDInvalidSyntax, false},
		{verror.IDTypeMismatch, false},
	}
	for _, c := range cases {
		err := &verror.Error{ID: c.id}
		if got := needsContinuation(err); got != c.want {
			t.Errorf("needsContinuation(%s) = %v, want %v", c.id, got, c.want)
		}
	}
}
