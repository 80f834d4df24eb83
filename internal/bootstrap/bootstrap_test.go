package bootstrap

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arion-lang/mylang/internal/config"
	"github.com/arion-lang/mylang/internal/parse"
)

func TestNewEvaluatorRunsAProgram(t *testing.T) {
	var out, errOut bytes.Buffer
	ev := New(&out, &errOut, strings.NewReader(""), nil)

	program, err := parse.Parse(`1 + 2`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	result, err := ev.Run(program)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.String() != "3" {
		t.Fatalf("expected 3, got %q", result.String())
	}
}

func TestInjectArgsBindsArgsArray(t *testing.T) {
	var out, errOut bytes.Buffer
	ev := New(&out, &errOut, strings.NewReader(""), nil)
	InjectArgs(ev, []string{"a", "b"})

	program, err := parse.Parse(`args.(0) + args.(1)`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	result, err := ev.Run(program)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.String() != "ab" {
		t.Fatalf("expected %q, got %q", "ab", result.String())
	}
}

func TestInitObservabilityIsNoopWithoutTrace(t *testing.T) {
	cfg := config.NewConfig()
	if err := InitObservability(cfg); err != nil {
		t.Fatalf("InitObservability: %v", err)
	}
}
