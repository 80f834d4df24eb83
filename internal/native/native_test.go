package native_test

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/arion-lang/mylang/internal/eval"
	"github.com/arion-lang/mylang/internal/loader"
	"github.com/arion-lang/mylang/internal/native"
	"github.com/arion-lang/mylang/internal/parse"
)

// newTestEvaluator wires a fresh evaluator with every built-in registered,
// mirroring the real bootstrap path (internal/bootstrap.New) closely enough
// to drive the spec's literal end-to-end scenarios without cmd/mylang.
func newTestEvaluator() (*eval.Evaluator, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	ev := eval.New(&out, &errOut, strings.NewReader(""))
	errorClass := native.Register(ev.RootScope())
	eval.SetBaseErrorClass(errorClass)
	ev.SetLoader(loader.New(fstest.MapFS{}, nil))
	return ev, &out
}

func runSource(t *testing.T, src string) (string, string) {
	t.Helper()
	ev, out := newTestEvaluator()
	program, err := parse.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	result, err := ev.Run(program)
	if err != nil {
		return out.String(), err.Error()
	}
	return out.String(), result.String()
}

// S1 Lexical scope. Braces in a statement's own trailing argument
// position always stay a bare, unevaluated StatementList (DESIGN.md's
// "block brackets" decision), so the dict this scenario returns is built
// with parens instead -- `(k=v)` is the literal-Dict form and, unlike
// `{...}`, evaluates its elements (here `$f1v1`) wherever it appears.
// A zero-argument call embedded as a value (rather than standing alone as
// a whole statement) has no `name()` shorthand -- trailing empty parens
// parse as their own, separately dispatched empty call -- so it goes
// through the `call` primitive instead: `(call f11)`.
func TestScenarioS1LexicalScope(t *testing.T) {
	out, _ := runSource(t, `fun f1 {
  set f1v1=F1V1
  fun f11 { return (f1v1=$f1v1) }
  return (call f11)
}
echo (call f1)`)
	if !strings.Contains(out, "f1v1=F1V1") {
		t.Fatalf("echo output = %q, want it to contain f1v1=F1V1", out)
	}
}

// S2 Recursion. A bare `name arg` sequence only fuses into a call inside
// parens (two-or-more positional items, no keyed entry), and binary-op
// folding grabs a bare word greedily -- so the recursive call and the
// final dispatch both need their own enclosing parens.
func TestScenarioS2Recursion(t *testing.T) {
	out, _ := runSource(t, `fun fact n { if ($n <= 1) { return 1 }; return ($n * (fact ($n - 1))) }
echo (fact 5)`)
	if strings.TrimSpace(out) != "120" {
		t.Fatalf("echo output = %q, want 120", out)
	}
}

// S3 Operators.
func TestScenarioS3Operators(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`echo (1 + 2 + 3)`, "6"},
		{`echo (!true)`, "false"},
		{`echo (0.3 * -4)`, "-1.2"},
	}
	for _, c := range cases {
		out, _ := runSource(t, c.src)
		if strings.TrimSpace(out) != c.want {
			t.Fatalf("%s => output %q, want %q", c.src, out, c.want)
		}
	}
}

// S4 Class. A bare `name args...` statement with more than one item to its
// right only folds into a single call inside parens (DESIGN.md's "block
// brackets" decision) -- `a = Animal "Rex"` alone would parse "a"="Animal"
// and "Rex" as two unrelated statement entries, not a constructor call. A
// zero-argument method invocation is just its resolved path as the whole
// statement; `resolveCallee` evaluates the Path itself, so no trailing
// `()` is needed or valid here.
func TestScenarioS4Class(t *testing.T) {
	out, _ := runSource(t, `class Animal {
  init name { set self.name=$name }
  fun speak { echo ($self.name + " makes a sound") }
}
a = (Animal "Rex")
a.speak`)
	if strings.TrimSpace(out) != "Rex makes a sound" {
		t.Fatalf("echo output = %q, want \"Rex makes a sound\"", out)
	}
}

// S5 Try/throw. `try`'s catch spec is installed on the frame executing it
// and is consumed by the very next call that throws (DESIGN.md's
// "catch-spec scope" decision), so the guarded statement is the one
// immediately following `try` rather than a nested body argument.
func TestScenarioS5TryThrow(t *testing.T) {
	out, _ := runSource(t, `try as=e Error {
  echo ("caught: " + $e.message)
}
throw (Error "boom")`)
	if strings.TrimSpace(out) != "caught: boom" {
		t.Fatalf("echo output = %q, want \"caught: boom\"", out)
	}
}

func TestThrowEscapesWithoutMatchingCatch(t *testing.T) {
	_, result := runSource(t, `throw (Error "boom")`)
	if !strings.Contains(result, "boom") {
		t.Fatalf("an uncaught throw should surface the message, got %q", result)
	}
}

func TestTryCatchHandlesMatchingThrow(t *testing.T) {
	out, _ := runSource(t, `try Error {
  echo "caught"
}
throw (Error "boom")`)
	if strings.TrimSpace(out) != "caught" {
		t.Fatalf("echo output = %q, want caught", out)
	}
}

func TestTryCatchReThrowsWhenClassDoesNotMatch(t *testing.T) {
	_, result := runSource(t, `class Custom Error {}
try Custom {
  echo "caught"
}
throw (Error "boom")`)
	if !strings.Contains(result, "boom") {
		t.Fatalf("a non-matching catch class should let the error escape, got %q", result)
	}
}

// S6 Loop + break, via `while` as a single-argument loop-guard companion.
func TestScenarioS6LoopWhileBreak(t *testing.T) {
	out, _ := runSource(t, `set x=3
loop { while ($x > 0); echo $x; set x=($x - 1) }
echo $x`)
	got := strings.Fields(out)
	want := []string{"3", "2", "1", "0"}
	if len(got) != len(want) {
		t.Fatalf("echo lines = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("echo lines = %v, want %v", got, want)
		}
	}
}

func TestWhileArityErrorOnMissingCondition(t *testing.T) {
	ev, _ := newTestEvaluator()
	program, err := parse.Parse(`while`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := ev.Run(program); err == nil {
		t.Fatal("while with no condition argument should error")
	}
}

func TestWhileOutsideLoopErrors(t *testing.T) {
	_, result := runSource(t, `while (1 > 2)`)
	if !strings.Contains(result, "while") {
		t.Fatalf("while outside a loop should error mentioning while, got %q", result)
	}
}

func TestBreakStopsLoopImmediately(t *testing.T) {
	out, _ := runSource(t, `set x=0
loop {
  set x=($x + 1)
  if ($x == 2) { break }
  echo $x
}`)
	if strings.TrimSpace(out) != "1" {
		t.Fatalf("echo output = %q, want only 1 (break should stop before echoing 2)", out)
	}
}

func TestContinueSkipsRestOfIteration(t *testing.T) {
	out, _ := runSource(t, `set x=0
set n=0
loop {
  set x=($x + 1)
  if ($x > 3) { break }
  if ($x == 2) { continue }
  set n=($n + 1)
  echo $x
}`)
	lines := strings.Fields(out)
	want := []string{"1", "3"}
	if len(lines) != len(want) || lines[0] != want[0] || lines[1] != want[1] {
		t.Fatalf("echo lines = %v, want %v (continue should skip echoing 2)", lines, want)
	}
}

func TestForIteratesArray(t *testing.T) {
	out, _ := runSource(t, `for item [1 2 3] { echo $item }`)
	if strings.TrimSpace(out) != "1\n2\n3" && strings.Join(strings.Fields(out), " ") != "1 2 3" {
		t.Fatalf("echo output = %q, want 1, 2, 3 on separate lines", out)
	}
}

// S7 Path set/get. Braces never build a Dict value in this grammar (they
// always parse to a StatementList, per DESIGN.md's "block brackets"
// decision); a literal Dict needs parens with at least one `k=v` entry.
func TestScenarioS7PathSetGet(t *testing.T) {
	out, _ := runSource(t, `set d=(a=1 b=(c=3))
set d.b.c=5
echo $d.b.c`)
	if strings.TrimSpace(out) != "5" {
		t.Fatalf("echo output = %q, want 5", out)
	}
}

// S8 Use.
func TestScenarioS8Use(t *testing.T) {
	var out bytes.Buffer
	var errOut bytes.Buffer
	ev := eval.New(&out, &errOut, strings.NewReader(""))
	errorClass := native.Register(ev.RootScope())
	eval.SetBaseErrorClass(errorClass)
	ev.SetLoader(loader.New(fstest.MapFS{
		"m.my": {Data: []byte(`export answer=42`)},
	}, nil))

	program, err := parse.Parse(`use "m"
echo $m.answer
use "m"
echo $m.answer`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := ev.Run(program); err != nil {
		t.Fatalf("Run: %v", err)
	}
	lines := strings.Fields(out.String())
	if len(lines) != 2 || lines[0] != "42" || lines[1] != "42" {
		t.Fatalf("echo output = %q, want two lines of 42", out.String())
	}
}

// Capitalized type values (maintainer review item 2). A bare capitalized
// name standing alone as a call *argument* (not a callee) is never looked
// up automatically -- only `$name` reads the binding -- and `name(arg)`
// with no space never fuses into a call the way it would in most
// languages, since binary-op folding and the paren-group call rule only
// ever see space-separated entries. So every comparison here reads
// `(type ...)` as a nested call and the bound type name as `$Name`.
func TestCapitalizedTypeValues(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`echo (type 5) == $Int`, "true"},
		{`echo (type 5.0) == $Float`, "true"},
		{`echo (type true) == $Bool`, "true"},
		{`echo (type "x") == $String`, "true"},
		{`echo (type null) == $Null`, "true"},
		{`echo (type undefined) == $Undefined`, "true"},
		{`echo (type [1 2]) == $Array`, "true"},
		{`echo (type (a=1)) == $Dict`, "true"},
	}
	for _, c := range cases {
		out, _ := runSource(t, c.src)
		if strings.TrimSpace(out) != c.want {
			t.Fatalf("%s => output %q, want %q", c.src, out, c.want)
		}
	}
}

func TestSymbolCallableCapitalizedAndLowercaseProduceDistinctIdentities(t *testing.T) {
	out, _ := runSource(t, `set a=(symbol "x")
set b=(Symbol "x")
echo $a == $b`)
	if strings.TrimSpace(out) != "false" {
		t.Fatalf("two distinct Symbol-built atoms must not compare equal, got %q", out)
	}
}

func TestObjectClassStillInstantiable(t *testing.T) {
	// Parens with a single item unwrap transparently rather than calling,
	// so a zero-argument class call needs a second (ignored, since Object
	// has no initializer) positional item to read as a nested call.
	out, _ := runSource(t, `set o=(Object null)
echo (type $o)`)
	if strings.TrimSpace(out) != "Object" {
		t.Fatalf("echo output = %q, want Object (type() reports an Instance's class name)", out)
	}
}

// Invariant 1: parsed Args positional keys are contiguous.
func TestParsedCallArgsAreContiguous(t *testing.T) {
	out, _ := runSource(t, `echo "a" "b" "c"`)
	if strings.TrimSpace(out) != "a b c" {
		t.Fatalf("echo output = %q, want \"a b c\"", out)
	}
}
