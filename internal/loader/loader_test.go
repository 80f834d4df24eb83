package loader_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/arion-lang/mylang/internal/eval"
	"github.com/arion-lang/mylang/internal/loader"
	"github.com/arion-lang/mylang/internal/native"
	"github.com/arion-lang/mylang/internal/parse"
)

func newTestEvaluator(stdlibFS fstest.MapFS, searchDirs []string) *eval.Evaluator {
	var out, errOut bytes.Buffer
	ev := eval.New(&out, &errOut, strings.NewReader(""))
	errorClass := native.Register(ev.RootScope())
	eval.SetBaseErrorClass(errorClass)
	ev.SetLoader(loader.New(stdlibFS, searchDirs))
	return ev
}

func TestUseStdlibFileExportsDict(t *testing.T) {
	fsys := fstest.MapFS{
		"greet.my": {Data: []byte(`fun hello name { return "hi " + $name }
export hello=$hello`)},
	}
	ev := newTestEvaluator(fsys, nil)

	program, err := parse.Parse(`use "greet"
greet.hello "world"`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	result, err := ev.Run(program)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.String() != "hi world" {
		t.Fatalf("expected %q, got %q", "hi world", result.String())
	}
}

func TestUseCachesRepeatedCalls(t *testing.T) {
	fsys := fstest.MapFS{
		"counter.my": {Data: []byte(`export value=1`)},
	}
	ev := newTestEvaluator(fsys, nil)

	program, err := parse.Parse(`use "counter"
use "counter"
counter.value`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	result, err := ev.Run(program)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.String() != "1" {
		t.Fatalf("expected 1, got %q", result.String())
	}
}

func TestUseThirdPartyFileFromSearchDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tools.my"), []byte(`export flag=true`), 0o644); err != nil {
		t.Fatalf("writing fixture module: %v", err)
	}
	ev := newTestEvaluator(fstest.MapFS{}, []string{dir})

	program, err := parse.Parse(`use "tools"
tools.flag`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	result, err := ev.Run(program)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.String() != "true" {
		t.Fatalf("expected true, got %q", result.String())
	}
}

func TestUseUnknownModuleErrors(t *testing.T) {
	ev := newTestEvaluator(fstest.MapFS{}, nil)
	program, err := parse.Parse(`use "does-not-exist"`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := ev.Run(program); err == nil {
		t.Fatal("expected an error resolving an unknown module")
	}
}
