package loader

import (
	"strings"

	"github.com/arion-lang/mylang/internal/core"
	"github.com/arion-lang/mylang/internal/value"
	"github.com/arion-lang/mylang/internal/verror"
)

// companionRepl and companionUITerm back `use "repl"`/`use "ui.term"`:
// stubs of original_source/mylang/stdlib/repl and stdlib/ui/term.py's
// terminal/keyboard helpers. SPEC_FULL.md marks these out of the core
// runtime's hard requirements, kept only as companion modules so the
// `use` companion bridge is exercised by more than json/shell/process;
// the original's ANSI key-chord decoding (stdlib/ui/keyboard.py,
// stdlib/ui/term.py's `next_token`) is not reproduced -- these expose
// only line-oriented prompt/write/clear primitives sufficient for a
// MyLang script to drive a simple interactive session.
func companionRepl(myExport *value.Dict, ev core.Evaluator) (core.Value, error) {
	d := mergeCompanionExport(myExport)
	d.Set(value.String("prompt"), companionFn("repl.prompt", nativeReplPrompt))
	return d, nil
}

func companionUITerm(myExport *value.Dict, ev core.Evaluator) (core.Value, error) {
	d := mergeCompanionExport(myExport)
	d.Set(value.String("write"), companionFn("ui.term.write", nativeTermWrite))
	d.Set(value.String("clear"), companionFn("ui.term.clear", nativeTermClear))
	return d, nil
}

// nativeReplPrompt writes its argument to stdout, then reads and returns
// one line from the evaluator's stdin (trailing newline stripped). Reads
// one byte at a time rather than through a buffered reader: a bufio.Reader
// constructed fresh on every call (natives are stateless Go functions)
// would silently swallow any bytes it over-reads past the first newline.
func nativeReplPrompt(args *value.Args, ev core.Evaluator) (core.Value, error) {
	if text, ok := args.At(0); ok {
		s, ok := text.(value.String)
		if !ok {
			return nil, verror.Type(verror.IDTypeMismatch, "repl.prompt", "String", text.Kind().String())
		}
		_, _ = ev.Stdout().Write([]byte(string(s)))
	}
	var line strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := ev.Stdin().Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				break
			}
			line.WriteByte(buf[0])
		}
		if err != nil {
			if line.Len() == 0 {
				return value.NullValue, nil
			}
			break
		}
	}
	return value.String(strings.TrimRight(line.String(), "\r")), nil
}

func nativeTermWrite(args *value.Args, ev core.Evaluator) (core.Value, error) {
	text, ok := args.At(0)
	if !ok {
		return nil, verror.Arity(verror.IDArgCount, "ui.term.write", "1", "0")
	}
	s, ok := text.(value.String)
	if !ok {
		return nil, verror.Type(verror.IDTypeMismatch, "ui.term.write", "String", text.Kind().String())
	}
	_, _ = ev.Stdout().Write([]byte(string(s)))
	return value.UndefinedValue, nil
}

// nativeTermClear writes the ANSI "clear screen, home cursor" sequence.
func nativeTermClear(args *value.Args, ev core.Evaluator) (core.Value, error) {
	_, _ = ev.Stdout().Write([]byte("\x1b[2J\x1b[H"))
	return value.UndefinedValue, nil
}
