// Package repl implements MyLang's Read-Eval-Print Loop.
//
// Uses github.com/chzyer/readline for line editing and persistent
// command history, the way the teacher's REPL does. Each physical line
// is appended to a pending buffer and reparsed with
// internal/parse.ParseExpression; a parse error that signals "more input
// needed" (unclosed brace/paren/bracket, or EOF mid-expression) switches
// to a continuation prompt instead of reporting failure, so a multi-line
// `fun`/`class`/`try` body can be typed interactively.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/arion-lang/mylang/internal/core"
	"github.com/arion-lang/mylang/internal/eval"
	"github.com/arion-lang/mylang/internal/parse"
	"github.com/arion-lang/mylang/internal/value"
	"github.com/arion-lang/mylang/internal/verror"
)

const (
	primaryPrompt      = ">> "
	continuationPrompt = "... "
	historyEnvVar      = "MYLANG_HISTORY_FILE"
	historyFileName    = ".mylang_history"
)

// Options configures REPL behavior; fields mirror the CLI flags
// cmd/mylang's `repl` subcommand binds.
type Options struct {
	Prompt      string
	NoWelcome   bool
	NoHistory   bool
	HistoryFile string
}

// REPL is a single interactive session against one *eval.Evaluator.
type REPL struct {
	evaluator    *eval.Evaluator
	rl           *readline.Instance
	out          io.Writer
	pendingLines []string
	awaitingCont bool
	historyPath  string
	customPrompt string
	noWelcome    bool
	noHistory    bool
}

// New builds a REPL around an already-bootstrapped evaluator (native
// built-ins and loader installed -- see internal/bootstrap.New).
func New(ev *eval.Evaluator, opts *Options) (*REPL, error) {
	if opts == nil {
		opts = &Options{}
	}

	historyPath := opts.HistoryFile
	if historyPath == "" && !opts.NoHistory {
		historyPath = resolveHistoryPath()
	}

	prompt := opts.Prompt
	if prompt == "" {
		prompt = primaryPrompt
	}

	rlConfig := &readline.Config{
		Prompt:                 prompt,
		DisableAutoSaveHistory: true,
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
	}
	if !opts.NoHistory && historyPath != "" {
		rlConfig.HistoryFile = historyPath
	}

	rl, err := readline.NewEx(rlConfig)
	if err != nil {
		return nil, err
	}

	return &REPL{
		evaluator:    ev,
		rl:           rl,
		out:          ev.Stdout(),
		historyPath:  historyPath,
		customPrompt: prompt,
		noWelcome:    opts.NoWelcome,
		noHistory:    opts.NoHistory,
	}, nil
}

// WelcomeMessage is the banner Run prints unless Options.NoWelcome.
func WelcomeMessage() string {
	return "MyLang 0.1.0\nType 'exit' or 'quit' to leave\n\n"
}

// Run drives the read-eval-print loop until an exit command or EOF.
func (r *REPL) Run() error {
	defer r.rl.Close()

	if !r.noWelcome {
		fmt.Fprint(r.out, WelcomeMessage())
	}
	r.rl.SetPrompt(r.currentPrompt())

	for {
		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				r.pendingLines = nil
				r.awaitingCont = false
				r.rl.SetPrompt(r.currentPrompt())
				fmt.Fprintln(r.out, "^C")
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out)
				fmt.Fprintln(r.out, "Goodbye!")
				return nil
			}
			return err
		}

		if r.processLine(line) {
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		}
	}
}

// processLine feeds one physical line into the pending buffer and
// returns true once an exit command has been recognized.
func (r *REPL) processLine(input string) bool {
	trimmed := strings.TrimSpace(input)

	if !r.awaitingCont && isExitCommand(trimmed) {
		r.recordHistory(trimmed)
		return true
	}
	if trimmed == "" && !r.awaitingCont {
		return false
	}

	r.pendingLines = append(r.pendingLines, input)
	joined := strings.Join(r.pendingLines, "\n")

	expr, err := parse.ParseExpression(joined)
	if err != nil {
		if verr, ok := err.(*verror.Error); ok && needsContinuation(verr) {
			r.awaitingCont = true
			r.rl.SetPrompt(continuationPrompt)
			return false
		}
		r.awaitingCont = false
		r.pendingLines = nil
		r.rl.SetPrompt(r.currentPrompt())
		r.recordHistory(joined)
		r.printError(err)
		return false
	}

	r.awaitingCont = false
	r.pendingLines = nil
	r.rl.SetPrompt(r.currentPrompt())
	r.recordHistory(joined)
	r.evalOne(expr)
	return false
}

// evalOne runs a single parsed statement (wrapped as a one-element
// StatementList so assignment/keyed-only statements route through Set
// the same way a module's top-level statements do) and prints its
// result, suppressing Undefined the way spec.md's evaluation loop does
// for statements with no useful value.
func (r *REPL) evalOne(expr core.Value) {
	sl := value.NewStatementList(expr)
	result, err := r.evaluator.ExecStatementList(sl)
	if err != nil {
		r.printError(err)
		return
	}
	if result == nil || result.Kind() == core.KindUndefined {
		return
	}
	fmt.Fprintln(r.out, result.String())
}

func (r *REPL) printError(err error) {
	if err == nil {
		return
	}
	fmt.Fprint(r.out, err.Error())
}

func (r *REPL) currentPrompt() string {
	if r.customPrompt != "" {
		return r.customPrompt
	}
	return primaryPrompt
}

func (r *REPL) recordHistory(entry string) {
	if r.noHistory || r.rl == nil {
		return
	}
	trimmed := strings.TrimSpace(entry)
	if trimmed == "" {
		return
	}
	_ = r.rl.SaveHistory(trimmed)
}

func resolveHistoryPath() string {
	if override := strings.TrimSpace(os.Getenv(historyEnvVar)); override != "" {
		return filepath.Clean(override)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFileName)
}

// needsContinuation reports whether a parse failure means "the input so
// far is a valid prefix of a longer expression" rather than a genuine
// syntax error -- unclosed brace/paren/bracket or running out of tokens
// mid-expression.
func needsContinuation(err *verror.Error) bool {
	switch err.ID {
	case verror.IDUnexpectedEOF, verror.IDUnclosedBlock:
		return true
	default:
		return false
	}
}

func isExitCommand(input string) bool {
	return strings.EqualFold(input, "quit") || strings.EqualFold(input, "exit")
}
