// Package cmd implements the mylang CLI's cobra command tree: run, eval,
// repl, check, version. Grounded on
// _examples/CWBudde-go-dws/cmd/dwscript/cmd's root-command layout
// (persistent flags on rootCmd, one file per subcommand, subcommands
// registered from each file's own init()), replacing the teacher's
// hand-rolled flag.FlagSet parsing (internal/config's old
// LoadFromFlags/argparse.go) now that module resolution needs its own
// flag (--stdlib-path) alongside the shared sandbox/history/trace ones.
package cmd

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/arion-lang/mylang/internal/bootstrap"
	"github.com/arion-lang/mylang/internal/config"
	"github.com/arion-lang/mylang/internal/parse"
	"github.com/arion-lang/mylang/internal/repl"
)

var (
	// Version is overridden by -ldflags at release build time.
	Version = "0.1.0-dev"

	yamlConfigPath string
	sandboxRoot    string
	stdlibPath     string
	quiet          bool
	verbose        bool
	traceOn        bool
)

// rootCmd with no subcommand reproduces the original interpreter's own
// dispatch (original_source/mylang/__main__.py: a filename argument runs
// it, otherwise a non-tty stdin is read and run, otherwise the REPL
// starts) for the two cases that don't need a subcommand of their own:
// piped stdin, or an interactive terminal.
var rootCmd = &cobra.Command{
	Use:   "mylang",
	Short: "MyLang interpreter",
	Long: `mylang runs programs written in MyLang, a dynamically-typed
call-expression scripting language: every statement is a callable name
followed by positional and keyed arguments, evaluated left to right.`,
	Version: Version,
	Args:    cobra.ArbitraryArgs,
	RunE:    runBare,
}

func runBare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		program, err := parse.Parse(string(content))
		if err != nil {
			return err
		}
		ev := bootstrap.New(os.Stdout, os.Stderr, os.Stdin, searchDirsFor(cfg))
		bootstrap.InjectArgs(ev, args)
		_, err = ev.Run(program)
		return err
	}

	ev := bootstrap.New(os.Stdout, os.Stderr, os.Stdin, searchDirsFor(cfg))
	bootstrap.InjectArgs(ev, args)
	session, err := repl.New(ev, &repl.Options{HistoryFile: cfg.HistoryFile})
	if err != nil {
		return err
	}
	return session.Run()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&yamlConfigPath, "config", "mylang.yaml", "project config file")
	flags.StringVar(&sandboxRoot, "sandbox-root", "", "root directory for third-party module resolution (default: current directory)")
	flags.StringVar(&stdlibPath, "stdlib-path", "", "additional directory searched for third-party .my modules")
	flags.BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&traceOn, "trace", false, "emit call-trace events to stderr")
}

// loadConfig runs the defaults -> mylang.yaml -> MYLANG_* env layering,
// then overlays whatever the CLI flags above were explicitly given --
// the flags are the final, highest-precedence layer.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(yamlConfigPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("sandbox-root") {
		cfg.SandboxRoot = sandboxRoot
	}
	if cmd.Flags().Changed("stdlib-path") {
		cfg.StdlibPath = stdlibPath
	}
	if quiet {
		cfg.Quiet = true
	}
	if verbose {
		cfg.Verbose = true
	}
	if traceOn {
		cfg.TraceOn = true
	}
	if err := bootstrap.InitObservability(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func searchDirsFor(cfg *config.Config) []string {
	if cfg.StdlibPath == "" {
		return nil
	}
	return []string{cfg.StdlibPath}
}
