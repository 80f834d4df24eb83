package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/arion-lang/mylang/internal/bootstrap"
	"github.com/arion-lang/mylang/internal/repl"
)

var (
	replPrompt    string
	replNoWelcome bool
	replNoHistory bool
)

var replCmd = &cobra.Command{
	Use:   "repl [-- script-args...]",
	Short: "Start an interactive MyLang session",
	Args:  cobra.ArbitraryArgs,
	RunE:  runRepl,
}

func init() {
	replCmd.Flags().StringVar(&replPrompt, "prompt", "", "custom REPL prompt")
	replCmd.Flags().BoolVar(&replNoWelcome, "no-welcome", false, "skip the startup banner")
	replCmd.Flags().BoolVar(&replNoHistory, "no-history", false, "disable persistent command history")
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ev := bootstrap.New(os.Stdout, os.Stderr, os.Stdin, searchDirsFor(cfg))

	dashAt := cmd.ArgsLenAtDash()
	var scriptArgs []string
	if dashAt >= 0 {
		scriptArgs = args[dashAt:]
	}
	bootstrap.InjectArgs(ev, scriptArgs)

	session, err := repl.New(ev, &repl.Options{
		Prompt:      replPrompt,
		NoWelcome:   replNoWelcome,
		NoHistory:   replNoHistory,
		HistoryFile: cfg.HistoryFile,
	})
	if err != nil {
		return err
	}
	return session.Run()
}
