package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arion-lang/mylang/internal/bootstrap"
	"github.com/arion-lang/mylang/internal/parse"
)

var runCmd = &cobra.Command{
	Use:   "run <file> [-- script-args...]",
	Short: "Run a MyLang script file",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	dashAt := cmd.ArgsLenAtDash()
	scriptArgs := args[1:]
	if dashAt >= 0 {
		scriptArgs = args[dashAt:]
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	program, err := parse.Parse(string(content))
	if err != nil {
		return err
	}

	ev := bootstrap.New(os.Stdout, os.Stderr, os.Stdin, searchDirsFor(cfg))
	bootstrap.InjectArgs(ev, scriptArgs)

	if _, err := ev.Run(program); err != nil {
		return err
	}
	return nil
}
