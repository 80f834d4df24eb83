package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arion-lang/mylang/internal/parse"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Parse a MyLang script without executing it",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	if _, err := parse.Parse(string(content)); err != nil {
		return err
	}
	fmt.Printf("%s: OK\n", args[0])
	return nil
}
