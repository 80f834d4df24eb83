package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arion-lang/mylang/internal/bootstrap"
	"github.com/arion-lang/mylang/internal/core"
	"github.com/arion-lang/mylang/internal/parse"
)

var (
	evalExpr  string
	evalQuiet bool
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate an inline MyLang expression",
	Args:  cobra.NoArgs,
	RunE:  runEval,
}

func init() {
	evalCmd.Flags().StringVarP(&evalExpr, "code", "c", "", "MyLang source to evaluate")
	evalCmd.Flags().BoolVar(&evalQuiet, "no-print", false, "don't print the expression's result")
	_ = evalCmd.MarkFlagRequired("code")
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	program, err := parse.Parse(evalExpr)
	if err != nil {
		return err
	}

	ev := bootstrap.New(os.Stdout, os.Stderr, os.Stdin, searchDirsFor(cfg))
	result, err := ev.Run(program)
	if err != nil {
		return err
	}
	if !evalQuiet && !cfg.NoPrint && result != nil && result.Kind() != core.KindUndefined {
		fmt.Println(result.String())
	}
	return nil
}
