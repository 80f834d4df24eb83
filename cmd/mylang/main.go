// Command mylang is the MyLang interpreter CLI.
package main

import (
	"fmt"
	"os"

	"github.com/arion-lang/mylang/cmd/mylang/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
