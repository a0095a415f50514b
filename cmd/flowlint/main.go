package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/flowlint/flowlint/pkg/cli"
	"github.com/flowlint/flowlint/pkg/console"
)

// version is stamped by the release build via -ldflags.
var version = "dev"

var rootCmd = cli.NewRootCommand(version)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Findings are already rendered; anything else still needs reporting.
		if !errors.Is(err, cli.ErrFindings) {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		}
		os.Exit(1)
	}
}
