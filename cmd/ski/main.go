// Command ski reduces SKI combinator terms under a depth budget.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/ski/internal/cli"
	"github.com/roach88/ski/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCommandError)
	}

	if err := cli.NewRootCommand(cfg).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
