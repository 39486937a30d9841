package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"strl/internal/ui"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive pattern session",
	RunE:  runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdin) {
		return fmt.Errorf("repl needs an interactive terminal")
	}
	return ui.RunRepl()
}
