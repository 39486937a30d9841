package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"strl/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "strl",
	Short: "strl pattern compiler",
	Long:  `strl compiles readable pattern source into PCRE2-compatible regular expressions`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		color.NoColor = !colorEnabled(cmd)
	},
}

// main registers subcommands and persistent flags, then executes the root
// command. Execution errors exit with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(astCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress hints and non-essential output")
	rootCmd.PersistentFlags().Int("max-problems", 100, "maximum number of problems to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// colorEnabled resolves the --color tri-state against the output terminal.
func colorEnabled(cmd *cobra.Command) bool {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
