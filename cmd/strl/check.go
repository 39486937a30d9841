package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"strl/internal/diag"
	"strl/internal/diagfmt"
	"strl/internal/driver"
	"strl/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Check pattern files and report diagnostics",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringP("format", "f", "pretty", "diagnostic format (pretty|lsp)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "pretty" && format != "lsp" {
		return fmt.Errorf("unknown format %q (want pretty or lsp)", format)
	}
	opts := outputOpts(cmd)

	fs := source.NewFileSet()
	var problems []*diag.Diagnostic
	failed := false
	for _, path := range args {
		id, err := loadPattern(fs, path)
		if err != nil {
			return err
		}
		_, err = driver.Compile(string(fs.Get(id).Content))
		if err == nil {
			continue
		}
		failed = true
		d, ok := err.(*diag.Diagnostic)
		if !ok {
			return err
		}
		if format == "lsp" {
			problems = append(problems, d)
			continue
		}
		fmt.Fprintln(os.Stderr, diagfmt.Location(fs, id, d.Pos))
		diagfmt.Pretty(os.Stderr, d, opts)
	}

	if format == "lsp" {
		if err := diagfmt.JSON(cmd.OutOrStdout(), problems, opts); err != nil {
			return err
		}
	}
	if failed {
		os.Exit(1)
	}
	if format == "pretty" && !opts.Quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%d file(s) ok\n", len(args))
	}
	return nil
}
