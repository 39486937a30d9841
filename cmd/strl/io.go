package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"strl/internal/diag"
	"strl/internal/diagfmt"
	"strl/internal/source"
)

// loadPattern reads pattern text from path, or from stdin when path is "-".
// The returned FileSet holds exactly one file.
func loadPattern(fs *source.FileSet, path string) (source.FileID, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return 0, fmt.Errorf("read stdin: %w", err)
		}
		return fs.AddVirtual("<stdin>", data), nil
	}
	id, err := fs.Load(path)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", path, err)
	}
	return id, nil
}

// outputOpts builds diagnostic formatting options from the persistent flags.
func outputOpts(cmd *cobra.Command) diagfmt.Options {
	quiet, _ := cmd.Flags().GetBool("quiet")
	maxProblems, _ := cmd.Flags().GetInt("max-problems")
	return diagfmt.Options{
		Color:       colorEnabled(cmd),
		Quiet:       quiet,
		MaxProblems: maxProblems,
	}
}

// reportDiagnostic prints one diagnostic with its source location to stderr.
func reportDiagnostic(cmd *cobra.Command, fs *source.FileSet, id source.FileID, err error) {
	opts := outputOpts(cmd)
	d, ok := err.(*diag.Diagnostic)
	if !ok {
		fmt.Fprintln(os.Stderr, "error:", err)
		return
	}
	fmt.Fprintln(os.Stderr, diagfmt.Location(fs, id, d.Pos))
	diagfmt.Pretty(os.Stderr, d, opts)
}
