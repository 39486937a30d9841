package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"strl/internal/ast"
	"strl/internal/parser"
	"strl/internal/source"
)

var astCmd = &cobra.Command{
	Use:   "ast <file|->",
	Short: "Print the parsed syntax tree as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runAst,
}

func runAst(cmd *cobra.Command, args []string) error {
	fs := source.NewFileSet()
	id, err := loadPattern(fs, args[0])
	if err != nil {
		return err
	}

	flags, node, err := parser.Parse(string(fs.Get(id).Content))
	if err != nil {
		reportDiagnostic(cmd, fs, id, err)
		os.Exit(1)
	}

	tree, err := ast.MarshalNodeIndent(node)
	if err != nil {
		return fmt.Errorf("encode tree: %w", err)
	}
	out, err := json.MarshalIndent(struct {
		Flags ast.Flags       `json:"flags"`
		Root  json.RawMessage `json:"root"`
	}{Flags: flags, Root: tree}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tree: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
