package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"strl/internal/driver"
	"strl/internal/source"
)

var compileCmd = &cobra.Command{
	Use:   "compile <file|->",
	Short: "Compile a pattern file to a PCRE2 regex",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().StringP("format", "f", "text", "output format (text|json)")
	compileCmd.Flags().StringP("output", "o", "", "write output to file instead of stdout")
}

func runCompile(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")

	fs := source.NewFileSet()
	id, err := loadPattern(fs, args[0])
	if err != nil {
		return err
	}

	art, err := driver.Compile(string(fs.Get(id).Content))
	if err != nil {
		reportDiagnostic(cmd, fs, id, err)
		os.Exit(1)
	}

	var out []byte
	switch format {
	case "text":
		out = []byte(art.Pattern + "\n")
	case "json":
		out, err = json.MarshalIndent(art, "", "  ")
		if err != nil {
			return fmt.Errorf("encode artifact: %w", err)
		}
		out = append(out, '\n')
	default:
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, out, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		return nil
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
