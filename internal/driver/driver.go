// Package driver runs the full compile pipeline (parse, lower, normalize,
// emit) and packages the result as an artifact for the CLI and batch
// tooling.
package driver

import (
	"fmt"
	"sort"

	"strl/internal/ast"
	"strl/internal/emit"
	"strl/internal/ir"
	"strl/internal/parser"
	"strl/internal/source"
)

// ArtifactVersion identifies the artifact surface shape.
const ArtifactVersion = "1.0.0"

// Artifact is the complete result of compiling one pattern.
type Artifact struct {
	Version  string    `json:"version"`
	Pattern  string    `json:"pattern"`
	Flags    ast.Flags `json:"flags"`
	Features []string  `json:"features"`
}

// Compile compiles pattern text into a PCRE2 pattern artifact. Errors are
// *diag.Diagnostic values from the parser.
func Compile(text string) (*Artifact, error) {
	flags, node, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	tree := ir.Normalize(ir.Lower(node))

	features := make([]string, 0)
	for tag := range ir.AnalyzeFeatures(tree) {
		features = append(features, tag)
	}
	sort.Strings(features)

	return &Artifact{
		Version:  ArtifactVersion,
		Pattern:  emit.PCRE2(tree, flags),
		Flags:    flags,
		Features: features,
	}, nil
}

// CompileFile loads path into fs and compiles its contents. The returned
// file ID lets callers resolve diagnostic offsets to line/column positions.
func CompileFile(fs *source.FileSet, path string) (source.FileID, *Artifact, error) {
	id, err := fs.Load(path)
	if err != nil {
		return 0, nil, fmt.Errorf("load %s: %w", path, err)
	}
	art, err := Compile(string(fs.Get(id).Content))
	return id, art, err
}
