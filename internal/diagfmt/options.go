// Package diagfmt renders parse diagnostics for terminals and editors.
package diagfmt

// Options configures pretty-printing of diagnostics.
type Options struct {
	Color       bool
	Quiet       bool // suppress hints
	MaxProblems int  // cap on rendered diagnostics in batch output, 0 = unlimited
}
