package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"strl/internal/diag"
	"strl/internal/source"
)

var (
	headColor   = color.New(color.FgRed, color.Bold)
	gutterColor = color.New(color.FgCyan)
	caretColor  = color.New(color.FgRed, color.Bold)
	hintColor   = color.New(color.FgYellow)
)

// Pretty writes one diagnostic as the canonical source-context block,
// optionally colorized:
//
//	strl parse error: <message>
//
//	> <line> | <source line>
//	>        | <caret>
//
//	Hint: <hint>
func Pretty(w io.Writer, d *diag.Diagnostic, opts Options) {
	if !opts.Color {
		out := d.Format()
		if opts.Quiet {
			out = stripHint(out)
		}
		fmt.Fprintln(w, out)
		return
	}

	if d.Src == "" {
		fmt.Fprintf(w, "%s at position %d\n",
			headColor.Sprintf("strl parse error: %s", d.Message), d.Pos)
		return
	}

	lineNum, lineText, col := locate(d)
	num := fmt.Sprintf("%d", lineNum)
	gutter := strings.Repeat(" ", len(num))
	pad := strings.Repeat(" ", runewidth.StringWidth(lineText[:col]))

	fmt.Fprintf(w, "%s %s\n\n", headColor.Sprint("strl parse error:"), d.Message)
	fmt.Fprintf(w, "%s %s\n", gutterColor.Sprintf("> %s |", num), lineText)
	fmt.Fprintf(w, "%s %s%s\n", gutterColor.Sprintf("> %s |", gutter), pad, caretColor.Sprint("^"))
	if d.Hint != "" && !opts.Quiet {
		fmt.Fprintf(w, "\n%s %s\n", hintColor.Sprint("Hint:"), d.Hint)
	}
}

// locate mirrors the plain formatter's line lookup: 1-based line number, the
// line text, and the byte column clamped to the line.
func locate(d *diag.Diagnostic) (lineNum int, lineText string, col int) {
	lines := strings.Split(d.Src, "\n")
	current := 0
	for i, line := range lines {
		if current+len(line)+1 > d.Pos {
			col = d.Pos - current
			if col > len(line) {
				col = len(line)
			}
			return i + 1, line, col
		}
		current += len(line) + 1
	}
	last := lines[len(lines)-1]
	return len(lines), last, len(last)
}

// stripHint drops the trailing hint paragraph from a plain-formatted block.
func stripHint(formatted string) string {
	if i := strings.LastIndex(formatted, "\n\nHint: "); i >= 0 {
		return formatted[:i]
	}
	return formatted
}

// Location renders "path:line:col" for a diagnostic offset inside a loaded
// file, for batch output headers.
func Location(fs *source.FileSet, id source.FileID, pos int) string {
	file := fs.Get(id)
	lc := fs.PositionFor(id, clampU32(pos))
	return fmt.Sprintf("%s:%d:%d", file.Path, lc.Line, lc.Col)
}

func clampU32(v int) uint32 {
	if v < 0 {
		return 0
	}
	return uint32(v)
}
