package diag

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Diagnostic is a single parse failure. Pos is a 0-based byte offset into
// Src, the input text the diagnostic points at (Src may be empty when the
// caller has no source to attach, e.g. synthetic tests).
type Diagnostic struct {
	Severity Severity
	Message  string
	Pos      int
	Hint     string
	Src      string
}

// New builds an error Diagnostic and attaches the instructional hint keyed
// by the message, if the hint table knows one.
func New(message string, pos int, src string) *Diagnostic {
	return &Diagnostic{
		Severity: SevError,
		Message:  message,
		Pos:      pos,
		Hint:     hintFor(message, src, pos),
		Src:      src,
	}
}

// WithHint overrides the table-derived hint.
func (d *Diagnostic) WithHint(hint string) *Diagnostic {
	d.Hint = hint
	return d
}

// Error implements error by rendering the full source-context block.
func (d *Diagnostic) Error() string {
	return d.Format()
}

// lineAt locates the line containing Pos: 0-based line index, the line text,
// and the byte column of Pos within that line.
func (d *Diagnostic) lineAt() (lineIdx int, lineText string, col int) {
	lines := strings.Split(d.Src, "\n")
	current := 0
	for i, line := range lines {
		lineLen := len(line) + 1 // account for the newline
		if current+lineLen > d.Pos {
			return i, line, d.Pos - current
		}
		current += lineLen
	}
	// position beyond the last line
	last := len(lines) - 1
	return last, lines[last], len(lines[last])
}

// Format renders the diagnostic in the canonical block layout:
//
//	strl parse error: <message>
//
//	> <line> | <source line>
//	>        | <caret>
//
//	Hint: <hint>
//
// Without source text it falls back to "<message> at position <pos>".
func (d *Diagnostic) Format() string {
	if d.Src == "" {
		return fmt.Sprintf("%s at position %d", d.Message, d.Pos)
	}

	lineIdx, lineText, col := d.lineAt()
	lineNum := lineIdx + 1
	if col > len(lineText) {
		col = len(lineText)
	}

	num := fmt.Sprintf("%d", lineNum)
	gutter := strings.Repeat(" ", len(num))
	// Caret alignment uses display width so wide runes before the error
	// position do not skew the marker.
	pad := strings.Repeat(" ", runewidth.StringWidth(lineText[:col]))

	var b strings.Builder
	fmt.Fprintf(&b, "strl parse error: %s\n", d.Message)
	b.WriteString("\n")
	fmt.Fprintf(&b, "> %s | %s\n", num, lineText)
	fmt.Fprintf(&b, "> %s | %s^", gutter, pad)
	if d.Hint != "" {
		b.WriteString("\n\nHint: ")
		b.WriteString(d.Hint)
	}
	return b.String()
}

// LSP projects the diagnostic into the editor-facing shape.
func (d *Diagnostic) LSP() LSPDiagnostic {
	lineIdx, _, col := d.lineAt()
	if d.Src == "" {
		lineIdx, col = 0, d.Pos
	}

	message := d.Message
	if d.Hint != "" {
		message += "\n\nHint: " + d.Hint
	}

	return LSPDiagnostic{
		Range: LSPRange{
			Start: LSPPosition{Line: lineIdx, Character: col},
			End:   LSPPosition{Line: lineIdx, Character: col + 1},
		},
		Severity: d.Severity.lspSeverity(),
		Message:  message,
		Source:   "strl",
		Code:     slug(d.Message),
	}
}

// slug normalizes a message into a stable machine-readable code:
// lower-cased, punctuation collapsed to single underscores.
func slug(message string) string {
	code := strings.ToLower(message)
	for _, ch := range []string{" ", "'", "\"", "(", ")", "[", "]", "{", "}", "\\", "/", "<", ">", ",", ".", ":"} {
		code = strings.ReplaceAll(code, ch, "_")
	}
	parts := strings.Split(code, "_")
	kept := parts[:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, "_")
}
