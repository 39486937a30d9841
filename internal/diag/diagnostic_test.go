package diag

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFormatWithSourceContext(t *testing.T) {
	d := New("Unterminated group", 4, "(abc")
	out := d.Format()

	if !strings.Contains(out, "strl parse error: Unterminated group") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, "> 1 | (abc") {
		t.Errorf("missing source line: %q", out)
	}
	if !strings.Contains(out, ">   |     ^") {
		t.Errorf("missing caret line: %q", out)
	}
	if !strings.Contains(out, "Hint: This group was opened with '('") {
		t.Errorf("missing hint: %q", out)
	}
}

func TestFormatSecondLine(t *testing.T) {
	// position 8 is the '|' on line 2
	d := New("Unexpected token", 8, "abc\ndef |x")
	lineIdx, lineText, col := d.lineAt()
	if lineIdx != 1 || lineText != "def |x" || col != 4 {
		t.Fatalf("lineAt = %d %q %d", lineIdx, lineText, col)
	}
	out := d.Format()
	if !strings.Contains(out, "> 2 | def |x") {
		t.Errorf("wrong context line: %q", out)
	}
	if !strings.Contains(out, ">   |     ^") {
		t.Errorf("wrong caret: %q", out)
	}
}

func TestFormatFallbackWithoutSource(t *testing.T) {
	d := &Diagnostic{Severity: SevError, Message: "Unterminated group", Pos: 7}
	if got := d.Format(); got != "Unterminated group at position 7" {
		t.Fatalf("fallback = %q", got)
	}
}

func TestErrorIsFormat(t *testing.T) {
	d := New("Unmatched ')'", 0, ")")
	if d.Error() != d.Format() {
		t.Fatal("Error() must render the formatted block")
	}
}

func TestLSPProjection(t *testing.T) {
	d := New("Duplicate group name <tag>", 9, "(?<tag>a)(?<tag>b)")
	lsp := d.LSP()

	if lsp.Severity != 1 {
		t.Errorf("severity = %d", lsp.Severity)
	}
	if lsp.Source != "strl" {
		t.Errorf("source = %q", lsp.Source)
	}
	if lsp.Range.Start.Line != 0 || lsp.Range.Start.Character != 9 {
		t.Errorf("range start = %+v", lsp.Range.Start)
	}
	if lsp.Range.End.Character != 10 {
		t.Errorf("range end = %+v", lsp.Range.End)
	}
	if !strings.Contains(lsp.Message, "Duplicate group name") || !strings.Contains(lsp.Message, "Hint:") {
		t.Errorf("message = %q", lsp.Message)
	}
	if lsp.Code != "duplicate_group_name_tag" {
		t.Errorf("code = %q", lsp.Code)
	}

	// the projection must serialize with LSP field names
	raw, err := json.Marshal(lsp)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"range"`, `"start"`, `"line"`, `"character"`, `"severity"`, `"code"`} {
		if !strings.Contains(string(raw), key) {
			t.Errorf("marshaled LSP diagnostic missing %s: %s", key, raw)
		}
	}
}

func TestLSPMultiline(t *testing.T) {
	d := New("Unexpected token", 6, "abc\nde|")
	lsp := d.LSP()
	if lsp.Range.Start.Line != 1 || lsp.Range.Start.Character != 2 {
		t.Fatalf("range start = %+v", lsp.Range.Start)
	}
}

func TestSlug(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Unterminated group", "unterminated_group"},
		{"Unmatched ')'", "unmatched"},
		{"Invalid \\xHH escape", "invalid_xhh_escape"},
		{"Backreference to undefined group \\2", "backreference_to_undefined_group_2"},
	}
	for _, c := range cases {
		if got := slug(c.in); got != c.want {
			t.Errorf("slug(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestHintTableCoverage(t *testing.T) {
	cases := []struct {
		message string
		want    string // substring expected in the hint
	}{
		{"Unterminated group", "Add a matching ')'"},
		{"Unterminated group name", "(?<name>...)"},
		{"Unterminated character class", "Add a matching ']'"},
		{"Unterminated atomic group", "'(?>'"},
		{"Incomplete quantifier", "{m,n}"},
		{"Brace quantifier: Invalid brace quantifier content", "numeric digits"},
		{"Invalid quantifier range", "m <= n"},
		{"Invalid quantifier '+'", "The quantifier '+'"},
		{"Invalid character range [z-a]", "ascending order"},
		{"Invalid flag 'q'", "Valid flags are"},
		{"Cannot quantify anchor", "match positions, not characters"},
		{"Backreference to undefined group \\1", "forward references"},
		{"Inline modifiers are not supported", "%flags"},
		{"Expected { after \\p/\\P", "\\p{L}"},
		{"Unknown escape sequence \\q", "'\\q' is not a recognized escape sequence"},
		{"Unknown escape sequence \\Q", "without the backslash"},
	}
	for _, c := range cases {
		got := hintFor(c.message, "", 0)
		if !strings.Contains(got, c.want) {
			t.Errorf("hintFor(%q) = %q, want substring %q", c.message, got, c.want)
		}
	}

	if got := hintFor("Something nobody mapped", "", 0); got != "" {
		t.Errorf("unmapped message should have no hint, got %q", got)
	}
}

func TestUnexpectedTokenHintInspectsSource(t *testing.T) {
	if got := hintFor("Unexpected token", "ab)", 2); !strings.Contains(got, "escape it with '\\)'") {
		t.Errorf("got %q", got)
	}
	if got := hintFor("Unexpected token", "|ab", 0); !strings.Contains(got, "both sides") {
		t.Errorf("got %q", got)
	}
}
