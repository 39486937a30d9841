package emit

import (
	"testing"

	"strl/internal/ast"
	"strl/internal/ir"
	"strl/internal/parser"
)

// compile runs the full pipeline on a pattern source.
func compile(t *testing.T, src string) string {
	t.Helper()
	flags, node, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return PCRE2(ir.Normalize(ir.Lower(node)), flags)
}

func TestEmitEndToEnd(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"anchored literal", "^hello$", "^hello$"},
		{"flag prefix", "%flags i\n(test)", "(?i)(test)"},
		{"possessive star", "a*+", "a*+"},
		{"named group and backref", `(?<tag>\w+)\k<tag>`, `(?<tag>\w+)\k<tag>`},
		{"quantified group needs no wrap", "(a|b)+", "(a|b)+"},
		{"root alternation bare", "a|b|c", "a|b|c"},
		{"quantified alternation group", "(?:a|b)*", "(?:a|b)*"},
		{"single char quant no wrap", "a{2}", "a{2}"},
		{"dot and class", `.[a-z0-9]`, ".[a-z0-9]"},
		{"negated class", "[^a-z]", "[^a-z]"},
		{"escaped metachars", `\.\*\(`, `\.\*\(`},
		{"literal dash unescaped", "a-b", "a-b"},
		{"anchors", `\A\b\B\Z\z`, `\A\b\B\Z\z`},
		{"lazy range", "a{2,5}?", "a{2,5}?"},
		{"open range", "a{2,}", "a{2,}"},
		{"atomic group", "(?>ab|a)b", "(?>ab|a)b"},
		{"lookahead", "(?=ab)c", "(?=ab)c"},
		{"negative lookbehind", "(?<!x)y", "(?<!x)y"},
		{"numeric backref", `(a)\1`, `(a)\1`},
		{"all flags ordered", "%flags x u s m i\na", "(?imsux)a"},
		{"class dash escaped", "[a-]", `[a\-]`},
		{"class caret escaped", "[a^]", `[a\^]`},
		{"class metachars literal", "[.*?]", "[.*?]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compile(t, tt.src); got != tt.want {
				t.Errorf("compile(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestEmitQuantWrapping(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"multi-char literal", "(?:ab)+", "(?:ab)+"},
		{"lookahead quantified", "(?=a)*", "(?:(?=a))*"},
		{"class never wraps", "[ab]{3}", "[ab]{3}"},
		{"dot never wraps", ".{3}", ".{3}"},
		{"backref never wraps", `(a)\1*`, `(a)\1*`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compile(t, tt.src); got != tt.want {
				t.Errorf("compile(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestEmitAltPrecedence(t *testing.T) {
	alt := &ir.Alt{Branches: []ir.Node{
		&ir.Lit{Value: "a"},
		&ir.Lit{Value: "b"},
	}}

	// A bare alternation inside a sequence gets its own group.
	seq := &ir.Seq{Parts: []ir.Node{&ir.Lit{Value: "x"}, alt}}
	if got := PCRE2(seq, ast.Flags{}); got != "x(?:a|b)" {
		t.Errorf("PCRE2(seq with alt) = %q, want x(?:a|b)", got)
	}

	// Under a quantifier the alternation is wrapped exactly once.
	q := &ir.Quant{Child: alt, Min: 0, Max: ir.Unbounded}
	if got := PCRE2(q, ast.Flags{}); got != "(?:a|b)*" {
		t.Errorf("PCRE2(quantified alt) = %q, want (?:a|b)*", got)
	}

	// As a group body the group's own parentheses suffice.
	g := &ir.Group{Capturing: true, Body: alt}
	if got := PCRE2(g, ast.Flags{}); got != "(a|b)" {
		t.Errorf("PCRE2(group alt) = %q, want (a|b)", got)
	}
}

func TestEmitShorthandCollapse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"digit", `\d`, `\d`},
		{"negated digit class", `[^\d]`, `\D`},
		{"negated upper collapses down", `[^\D]`, `\d`},
		{"word", `[\w]`, `\w`},
		{"negated space", `[^\s]`, `\S`},
		{"property", `\p{L}`, `\p{L}`},
		{"negated property", `[^\p{L}]`, `\P{L}`},
		{"double negation", `[^\P{L}]`, `\p{L}`},
		{"two items stay bracketed", `[\dx]`, `[\dx]`},
		{"shorthand inside bigger class", `[\w\s-]`, `[\w\s\-]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compile(t, tt.src); got != tt.want {
				t.Errorf("compile(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestEscapeClassChar(t *testing.T) {
	tests := []struct {
		ch   rune
		want string
	}{
		{']', `\]`},
		{'\\', `\\`},
		{'-', `\-`},
		{'^', `\^`},
		{'\n', `\n`},
		{'\t', `\t`},
		{'\v', `\v`},
		{0x01, `\x01`},
		{0x7F, `\x7f`},
		{'[', "["},
		{'.', "."},
		{'a', "a"},
	}
	for _, tt := range tests {
		if got := escapeClassChar(tt.ch); got != tt.want {
			t.Errorf("escapeClassChar(%q) = %q, want %q", tt.ch, got, tt.want)
		}
	}
}

func TestEmitUnknownNodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("PCRE2(nil node) did not panic")
		}
	}()
	PCRE2(nil, ast.Flags{})
}
