package diag

import (
	"fmt"
	"strings"
	"unicode"
)

// hintGen produces a hint from the error message, the pattern source, and
// the error position. Most hints are static; a few inspect the context.
type hintGen func(message, src string, pos int) string

type hintEntry struct {
	key string // substring of the message this hint applies to
	gen hintGen
}

func static(hint string) hintGen {
	return func(string, string, int) string { return hint }
}

// hintTable maps message fragments to instructional hints. Order matters:
// more specific fragments must come before more general ones.
var hintTable = []hintEntry{
	{"Unterminated group name", static(
		"Named groups use the syntax (?<name>...). " +
			"Make sure to close the '<name>' with '>' before the group content.")},
	{"Unterminated group", static(
		"This group was opened with '(' but never closed. " +
			"Add a matching ')' to close the group.")},
	{"Unterminated character class", static(
		"This character class was opened with '[' but never closed. " +
			"Add a matching ']' to close the character class.")},
	{"Unterminated named backref", static(
		"Named backreferences use the syntax \\k<name>. " +
			"Make sure to close the '<name>' with '>'.")},
	{"Unterminated lookahead", static(
		"This lookahead was opened with '(?=' or '(?!' but never closed. " +
			"Add a matching ')' to close the lookahead.")},
	{"Unterminated lookbehind", static(
		"This lookbehind was opened with '(?<=' or '(?<!' but never closed. " +
			"Add a matching ')' to close the lookbehind.")},
	{"Unterminated atomic group", static(
		"This atomic group was opened with '(?>' but never closed. " +
			"Add a matching ')' to close the atomic group.")},
	{"Incomplete quantifier", static(
		"Brace quantifiers use the syntax {m,n} or {n}. " +
			"Make sure to close the quantifier with '}'.")},
	{"Invalid brace quantifier content", static(
		"Brace quantifiers require numeric digits: use {n}, {m,n}, or {m,}. " +
			"Only numbers are valid inside braces — to match a literal '{', escape it with '\\{'.")},
	{"Invalid quantifier range", static(
		"Quantifier range {m,n} must have m <= n. " +
			"Check that the minimum value is not greater than the maximum value.")},
	{"Invalid quantifier", hintInvalidQuantifier},
	{"Invalid character range", static(
		"Character ranges must be in ascending order. " +
			"For example, use [a-z] instead of [z-a], or [0-9] instead of [9-0].")},
	{"Invalid flag", static(
		"Unknown flag. Valid flags are: " +
			"i (case-insensitive), m (multiline), s (dotAll), u (unicode), x (extended/free-spacing).")},
	{"Unknown directive", static(
		"Only the %flags directive is supported. Check your pattern syntax.")},
	{"Directive must appear at the start", static(
		"Directives like %flags must appear at the start of the pattern, " +
			"before any regex content.")},
	{"Unknown escape sequence", hintUnknownEscape},
	{"Unmatched ')'", static(
		"This ')' character does not have a matching opening '('. " +
			"Did you mean to escape it with '\\)'?")},
	{"Unexpected token", hintUnexpectedToken},
	{"Unexpected trailing input", static(
		"There is unexpected content after the pattern ended. " +
			"Check for unmatched parentheses or extra characters.")},
	{"Cannot quantify anchor", static(
		"Anchors like ^, $, \\b, \\B match positions, not characters, " +
			"so they cannot be quantified with *, +, ?, or {}.")},
	{"Backreference to undefined group", static(
		"Backreferences refer to previously captured groups. " +
			"Make sure the group is defined before referencing it. " +
			"strl does not support forward references.")},
	{"Duplicate group name", static(
		"Each named group must have a unique name. " +
			"Use different names for different groups, or use unnamed groups ().")},
	{"Invalid group name", static(
		"Group names must follow the IDENTIFIER rule: start with a letter or " +
			"underscore, followed by letters, digits, or underscores. " +
			"Use (?<name>...) with a valid identifier.")},
	{"Empty alternation branch", static(
		"Empty alternation branch detected (consecutive '|' operators). " +
			"Use 'a|b' instead of 'a||b', or '(a|)b' if you want to match optional 'a'.")},
	{"Alternation lacks left-hand side", static(
		"The alternation operator '|' requires an expression on the left side. " +
			"Use 'a|b' to match either 'a' or 'b'.")},
	{"Alternation lacks right-hand side", static(
		"The alternation operator '|' requires an expression on the right side. " +
			"Use 'a|b' to match either 'a' or 'b'.")},
	{"Expected '<' after \\k", static(
		"Named backreferences use the syntax \\k<name>. " +
			"The '<' is required after \\k, like \\k<groupname>.")},
	{"Inline modifiers", static(
		"strl does not support inline modifiers like (?i) for case-insensitivity. " +
			"Instead, use the %flags directive at the start of your pattern: '%flags i'")},
	{"Invalid \\xHH escape", static(
		"Hex escapes must use valid hexadecimal digits (0-9, A-F). " +
			"Use \\xHH for 2-digit hex codes (e.g., \\x41 for 'A').")},
	{"Invalid \\uHHHH", static(
		"Unicode escapes must use valid hexadecimal digits (0-9, A-F). " +
			"Use \\uHHHH for 4-digit codes or \\u{...} for variable-length codes.")},
	{"Invalid \\UHHHHHHHH", static(
		"Unicode escapes must use valid hexadecimal digits (0-9, A-F). " +
			"Use \\UHHHHHHHH with exactly 8 hex digits, e.g. \\U0001F600.")},
	{"Invalid \\x{...}", static(
		"The codepoint in \\x{...} is outside the Unicode scalar range " +
			"(max \\x{10FFFF}, surrogates excluded).")},
	{"Invalid \\u{...}", static(
		"The codepoint in \\u{...} is outside the Unicode scalar range " +
			"(max \\u{10FFFF}, surrogates excluded).")},
	{"Unterminated \\x{...}", static(
		"Variable-length hex escapes use the syntax \\x{...}. " +
			"Make sure to close the escape with '}'.")},
	{"Unterminated \\u{...}", static(
		"Variable-length unicode escapes use the syntax \\u{...}. " +
			"Make sure to close the escape with '}'.")},
	{"Unterminated \\p{...}", static(
		"Unicode property escapes use the syntax \\p{Property} or \\P{Property}. " +
			"Make sure to close the property name with '}'.")},
	{"Expected { after \\p/\\P", static(
		"Unicode property escapes require braces: \\p{Letter} or \\P{Letter}. " +
			"Use \\p{L} for letters, \\p{N} for numbers, etc.")},
}

// hintFor returns the instructional hint for an error message, or "" when
// no entry applies.
func hintFor(message, src string, pos int) string {
	for _, e := range hintTable {
		if strings.Contains(message, e.key) {
			return e.gen(message, src, pos)
		}
	}
	return ""
}

func hintInvalidQuantifier(message, _ string, _ int) string {
	quant := "*"
	if i := strings.IndexByte(message, '\''); i >= 0 && i+1 < len(message) {
		quant = string(message[i+1])
	}
	return fmt.Sprintf(
		"The quantifier '%s' cannot be at the start of a pattern or group. "+
			"It must follow a character or group it can quantify.", quant)
}

func hintUnknownEscape(message, _ string, _ int) string {
	i := strings.IndexByte(message, '\\')
	if i < 0 || i+1 >= len(message) {
		return "This is not a recognized escape sequence."
	}
	ch := rune(message[i+1])
	switch {
	case unicode.IsUpper(ch):
		return fmt.Sprintf(
			"'\\%c' is not a recognized escape sequence. "+
				"To match literal '%c', use '%c' without the backslash.", ch, ch, ch)
	default:
		return fmt.Sprintf(
			"'\\%c' is not a recognized escape sequence. "+
				"To match literal '%c', use '%c' or escape special characters with '\\'.", ch, ch, ch)
	}
}

func hintUnexpectedToken(_, src string, pos int) string {
	if pos >= 0 && pos < len(src) {
		switch src[pos] {
		case ')':
			return "This ')' character does not have a matching opening '('. " +
				"Did you mean to escape it with '\\)'?"
		case '|':
			return "The alternation operator '|' requires expressions on both sides. " +
				"Use 'a|b' to match either 'a' or 'b'."
		}
	}
	return "This character appeared in an unexpected context."
}
