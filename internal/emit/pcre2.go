// Package emit renders normalized IR as a PCRE2-dialect pattern string.
package emit

import (
	"fmt"
	"strings"
	"unicode"

	"strl/internal/ast"
	"strl/internal/ir"
)

// parentKind tells a node what construct it is being rendered inside, so an
// alternation knows whether it needs its own grouping to keep precedence.
type parentKind uint8

const (
	parentRoot parentKind = iota
	parentSeq
	parentAlt
	parentQuant
	parentGroup
	parentLook
)

// PCRE2 renders the IR as a single-line PCRE2 pattern. Any set flags become a
// global (?imsux) prefix in fixed letter order; flags are never scoped to a
// sub-expression.
func PCRE2(root ir.Node, flags ast.Flags) string {
	prefix := ""
	if letters := flags.Letters(); letters != "" {
		prefix = "(?" + letters + ")"
	}
	return prefix + emitNode(root, parentRoot)
}

func emitNode(n ir.Node, parent parentKind) string {
	switch n := n.(type) {
	case *ir.Lit:
		return escapeLiteral(n.Value)
	case *ir.Dot:
		return "."
	case *ir.Anchor:
		return anchorToken(n.At)
	case *ir.Backref:
		if n.Name != "" {
			return `\k<` + n.Name + `>`
		}
		return fmt.Sprintf(`\%d`, n.Index)
	case *ir.CharClass:
		return emitClass(n)
	case *ir.Seq:
		var b strings.Builder
		for _, p := range n.Parts {
			b.WriteString(emitNode(p, parentSeq))
		}
		return b.String()
	case *ir.Alt:
		branches := make([]string, len(n.Branches))
		for i, br := range n.Branches {
			branches[i] = emitNode(br, parentAlt)
		}
		body := strings.Join(branches, "|")
		// Inside a sequence or under a quantifier the alternation needs its
		// own boundary; a group, lookaround, or the root already supplies
		// one.
		if parent == parentSeq || parent == parentQuant {
			return "(?:" + body + ")"
		}
		return body
	case *ir.Quant:
		child := emitNode(n.Child, parentQuant)
		// An Alt child already wrapped itself via the parent-kind rule.
		if _, isAlt := n.Child.(*ir.Alt); !isAlt && needsGroupForQuant(n.Child) {
			child = "(?:" + child + ")"
		}
		return child + quantSuffix(n.Min, n.Max, n.Mode)
	case *ir.Group:
		return groupOpen(n) + emitNode(n.Body, parentGroup) + ")"
	case *ir.Look:
		return "(" + lookToken(n) + emitNode(n.Body, parentLook) + ")"
	}
	panic(fmt.Sprintf("emit: unknown node %T", n))
}

func anchorToken(at ir.AnchorKind) string {
	switch at {
	case ir.AnchorStart:
		return "^"
	case ir.AnchorEnd:
		return "$"
	case ir.AnchorWordBoundary:
		return `\b`
	case ir.AnchorNotWordBoundary:
		return `\B`
	case ir.AnchorAbsoluteStart:
		return `\A`
	case ir.AnchorAbsoluteEnd:
		return `\z`
	case ir.AnchorEndBeforeFinalNewline:
		return `\Z`
	}
	panic(fmt.Sprintf("emit: unknown anchor kind %d", at))
}

func lookToken(l *ir.Look) string {
	switch {
	case l.Dir == ir.Ahead && !l.Negated:
		return "?="
	case l.Dir == ir.Ahead:
		return "?!"
	case !l.Negated:
		return "?<="
	default:
		return "?<!"
	}
}

func groupOpen(g *ir.Group) string {
	switch {
	case g.Atomic:
		return "(?>"
	case g.Capturing && g.Name != "":
		return "(?<" + g.Name + ">"
	case g.Capturing:
		return "("
	default:
		return "(?:"
	}
}

// needsGroupForQuant reports whether a quantified child must be wrapped in a
// non-capturing group before the suffix. Classes, dots, groups, backrefs and
// anchors are already atomic or parenthesized.
func needsGroupForQuant(child ir.Node) bool {
	switch child := child.(type) {
	case *ir.Lit:
		return len([]rune(child.Value)) > 1
	case *ir.Seq, *ir.Alt, *ir.Look:
		return true
	}
	return false
}

// quantSuffix picks the shortest correct repetition token, then appends the
// lazy or possessive marker.
func quantSuffix(min, max int, mode ir.QuantMode) string {
	var q string
	switch {
	case min == 0 && max == ir.Unbounded:
		q = "*"
	case min == 1 && max == ir.Unbounded:
		q = "+"
	case min == 0 && max == 1:
		q = "?"
	case min == max:
		q = fmt.Sprintf("{%d}", min)
	case max == ir.Unbounded:
		q = fmt.Sprintf("{%d,}", min)
	default:
		q = fmt.Sprintf("{%d,%d}", min, max)
	}
	switch mode {
	case ir.Lazy:
		q += "?"
	case ir.Possessive:
		q += "+"
	}
	return q
}

// emitClass renders a bracket expression. A class holding exactly one
// shorthand escape collapses to the bare shorthand, folding the class-level
// negation into the escape's own case.
func emitClass(cc *ir.CharClass) string {
	if len(cc.Items) == 1 {
		if esc, ok := cc.Items[0].(*ir.ClassEscape); ok {
			if tok, ok := shorthandToken(esc, cc.Negated); ok {
				return tok
			}
		}
	}

	var b strings.Builder
	b.WriteByte('[')
	if cc.Negated {
		b.WriteByte('^')
	}
	for _, it := range cc.Items {
		switch it := it.(type) {
		case *ir.ClassLiteral:
			b.WriteString(escapeClassChar(it.Ch))
		case *ir.ClassRange:
			b.WriteString(escapeClassChar(it.From))
			b.WriteByte('-')
			b.WriteString(escapeClassChar(it.To))
		case *ir.ClassEscape:
			b.WriteString(classEscapeToken(it))
		}
	}
	b.WriteByte(']')
	return b.String()
}

// shorthandToken folds class negation into a standalone shorthand: a negated
// class of \d becomes \D, a negated \P{..} becomes \p{..}.
func shorthandToken(esc *ir.ClassEscape, negated bool) (string, bool) {
	switch esc.Kind {
	case 'd', 'w', 's':
		k := esc.Kind
		if negated {
			k -= 'a' - 'A'
		}
		return `\` + string(k), true
	case 'D', 'W', 'S':
		k := esc.Kind
		if negated {
			k += 'a' - 'A'
		}
		return `\` + string(k), true
	case 'p', 'P':
		if esc.Property == "" {
			return "", false
		}
		use := byte('p')
		if negated != (esc.Kind == 'P') {
			use = 'P'
		}
		return `\` + string(use) + "{" + esc.Property + "}", true
	}
	return "", false
}

func classEscapeToken(esc *ir.ClassEscape) string {
	if (esc.Kind == 'p' || esc.Kind == 'P') && esc.Property != "" {
		return `\` + string(esc.Kind) + "{" + esc.Property + "}"
	}
	return `\` + string(esc.Kind)
}

// escapeLiteral escapes the PCRE2 metacharacters outside a class. A literal
// '-' is never special here.
func escapeLiteral(s string) string {
	var b strings.Builder
	for _, ch := range s {
		switch ch {
		case '.', '^', '$', '|', '(', ')', '?', '*', '+', '{', '}', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// escapeClassChar escapes one character for use inside a bracket expression:
// only ']', '\', '-' and '^' are special there. Control and other
// non-printable characters render as named or hex escapes for readability.
func escapeClassChar(ch rune) string {
	switch ch {
	case ']', '\\', '-', '^':
		return `\` + string(ch)
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	case '\f':
		return `\f`
	case '\v':
		return `\v`
	}
	if ch < 0x20 || ch == 0x7F || !unicode.IsPrint(ch) {
		if ch > 0xFF {
			return fmt.Sprintf(`\x{%X}`, ch)
		}
		return fmt.Sprintf(`\x%02x`, ch)
	}
	return string(ch)
}
