package parser

import (
	"fmt"
	"unicode"

	"strl/internal/ast"
)

// controlEscape maps the simple control escapes to the character they stand
// for. \b is absent here: outside a class it is a word-boundary anchor.
func controlEscape(ch rune) (rune, bool) {
	switch ch {
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case 'f':
		return '\f', true
	case 'v':
		return '\v', true
	}
	return 0, false
}

func isHexDigit(ch rune) bool {
	return ch >= '0' && ch <= '9' || ch >= 'a' && ch <= 'f' || ch >= 'A' && ch <= 'F'
}

func hexVal(ch rune) int {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0')
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10
	default:
		return int(ch-'A') + 10
	}
}

func isASCIILetter(ch rune) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

// parseEscapeAtom parses an escape sequence outside a character class. The
// cursor sits on the backslash.
func (p *parser) parseEscapeAtom() (ast.Node, error) {
	startPos := p.cur.off
	p.cur.take() // backslash
	nxt := p.cur.peek()

	// Numeric backref \1..\99, greedily extended one digit at a time while
	// the number still names an existing capture. \0 is the null byte, not a
	// backref.
	if nxt >= '1' && nxt <= '9' {
		savedPos := p.cur.off
		num := 0
		for {
			ch := p.cur.peek()
			if ch < '0' || ch > '9' {
				break
			}
			next := num*10 + int(ch-'0')
			if next > p.capCount {
				break
			}
			p.cur.take()
			num = next
		}
		if num > 0 {
			return &ast.Backref{Index: num}, nil
		}
		p.cur.off = savedPos
		bad, _ := p.readDigits()
		return nil, p.err(fmt.Sprintf("Backreference to undefined group \\%d", bad), startPos)
	}

	switch nxt {
	case 'b':
		p.cur.take()
		return &ast.Anchor{At: ast.AnchorWordBoundary}, nil
	case 'B':
		p.cur.take()
		return &ast.Anchor{At: ast.AnchorNotWordBoundary}, nil
	case 'A':
		p.cur.take()
		return &ast.Anchor{At: ast.AnchorAbsoluteStart}, nil
	case 'Z':
		p.cur.take()
		return &ast.Anchor{At: ast.AnchorEndBeforeFinalNewline}, nil
	case 'z':
		p.cur.take()
		return &ast.Anchor{At: ast.AnchorAbsoluteEnd}, nil
	}

	if nxt == 'k' {
		p.cur.take()
		if !p.cur.match("<") {
			return nil, p.err("Expected '<' after \\k", startPos)
		}
		name := p.readUntil('>')
		if !p.cur.match(">") {
			return nil, p.err("Unterminated named backref", startPos)
		}
		if !p.capNames[name] {
			return nil, p.err(fmt.Sprintf("Backreference to undefined group <%s>", name), startPos)
		}
		return &ast.Backref{Name: name}, nil
	}

	switch nxt {
	case 'd', 'D', 'w', 'W', 's', 'S':
		p.cur.take()
		return &ast.CharClass{Items: []ast.ClassItem{&ast.ClassEscape{Kind: byte(nxt)}}}, nil
	}

	if nxt == 'p' || nxt == 'P' {
		p.cur.take()
		propPos := startPos + 1
		if !p.cur.match("{") {
			return nil, p.err("Expected { after \\p/\\P", propPos)
		}
		prop := p.readUntil('}')
		if !p.cur.match("}") {
			return nil, p.err("Unterminated \\p{...}", propPos)
		}
		return &ast.CharClass{Items: []ast.ClassItem{&ast.ClassEscape{Kind: byte(nxt), Property: prop}}}, nil
	}

	if ch, ok := controlEscape(nxt); ok {
		p.cur.take()
		return &ast.Lit{Value: string(ch)}, nil
	}

	if nxt == 'x' {
		s, err := p.parseHexEscape(startPos)
		if err != nil {
			return nil, err
		}
		return &ast.Lit{Value: s}, nil
	}
	if nxt == 'u' || nxt == 'U' {
		s, err := p.parseUnicodeEscape(startPos)
		if err != nil {
			return nil, err
		}
		return &ast.Lit{Value: s}, nil
	}
	if nxt == '0' {
		p.cur.take()
		return &ast.Lit{Value: "\x00"}, nil
	}

	if nxt != 0 {
		escaped := p.cur.take()
		if isASCIILetter(escaped) {
			return nil, p.err(fmt.Sprintf("Unknown escape sequence \\%c", escaped), startPos)
		}
		// Escaped whitespace only means a literal in free-spacing mode.
		if unicode.IsSpace(escaped) && !p.cur.extended {
			return nil, p.err(fmt.Sprintf("Unknown escape sequence \\%c", escaped), startPos)
		}
		return &ast.Lit{Value: string(escaped)}, nil
	}

	return nil, p.err("Incomplete escape at end of pattern", startPos)
}

// readUntil consumes up to but not including terminator (or EOF).
func (p *parser) readUntil(terminator rune) string {
	start := p.cur.off
	for !p.cur.eof() && p.cur.peek() != terminator {
		p.cur.take()
	}
	return p.cur.src[start:p.cur.off]
}

// checkCodepoint rejects values outside the Unicode scalar range, which the
// escape would otherwise silently mangle into U+FFFD.
func (p *parser) checkCodepoint(cp int, message string, pos int) error {
	if cp > unicode.MaxRune || (cp >= 0xD800 && cp <= 0xDFFF) {
		return p.err(message, pos)
	}
	return nil
}

// parseHexEscape handles \xHH and \x{...}. The cursor sits on the 'x'.
func (p *parser) parseHexEscape(startPos int) (string, error) {
	p.cur.take() // 'x'

	if p.cur.match("{") {
		cp := 0
		for isHexDigit(p.cur.peek()) {
			d := hexVal(p.cur.take())
			if cp <= unicode.MaxRune {
				cp = cp<<4 | d
			}
		}
		if !p.cur.match("}") {
			return "", p.err("Unterminated \\x{...}", startPos)
		}
		if err := p.checkCodepoint(cp, "Invalid \\x{...} escape", startPos); err != nil {
			return "", err
		}
		return string(rune(cp)), nil
	}

	h1 := p.cur.take()
	h2 := p.cur.take()
	if !isHexDigit(h1) || !isHexDigit(h2) {
		return "", p.err("Invalid \\xHH escape", startPos)
	}
	return string(rune(hexVal(h1)<<4 | hexVal(h2))), nil
}

// parseUnicodeEscape handles \uHHHH, \u{...} and \UHHHHHHHH. The cursor sits
// on the 'u' or 'U'.
func (p *parser) parseUnicodeEscape(startPos int) (string, error) {
	tp := p.cur.take()

	if tp == 'u' && p.cur.match("{") {
		cp := 0
		for isHexDigit(p.cur.peek()) {
			d := hexVal(p.cur.take())
			if cp <= unicode.MaxRune {
				cp = cp<<4 | d
			}
		}
		if !p.cur.match("}") {
			return "", p.err("Unterminated \\u{...}", startPos)
		}
		if err := p.checkCodepoint(cp, "Invalid \\u{...} escape", startPos); err != nil {
			return "", err
		}
		return string(rune(cp)), nil
	}

	if tp == 'U' {
		cp := 0
		for i := 0; i < 8; i++ {
			ch := p.cur.take()
			if !isHexDigit(ch) {
				return "", p.err("Invalid \\UHHHHHHHH", startPos)
			}
			cp = cp<<4 | hexVal(ch)
		}
		if err := p.checkCodepoint(cp, "Invalid \\UHHHHHHHH", startPos); err != nil {
			return "", err
		}
		return string(rune(cp)), nil
	}

	cp := 0
	for i := 0; i < 4; i++ {
		ch := p.cur.take()
		if !isHexDigit(ch) {
			return "", p.err("Invalid \\uHHHH", startPos)
		}
		cp = cp<<4 | hexVal(ch)
	}
	if err := p.checkCodepoint(cp, "Invalid \\uHHHH", startPos); err != nil {
		return "", err
	}
	return string(rune(cp)), nil
}
