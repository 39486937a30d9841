package parser

import (
	"fmt"

	"strl/internal/ast"
	"strl/internal/diag"
)

const emptyClassHint = "Empty character class '[]' detected. Character classes must contain " +
	"at least one element (e.g., [a-z]) — do not leave them empty. If you meant a literal " +
	"'[', escape it with '\\['."

// parseCharClass parses [...] or [^...]. The cursor sits on the '['.
func (p *parser) parseCharClass() (ast.Node, error) {
	p.cur.take() // '['
	startPos := p.cur.off
	p.cur.inClass++
	defer func() { p.cur.inClass-- }()

	negated := false
	if p.cur.peek() == '^' {
		negated = true
		p.cur.take()
		startPos = p.cur.off
	}

	var items []ast.ClassItem
	for {
		if p.cur.eof() {
			return nil, p.err("Unterminated character class", p.cur.off)
		}

		// An explicitly empty class ([] or [^]). A ']' right after the
		// opening is otherwise a literal, so this only fires when nothing
		// can follow it inside the class.
		if p.cur.peek() == ']' && len(items) == 0 {
			if nxt := p.cur.peekAt(1); nxt == 0 || nxt == ']' {
				return nil, diag.New("Unterminated character class", startPos, p.src).
					WithHint(emptyClassHint)
			}
		}

		if p.cur.peek() == ']' && p.cur.off > startPos {
			p.cur.take()
			return &ast.CharClass{Negated: negated, Items: items}, nil
		}

		// '-' forms a range only between a preceding literal and something
		// other than the closing ']'.
		if p.cur.peek() == '-' && len(items) > 0 && p.cur.peekAt(1) != ']' {
			if from, ok := items[len(items)-1].(*ast.ClassLiteral); ok {
				dashPos := p.cur.off
				p.cur.take()
				end, err := p.readClassItem()
				if err != nil {
					return nil, err
				}
				if to, ok := end.(*ast.ClassLiteral); ok {
					if from.Ch > to.Ch {
						return nil, p.err(
							fmt.Sprintf("Invalid character range [%c-%c]", from.Ch, to.Ch), dashPos)
					}
					items[len(items)-1] = &ast.ClassRange{From: from.Ch, To: to.Ch}
				} else {
					// A shorthand cannot end a range; keep the dash literal.
					items = append(items, &ast.ClassLiteral{Ch: '-'}, end)
				}
				continue
			}
		}

		item, err := p.readClassItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

// readClassItem reads one class member: a shorthand or property escape, an
// escaped or plain literal. Inside a class \b is the backspace character.
func (p *parser) readClassItem() (ast.ClassItem, error) {
	if p.cur.peek() != '\\' {
		return &ast.ClassLiteral{Ch: p.cur.take()}, nil
	}

	escapeStart := p.cur.off
	p.cur.take() // backslash
	nxt := p.cur.peek()

	switch nxt {
	case 'd', 'D', 'w', 'W', 's', 'S':
		p.cur.take()
		return &ast.ClassEscape{Kind: byte(nxt)}, nil
	case 'p', 'P':
		p.cur.take()
		if !p.cur.match("{") {
			return nil, p.err("Expected { after \\p/\\P", escapeStart)
		}
		prop := p.readUntil('}')
		if !p.cur.match("}") {
			return nil, p.err("Unterminated \\p{...}", escapeStart)
		}
		return &ast.ClassEscape{Kind: byte(nxt), Property: prop}, nil
	case 'x':
		s, err := p.parseHexEscape(escapeStart)
		if err != nil {
			return nil, err
		}
		return &ast.ClassLiteral{Ch: firstRune(s)}, nil
	case 'u', 'U':
		s, err := p.parseUnicodeEscape(escapeStart)
		if err != nil {
			return nil, err
		}
		return &ast.ClassLiteral{Ch: firstRune(s)}, nil
	case '0':
		p.cur.take()
		return &ast.ClassLiteral{Ch: 0}, nil
	case 'b':
		p.cur.take()
		return &ast.ClassLiteral{Ch: '\b'}, nil
	}
	if ch, ok := controlEscape(nxt); ok {
		p.cur.take()
		return &ast.ClassLiteral{Ch: ch}, nil
	}

	// Identity escape: \-, \^, \] and friends.
	return &ast.ClassLiteral{Ch: p.cur.take()}, nil
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
