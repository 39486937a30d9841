package parser

import "strl/internal/ast"

// quantIfAny applies a quantifier to child when one follows. The boolean
// result reports that a '{' was present but did not parse as a quantifier,
// which the sequence loop uses to keep the literal brace uncoalesced.
func (p *parser) quantIfAny(child ast.Node) (ast.Node, bool, error) {
	ch := p.cur.peek()

	if _, isAnchor := child.(*ast.Anchor); isAnchor {
		if ch == '*' || ch == '+' || ch == '?' || ch == '{' {
			return nil, false, p.err("Cannot quantify anchor", p.cur.off)
		}
		return child, false, nil
	}

	var min, max int
	switch ch {
	case '*':
		p.cur.take()
		min, max = 0, ast.Unbounded
	case '+':
		p.cur.take()
		min, max = 1, ast.Unbounded
	case '?':
		p.cur.take()
		min, max = 0, 1
	case '{':
		bmin, bmax, ok, err := p.braceQuant()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return child, true, nil
		}
		min, max = bmin, bmax
	default:
		return child, false, nil
	}

	if max != ast.Unbounded && min > max {
		return nil, false, p.err("Invalid quantifier range", p.cur.off)
	}

	mode := ast.Greedy
	switch p.cur.peek() {
	case '?':
		p.cur.take()
		mode = ast.Lazy
	case '+':
		p.cur.take()
		mode = ast.Possessive
	}

	return &ast.Quant{Child: child, Min: min, Max: max, Mode: mode}, false, nil
}

// braceQuant parses {m}, {m,} or {m,n} at the cursor. A brace with no
// closing '}' or with empty digit-less content is not a quantifier: the
// cursor backtracks to the '{' and ok is false. Digit-less content that does
// close (e.g. {foo}) is rejected outright.
func (p *parser) braceQuant() (min, max int, ok bool, err error) {
	quantStart := p.cur.off
	if !p.cur.match("{") {
		return 0, 0, false, nil
	}

	minDigits, hasMin := p.readDigits()
	p.cur.skipWsAndComments()

	if !hasMin {
		j := 0
		sawNonQuant := false
		for {
			ch := p.cur.peekAt(j)
			if ch == 0 || ch == '}' || ch == '\r' || ch == '\n' {
				break
			}
			if !(ch >= '0' && ch <= '9') && ch != ',' {
				sawNonQuant = true
			}
			j++
		}
		if p.cur.peekAt(j) == '}' && sawNonQuant {
			return 0, 0, false, p.err("Brace quantifier: Invalid brace quantifier content", quantStart)
		}
		p.cur.off = quantStart
		return 0, 0, false, nil
	}

	switch p.cur.peek() {
	case ',':
		p.cur.take()
		p.cur.skipWsAndComments()
		maxDigits, hasMax := p.readDigits()
		p.cur.skipWsAndComments()
		if !p.cur.match("}") {
			return 0, 0, false, p.err("Incomplete quantifier", p.cur.off)
		}
		if !hasMax {
			return minDigits, ast.Unbounded, true, nil
		}
		return minDigits, maxDigits, true, nil
	case '}':
		p.cur.take()
		return minDigits, minDigits, true, nil
	}

	return 0, 0, false, p.err("Incomplete quantifier", p.cur.off)
}

// readDigits consumes a decimal run at the cursor.
func (p *parser) readDigits() (int, bool) {
	n, seen := 0, false
	for {
		ch := p.cur.peek()
		if ch < '0' || ch > '9' {
			break
		}
		p.cur.take()
		n = n*10 + int(ch-'0')
		seen = true
	}
	return n, seen
}
