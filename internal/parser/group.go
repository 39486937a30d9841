package parser

import "strl/internal/ast"

// parseGroupOrLook parses everything introduced by '(': plain and named
// captures, non-capturing and atomic groups, and the four lookarounds.
// The cursor sits on the '('.
func (p *parser) parseGroupOrLook() (ast.Node, error) {
	startPos := p.cur.off
	p.cur.take() // '('

	if p.cur.match("?:") {
		body, err := p.groupBody("Unterminated group")
		if err != nil {
			return nil, err
		}
		return &ast.Group{Body: body}, nil
	}
	if p.cur.match("?>") {
		body, err := p.groupBody("Unterminated atomic group")
		if err != nil {
			return nil, err
		}
		return &ast.Group{Atomic: true, Body: body}, nil
	}
	if p.cur.match("?=") {
		body, err := p.groupBody("Unterminated lookahead")
		if err != nil {
			return nil, err
		}
		return &ast.Look{Dir: ast.Ahead, Body: body}, nil
	}
	if p.cur.match("?!") {
		body, err := p.groupBody("Unterminated lookahead")
		if err != nil {
			return nil, err
		}
		return &ast.Look{Dir: ast.Ahead, Negated: true, Body: body}, nil
	}
	if p.cur.match("?<=") {
		body, err := p.groupBody("Unterminated lookbehind")
		if err != nil {
			return nil, err
		}
		return &ast.Look{Dir: ast.Behind, Body: body}, nil
	}
	if p.cur.match("?<!") {
		body, err := p.groupBody("Unterminated lookbehind")
		if err != nil {
			return nil, err
		}
		return &ast.Look{Dir: ast.Behind, Negated: true, Body: body}, nil
	}

	if p.cur.match("?<") {
		nameStartPos := p.cur.off
		name := p.readUntil('>')
		if !p.cur.match(">") {
			return nil, p.err("Unterminated group name", p.cur.off)
		}
		if !validGroupName(name) {
			return nil, p.err("Invalid group name <"+name+">", nameStartPos)
		}
		if p.capNames[name] {
			return nil, p.err("Duplicate group name <"+name+">", startPos)
		}
		// Register before the body so the group can reference itself.
		p.capNames[name] = true
		p.capCount++
		body, err := p.groupBody("Unterminated group")
		if err != nil {
			return nil, err
		}
		return &ast.Group{Capturing: true, Name: name, Body: body}, nil
	}

	if p.cur.peek() == '?' {
		return nil, p.err("Inline modifiers are not supported", startPos+1)
	}

	p.capCount++
	body, err := p.groupBody("Unterminated group")
	if err != nil {
		return nil, err
	}
	return &ast.Group{Capturing: true, Body: body}, nil
}

// groupBody parses the alternation inside a group and requires the closing
// ')'.
func (p *parser) groupBody(unterminatedMsg string) (ast.Node, error) {
	body, err := p.parseAlt()
	if err != nil {
		return nil, err
	}
	if !p.cur.match(")") {
		return nil, p.err(unterminatedMsg, p.cur.off)
	}
	return body, nil
}

// validGroupName reports whether name matches [A-Za-z_][A-Za-z0-9_]*.
func validGroupName(name string) bool {
	if name == "" {
		return false
	}
	for i, ch := range name {
		switch {
		case ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_':
		case ch >= '0' && ch <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
