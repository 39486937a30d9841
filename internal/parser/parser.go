// Package parser turns pattern text into the syntax tree consumed by the
// lowering and emission stages. Parsing is fail-fast: the first error aborts
// with a position-carrying diagnostic.
package parser

import (
	"strl/internal/ast"
	"strl/internal/diag"
)

type parser struct {
	src      string
	cur      *cursor
	capCount int
	capNames map[string]bool
}

// Parse extracts directives from text, then parses the remaining pattern into
// its syntax tree. Returned errors are *diag.Diagnostic values positioned in
// the original text, directive lines included.
func Parse(text string) (ast.Flags, ast.Node, error) {
	flags, pattern, base, err := extractDirectives(text)
	if err != nil {
		return flags, nil, err
	}

	p := &parser{
		src:      pattern,
		cur:      &cursor{src: pattern, extended: flags.Extended},
		capNames: make(map[string]bool),
	}
	node, err := p.parse()
	if err != nil {
		// The parser scans the directive-stripped pattern; rebase its
		// diagnostics onto the original text so file positions line up.
		if d, ok := err.(*diag.Diagnostic); ok {
			d.Pos += base
			d.Src = text
		}
		return flags, nil, err
	}
	return flags, node, nil
}

// err builds a diagnostic anchored in the pattern text.
func (p *parser) err(message string, pos int) error {
	return diag.New(message, pos, p.src)
}

func (p *parser) parse() (ast.Node, error) {
	node, err := p.parseAlt()
	if err != nil {
		return nil, err
	}
	p.cur.skipWsAndComments()
	if !p.cur.eof() {
		switch p.cur.peek() {
		case ')':
			return nil, p.err("Unmatched ')'", p.cur.off)
		case '|':
			return nil, p.err("Alternation lacks right-hand side", p.cur.off)
		default:
			return nil, p.err("Unexpected trailing input", p.cur.off)
		}
	}
	return node, nil
}

// parseAlt parses seq ('|' seq)*, collapsing a single branch to the branch
// itself.
func (p *parser) parseAlt() (ast.Node, error) {
	p.cur.skipWsAndComments()
	if p.cur.peek() == '|' {
		return nil, p.err("Alternation lacks left-hand side", p.cur.off)
	}

	first, err := p.parseSeq()
	if err != nil {
		return nil, err
	}
	branches := []ast.Node{first}
	p.cur.skipWsAndComments()

	for p.cur.peek() == '|' {
		pipePos := p.cur.off
		p.cur.take()
		p.cur.skipWsAndComments()
		if p.cur.eof() {
			return nil, p.err("Alternation lacks right-hand side", pipePos)
		}
		if p.cur.peek() == '|' {
			return nil, p.err("Empty alternation branch", pipePos)
		}
		branch, err := p.parseSeq()
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
		p.cur.skipWsAndComments()
	}

	if len(branches) == 1 {
		return branches[0], nil
	}
	return &ast.Alt{Branches: branches}, nil
}

// parseSeq parses a run of quantified atoms, coalescing adjacent literals.
// Coalescing is suppressed in free-spacing mode and right after a brace that
// failed to parse as a quantifier, so the literal brace stays a separate
// node.
func (p *parser) parseSeq() (ast.Node, error) {
	var parts []ast.Node
	prevFailedQuant := false

	for {
		p.cur.skipWsAndComments()
		ch := p.cur.peek()

		if len(parts) == 0 && (ch == '*' || ch == '+' || ch == '?' || ch == '{') {
			return nil, p.err("Invalid quantifier '"+string(ch)+"'", p.cur.off)
		}
		if ch == 0 || ch == ')' || ch == '|' {
			break
		}

		atom, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		quantified, failedQuant, err := p.quantIfAny(atom)
		if err != nil {
			return nil, err
		}

		lit, isLit := quantified.(*ast.Lit)
		if isLit && len(parts) > 0 && !p.cur.extended && !prevFailedQuant {
			if prev, ok := parts[len(parts)-1].(*ast.Lit); ok {
				parts[len(parts)-1] = &ast.Lit{Value: prev.Value + lit.Value}
				prevFailedQuant = failedQuant
				continue
			}
		}
		parts = append(parts, quantified)
		prevFailedQuant = failedQuant
	}

	if len(parts) == 1 {
		return parts[0], nil
	}
	return &ast.Seq{Parts: parts}, nil
}

func (p *parser) parseAtom() (ast.Node, error) {
	p.cur.skipWsAndComments()
	switch p.cur.peek() {
	case '.':
		p.cur.take()
		return &ast.Dot{}, nil
	case '^':
		p.cur.take()
		return &ast.Anchor{At: ast.AnchorStart}, nil
	case '$':
		p.cur.take()
		return &ast.Anchor{At: ast.AnchorEnd}, nil
	case '(':
		return p.parseGroupOrLook()
	case '[':
		return p.parseCharClass()
	case '\\':
		return p.parseEscapeAtom()
	case ')':
		return nil, p.err("Unmatched ')'", p.cur.off)
	case '|':
		// parseSeq stops on '|' before reaching here; kept as a guard.
		return nil, p.err("Unexpected token", p.cur.off)
	}
	return &ast.Lit{Value: string(p.cur.take())}, nil
}
