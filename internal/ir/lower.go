package ir

import (
	"fmt"

	"strl/internal/ast"
)

// Lower maps a syntax tree one-to-one onto IR. No validation happens here:
// the parser already rejected every malformed construct, so an unknown node
// is an internal defect and panics.
func Lower(n ast.Node) Node {
	switch n := n.(type) {
	case *ast.Lit:
		return &Lit{Value: n.Value}
	case *ast.Seq:
		parts := make([]Node, len(n.Parts))
		for i, p := range n.Parts {
			parts[i] = Lower(p)
		}
		return &Seq{Parts: parts}
	case *ast.Alt:
		branches := make([]Node, len(n.Branches))
		for i, b := range n.Branches {
			branches[i] = Lower(b)
		}
		return &Alt{Branches: branches}
	case *ast.Dot:
		return &Dot{}
	case *ast.Anchor:
		return &Anchor{At: lowerAnchor(n.At)}
	case *ast.CharClass:
		items := make([]ClassItem, len(n.Items))
		for i, it := range n.Items {
			items[i] = lowerClassItem(it)
		}
		return &CharClass{Negated: n.Negated, Items: items}
	case *ast.Quant:
		return &Quant{
			Child: Lower(n.Child),
			Min:   n.Min,
			Max:   n.Max,
			Mode:  QuantMode(n.Mode),
		}
	case *ast.Group:
		return &Group{
			Capturing: n.Capturing,
			Name:      n.Name,
			Atomic:    n.Atomic,
			Body:      Lower(n.Body),
		}
	case *ast.Backref:
		return &Backref{Index: n.Index, Name: n.Name}
	case *ast.Look:
		return &Look{
			Dir:     LookDir(n.Dir),
			Negated: n.Negated,
			Body:    Lower(n.Body),
		}
	}
	panic(fmt.Sprintf("ir: cannot lower %T", n))
}

func lowerAnchor(at ast.AnchorKind) AnchorKind {
	switch at {
	case ast.AnchorStart:
		return AnchorStart
	case ast.AnchorEnd:
		return AnchorEnd
	case ast.AnchorWordBoundary:
		return AnchorWordBoundary
	case ast.AnchorNotWordBoundary:
		return AnchorNotWordBoundary
	case ast.AnchorAbsoluteStart:
		return AnchorAbsoluteStart
	case ast.AnchorAbsoluteEnd:
		return AnchorAbsoluteEnd
	case ast.AnchorEndBeforeFinalNewline:
		return AnchorEndBeforeFinalNewline
	}
	panic(fmt.Sprintf("ir: unknown anchor kind %d", at))
}

func lowerClassItem(it ast.ClassItem) ClassItem {
	switch it := it.(type) {
	case *ast.ClassLiteral:
		return &ClassLiteral{Ch: it.Ch}
	case *ast.ClassRange:
		return &ClassRange{From: it.From, To: it.To}
	case *ast.ClassEscape:
		return &ClassEscape{Kind: it.Kind, Property: it.Property}
	}
	panic(fmt.Sprintf("ir: cannot lower class item %T", it))
}
