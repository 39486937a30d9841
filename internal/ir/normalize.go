package ir

// Normalize rewrites a tree into canonical shape: nested sequences and
// alternations are flattened into their parent, adjacent literals inside a
// sequence are merged, and single-element wrappers collapse to the element.
// An empty Seq stays an empty Seq (it matches the empty string). Normalize
// is idempotent.
func Normalize(n Node) Node {
	switch n := n.(type) {
	case *Seq:
		var parts []Node
		for _, p := range n.Parts {
			p = Normalize(p)
			if inner, ok := p.(*Seq); ok {
				parts = append(parts, inner.Parts...)
				continue
			}
			parts = append(parts, p)
		}
		parts = coalesceLits(parts)
		if len(parts) == 1 {
			return parts[0]
		}
		return &Seq{Parts: parts}
	case *Alt:
		var branches []Node
		for _, b := range n.Branches {
			b = Normalize(b)
			if inner, ok := b.(*Alt); ok {
				branches = append(branches, inner.Branches...)
				continue
			}
			branches = append(branches, b)
		}
		if len(branches) == 1 {
			return branches[0]
		}
		return &Alt{Branches: branches}
	case *Quant:
		return &Quant{Child: Normalize(n.Child), Min: n.Min, Max: n.Max, Mode: n.Mode}
	case *Group:
		return &Group{Capturing: n.Capturing, Name: n.Name, Atomic: n.Atomic, Body: Normalize(n.Body)}
	case *Look:
		return &Look{Dir: n.Dir, Negated: n.Negated, Body: Normalize(n.Body)}
	}
	return n
}

func coalesceLits(parts []Node) []Node {
	out := parts[:0]
	for _, p := range parts {
		lit, ok := p.(*Lit)
		if ok && len(out) > 0 {
			if prev, isLit := out[len(out)-1].(*Lit); isLit {
				out[len(out)-1] = &Lit{Value: prev.Value + lit.Value}
				continue
			}
		}
		out = append(out, p)
	}
	return out
}
