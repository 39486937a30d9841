package ast

import (
	"encoding/json"
	"fmt"
)

// The interchange encoding is one tagged record per node kind. It exists for
// interop with external validators and alternate front-ends; the pipeline
// itself never round-trips through it.

// MarshalNode encodes a node tree as a kind-tagged JSON document.
func MarshalNode(n Node) ([]byte, error) {
	return json.Marshal(ToRecord(n))
}

// MarshalNodeIndent is MarshalNode with indentation, for CLI output.
func MarshalNodeIndent(n Node) ([]byte, error) {
	return json.MarshalIndent(ToRecord(n), "", "  ")
}

// ToRecord converts a node into the generic tagged-record form.
func ToRecord(n Node) map[string]any {
	switch v := n.(type) {
	case *Lit:
		return map[string]any{"kind": "Lit", "value": v.Value}
	case *Seq:
		parts := make([]any, len(v.Parts))
		for i, p := range v.Parts {
			parts[i] = ToRecord(p)
		}
		return map[string]any{"kind": "Seq", "parts": parts}
	case *Alt:
		branches := make([]any, len(v.Branches))
		for i, b := range v.Branches {
			branches[i] = ToRecord(b)
		}
		return map[string]any{"kind": "Alt", "branches": branches}
	case *Dot:
		return map[string]any{"kind": "Dot"}
	case *Anchor:
		return map[string]any{"kind": "Anchor", "at": v.At.String()}
	case *CharClass:
		items := make([]any, len(v.Items))
		for i, it := range v.Items {
			items[i] = classItemRecord(it)
		}
		return map[string]any{"kind": "CharClass", "negated": v.Negated, "items": items}
	case *Quant:
		var max any = v.Max
		if v.Max == Unbounded {
			max = "Inf"
		}
		return map[string]any{
			"kind":  "Quant",
			"child": ToRecord(v.Child),
			"min":   v.Min,
			"max":   max,
			"mode":  v.Mode.String(),
		}
	case *Group:
		rec := map[string]any{
			"kind":      "Group",
			"capturing": v.Capturing,
			"body":      ToRecord(v.Body),
		}
		if v.Name != "" {
			rec["name"] = v.Name
		}
		if v.Atomic {
			rec["atomic"] = true
		}
		return rec
	case *Backref:
		rec := map[string]any{"kind": "Backref"}
		if v.Name != "" {
			rec["byName"] = v.Name
		} else {
			rec["byIndex"] = v.Index
		}
		return rec
	case *Look:
		return map[string]any{
			"kind": "Look",
			"dir":  v.Dir.String(),
			"neg":  v.Negated,
			"body": ToRecord(v.Body),
		}
	}
	panic(fmt.Sprintf("ast: no record form for %T", n))
}

func classItemRecord(it ClassItem) map[string]any {
	switch v := it.(type) {
	case *ClassLiteral:
		return map[string]any{"kind": "Char", "char": string(v.Ch)}
	case *ClassRange:
		return map[string]any{"kind": "Range", "from": string(v.From), "to": string(v.To)}
	case *ClassEscape:
		rec := map[string]any{"kind": "Esc", "type": string(v.Kind)}
		if (v.Kind == 'p' || v.Kind == 'P') && v.Property != "" {
			rec["property"] = v.Property
		}
		return rec
	}
	panic(fmt.Sprintf("ast: no record form for class item %T", it))
}

// UnmarshalNode decodes a kind-tagged JSON document back into a node tree.
func UnmarshalNode(data []byte) (Node, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return FromRecord(raw)
}

// FromRecord rebuilds a node from its tagged-record form.
func FromRecord(rec map[string]any) (Node, error) {
	kind, _ := rec["kind"].(string)
	switch kind {
	case "Lit":
		value, _ := rec["value"].(string)
		return &Lit{Value: value}, nil
	case "Seq":
		parts, err := recordList(rec["parts"])
		if err != nil {
			return nil, err
		}
		return &Seq{Parts: parts}, nil
	case "Alt":
		branches, err := recordList(rec["branches"])
		if err != nil {
			return nil, err
		}
		return &Alt{Branches: branches}, nil
	case "Dot":
		return &Dot{}, nil
	case "Anchor":
		at, _ := rec["at"].(string)
		kind, ok := anchorKindFromString(at)
		if !ok {
			return nil, fmt.Errorf("ast: unknown anchor kind %q", at)
		}
		return &Anchor{At: kind}, nil
	case "CharClass":
		negated, _ := rec["negated"].(bool)
		rawItems, _ := rec["items"].([]any)
		items := make([]ClassItem, 0, len(rawItems))
		for _, ri := range rawItems {
			m, ok := ri.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("ast: malformed class item %v", ri)
			}
			it, err := classItemFromRecord(m)
			if err != nil {
				return nil, err
			}
			items = append(items, it)
		}
		return &CharClass{Negated: negated, Items: items}, nil
	case "Quant":
		childRec, ok := rec["child"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("ast: quantifier without child")
		}
		child, err := FromRecord(childRec)
		if err != nil {
			return nil, err
		}
		min := intField(rec["min"])
		max := Unbounded
		if s, isStr := rec["max"].(string); !isStr {
			max = intField(rec["max"])
		} else if s != "Inf" {
			return nil, fmt.Errorf("ast: bad quantifier max %q", s)
		}
		mode, ok := quantModeFromString(stringField(rec["mode"], "Greedy"))
		if !ok {
			return nil, fmt.Errorf("ast: unknown quantifier mode %v", rec["mode"])
		}
		return &Quant{Child: child, Min: min, Max: max, Mode: mode}, nil
	case "Group":
		bodyRec, ok := rec["body"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("ast: group without body")
		}
		body, err := FromRecord(bodyRec)
		if err != nil {
			return nil, err
		}
		capturing, _ := rec["capturing"].(bool)
		name, _ := rec["name"].(string)
		atomic, _ := rec["atomic"].(bool)
		return &Group{Capturing: capturing, Name: name, Atomic: atomic, Body: body}, nil
	case "Backref":
		if name, ok := rec["byName"].(string); ok && name != "" {
			return &Backref{Name: name}, nil
		}
		return &Backref{Index: intField(rec["byIndex"])}, nil
	case "Look":
		bodyRec, ok := rec["body"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("ast: lookaround without body")
		}
		body, err := FromRecord(bodyRec)
		if err != nil {
			return nil, err
		}
		dir := Ahead
		if stringField(rec["dir"], "Ahead") == "Behind" {
			dir = Behind
		}
		neg, _ := rec["neg"].(bool)
		return &Look{Dir: dir, Negated: neg, Body: body}, nil
	}
	return nil, fmt.Errorf("ast: unknown node kind %q", kind)
}

func classItemFromRecord(rec map[string]any) (ClassItem, error) {
	kind, _ := rec["kind"].(string)
	switch kind {
	case "Char":
		ch, _ := rec["char"].(string)
		if ch == "" {
			return nil, fmt.Errorf("ast: class literal without char")
		}
		return &ClassLiteral{Ch: []rune(ch)[0]}, nil
	case "Range":
		from, _ := rec["from"].(string)
		to, _ := rec["to"].(string)
		if from == "" || to == "" {
			return nil, fmt.Errorf("ast: class range missing endpoint")
		}
		return &ClassRange{From: []rune(from)[0], To: []rune(to)[0]}, nil
	case "Esc":
		typ, _ := rec["type"].(string)
		if len(typ) != 1 {
			return nil, fmt.Errorf("ast: bad class escape type %q", typ)
		}
		prop, _ := rec["property"].(string)
		return &ClassEscape{Kind: typ[0], Property: prop}, nil
	}
	return nil, fmt.Errorf("ast: unknown class item kind %q", kind)
}

func recordList(raw any) ([]Node, error) {
	list, _ := raw.([]any)
	out := make([]Node, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("ast: malformed child record %v", item)
		}
		n, err := FromRecord(m)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func intField(raw any) int {
	switch v := raw.(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func stringField(raw any, fallback string) string {
	if s, ok := raw.(string); ok {
		return s
	}
	return fallback
}

func anchorKindFromString(s string) (AnchorKind, bool) {
	switch s {
	case "Start":
		return AnchorStart, true
	case "End":
		return AnchorEnd, true
	case "WordBoundary":
		return AnchorWordBoundary, true
	case "NotWordBoundary":
		return AnchorNotWordBoundary, true
	case "AbsoluteStart":
		return AnchorAbsoluteStart, true
	case "AbsoluteEnd":
		return AnchorAbsoluteEnd, true
	case "EndBeforeFinalNewline":
		return AnchorEndBeforeFinalNewline, true
	}
	return 0, false
}

func quantModeFromString(s string) (QuantMode, bool) {
	switch s {
	case "Greedy":
		return Greedy, true
	case "Lazy":
		return Lazy, true
	case "Possessive":
		return Possessive, true
	}
	return 0, false
}
