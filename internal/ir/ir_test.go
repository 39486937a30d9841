package ir

import (
	"reflect"
	"sort"
	"testing"

	"strl/internal/ast"
	"strl/internal/parser"
)

// lowered parses a pattern and lowers it without normalizing.
func lowered(t *testing.T, src string) Node {
	t.Helper()
	_, node, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return Lower(node)
}

func TestLowerMirrorsSyntaxTree(t *testing.T) {
	got := Lower(&ast.Seq{Parts: []ast.Node{
		&ast.Anchor{At: ast.AnchorStart},
		&ast.Quant{Child: &ast.Lit{Value: "a"}, Min: 1, Max: ast.Unbounded, Mode: ast.Possessive},
		&ast.Group{Capturing: true, Name: "n", Body: &ast.CharClass{
			Negated: true,
			Items: []ast.ClassItem{
				&ast.ClassRange{From: '0', To: '9'},
				&ast.ClassEscape{Kind: 'p', Property: "L"},
			},
		}},
		&ast.Look{Dir: ast.Behind, Negated: true, Body: &ast.Dot{}},
		&ast.Backref{Name: "n"},
	}})

	want := &Seq{Parts: []Node{
		&Anchor{At: AnchorStart},
		&Quant{Child: &Lit{Value: "a"}, Min: 1, Max: Unbounded, Mode: Possessive},
		&Group{Capturing: true, Name: "n", Body: &CharClass{
			Negated: true,
			Items: []ClassItem{
				&ClassRange{From: '0', To: '9'},
				&ClassEscape{Kind: 'p', Property: "L"},
			},
		}},
		&Look{Dir: Behind, Negated: true, Body: &Dot{}},
		&Backref{Name: "n"},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lower = %+v, want %+v", got, want)
	}
}

func TestNormalizeFlattens(t *testing.T) {
	in := &Seq{Parts: []Node{
		&Lit{Value: "a"},
		&Seq{Parts: []Node{
			&Lit{Value: "b"},
			&Seq{Parts: []Node{&Dot{}}},
		}},
		&Alt{Branches: []Node{
			&Lit{Value: "x"},
			&Alt{Branches: []Node{&Lit{Value: "y"}, &Lit{Value: "z"}}},
		}},
	}}
	got := Normalize(in)
	want := &Seq{Parts: []Node{
		&Lit{Value: "ab"},
		&Dot{},
		&Alt{Branches: []Node{
			&Lit{Value: "x"},
			&Lit{Value: "y"},
			&Lit{Value: "z"},
		}},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize = %+v, want %+v", got, want)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	srcs := []string{
		"^hello$",
		"(a|b)+c",
		`(?<tag>\w+)-\k<tag>`,
		"a(?:bc|de)*f",
		`[a-z\d]{2,5}?`,
	}
	for _, src := range srcs {
		once := Normalize(lowered(t, src))
		twice := Normalize(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Normalize(%q) not idempotent: %+v vs %+v", src, once, twice)
		}
	}
}

func TestNormalizeInvariants(t *testing.T) {
	srcs := []string{
		"abc(def(ghi))",
		"a|b|c|d",
		"((a))((b))",
		"x(?:y(?:z))",
	}
	for _, src := range srcs {
		checkShape(t, src, Normalize(lowered(t, src)))
	}
}

// checkShape walks the whole tree asserting the normalized-form guarantees.
func checkShape(t *testing.T, src string, n Node) {
	t.Helper()
	switch n := n.(type) {
	case *Seq:
		if len(n.Parts) == 1 {
			t.Errorf("%q: single-element Seq survived normalization", src)
		}
		for i, p := range n.Parts {
			if _, ok := p.(*Seq); ok {
				t.Errorf("%q: Seq directly contains a Seq", src)
			}
			if i > 0 {
				_, prevLit := n.Parts[i-1].(*Lit)
				_, curLit := p.(*Lit)
				if prevLit && curLit {
					t.Errorf("%q: adjacent Lits survived normalization", src)
				}
			}
			checkShape(t, src, p)
		}
	case *Alt:
		for _, b := range n.Branches {
			if _, ok := b.(*Alt); ok {
				t.Errorf("%q: Alt directly contains an Alt", src)
			}
			checkShape(t, src, b)
		}
	case *Quant:
		checkShape(t, src, n.Child)
	case *Group:
		checkShape(t, src, n.Body)
	case *Look:
		checkShape(t, src, n.Body)
	}
}

func TestNormalizePreservesEmptySeq(t *testing.T) {
	got := Normalize(&Seq{})
	seq, ok := got.(*Seq)
	if !ok || len(seq.Parts) != 0 {
		t.Errorf("Normalize(empty Seq) = %+v, want empty Seq", got)
	}
}

func TestAnalyzeFeatures(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{"abc", nil},
		{"(?<n>a)", []string{FeatureNamedGroup}},
		{"(?>ab)", []string{FeatureAtomicGroup}},
		{"a*+", []string{FeaturePossessive}},
		{"(?=a)", []string{FeatureLookahead}},
		{"(?<!a)", []string{FeatureLookbehind}},
		{`(a)\1`, []string{FeatureBackreference}},
		{`\p{L}`, []string{FeatureUnicodeProperty}},
		{`(?<n>\p{L})(?=x)\k<n>`, []string{
			FeatureBackreference, FeatureLookahead, FeatureNamedGroup, FeatureUnicodeProperty,
		}},
	}
	for _, tt := range tests {
		set := AnalyzeFeatures(Normalize(lowered(t, tt.src)))
		var got []string
		for tag := range set {
			got = append(got, tag)
		}
		sort.Strings(got)
		want := append([]string(nil), tt.want...)
		sort.Strings(want)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("AnalyzeFeatures(%q) = %v, want %v", tt.src, got, want)
		}
	}
}
