package ast

import (
	"reflect"
	"strings"
	"testing"
)

func TestFlagsFromLetters(t *testing.T) {
	f := FromLetters("im")
	if !f.IgnoreCase || !f.Multiline || f.DotAll || f.Unicode || f.Extended {
		t.Fatalf("unexpected flags %+v", f)
	}
	if f.Letters() != "im" {
		t.Fatalf("letters = %q", f.Letters())
	}
}

func TestFlagsLettersFixedOrder(t *testing.T) {
	f := FromLetters("xusmi")
	if got := f.Letters(); got != "imsux" {
		t.Fatalf("letters = %q, want imsux", got)
	}
	if !f.Any() {
		t.Fatal("Any() should be true")
	}
	if (Flags{}).Any() {
		t.Fatal("zero flags should not be Any")
	}
}

func TestRecordRoundTrip(t *testing.T) {
	tree := Node(&Seq{Parts: []Node{
		&Anchor{At: AnchorStart},
		&Group{Capturing: true, Name: "word", Body: &Quant{
			Child: &CharClass{Items: []ClassItem{&ClassEscape{Kind: 'w'}}},
			Min:   1, Max: Unbounded, Mode: Greedy,
		}},
		&Lit{Value: "-"},
		&Backref{Name: "word"},
		&Alt{Branches: []Node{
			&Dot{},
			&CharClass{Negated: true, Items: []ClassItem{
				&ClassLiteral{Ch: 'x'},
				&ClassRange{From: 'a', To: 'z'},
				&ClassEscape{Kind: 'p', Property: "L"},
			}},
		}},
		&Look{Dir: Behind, Negated: true, Body: &Lit{Value: "no"}},
		&Quant{Child: &Dot{}, Min: 2, Max: 5, Mode: Lazy},
		&Anchor{At: AnchorEnd},
	}})

	data, err := MarshalNode(tree)
	if err != nil {
		t.Fatal(err)
	}
	back, err := UnmarshalNode(data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tree, back) {
		t.Fatalf("round trip mismatch:\n in: %#v\nout: %#v", tree, back)
	}
}

func TestUnboundedMaxEncodesAsInf(t *testing.T) {
	data, err := MarshalNode(&Quant{Child: &Dot{}, Min: 0, Max: Unbounded})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"max":"Inf"`) {
		t.Fatalf("expected Inf max, got %s", data)
	}
}

func TestBackrefRecordExactlyOneField(t *testing.T) {
	byIdx := ToRecord(&Backref{Index: 2})
	if _, ok := byIdx["byName"]; ok {
		t.Fatal("numeric backref must not carry byName")
	}
	if byIdx["byIndex"] != 2 {
		t.Fatalf("byIndex = %v", byIdx["byIndex"])
	}

	byName := ToRecord(&Backref{Name: "tag"})
	if _, ok := byName["byIndex"]; ok {
		t.Fatal("named backref must not carry byIndex")
	}
}

func TestUnmarshalRejectsUnknownKind(t *testing.T) {
	if _, err := UnmarshalNode([]byte(`{"kind":"Nope"}`)); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if _, err := UnmarshalNode([]byte(`{"kind":"Anchor","at":"Sideways"}`)); err == nil {
		t.Fatal("expected error for unknown anchor kind")
	}
}
