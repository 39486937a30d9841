package source

import (
	"testing"
)

func TestAddVirtualBuildsLineIndex(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("pattern.strl", []byte("%flags i\n^hello$\n"))
	f := fs.Get(id)

	if f.Flags&FileVirtual == 0 {
		t.Fatalf("expected FileVirtual flag, got %b", f.Flags)
	}
	if got := len(f.LineIdx); got != 2 {
		t.Fatalf("expected 2 newline entries, got %d", got)
	}
	if f.LineIdx[0] != 8 || f.LineIdx[1] != 16 {
		t.Fatalf("unexpected line index %v", f.LineIdx)
	}
}

func TestPositionFor(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("p.strl", []byte("abc\ndef\nghi"))

	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 1, 4},  // the newline belongs to line 1
		{4, 2, 1},  // first char after newline
		{7, 2, 4},
		{8, 3, 1},
		{10, 3, 3},
	}
	for _, c := range cases {
		got := fs.PositionFor(id, c.off)
		if got.Line != c.line || got.Col != c.col {
			t.Errorf("PositionFor(%d) = %d:%d, want %d:%d", c.off, got.Line, got.Col, c.line, c.col)
		}
	}
}

func TestPositionForSingleLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("p.strl", []byte("abcdef"))
	got := fs.PositionFor(id, 4)
	if got.Line != 1 || got.Col != 5 {
		t.Fatalf("PositionFor(4) = %d:%d, want 1:5", got.Line, got.Col)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("p.strl", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	if got := f.GetLine(1); got != "first" {
		t.Errorf("GetLine(1) = %q", got)
	}
	if got := f.GetLine(2); got != "second" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Errorf("GetLine(3) = %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Errorf("GetLine(4) = %q, want empty", got)
	}
	if got := f.GetLine(0); got != "" {
		t.Errorf("GetLine(0) = %q, want empty", got)
	}
}

func TestNormalizeCRLF(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed {
		t.Fatal("expected change")
	}
	if string(out) != "a\nb\rc" {
		t.Fatalf("got %q", out)
	}

	out, changed = normalizeCRLF([]byte("plain"))
	if changed {
		t.Fatal("unexpected change")
	}
	if string(out) != "plain" {
		t.Fatalf("got %q", out)
	}
}

func TestRemoveBOM(t *testing.T) {
	out, had := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'a'})
	if !had || string(out) != "a" {
		t.Fatalf("got %q, had=%v", out, had)
	}
	out, had = removeBOM([]byte("ab"))
	if had || string(out) != "ab" {
		t.Fatalf("got %q, had=%v", out, had)
	}
}
