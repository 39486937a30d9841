// Package ir holds the normalized tree the emitter consumes. It mirrors the
// parser's syntax tree structurally, but normalization guarantees shapes the
// syntax tree does not: no nested sequences or alternations and no adjacent
// literals within a sequence.
package ir

// Node is the closed set of IR nodes. Trees are immutable after
// construction.
type Node interface {
	node()
}

// Lit matches its text verbatim.
type Lit struct {
	Value string
}

// Seq matches its parts in order. After normalization no part is itself a
// Seq, no two adjacent parts are Lits, and a Seq never has exactly one part.
type Seq struct {
	Parts []Node
}

// Alt matches any one of its branches. After normalization no branch is
// itself an Alt.
type Alt struct {
	Branches []Node
}

// Dot matches any character, subject to the dotAll flag at emission.
type Dot struct{}

// AnchorKind enumerates the zero-width position assertions.
type AnchorKind uint8

const (
	AnchorStart AnchorKind = iota
	AnchorEnd
	AnchorWordBoundary
	AnchorNotWordBoundary
	AnchorAbsoluteStart
	AnchorAbsoluteEnd
	AnchorEndBeforeFinalNewline
)

// Anchor is a zero-width position assertion.
type Anchor struct {
	At AnchorKind
}

// CharClass is a bracket expression.
type CharClass struct {
	Negated bool
	Items   []ClassItem
}

// ClassItem is one member of a CharClass.
type ClassItem interface {
	classItem()
}

// ClassLiteral is a single character inside a class.
type ClassLiteral struct {
	Ch rune
}

// ClassRange is an inclusive character range, From <= To.
type ClassRange struct {
	From rune
	To   rune
}

// ClassEscape is a shorthand (d, D, w, W, s, S) or a property escape
// (p, P with Property set).
type ClassEscape struct {
	Kind     byte
	Property string
}

// Unbounded marks a quantifier with no upper limit.
const Unbounded = -1

// QuantMode selects the backtracking behavior of a quantifier.
type QuantMode uint8

const (
	Greedy QuantMode = iota
	Lazy
	Possessive
)

// Quant repeats its child Min..Max times.
type Quant struct {
	Child Node
	Min   int
	Max   int
	Mode  QuantMode
}

// Group wraps a sub-expression; Name implies Capturing, Atomic groups never
// capture.
type Group struct {
	Capturing bool
	Name      string
	Atomic    bool
	Body      Node
}

// Backref references an earlier capture by 1-based Index or by Name.
type Backref struct {
	Index int
	Name  string
}

// LookDir is the direction of a lookaround.
type LookDir uint8

const (
	Ahead LookDir = iota
	Behind
)

// Look is a zero-width lookahead or lookbehind.
type Look struct {
	Dir     LookDir
	Negated bool
	Body    Node
}

func (*Lit) node()       {}
func (*Seq) node()       {}
func (*Alt) node()       {}
func (*Dot) node()       {}
func (*Anchor) node()    {}
func (*CharClass) node() {}
func (*Quant) node()     {}
func (*Group) node()     {}
func (*Backref) node()   {}
func (*Look) node()      {}

func (*ClassLiteral) classItem() {}
func (*ClassRange) classItem()   {}
func (*ClassEscape) classItem()  {}
