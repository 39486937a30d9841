// Package ast defines the tree produced by the parser. Nodes form a closed
// sum type: every consumer switches exhaustively over the variants below, so
// adding a node kind surfaces every site that needs updating.
//
// The tree is immutable after parsing. Each node exclusively owns its
// children; nothing is shared or cyclic.
package ast

// Node is implemented by every AST node kind.
type Node interface {
	node()
}

// Lit is a run of raw matched characters, already unescaped.
type Lit struct {
	Value string
}

// Seq is the concatenation of its parts, in order.
type Seq struct {
	Parts []Node
}

// Alt is a set of '|'-separated branches, in order.
type Alt struct {
	Branches []Node
}

// Dot matches any character.
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

func (k AnchorKind) String() string {
	switch k {
	case AnchorStart:
		return "Start"
	case AnchorEnd:
		return "End"
	case AnchorWordBoundary:
		return "WordBoundary"
	case AnchorNotWordBoundary:
		return "NotWordBoundary"
	case AnchorAbsoluteStart:
		return "AbsoluteStart"
	case AnchorAbsoluteEnd:
		return "AbsoluteEnd"
	case AnchorEndBeforeFinalNewline:
		return "EndBeforeFinalNewline"
	}
	return "Unknown"
}

// Anchor is a zero-width assertion. It never has children and can never be
// quantified.
type Anchor struct {
	At AnchorKind
}

// ClassItem is one element of a character class.
type ClassItem interface {
	classItem()
}

// ClassLiteral is a single literal character inside a class.
type ClassLiteral struct {
	Ch rune
}

// ClassRange is an inclusive from-to range inside a class.
type ClassRange struct {
	From rune
	To   rune
}

// ClassEscape is a shorthand escape inside a class: Kind is one of
// d D w W s S p P; Property is set only for p/P.
type ClassEscape struct {
	Kind     byte
	Property string
}

// CharClass is a bracket expression, possibly negated.
type CharClass struct {
	Negated bool
	Items   []ClassItem
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

func (m QuantMode) String() string {
	switch m {
	case Lazy:
		return "Lazy"
	case Possessive:
		return "Possessive"
	}
	return "Greedy"
}

// Quant binds a repetition count to exactly one child atom.
// Max is either >= Min or Unbounded.
type Quant struct {
	Child Node
	Min   int
	Max   int
	Mode  QuantMode
}

// Group wraps a sub-expression. Name implies Capturing; Atomic groups are
// never capturing.
type Group struct {
	Capturing bool
	Name      string
	Atomic    bool
	Body      Node
}

// Backref references an earlier capturing group, by 1-based Index or by
// Name. Exactly one of the two is set.
type Backref struct {
	Index int
	Name  string
}

// LookDir is the direction of a lookaround assertion.
type LookDir uint8

const (
	Ahead LookDir = iota
	Behind
)

func (d LookDir) String() string {
	if d == Behind {
		return "Behind"
	}
	return "Ahead"
}

// Look is a zero-width lookahead or lookbehind, positive or negative.
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
