package parser

import (
	"strings"
	"unicode/utf8"
)

// cursor is the scanning position within the pattern text. Offsets are byte
// offsets; reads are rune-aware so multibyte literals survive intact.
type cursor struct {
	src      string
	off      int
	extended bool
	inClass  int // nesting count for character classes
}

func (c *cursor) eof() bool {
	return c.off >= len(c.src)
}

// peek returns the rune at the cursor, or 0 at EOF.
func (c *cursor) peek() rune {
	if c.eof() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c.src[c.off:])
	return r
}

// peekAt returns the n-th rune after the cursor (peekAt(0) == peek), or 0
// when the input runs out first.
func (c *cursor) peekAt(n int) rune {
	off := c.off
	for ; n > 0; n-- {
		if off >= len(c.src) {
			return 0
		}
		_, size := utf8.DecodeRuneInString(c.src[off:])
		off += size
	}
	if off >= len(c.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c.src[off:])
	return r
}

// take consumes and returns the next rune, or 0 at EOF.
func (c *cursor) take() rune {
	if c.eof() {
		return 0
	}
	r, size := utf8.DecodeRuneInString(c.src[c.off:])
	c.off += size
	return r
}

// match consumes s if the input starts with it at the cursor.
func (c *cursor) match(s string) bool {
	if strings.HasPrefix(c.src[c.off:], s) {
		c.off += len(s)
		return true
	}
	return false
}

// skipWsAndComments skips whitespace and #-to-EOL comments in free-spacing
// mode. Inside a character class nothing is ever skipped.
func (c *cursor) skipWsAndComments() {
	if !c.extended || c.inClass > 0 {
		return
	}
	for !c.eof() {
		switch c.peek() {
		case ' ', '\t', '\r', '\n':
			c.off++
		case '#':
			for !c.eof() && c.peek() != '\r' && c.peek() != '\n' {
				c.take()
			}
		default:
			return
		}
	}
}
