package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"playscript/internal/source"
)

// Cursor walks the bytes of one source file. Off is an absolute offset into
// File.Content, so spans built from marks are already file spans.
type Cursor struct {
	File *source.File
	Off  uint32
	end  uint32
}

func NewCursor(f *source.File) Cursor {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("source %s too large: %w", f.Path, err))
	}
	return Cursor{File: f, end: end}
}

func (c *Cursor) EOF() bool { return c.Off >= c.end }

// At returns the byte n positions ahead, or 0 past the end of input.
func (c *Cursor) At(n uint32) byte {
	if c.Off+n >= c.end {
		return 0
	}
	return c.File.Content[c.Off+n]
}

func (c *Cursor) Peek() byte { return c.At(0) }

// Bump consumes one byte and returns it; at EOF it returns 0 and stays put.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.Peek() != b {
		return false
	}
	c.Off++
	return true
}

// EatPair consumes a then b if both are next, e.g. "==" or "*/".
func (c *Cursor) EatPair(a, b byte) bool {
	if c.Off+1 >= c.end || c.At(0) != a || c.At(1) != b {
		return false
	}
	c.Off += 2
	return true
}

// Rune decodes the rune at the cursor. size is 0 at EOF.
func (c *Cursor) Rune() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	if b := c.Peek(); b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.File.Content[c.Off:c.end])
}

// BumpRune consumes the rune Rune would return.
func (c *Cursor) BumpRune() {
	_, size := c.Rune()
	c.Off += uint32(size) //nolint:gosec // size is at most utf8.UTFMax
}

// Mark is a saved offset; SpanFrom turns it into the span read since.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

// Reset rewinds to m.
func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }
