package lexer

import (
	"testing"

	"playscript/internal/source"
)

func cursorOver(t *testing.T, content string) (*source.FileSet, Cursor) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("cursor.play", []byte(content))
	return fs, NewCursor(fs.Get(id))
}

func TestCursorReadsBytesUntilEOF(t *testing.T) {
	_, c := cursorOver(t, "a\nb")
	var got []byte
	for !c.EOF() {
		got = append(got, c.Bump())
	}
	if string(got) != "a\nb" {
		t.Fatalf("read %q", got)
	}
	if c.Peek() != 0 || c.Bump() != 0 || c.Off != 3 {
		t.Fatalf("cursor must stay at EOF, off=%d", c.Off)
	}
}

func TestCursorLookahead(t *testing.T) {
	_, c := cursorOver(t, "x==")
	if c.At(0) != 'x' || c.At(2) != '=' || c.At(3) != 0 {
		t.Fatalf("unexpected lookahead %q %q %q", c.At(0), c.At(2), c.At(3))
	}
	if c.EatPair('=', '=') {
		t.Fatalf("EatPair must not match at 'x'")
	}
	c.Bump()
	if !c.EatPair('=', '=') || !c.EOF() {
		t.Fatalf("expected '==' to be consumed, off=%d", c.Off)
	}
	if c.EatPair('=', '=') {
		t.Fatalf("EatPair must fail at EOF")
	}
}

func TestCursorEat(t *testing.T) {
	_, c := cursorOver(t, "a\n")
	if c.Eat('x') || c.Off != 0 {
		t.Fatalf("failed Eat must not move the cursor")
	}
	if !c.Eat('a') || !c.Eat('\n') || c.Eat('\n') {
		t.Fatalf("unexpected Eat results, off=%d", c.Off)
	}
}

func TestCursorRunes(t *testing.T) {
	_, c := cursorOver(t, "αb")
	r, size := c.Rune()
	if r != 'α' || size != 2 {
		t.Fatalf("got %q size %d", r, size)
	}
	c.BumpRune()
	if r, size = c.Rune(); r != 'b' || size != 1 {
		t.Fatalf("got %q size %d", r, size)
	}
	c.BumpRune()
	if _, size = c.Rune(); size != 0 {
		t.Fatalf("expected size 0 at EOF")
	}
}

func TestCursorSpansResolveToLines(t *testing.T) {
	fs, c := cursorOver(t, "α\nβ")
	m := c.Mark()
	c.BumpRune()
	first := c.SpanFrom(m)
	if first.Start != 0 || first.End != 2 {
		t.Fatalf("span of α: %+v", first)
	}

	m = c.Mark()
	c.Bump()
	nl := c.SpanFrom(m)
	start, end := fs.Resolve(nl)
	// the newline is the last column of its own line
	if start != (source.LineCol{Line: 1, Col: 3}) || end != (source.LineCol{Line: 2, Col: 1}) {
		t.Fatalf("newline resolved to %+v..%+v", start, end)
	}

	c.Reset(m)
	if c.Peek() != '\n' {
		t.Fatalf("reset did not rewind")
	}
}
