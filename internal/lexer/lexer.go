package lexer

import (
	"playscript/internal/source"
	"playscript/internal/token"
)

// Lexer turns one file into tokens on demand. Whitespace and comments never
// reach the caller.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	peeked bool
	next   token.Token
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), opts: opts}
}

// Next consumes a token. Once the input is exhausted it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.peeked {
		lx.peeked = false
		return lx.next
	}
	lx.skipTrivia()
	if lx.cursor.EOF() {
		at := lx.cursor.Off
		return token.Token{Kind: token.EOF, Span: source.Span{File: lx.file.ID, Start: at, End: at}}
	}
	return lx.scanFor(lx.cursor.Peek())()
}

// scanFor picks the scanner by the first byte of a token. Non-ASCII bytes go
// to the identifier scanner, which reports them if they cannot start a name.
func (lx *Lexer) scanFor(ch byte) func() token.Token {
	switch {
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword
	case isDec(ch), ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber
	case ch == '"':
		return lx.scanString
	case ch == '\'':
		return lx.scanChar
	}
	return lx.scanOperatorOrPunct
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if !lx.peeked {
		lx.next = lx.Next()
		lx.peeked = true
	}
	return lx.next
}

// Tokenize lexes the whole file. The returned slice always ends with EOF.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	// примерно один токен на четыре байта
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for tok := lx.Next(); ; tok = lx.Next() {
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
