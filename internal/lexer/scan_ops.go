package lexer

import (
	"fmt"

	"playscript/internal/diag"
	"playscript/internal/token"
)

// Жадность: сначала 2-символьные, затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.cursor.EatPair('&', '&'):
		return lx.emit(token.AndAnd, start)
	case lx.cursor.EatPair('|', '|'):
		return lx.emit(token.OrOr, start)
	case lx.cursor.EatPair('=', '='):
		return lx.emit(token.EqEq, start)
	case lx.cursor.EatPair('!', '='):
		return lx.emit(token.BangEq, start)
	case lx.cursor.EatPair('<', '='):
		return lx.emit(token.LtEq, start)
	case lx.cursor.EatPair('>', '='):
		return lx.emit(token.GtEq, start)
	case lx.cursor.EatPair('+', '+'):
		return lx.emit(token.Inc, start)
	case lx.cursor.EatPair('-', '-'):
		return lx.emit(token.Dec, start)
	case lx.cursor.EatPair('+', '='):
		return lx.emit(token.PlusAssign, start)
	case lx.cursor.EatPair('-', '='):
		return lx.emit(token.MinusAssign, start)
	case lx.cursor.EatPair('*', '='):
		return lx.emit(token.StarAssign, start)
	case lx.cursor.EatPair('/', '='):
		return lx.emit(token.SlashAssign, start)
	case lx.cursor.EatPair('%', '='):
		return lx.emit(token.PercentAssign, start)
	}

	if k, ok := singleCharTokens[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return lx.emit(k, start)
	}

	r, _ := lx.cursor.Rune()
	lx.cursor.BumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", r))
	return lx.emit(token.Invalid, start)
}

var singleCharTokens = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'=': token.Assign,
	'!': token.Bang,
	'<': token.Lt,
	'>': token.Gt,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'~': token.Tilde,
	'?': token.Question,
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
}
