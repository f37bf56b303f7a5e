package lexer

import (
	"playscript/internal/diag"
	"playscript/internal/token"
)

// Поддержка: 0, 123, 0x1F, 1.0, .5, 1e-3, 1.0e+10 и суффиксы L/l, F/f, D/d.
// Суффиксы остаются в Token.Text. Неверные формы, репорт, токен Invalid.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.EatPair('0', 'x') || lx.cursor.EatPair('0', 'X') {
		if !isHex(lx.cursor.Peek()) {
			lx.errLex(diag.LexBadNumber, lx.cursor.SpanFrom(start), "expected hex digit after 0x")
			return lx.emit(token.Invalid, start)
		}
		for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
		lx.eatIntSuffix()
		return lx.emit(token.IntLit, start)
	}

	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	// дробная часть; "1.foo" остаётся IntLit + Dot
	if lx.isNumberAfterDot() {
		kind = token.FloatLit
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		kind = token.FloatLit
		lx.cursor.Bump()
		if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			lx.errLex(diag.LexBadNumber, lx.cursor.SpanFrom(start), "expected digit after exponent")
			return lx.emit(token.Invalid, start)
		}
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	switch lx.cursor.Peek() {
	case 'f', 'F', 'd', 'D':
		lx.cursor.Bump()
		kind = token.FloatLit
	case 'l', 'L':
		if kind == token.IntLit {
			lx.cursor.Bump()
		}
	}

	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		lx.errLex(diag.LexBadNumber, lx.cursor.SpanFrom(start), "invalid suffix on numeric literal")
		return lx.emit(token.Invalid, start)
	}
	return lx.emit(kind, start)
}

func (lx *Lexer) eatIntSuffix() {
	if b := lx.cursor.Peek(); b == 'l' || b == 'L' {
		lx.cursor.Bump()
	}
}
