package lexer

import (
	"playscript/internal/diag"
	"playscript/internal/token"
)

// "..." с escape-последовательностями; escape не валидируем глубоко ,
// съедаем '\' и следующий байт.
func (lx *Lexer) scanString() token.Token {
	return lx.scanQuoted('"', token.StringLit, diag.LexUnterminatedString, "string")
}

// '.': символьный литерал, те же правила escape.
func (lx *Lexer) scanChar() token.Token {
	return lx.scanQuoted('\'', token.CharLit, diag.LexUnterminatedChar, "character")
}

func (lx *Lexer) scanQuoted(quote byte, kind token.Kind, code diag.Code, what string) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // открывающая кавычка
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			return lx.emit(kind, start)
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if b == '\n' {
			lx.errLex(code, lx.cursor.SpanFrom(start), "newline in "+what+" literal")
			return lx.emit(token.Invalid, start)
		}
		lx.cursor.Bump()
	}
	lx.errLex(code, lx.cursor.SpanFrom(start), "unterminated "+what+" literal")
	return lx.emit(token.Invalid, start)
}
