package lexer

import (
	"golang.org/x/text/unicode/norm"

	"playscript/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Идентификаторы приводятся к NFC, чтобы визуально одинаковые имена совпадали
// в таблице символов; для ASCII Token.Text, ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.cursor.Rune()
	if sz == 0 {
		return token.Token{Kind: token.Invalid, Span: lx.cursor.SpanFrom(start)}
	}
	if r >= utf8RuneSelf && !isIdentStartRune(r) {
		return lx.scanOperatorOrPunct()
	}
	lx.cursor.BumpRune()
	for {
		r2, sz2 := lx.cursor.Rune()
		if sz2 == 0 {
			break
		}
		if r2 < utf8RuneSelf {
			if !isIdentContinueByte(byte(r2)) {
				break
			}
		} else if !isIdentContinueRune(r2) {
			break
		}
		lx.cursor.BumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if !norm.NFC.IsNormalString(text) {
		text = norm.NFC.String(text)
	}

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
