package lexer

import (
	"playscript/internal/diag"
)

// skipTrivia пропускает пробелы, переводы строк, // и /* */ комментарии.
// Незакрытый блочный комментарий репортится и обрезается на EOF.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); b {
		case ' ', '\t', '\n', '\r', '\f':
			lx.cursor.Bump()
			continue
		case '/':
			if lx.skipComment() {
				continue
			}
		}
		return
	}
}

func (lx *Lexer) skipComment() bool {
	start := lx.cursor.Mark()
	if lx.cursor.Peek() != '/' {
		return false
	}
	switch lx.cursor.At(1) {
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return true
	case '*':
		lx.cursor.Bump()
		lx.cursor.Bump()
		for !lx.cursor.EOF() {
			if lx.cursor.EatPair('*', '/') {
				return true
			}
			lx.cursor.Bump()
		}
		lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		return true
	}
	return false
}
