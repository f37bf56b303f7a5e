package lexer

import "unicode"

// Identifier classes. The byte forms cover ASCII; non-ASCII identifiers are
// letters and digits in the Unicode sense.

func isIdentStartByte(b byte) bool {
	return b == '_' || ('a' <= b|0x20 && b|0x20 <= 'z')
}

func isIdentContinueByte(b byte) bool { return isIdentStartByte(b) || isDec(b) }

func isIdentStartRune(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isIdentContinueRune(r rune) bool { return isIdentStartRune(r) || unicode.IsDigit(r) }

func isDec(b byte) bool { return '0' <= b && b <= '9' }

func isHex(b byte) bool { return isDec(b) || ('a' <= b|0x20 && b|0x20 <= 'f') }

// isNumberAfterDot matches the ".5" form of a float literal.
func (lx *Lexer) isNumberAfterDot() bool {
	return lx.cursor.Peek() == '.' && isDec(lx.cursor.At(1))
}
