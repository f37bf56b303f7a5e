package parser

import (
	"playscript/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precAssignment     = 1  // = += -= *= /= %=
	precTernary        = 2  // ?:
	precLogicalOr      = 3  // ||
	precLogicalAnd     = 4  // &&
	precBitwiseOr      = 5  // |
	precBitwiseXor     = 6  // ^
	precBitwiseAnd     = 7  // &
	precEquality       = 8  // == !=
	precComparison     = 9  // < <= > >=
	precAdditive       = 10 // + -
	precMultiplicative = 11 // * / %
)

// binaryPrec возвращает приоритет оператора и его правую ассоциативность;
// -1 означает, что это не инфиксный оператор.
func binaryPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign, token.SlashAssign, token.PercentAssign:
		return precAssignment, true
	case token.Question:
		return precTernary, true
	case token.OrOr:
		return precLogicalOr, false
	case token.AndAnd:
		return precLogicalAnd, false
	case token.Pipe:
		return precBitwiseOr, false
	case token.Caret:
		return precBitwiseXor, false
	case token.Amp:
		return precBitwiseAnd, false
	case token.EqEq, token.BangEq:
		return precEquality, false
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false
	default:
		return -1, false
	}
}
