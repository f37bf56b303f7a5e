package token

import (
	"playscript/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a literal value.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, CharLit, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsPrimitiveType reports whether the token names a built-in value type.
func (t Token) IsPrimitiveType() bool {
	return IsPrimitive(t.Kind)
}

// IsPrimitive reports whether k is one of the primitive type keywords.
func IsPrimitive(k Kind) bool {
	switch k {
	case KwBoolean, KwChar, KwByte, KwShort, KwInt, KwLong, KwFloat, KwDouble, KwString:
		return true
	default:
		return false
	}
}

// IsModifier reports whether k is a declaration modifier that analysis ignores.
func IsModifier(k Kind) bool {
	switch k {
	case KwPublic, KwPrivate, KwProtected, KwStatic, KwFinal:
		return true
	default:
		return false
	}
}

// IsAssignOp reports whether k is '=' or a compound assignment.
func IsAssignOp(k Kind) bool {
	switch k {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign, PercentAssign:
		return true
	default:
		return false
	}
}

