package types

import (
	"fmt"

	"playscript/internal/source"
)

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type. A node recorded with NoTypeID was
// already diagnosed (or deliberately left unresolved) and must not be
// re-diagnosed downstream.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBoolean
	KindInteger
	KindLong
	KindFloat
	KindDouble
	KindByte
	KindShort
	KindChar
	KindString
	KindVoid
	// KindClass is nominal: one TypeID per class declaration.
	KindClass
	// KindFunction is nominal: one TypeID per function declaration.
	KindFunction
	// KindFuncType is a structural function type, fresh per occurrence.
	KindFuncType
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindBoolean:
		return "Boolean"
	case KindInteger:
		return "Integer"
	case KindLong:
		return "Long"
	case KindFloat:
		return "Float"
	case KindDouble:
		return "Double"
	case KindByte:
		return "Byte"
	case KindShort:
		return "Short"
	case KindChar:
		return "Char"
	case KindString:
		return "String"
	case KindVoid:
		return "Void"
	case KindClass:
		return "class"
	case KindFunction:
		return "function"
	case KindFuncType:
		return "functype"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsPrimitive reports whether k is one of the singleton value types.
func (k Kind) IsPrimitive() bool {
	return k >= KindBoolean && k <= KindString
}

// IsNominal reports whether identity of k is its declaration.
func (k Kind) IsNominal() bool {
	return k == KindClass || k == KindFunction
}

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind Kind
	// Name of a class or function declaration; NoStringID otherwise.
	Name source.StringID
	// Payload is the declaring scope handle for KindClass/KindFunction and
	// the FnInfo slot for KindFuncType.
	Payload uint32
}
