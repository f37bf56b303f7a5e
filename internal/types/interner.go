package types

import (
	"fmt"

	"fortio.org/safecast"

	"playscript/internal/source"
)

// Builtins stores TypeIDs for the singleton types.
type Builtins struct {
	Boolean TypeID
	Integer TypeID
	Long    TypeID
	Float   TypeID
	Double  TypeID
	Byte    TypeID
	Short   TypeID
	Char    TypeID
	String  TypeID
	Void    TypeID
}

// Interner owns every type descriptor of one compilation unit. Primitive and
// void types are created once; class, function and structural function
// types get a fresh TypeID per registration, so equality is TypeID identity.
type Interner struct {
	types    []Type
	builtins Builtins
	fns      []FnInfo
	Strings  *source.Interner
}

// NewInterner constructs an interner seeded with the built-in types.
// strings resolves class/function names for labels; nil creates a private one.
func NewInterner(strings *source.Interner) *Interner {
	if strings == nil {
		strings = source.NewInterner()
	}
	in := &Interner{
		types:   make([]Type, 1, 64), // 0 is NoTypeID
		fns:     make([]FnInfo, 1, 8),
		Strings: strings,
	}
	in.builtins = Builtins{
		Boolean: in.internRaw(Type{Kind: KindBoolean}),
		Integer: in.internRaw(Type{Kind: KindInteger}),
		Long:    in.internRaw(Type{Kind: KindLong}),
		Float:   in.internRaw(Type{Kind: KindFloat}),
		Double:  in.internRaw(Type{Kind: KindDouble}),
		Byte:    in.internRaw(Type{Kind: KindByte}),
		Short:   in.internRaw(Type{Kind: KindShort}),
		Char:    in.internRaw(Type{Kind: KindChar}),
		String:  in.internRaw(Type{Kind: KindString}),
		Void:    in.internRaw(Type{Kind: KindVoid}),
	}
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Primitive returns the singleton for a primitive or void kind.
func (in *Interner) Primitive(k Kind) TypeID {
	switch k {
	case KindBoolean:
		return in.builtins.Boolean
	case KindInteger:
		return in.builtins.Integer
	case KindLong:
		return in.builtins.Long
	case KindFloat:
		return in.builtins.Float
	case KindDouble:
		return in.builtins.Double
	case KindByte:
		return in.builtins.Byte
	case KindShort:
		return in.builtins.Short
	case KindChar:
		return in.builtins.Char
	case KindString:
		return in.builtins.String
	case KindVoid:
		return in.builtins.Void
	default:
		return NoTypeID
	}
}

// RegisterClass allocates a nominal class type declared by scope.
func (in *Interner) RegisterClass(name source.StringID, scope uint32) TypeID {
	return in.internRaw(Type{Kind: KindClass, Name: name, Payload: scope})
}

// RegisterFunction allocates a nominal function type declared by scope.
func (in *Interner) RegisterFunction(name source.StringID, scope uint32) TypeID {
	return in.internRaw(Type{Kind: KindFunction, Name: name, Payload: scope})
}

// internRaw adds the descriptor to the storage.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	in.types = append(in.types, t)
	return TypeID(lenTypes)
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if in == nil || id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup returns the descriptor or panics on an unknown TypeID.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("types: unknown TypeID %d", id))
	}
	return tt
}

// KindOf is a convenience accessor; KindInvalid for unknown ids.
func (in *Interner) KindOf(id TypeID) Kind {
	tt, _ := in.Lookup(id)
	return tt.Kind
}

// Len reports how many TypeIDs were allocated, excluding NoTypeID.
func (in *Interner) Len() int {
	return len(in.types) - 1
}
