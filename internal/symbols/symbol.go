package symbols

import (
	"playscript/internal/ast"
	"playscript/internal/source"
	"playscript/internal/types"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolVariable
	SymbolClass
	SymbolFunction
	SymbolBlock
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolClass:
		return "class"
	case SymbolFunction:
		return "function"
	case SymbolBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Symbol describes a named entity available in a scope. Blocks are stored as
// unnamed members so the member list mirrors source order.
type Symbol struct {
	Name  source.StringID
	Kind  SymbolKind
	Scope ScopeID
	Decl  ast.NodeID
	// Type is the resolved type of a variable (NoTypeID until pass 2) or
	// the nominal type of a class or function.
	Type types.TypeID
	// Inner is the scope a class, function or block symbol stands for.
	Inner ScopeID
}
