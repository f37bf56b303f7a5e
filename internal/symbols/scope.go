package symbols

import (
	"playscript/internal/ast"
	"playscript/internal/source"
	"playscript/internal/types"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid   ScopeKind = iota
	ScopeNamespace           // compilation unit root
	ScopeBlock               // statement block or for-loop
	ScopeClass               // class body; also a symbol and a type
	ScopeFunction            // function; also a symbol and a type
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeNamespace:
		return "namespace"
	case ScopeBlock:
		return "block"
	case ScopeClass:
		return "class"
	case ScopeFunction:
		return "function"
	default:
		return "invalid"
	}
}

// Scope models a lexical scope with a parent-child hierarchy. Class and
// function scopes double as a named symbol in the enclosing scope and as a
// nominal type; Symbol and Type link those facets.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Node      ast.NodeID
	Name      source.StringID
	Symbol    SymbolID
	Type      types.TypeID
	Members   []SymbolID
	NameIndex map[source.StringID][]SymbolID
	Children  []ScopeID

	// ParentClass is set on class scopes with a resolved `extends` clause.
	ParentClass ScopeID
	// Params and Result describe a function signature. Result stays
	// NoTypeID when no return type was written.
	Params []SymbolID
	Result types.TypeID
}

// IsNamed reports whether the scope introduces a named declaration.
func (s *Scope) IsNamed() bool {
	return s != nil && (s.Kind == ScopeClass || s.Kind == ScopeFunction)
}
