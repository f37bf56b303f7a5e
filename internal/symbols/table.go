package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"playscript/internal/ast"
	"playscript/internal/source"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates symbol-related arenas and shared resources.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *source.Interner
}

// NewTable builds a fresh table with optional capacity hints.
// If strings is nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		Scopes:  NewScopes(scopeCap),
		Symbols: NewSymbols(symCap),
		Strings: strings,
	}
}

// NewScope allocates a scope under parent.
func (t *Table) NewScope(kind ScopeKind, parent ScopeID, node ast.NodeID, name source.StringID) ScopeID {
	return t.Scopes.New(kind, parent, node, name)
}

// Declare appends sym to the members of its Scope. No conflict checks are
// made here: duplicates are reported by callers and still inserted.
func (t *Table) Declare(sym Symbol) SymbolID {
	scope := t.Scopes.Get(sym.Scope)
	if scope == nil {
		return NoSymbolID
	}
	id := t.Symbols.New(&sym)
	scope.Members = append(scope.Members, id)
	if sym.Name != source.NoStringID {
		scope.NameIndex[sym.Name] = append(scope.NameIndex[sym.Name], id)
	}
	return id
}

// BindScope declares the symbol a class, function or block scope stands for
// in its parent and links both directions.
func (t *Table) BindScope(scopeID ScopeID) SymbolID {
	scope := t.Scopes.Get(scopeID)
	if scope == nil || !scope.Parent.IsValid() {
		return NoSymbolID
	}
	kind := SymbolBlock
	switch scope.Kind {
	case ScopeClass:
		kind = SymbolClass
	case ScopeFunction:
		kind = SymbolFunction
	}
	id := t.Declare(Symbol{
		Name:  scope.Name,
		Kind:  kind,
		Scope: scope.Parent,
		Decl:  scope.Node,
		Type:  scope.Type,
		Inner: scopeID,
	})
	scope.Symbol = id
	return id
}

// LookupLocal returns the symbols named name declared directly in scopeID,
// oldest first.
func (t *Table) LookupLocal(scopeID ScopeID, name source.StringID) []SymbolID {
	scope := t.Scopes.Get(scopeID)
	if scope == nil {
		return nil
	}
	return scope.NameIndex[name]
}

// FindLocal returns the first symbol of kind named name in scopeID.
func (t *Table) FindLocal(scopeID ScopeID, name source.StringID, kind SymbolKind) SymbolID {
	for _, id := range t.LookupLocal(scopeID, name) {
		if sym := t.Symbols.Get(id); sym != nil && sym.Kind == kind {
			return id
		}
	}
	return NoSymbolID
}

// Lookup walks the scope chain outward from start and returns the first
// symbol of the given kind; SymbolInvalid matches any kind.
func (t *Table) Lookup(start ScopeID, name source.StringID, kind SymbolKind) SymbolID {
	for scopeID := start; scopeID.IsValid(); {
		scope := t.Scopes.Get(scopeID)
		if scope == nil {
			break
		}
		for _, id := range scope.NameIndex[name] {
			sym := t.Symbols.Get(id)
			if sym != nil && (kind == SymbolInvalid || sym.Kind == kind) {
				return id
			}
		}
		scopeID = scope.Parent
	}
	return NoSymbolID
}

// Chain returns start and all its ancestors, innermost first.
func (t *Table) Chain(start ScopeID) []ScopeID {
	var out []ScopeID
	for scopeID := start; scopeID.IsValid(); {
		scope := t.Scopes.Get(scopeID)
		if scope == nil {
			break
		}
		out = append(out, scopeID)
		scopeID = scope.Parent
	}
	return out
}

// NameOf returns the symbol name or "" for unnamed symbols.
func (t *Table) NameOf(id SymbolID) string {
	sym := t.Symbols.Get(id)
	if sym == nil || t.Strings == nil {
		return ""
	}
	s, _ := t.Strings.Lookup(sym.Name)
	return s
}

// ScopeName returns the class or function name of a scope.
func (t *Table) ScopeName(id ScopeID) string {
	scope := t.Scopes.Get(id)
	if scope == nil || t.Strings == nil {
		return ""
	}
	s, _ := t.Strings.Lookup(scope.Name)
	return s
}
