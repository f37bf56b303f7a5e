package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"playscript/internal/ast"
	"playscript/internal/source"
)

// ScopeID is a 1-based index into Scopes; 0 means "no scope" and is what
// the global scope reports as its parent.
type ScopeID uint32

// SymbolID is a 1-based index into Symbols.
type SymbolID uint32

const (
	NoScopeID  ScopeID  = 0
	NoSymbolID SymbolID = 0
)

func (id ScopeID) IsValid() bool  { return id != NoScopeID }
func (id SymbolID) IsValid() bool { return id != NoSymbolID }

// arena is the storage shared by Scopes and Symbols. Slot 0 is a sentinel
// so that the zero id never resolves.
type arena[T any, ID ~uint32] struct {
	what  string
	slots []T
}

func newArena[T any, ID ~uint32](what string, hint uint32) arena[T, ID] {
	return arena[T, ID]{what: what, slots: make([]T, 1, hint+1)}
}

func (a *arena[T, ID]) push(v T) ID {
	n, err := safecast.Conv[uint32](len(a.slots))
	if err != nil {
		panic(fmt.Errorf("%s arena overflow: %w", a.what, err))
	}
	a.slots = append(a.slots, v)
	return ID(n)
}

func (a *arena[T, ID]) at(id ID) *T {
	if id == 0 || int(id) >= len(a.slots) {
		return nil
	}
	return &a.slots[id]
}

func (a *arena[T, ID]) live() []T {
	if len(a.slots) <= 1 {
		return nil
	}
	return a.slots[1:]
}

// Scopes owns every scope of one compilation unit.
type Scopes struct {
	arena[Scope, ScopeID]
}

// NewScopes sizes the arena for about hint scopes (32 when zero).
func NewScopes(hint uint32) *Scopes {
	if hint == 0 {
		hint = 32
	}
	return &Scopes{newArena[Scope, ScopeID]("scopes", hint)}
}

// New appends a scope and, when parent is valid, links it as the parent's
// last child. Children therefore stay in declaration order.
func (s *Scopes) New(kind ScopeKind, parent ScopeID, node ast.NodeID, name source.StringID) ScopeID {
	id := s.push(Scope{
		Kind:      kind,
		Parent:    parent,
		Node:      node,
		Name:      name,
		NameIndex: make(map[source.StringID][]SymbolID),
	})
	if p := s.at(parent); p != nil {
		p.Children = append(p.Children, id)
	}
	return id
}

// Get returns nil for NoScopeID and ids past the end.
func (s *Scopes) Get(id ScopeID) *Scope { return s.at(id) }

func (s *Scopes) Len() int { return len(s.slots) - 1 }

// Data returns the scopes in allocation order; element i has id i+1.
func (s *Scopes) Data() []Scope { return s.live() }

// Symbols owns every declared symbol of one compilation unit.
type Symbols struct {
	arena[Symbol, SymbolID]
}

func NewSymbols(hint uint32) *Symbols {
	if hint == 0 {
		hint = 64
	}
	return &Symbols{newArena[Symbol, SymbolID]("symbols", hint)}
}

// New copies *sym into the arena.
func (s *Symbols) New(sym *Symbol) SymbolID {
	if sym == nil {
		panic("symbols.New: nil symbol")
	}
	return s.push(*sym)
}

func (s *Symbols) Get(id SymbolID) *Symbol { return s.at(id) }

func (s *Symbols) Len() int { return len(s.slots) - 1 }

// Data returns the symbols in allocation order; element i has id i+1.
func (s *Symbols) Data() []Symbol { return s.live() }
