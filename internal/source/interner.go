package source

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// StringID names an interned string. Class, function and variable names are
// compared by StringID throughout the symbol table.
type StringID uint32

// NoStringID is the empty string; anonymous blocks carry it as their name.
const NoStringID StringID = 0

type Interner struct {
	strs []string
	ids  map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{strs: []string{""}, ids: map[string]StringID{"": NoStringID}}
}

// Intern returns the id of s, assigning the next one on first use. The
// stored copy does not alias s, so token text can be released.
func (in *Interner) Intern(s string) StringID {
	if id, ok := in.ids[s]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(in.strs))
	if err != nil {
		panic(fmt.Errorf("interner overflow: %w", err))
	}
	s = strings.Clone(s)
	in.strs = append(in.strs, s)
	in.ids[s] = StringID(n)
	return StringID(n)
}

// Find is Intern without the side effect.
func (in *Interner) Find(s string) (StringID, bool) {
	id, ok := in.ids[s]
	return id, ok
}

func (in *Interner) Lookup(id StringID) (string, bool) {
	if int(id) >= len(in.strs) {
		return "", false
	}
	return in.strs[id], true
}

func (in *Interner) MustLookup(id StringID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("unknown string id %d", id))
	}
	return s
}

// Len includes the empty string at NoStringID.
func (in *Interner) Len() int { return len(in.strs) }
