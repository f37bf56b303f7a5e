package symbols

import (
	"errors"
	"fmt"
	"slices"

	"playscript/internal/source"
)

// Validate cross-checks the scope graph and the symbol arena: parent and
// child links agree, every member is indexed by name, every symbol is a
// member of its scope and inner scopes point back at their symbol. All
// problems are joined into one error.
func (t *Table) Validate() error {
	v := tableCheck{t: t}
	for i := range t.Scopes.Data() {
		v.scope(ScopeID(i + 1)) //nolint:gosec // arena ids fit in uint32
	}
	for i := range t.Symbols.Data() {
		v.symbol(SymbolID(i + 1)) //nolint:gosec // arena ids fit in uint32
	}
	return errors.Join(v.errs...)
}

type tableCheck struct {
	t    *Table
	errs []error
}

func (v *tableCheck) failf(format string, args ...any) {
	v.errs = append(v.errs, fmt.Errorf(format, args...))
}

func (v *tableCheck) scope(id ScopeID) {
	s := v.t.Scopes.Get(id)
	switch {
	case s.Kind == ScopeInvalid:
		v.failf("scope %d has invalid kind", id)
	case s.Kind == ScopeNamespace && s.Parent.IsValid():
		v.failf("namespace scope %d has parent %d", id, s.Parent)
	case s.Kind != ScopeNamespace && !s.Parent.IsValid():
		v.failf("%s scope %d has no parent", s.Kind, id)
	}

	if s.Parent.IsValid() {
		parent := v.t.Scopes.Get(s.Parent)
		switch {
		case parent == nil || s.Parent == id:
			v.failf("scope %d has invalid parent %d", id, s.Parent)
		case !slices.Contains(parent.Children, id):
			v.failf("scope %d parent %d missing backlink", id, s.Parent)
		}
	}
	for _, child := range s.Children {
		c := v.t.Scopes.Get(child)
		switch {
		case c == nil || child == id:
			v.failf("scope %d has invalid child %d", id, child)
		case c.Parent != id:
			v.failf("scope %d child %d missing parent backlink", id, child)
		}
	}

	if s.ParentClass.IsValid() {
		pc := v.t.Scopes.Get(s.ParentClass)
		if s.Kind != ScopeClass || pc == nil || pc.Kind != ScopeClass {
			v.failf("scope %d has invalid parent class %d", id, s.ParentClass)
		}
	}
	for _, p := range s.Params {
		if sym := v.t.Symbols.Get(p); sym == nil || sym.Kind != SymbolVariable || sym.Scope != id {
			v.failf("scope %d has invalid parameter %d", id, p)
		}
	}
	v.nameIndex(id, s)
}

// nameIndex checks that NameIndex and Members describe the same named
// symbols. Unnamed block members are not indexed.
func (v *tableCheck) nameIndex(id ScopeID, s *Scope) {
	indexed := make(map[SymbolID]bool, len(s.Members))
	for name, bucket := range s.NameIndex {
		for _, sym := range bucket {
			if !slices.Contains(s.Members, sym) {
				v.failf("scope %d name index %d references missing symbol %d", id, name, sym)
				continue
			}
			indexed[sym] = true
		}
	}
	for _, m := range s.Members {
		if sym := v.t.Symbols.Get(m); sym != nil && sym.Name != source.NoStringID && !indexed[m] {
			v.failf("scope %d symbol %d missing in name index", id, m)
		}
	}
}

func (v *tableCheck) symbol(id SymbolID) {
	sym := v.t.Symbols.Get(id)
	owner := v.t.Scopes.Get(sym.Scope)
	if owner == nil {
		v.failf("symbol %d has invalid scope %d", id, sym.Scope)
		return
	}
	if !slices.Contains(owner.Members, id) {
		v.failf("symbol %d is missing from scope %d list", id, sym.Scope)
	}
	if !sym.Inner.IsValid() {
		return
	}
	switch inner := v.t.Scopes.Get(sym.Inner); {
	case inner == nil:
		v.failf("symbol %d has invalid inner scope %d", id, sym.Inner)
	case inner.Symbol != id:
		v.failf("symbol %d inner scope %d missing symbol backlink", id, sym.Inner)
	case inner.Parent != sym.Scope:
		v.failf("symbol %d declared in %d but inner scope %d has parent %d", id, sym.Scope, sym.Inner, inner.Parent)
	}
}
