package sema

import (
	"playscript/internal/ast"
	"playscript/internal/symbols"
	"playscript/internal/types"
)

// EnclosingScope returns the scope of the nearest proper ancestor of node
// that opened one.
func (c *Context) EnclosingScope(node ast.NodeID) symbols.ScopeID {
	found := symbols.NoScopeID
	ast.Ancestors(c.Tree, node, func(p ast.NodeID) bool {
		if id, ok := c.nodeScope[p]; ok {
			found = id
			return false
		}
		return true
	})
	return found
}

// LookupClass searches the scope chain outward from start for a class bound
// to name.
func (c *Context) LookupClass(start symbols.ScopeID, name string) symbols.ScopeID {
	nameID, ok := c.Table.Strings.Find(name)
	if !ok {
		return symbols.NoScopeID
	}
	sym := c.Table.Symbols.Get(c.Table.Lookup(start, nameID, symbols.SymbolClass))
	if sym == nil {
		return symbols.NoScopeID
	}
	return sym.Inner
}

// LookupType returns the first registered class or function type named name.
func (c *Context) LookupType(name string) types.TypeID {
	nameID, ok := c.Table.Strings.Find(name)
	if !ok {
		return types.NoTypeID
	}
	for _, id := range c.allTypes {
		tt, ok := c.Types.Lookup(id)
		if ok && tt.Kind.IsNominal() && tt.Name == nameID {
			return id
		}
	}
	return types.NoTypeID
}

// ClassOf maps a class type back to its scope.
func (c *Context) ClassOf(t types.TypeID) symbols.ScopeID {
	tt, ok := c.Types.Lookup(t)
	if !ok || tt.Kind != types.KindClass {
		return symbols.NoScopeID
	}
	return symbols.ScopeID(tt.Payload)
}

// ParamTypes lists the resolved parameter types of a function scope in
// declaration order.
func (c *Context) ParamTypes(fn symbols.ScopeID) []types.TypeID {
	scope := c.Table.Scopes.Get(fn)
	if scope == nil {
		return nil
	}
	out := make([]types.TypeID, 0, len(scope.Params))
	for _, p := range scope.Params {
		if sym := c.Table.Symbols.Get(p); sym != nil {
			out = append(out, sym.Type)
		}
	}
	return out
}

// findVariable looks for a variable named like the new declaration from
// scope outward, stopping after the first function or class scope.
func (c *Context) findVariable(scopeID symbols.ScopeID, node ast.NodeID) symbols.SymbolID {
	n := c.Tree.Node(node)
	if n == nil {
		return symbols.NoSymbolID
	}
	for _, id := range c.Table.Chain(scopeID) {
		if sym := c.Table.FindLocal(id, n.Name, symbols.SymbolVariable); sym.IsValid() {
			return sym
		}
		if c.Table.Scopes.Get(id).IsNamed() {
			break
		}
	}
	return symbols.NoSymbolID
}
