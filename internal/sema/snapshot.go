package sema

import (
	"playscript/internal/symbols"
	"playscript/internal/types"
)

// Snapshot is an identity-free picture of a context: two analyses of the
// same tree produce equal snapshots.
type Snapshot struct {
	Root        ScopeSnapshot `json:"root" yaml:"root"`
	Types       []string      `json:"types" yaml:"types"`
	Diagnostics []string      `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// ScopeSnapshot describes one scope and its subtree.
type ScopeSnapshot struct {
	Kind        string           `json:"kind" yaml:"kind"`
	Name        string           `json:"name,omitempty" yaml:"name,omitempty"`
	ParentClass string           `json:"extends,omitempty" yaml:"extends,omitempty"`
	Params      []VarSnapshot    `json:"params,omitempty" yaml:"params,omitempty"`
	Result      string           `json:"result,omitempty" yaml:"result,omitempty"`
	Members     []MemberSnapshot `json:"members,omitempty" yaml:"members,omitempty"`
	Children    []ScopeSnapshot  `json:"children,omitempty" yaml:"children,omitempty"`
}

// MemberSnapshot describes a symbol in a member table.
type MemberSnapshot struct {
	Kind string `json:"kind" yaml:"kind"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// VarSnapshot is a typed name.
type VarSnapshot struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// TakeSnapshot captures c. Unresolved types render as "?".
func TakeSnapshot(c *Context) Snapshot {
	snap := Snapshot{Types: make([]string, 0, len(c.allTypes))}
	if c.root.IsValid() {
		snap.Root = c.snapshotScope(c.root)
	}
	for _, t := range c.allTypes {
		snap.Types = append(snap.Types, c.Types.KindOf(t).String()+" "+types.Label(c.Types, t))
	}
	for _, l := range c.log {
		snap.Diagnostics = append(snap.Diagnostics, l.Diagnostic.Code.ID()+" "+l.Diagnostic.Message)
	}
	return snap
}

func (c *Context) snapshotScope(id symbols.ScopeID) ScopeSnapshot {
	scope := c.Table.Scopes.Get(id)
	out := ScopeSnapshot{
		Kind: scope.Kind.String(),
		Name: c.Table.ScopeName(id),
	}
	if scope.ParentClass.IsValid() {
		out.ParentClass = c.Table.ScopeName(scope.ParentClass)
	}
	if scope.Kind == symbols.ScopeFunction {
		for _, p := range scope.Params {
			sym := c.Table.Symbols.Get(p)
			out.Params = append(out.Params, VarSnapshot{
				Name: c.Table.NameOf(p),
				Type: types.Label(c.Types, sym.Type),
			})
		}
		if scope.Result != types.NoTypeID {
			out.Result = types.Label(c.Types, scope.Result)
		}
	}
	for _, m := range scope.Members {
		sym := c.Table.Symbols.Get(m)
		ms := MemberSnapshot{Kind: sym.Kind.String(), Name: c.Table.NameOf(m)}
		if sym.Kind == symbols.SymbolVariable {
			ms.Type = types.Label(c.Types, sym.Type)
		}
		out.Members = append(out.Members, ms)
	}
	for _, ch := range scope.Children {
		out.Children = append(out.Children, c.snapshotScope(ch))
	}
	return out
}
