package sema

import (
	"errors"
	"fmt"

	"playscript/internal/ast"
	"playscript/internal/diag"
	"playscript/internal/source"
	"playscript/internal/symbols"
	"playscript/internal/trace"
	"playscript/internal/types"
)

// Options configure an analysis context.
type Options struct {
	Reporter diag.Reporter
	Tracer   trace.Tracer
	// TraceParent is the span the passes nest under.
	TraceParent uint64
	Hints       symbols.Hints
}

// Logged pairs a diagnostic with the syntax node it is about.
type Logged struct {
	Node       ast.NodeID
	Diagnostic diag.Diagnostic
}

// Context owns every table shared by the two passes of one compilation unit.
// It is not safe for concurrent use.
type Context struct {
	Tree  *ast.Tree
	Table *symbols.Table
	Types *types.Interner

	root       symbols.ScopeID
	nodeScope  map[ast.NodeID]symbols.ScopeID
	nodeType   map[ast.NodeID]types.TypeID
	nodeSymbol map[ast.NodeID]symbols.SymbolID
	allTypes   []types.TypeID
	log        []Logged

	reporter    diag.Reporter
	tracer      trace.Tracer
	traceParent uint64
}

// NewContext prepares an empty context for tree. Names are interned in the
// tree's string table so node names and symbol names share IDs.
func NewContext(tree *ast.Tree, opts Options) *Context {
	var strs *source.Interner
	if tree != nil {
		strs = tree.Strings
	}
	table := symbols.NewTable(opts.Hints, strs)
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Context{
		Tree:        tree,
		Table:       table,
		Types:       types.NewInterner(table.Strings),
		nodeScope:   make(map[ast.NodeID]symbols.ScopeID),
		nodeType:    make(map[ast.NodeID]types.TypeID),
		nodeSymbol:  make(map[ast.NodeID]symbols.SymbolID),
		reporter:    opts.Reporter,
		tracer:      tracer,
		traceParent: opts.TraceParent,
	}
}

// Root returns the namespace scope, NoScopeID before BuildScopes.
func (c *Context) Root() symbols.ScopeID { return c.root }

// RecordScope binds a scope-opening node to its scope. The first binding wins.
func (c *Context) RecordScope(node ast.NodeID, scope symbols.ScopeID) {
	if _, ok := c.nodeScope[node]; ok {
		return
	}
	c.nodeScope[node] = scope
}

// ScopeOf returns the scope opened by node.
func (c *Context) ScopeOf(node ast.NodeID) (symbols.ScopeID, bool) {
	id, ok := c.nodeScope[node]
	return id, ok
}

// RecordType annotates a type-expression node. NoTypeID is a valid value.
func (c *Context) RecordType(node ast.NodeID, t types.TypeID) {
	c.nodeType[node] = t
}

// TypeOf returns the type resolved for node. ok is true even when the
// recorded value is NoTypeID.
func (c *Context) TypeOf(node ast.NodeID) (types.TypeID, bool) {
	t, ok := c.nodeType[node]
	return t, ok
}

// RecordSymbol binds a variable declarator id to its symbol.
func (c *Context) RecordSymbol(node ast.NodeID, sym symbols.SymbolID) {
	c.nodeSymbol[node] = sym
}

// SymbolOf returns the variable declared by node.
func (c *Context) SymbolOf(node ast.NodeID) (symbols.SymbolID, bool) {
	id, ok := c.nodeSymbol[node]
	return id, ok
}

// RegisterType appends t to the unit's type registry.
func (c *Context) RegisterType(t types.TypeID) {
	c.allTypes = append(c.allTypes, t)
}

// AllTypes returns the registry in registration order.
func (c *Context) AllTypes() []types.TypeID {
	return c.allTypes
}

// Log appends an error diagnostic about node.
func (c *Context) Log(code diag.Code, node ast.NodeID, msg string) {
	c.logWith(diag.SevError, code, node, msg)
}

// Warn appends a warning about node.
func (c *Context) Warn(code diag.Code, node ast.NodeID, msg string) {
	c.logWith(diag.SevWarning, code, node, msg)
}

// logPrevious reports a duplicate and points a note at the earlier node.
func (c *Context) logPrevious(code diag.Code, node, prev ast.NodeID, msg, note string) {
	c.logWith(diag.SevError, code, node, msg, diag.Note{Span: c.spanOf(prev), Msg: note})
}

func (c *Context) logWith(sev diag.Severity, code diag.Code, node ast.NodeID, msg string, notes ...diag.Note) {
	d := diag.New(sev, code, c.spanOf(node), msg)
	d.Notes = append(d.Notes, notes...)
	c.emit(node, d)
}

// emit records d in the log and forwards it to the reporter.
func (c *Context) emit(node ast.NodeID, d diag.Diagnostic) {
	c.log = append(c.log, Logged{Node: node, Diagnostic: d})
	diag.Send(c.reporter, d)
}

func (c *Context) spanOf(node ast.NodeID) source.Span {
	if c.Tree == nil {
		return source.Span{}
	}
	if n := c.Tree.Node(node); n != nil {
		return n.Span
	}
	return source.Span{}
}

// Diagnostics returns the append-only log.
func (c *Context) Diagnostics() []Logged {
	return c.log
}

// Count reports how many logged diagnostics carry code.
func (c *Context) Count(code diag.Code) int {
	n := 0
	for _, l := range c.log {
		if l.Diagnostic.Code == code {
			n++
		}
	}
	return n
}

// Validate checks the symbol table arenas and the node-scope mapping.
func (c *Context) Validate() error {
	var errs []error
	if err := c.Table.Validate(); err != nil {
		errs = append(errs, err)
	}
	for node, scopeID := range c.nodeScope {
		scope := c.Table.Scopes.Get(scopeID)
		if scope == nil {
			errs = append(errs, fmt.Errorf("node %d maps to invalid scope %d", node, scopeID))
			continue
		}
		if scope.Node != node {
			errs = append(errs, fmt.Errorf("node %d maps to scope %d introduced by node %d", node, scopeID, scope.Node))
		}
	}
	if c.root.IsValid() && len(c.Table.Chain(c.root)) != 1 {
		errs = append(errs, fmt.Errorf("root scope %d has a parent", c.root))
	}
	return errors.Join(errs...)
}
