package sema

import (
	"fmt"

	"playscript/internal/ast"
	"playscript/internal/diag"
	"playscript/internal/source"
	"playscript/internal/symbols"
	"playscript/internal/trace"
)

// BuildScopes runs the first pass: one scope per scope-opening node, class
// and function names bound in their enclosing scope.
func BuildScopes(c *Context) {
	if c == nil || c.Tree == nil || !c.Tree.Root.IsValid() {
		return
	}
	span := trace.Begin(c.tracer, trace.ScopePass, "scopes", c.traceParent)
	s := &scopeScanner{
		ctx:   c,
		stack: symbols.NewStack(c.Table, c.reporter),
		span:  span.ID(),
	}
	ast.Walk(c.Tree, c.Tree.Root, s)
	span.WithExtra("scopes", fmt.Sprint(c.Table.Scopes.Len())).End("")
}

type scopeScanner struct {
	ctx   *Context
	stack *symbols.Stack
	span  uint64
}

func (s *scopeScanner) Enter(id ast.NodeID) {
	t := s.ctx.Tree
	n := t.Node(id)
	switch n.Kind {
	case ast.KindProg:
		scope := s.stack.Enter(symbols.ScopeNamespace, id, source.NoStringID)
		s.ctx.root = scope
		s.ctx.RecordScope(id, scope)

	case ast.KindBlock:
		// a function's own body lives in the function scope
		if t.Kind(n.Parent) == ast.KindFunctionBody {
			return
		}
		s.openBlock(id)

	case ast.KindStatement:
		if n.Stmt == ast.StmtFor {
			s.openBlock(id)
		}

	case ast.KindFunctionDecl:
		scope := s.stack.Enter(symbols.ScopeFunction, id, n.Name)
		typ := s.ctx.Types.RegisterFunction(n.Name, uint32(scope))
		s.ctx.Table.Scopes.Get(scope).Type = typ
		s.ctx.RegisterType(typ)
		s.ctx.Table.BindScope(scope)
		s.ctx.RecordScope(id, scope)
		trace.Point(s.ctx.tracer, trace.ScopeDecl, "function", t.Name(id), s.span)

	case ast.KindClassDecl:
		name := t.Name(id)
		if prev := s.ctx.LookupClass(s.stack.Current(), name); prev.IsValid() {
			s.reportDuplicateClass(id, name, prev)
		}
		scope := s.stack.Enter(symbols.ScopeClass, id, n.Name)
		typ := s.ctx.Types.RegisterClass(n.Name, uint32(scope))
		s.ctx.Table.Scopes.Get(scope).Type = typ
		s.ctx.RegisterType(typ)
		s.ctx.Table.BindScope(scope)
		s.ctx.RecordScope(id, scope)
		trace.Point(s.ctx.tracer, trace.ScopeDecl, "class", name, s.span)
	}
}

func (s *scopeScanner) Exit(id ast.NodeID) {
	scope, ok := s.ctx.ScopeOf(id)
	if !ok {
		return
	}
	var span source.Span
	if n := s.ctx.Tree.Node(id); n != nil {
		span = n.Span
	}
	s.stack.Leave(scope, span)
}

func (s *scopeScanner) openBlock(id ast.NodeID) {
	scope := s.stack.Enter(symbols.ScopeBlock, id, source.NoStringID)
	s.ctx.Table.BindScope(scope)
	s.ctx.RecordScope(id, scope)
}

func (s *scopeScanner) reportDuplicateClass(id ast.NodeID, name string, prev symbols.ScopeID) {
	msg := fmt.Sprintf("duplicate class name: %s", name)
	note := fmt.Sprintf("previous declaration of '%s' is here", name)
	s.ctx.logPrevious(diag.SemaDuplicateClassName, id, s.ctx.Table.Scopes.Get(prev).Node, msg, note)
}
