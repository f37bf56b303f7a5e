package symbols

import (
	"fmt"

	"playscript/internal/ast"
	"playscript/internal/diag"
	"playscript/internal/source"
)

// Stack drives scope creation during a tree walk. Every Enter must be paired
// with a Leave of the same scope.
type Stack struct {
	table                 *Table
	reporter              diag.Reporter
	stack                 []ScopeID
	scopeMismatchReported map[ScopeID]bool
}

// NewStack wires a stack to the table. Mismatched Leave calls are reported to
// reporter (may be nil).
func NewStack(table *Table, reporter diag.Reporter) *Stack {
	return &Stack{
		table:                 table,
		reporter:              reporter,
		stack:                 make([]ScopeID, 0, 8),
		scopeMismatchReported: make(map[ScopeID]bool),
	}
}

// Current returns the scope at the top of the stack.
func (s *Stack) Current() ScopeID {
	if len(s.stack) == 0 {
		return NoScopeID
	}
	return s.stack[len(s.stack)-1]
}

// Depth reports the number of open scopes.
func (s *Stack) Depth() int { return len(s.stack) }

// Enter creates a child of the current scope, pushes it, and returns its ID.
func (s *Stack) Enter(kind ScopeKind, node ast.NodeID, name source.StringID) ScopeID {
	scope := s.table.NewScope(kind, s.Current(), node, name)
	s.stack = append(s.stack, scope)
	return scope
}

// Push makes an existing scope current.
func (s *Stack) Push(scope ScopeID) {
	s.stack = append(s.stack, scope)
}

// Leave pops the current scope, validating against the expected one. A
// mismatch is reported once per expected scope; the top is popped anyway.
func (s *Stack) Leave(expected ScopeID, span source.Span) {
	if len(s.stack) == 0 {
		return
	}
	top := s.stack[len(s.stack)-1]
	if expected.IsValid() && top != expected {
		s.reportScopeMismatch(expected, top, span)
	}
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *Stack) reportScopeMismatch(expected, got ScopeID, span source.Span) {
	if s.reporter == nil || s.scopeMismatchReported[expected] {
		return
	}
	s.scopeMismatchReported[expected] = true
	msg := fmt.Sprintf("scope stack mismatch: expected %d, got %d", expected, got)
	diag.ReportWarning(s.reporter, diag.SemaScopeMismatch, span, msg).Emit()
}
