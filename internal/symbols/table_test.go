package symbols

import (
	"strings"
	"testing"

	"playscript/internal/ast"
	"playscript/internal/diag"
	"playscript/internal/source"
	"playscript/internal/types"
)

func TestStackLifecycle(t *testing.T) {
	table := NewTable(Hints{}, nil)
	stack := NewStack(table, nil)

	root := stack.Enter(ScopeNamespace, ast.NodeID(1), source.NoStringID)
	name := table.Strings.Intern("A")
	class := stack.Enter(ScopeClass, ast.NodeID(2), name)
	table.BindScope(class)

	field := table.Strings.Intern("x")
	id := table.Declare(Symbol{Name: field, Kind: SymbolVariable, Scope: class, Decl: ast.NodeID(3)})
	if !id.IsValid() {
		t.Fatalf("declare returned no symbol")
	}
	stack.Leave(class, source.Span{})
	if stack.Current() != root {
		t.Fatalf("expected root after leave, got %d", stack.Current())
	}
	stack.Leave(root, source.Span{})

	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got := table.Lookup(class, name, SymbolClass); got != table.Scopes.Get(class).Symbol {
		t.Fatalf("class symbol not reachable from its own scope chain")
	}
	if table.FindLocal(class, field, SymbolVariable) != id {
		t.Fatalf("field not found locally")
	}
	if table.Lookup(root, field, SymbolInvalid).IsValid() {
		t.Fatalf("field must not leak into the enclosing scope")
	}
}

func TestDuplicatesAreInserted(t *testing.T) {
	table := NewTable(Hints{}, nil)
	root := table.NewScope(ScopeNamespace, NoScopeID, ast.NodeID(1), source.NoStringID)
	name := table.Strings.Intern("A")
	first := table.NewScope(ScopeClass, root, ast.NodeID(2), name)
	second := table.NewScope(ScopeClass, root, ast.NodeID(3), name)
	table.BindScope(first)
	table.BindScope(second)

	if got := len(table.LookupLocal(root, name)); got != 2 {
		t.Fatalf("expected both declarations, got %d", got)
	}
	if table.Lookup(root, name, SymbolClass) != table.Scopes.Get(first).Symbol {
		t.Fatalf("lookup must return the first declaration")
	}
}

func TestStackLeaveMismatchReports(t *testing.T) {
	table := NewTable(Hints{}, nil)
	bag := diag.NewBag(10)
	stack := NewStack(table, diag.BagReporter{Bag: bag})
	root := stack.Enter(ScopeNamespace, ast.NodeID(1), source.NoStringID)
	stack.Enter(ScopeBlock, ast.NodeID(2), source.NoStringID)

	stack.Leave(root, source.Span{})
	stack.Leave(root, source.Span{})
	if bag.Len() != 1 {
		t.Fatalf("expected one mismatch warning, got %d", bag.Len())
	}
	if bag.Items()[0].Code != diag.SemaScopeMismatch {
		t.Fatalf("unexpected code %v", bag.Items()[0].Code)
	}
	if stack.Depth() != 0 {
		t.Fatalf("stack must still pop on mismatch")
	}
}

func TestValidateDetectsBrokenLinks(t *testing.T) {
	table := NewTable(Hints{}, nil)
	root := table.NewScope(ScopeNamespace, NoScopeID, ast.NodeID(1), source.NoStringID)
	fn := table.NewScope(ScopeFunction, root, ast.NodeID(2), table.Strings.Intern("f"))
	table.BindScope(fn)
	table.Scopes.Get(fn).Result = types.NoTypeID
	table.Scopes.Get(fn).ParentClass = root

	err := table.Validate()
	if err == nil || !strings.Contains(err.Error(), "invalid parent class") {
		t.Fatalf("expected parent class error, got %v", err)
	}
}
