package sema

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"playscript/internal/ast"
	"playscript/internal/diag"
	"playscript/internal/lexer"
	"playscript/internal/parser"
	"playscript/internal/source"
	"playscript/internal/symbols"
	"playscript/internal/types"
)

func parseSnippet(t *testing.T, src string) *ast.Tree {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("snippet.play", []byte(src)))
	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: rep})
	res := parser.ParseTokens(file.ID, toks, nil, parser.Options{Reporter: rep})
	if bag.Len() != 0 {
		t.Fatalf("unexpected syntax diagnostics for %q: %v", src, bag.Items())
	}
	return res.Tree
}

func analyzeSnippet(t *testing.T, src string, mode Mode) *Context {
	t.Helper()
	c := Analyze(parseSnippet(t, src), AnalyzeOptions{Mode: mode})
	if err := c.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	return c
}

func logSummary(c *Context) string {
	lines := make([]string, 0, len(c.Diagnostics()))
	for _, l := range c.Diagnostics() {
		lines = append(lines, fmt.Sprintf("[%s] %s", l.Diagnostic.Code.ID(), l.Diagnostic.Message))
	}
	return strings.Join(lines, "; ")
}

func expectClean(t *testing.T, c *Context) {
	t.Helper()
	if len(c.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %s", logSummary(c))
	}
}

// findNode returns the n-th (0-based) node of kind whose name is name.
func findNode(t *testing.T, tree *ast.Tree, kind ast.Kind, name string, n int) ast.NodeID {
	t.Helper()
	for i := 1; i <= tree.Len(); i++ {
		id := ast.NodeID(uint32(i)) //nolint:gosec // bounded by tree length
		if tree.Kind(id) != kind || tree.Name(id) != name {
			continue
		}
		if n == 0 {
			return id
		}
		n--
	}
	t.Fatalf("no %s named %q", kind, name)
	return ast.NoNodeID
}

func scopeID(t *testing.T, c *Context, kind ast.Kind, name string) symbols.ScopeID {
	t.Helper()
	id, ok := c.ScopeOf(findNode(t, c.Tree, kind, name, 0))
	if !ok {
		t.Fatalf("%s %q has no scope", kind, name)
	}
	return id
}

func scopeOf(t *testing.T, c *Context, kind ast.Kind, name string) *symbols.Scope {
	t.Helper()
	return c.Table.Scopes.Get(scopeID(t, c, kind, name))
}

func variable(t *testing.T, c *Context, scope symbols.ScopeID, name string) *symbols.Symbol {
	t.Helper()
	nameID, _ := c.Table.Strings.Find(name)
	id := c.Table.FindLocal(scope, nameID, symbols.SymbolVariable)
	if !id.IsValid() {
		t.Fatalf("variable %q not declared in scope %d", name, scope)
	}
	return c.Table.Symbols.Get(id)
}

func TestEveryScopeChainEndsAtNamespace(t *testing.T) {
	c := analyzeSnippet(t, `
class A { int x; void m(int a) { { int y; } } }
function f(int n): int { for (int i = 0; i < n; i++) { n++; } return n; }
`, ModeFieldsOnly)
	expectClean(t, c)

	// namespace, A, m, inner block, f, for, for body
	if got := c.Table.Scopes.Len(); got != 7 {
		t.Fatalf("expected 7 scopes, got %d", got)
	}
	root := c.Table.Scopes.Get(c.Root())
	if root == nil || root.Kind != symbols.ScopeNamespace {
		t.Fatalf("root must be the namespace")
	}
	for i := 1; i <= c.Tree.Len(); i++ {
		id := ast.NodeID(uint32(i)) //nolint:gosec // bounded by tree length
		scope, ok := c.ScopeOf(id)
		if !ok {
			continue
		}
		chain := c.Table.Chain(scope)
		if chain[len(chain)-1] != c.Root() {
			t.Fatalf("scope chain of %s does not end at the namespace", ast.Label(c.Tree, id))
		}
	}
	body := c.Tree.Child(findNode(t, c.Tree, ast.KindFunctionDecl, "m", 0), ast.KindFunctionBody)
	if _, ok := c.ScopeOf(c.Tree.Child(body, ast.KindBlock)); ok {
		t.Fatalf("a function's own body must not open a block scope")
	}
}

func TestBlocksAreUnnamedMembers(t *testing.T) {
	c := analyzeSnippet(t, "function f() { { } for (;;) { } }", ModeFieldsOnly)
	fn := scopeOf(t, c, ast.KindFunctionDecl, "f")
	if len(fn.Members) != 2 || len(fn.Children) != 2 {
		t.Fatalf("expected two block members, got %d members %d children", len(fn.Members), len(fn.Children))
	}
	for _, m := range fn.Members {
		if sym := c.Table.Symbols.Get(m); sym.Kind != symbols.SymbolBlock || sym.Name != source.NoStringID {
			t.Fatalf("unexpected member %+v", sym)
		}
	}
}

func TestParentResolvesRegardlessOfOrder(t *testing.T) {
	for _, src := range []string{
		"class A {} class B extends A {}",
		"class B extends A {} class A {}",
	} {
		c := analyzeSnippet(t, src, ModeFieldsOnly)
		expectClean(t, c)
		a := scopeID(t, c, ast.KindClassDecl, "A")
		b := scopeOf(t, c, ast.KindClassDecl, "B")
		if b.ParentClass != a {
			t.Fatalf("%s: B must extend A", src)
		}
	}
}

func TestUnknownParentIsReportedOnce(t *testing.T) {
	c := analyzeSnippet(t, "class B extends A {}", ModeFieldsOnly)
	if got := c.Count(diag.SemaUnknownParentClass); got != 1 || len(c.Diagnostics()) != 1 {
		t.Fatalf("expected one unknown parent diagnostic, got %s", logSummary(c))
	}
	decl := findNode(t, c.Tree, ast.KindClassDecl, "B", 0)
	if c.Diagnostics()[0].Node != decl {
		t.Fatalf("diagnostic must reference B's declaration")
	}
	if scopeOf(t, c, ast.KindClassDecl, "B").ParentClass.IsValid() {
		t.Fatalf("unknown parent must stay unset")
	}
}

func TestParentMustBeAClass(t *testing.T) {
	c := analyzeSnippet(t, "function A() {} class B extends A {}", ModeFieldsOnly)
	if c.Count(diag.SemaUnknownParentClass) != 1 {
		t.Fatalf("a function is not a parent class: %s", logSummary(c))
	}
}

func TestDuplicateClassName(t *testing.T) {
	c := analyzeSnippet(t, "class A {} class A {}", ModeFieldsOnly)
	if got := c.Count(diag.SemaDuplicateClassName); got != 1 {
		t.Fatalf("expected one duplicate class diagnostic, got %s", logSummary(c))
	}
	classes := 0
	for _, typ := range c.AllTypes() {
		if c.Types.KindOf(typ) == types.KindClass && types.Label(c.Types, typ) == "A" {
			classes++
		}
	}
	if classes != 2 {
		t.Fatalf("both classes must stay registered, got %d", classes)
	}
	d := c.Diagnostics()[0].Diagnostic
	if len(d.Notes) != 1 || !strings.Contains(d.Notes[0].Msg, "previous declaration") {
		t.Fatalf("expected a note on the first declaration, got %+v", d.Notes)
	}
}

func TestDuplicateFunctionSignature(t *testing.T) {
	cases := []struct {
		src  string
		want int
	}{
		{"function f(int a) {} function f(int b) {}", 1},
		{"function f(int a) {} function f(long b) {}", 0},
		{"void g() {} void g() {}", 1},
		{"function h(int a, string b) {} function h(string b, int a) {}", 0},
		{"class C { void m(C c) {} int m(C other) { return 1; } }", 1},
	}
	for _, tc := range cases {
		c := analyzeSnippet(t, tc.src, ModeFieldsOnly)
		if got := c.Count(diag.SemaDuplicateFunction); got != tc.want {
			t.Fatalf("%s: expected %d duplicate function diagnostics, got %s", tc.src, tc.want, logSummary(c))
		}
	}
}

func TestDuplicateParameter(t *testing.T) {
	c := analyzeSnippet(t, "function f(int x, int x) {}", ModeFieldsOnly)
	if got := c.Count(diag.SemaDuplicateVariable); got != 1 || len(c.Diagnostics()) != 1 {
		t.Fatalf("expected one duplicate variable diagnostic, got %s", logSummary(c))
	}
	fnID := scopeID(t, c, ast.KindFunctionDecl, "f")
	nameID, _ := c.Table.Strings.Find("x")
	if got := len(c.Table.LookupLocal(fnID, nameID)); got != 2 {
		t.Fatalf("both parameters must be members, got %d", got)
	}
	if got := len(c.Table.Scopes.Get(fnID).Params); got != 2 {
		t.Fatalf("both parameters must be in the signature, got %d", got)
	}
}

func TestParameterShadowingFieldIsAllowed(t *testing.T) {
	c := analyzeSnippet(t, "class A { int x; void m(int x) {} }", ModeFieldsOnly)
	expectClean(t, c)
}

func TestDuplicateField(t *testing.T) {
	c := analyzeSnippet(t, "class A { int x; string x; }", ModeFieldsOnly)
	if c.Count(diag.SemaDuplicateVariable) != 1 {
		t.Fatalf("expected duplicate field diagnostic, got %s", logSummary(c))
	}
}

func TestFunctionSignature(t *testing.T) {
	c := analyzeSnippet(t, "class P {} function g(int a, P p, string s): P { return p; }", ModeFieldsOnly)
	expectClean(t, c)
	fnID := scopeID(t, c, ast.KindFunctionDecl, "g")
	fn := c.Table.Scopes.Get(fnID)
	p := scopeOf(t, c, ast.KindClassDecl, "P")
	b := c.Types.Builtins()

	want := []types.TypeID{b.Integer, p.Type, b.String}
	if got := c.ParamTypes(fnID); !reflect.DeepEqual(got, want) {
		t.Fatalf("param types: want %v, got %v", want, got)
	}
	names := []string{"a", "p", "s"}
	for i, param := range fn.Params {
		if got := c.Table.NameOf(param); got != names[i] {
			t.Fatalf("param %d: want %s, got %s", i, names[i], got)
		}
		typeNode := c.Tree.Child(c.Tree.Parent(c.Table.Symbols.Get(param).Decl), ast.KindTypeType)
		if typ, _ := c.TypeOf(typeNode); typ != want[i] {
			t.Fatalf("param %d type differs from its type expression", i)
		}
	}
	if fn.Result != p.Type {
		t.Fatalf("result: want P, got %s", types.Label(c.Types, fn.Result))
	}
}

func TestReturnTypeForms(t *testing.T) {
	c := analyzeSnippet(t, "class K { K() {} void v() {} } function h() {} function i(): void {}", ModeFieldsOnly)
	expectClean(t, c)
	void := c.Types.Builtins().Void
	if scopeOf(t, c, ast.KindFunctionDecl, "K").Result != types.NoTypeID {
		t.Fatalf("constructor-like declaration has no result")
	}
	if scopeOf(t, c, ast.KindFunctionDecl, "h").Result != types.NoTypeID {
		t.Fatalf("function without ': T' has no result")
	}
	if scopeOf(t, c, ast.KindFunctionDecl, "v").Result != void || scopeOf(t, c, ast.KindFunctionDecl, "i").Result != void {
		t.Fatalf("void results expected")
	}
}

func TestStructuralFunctionTypes(t *testing.T) {
	c := analyzeSnippet(t, "class C { function(int, int): int op; function int (int, int) op2; }", ModeFieldsOnly)
	expectClean(t, c)
	cls := scopeID(t, c, ast.KindClassDecl, "C")
	b := c.Types.Builtins()

	var seen []types.TypeID
	for _, name := range []string{"op", "op2"} {
		typ := variable(t, c, cls, name).Type
		info, ok := c.Types.FnInfo(typ)
		if !ok {
			t.Fatalf("%s: expected a function type, got %s", name, types.Label(c.Types, typ))
		}
		if !reflect.DeepEqual(info.Params, []types.TypeID{b.Integer, b.Integer}) || info.Result != b.Integer {
			t.Fatalf("%s: unexpected shape %s", name, types.Label(c.Types, typ))
		}
		seen = append(seen, typ)
	}
	if seen[0] == seen[1] {
		t.Fatalf("each occurrence must create its own function type")
	}
	registered := 0
	for _, typ := range c.AllTypes() {
		if typ == seen[0] || typ == seen[1] {
			registered++
		}
	}
	if registered != 2 {
		t.Fatalf("function types must be registered, got %d", registered)
	}
}

func TestNestedFunctionTypes(t *testing.T) {
	c := analyzeSnippet(t, "void apply(function void (function(int): int) cb) {}", ModeFieldsOnly)
	fn := c.Table.Scopes.Get(scopeID(t, c, ast.KindFunctionDecl, "apply"))
	cb := c.Table.Symbols.Get(fn.Params[0]).Type
	if got := types.Label(c.Types, cb); got != "function (function (Integer): Integer): Void" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestUnresolvedClassTypeIsSilent(t *testing.T) {
	c := analyzeSnippet(t, "class A { Missing m; }", ModeFieldsOnly)
	expectClean(t, c)
	cls := scopeID(t, c, ast.KindClassDecl, "A")
	if variable(t, c, cls, "m").Type != types.NoTypeID {
		t.Fatalf("unresolved field type must be NoTypeID")
	}
	typ, ok := c.TypeOf(findNode(t, c.Tree, ast.KindClassOrInterfaceType, "Missing", 0))
	if !ok || typ != types.NoTypeID {
		t.Fatalf("unresolved type must be recorded as absent")
	}
}

func TestLocalsDependOnMode(t *testing.T) {
	src := "function f(string[] xs) { int x = 1; for (int i = 0; ;) { } for (string s : xs) { } }"

	fields := analyzeSnippet(t, src, ModeFieldsOnly)
	expectClean(t, fields)
	fn := fields.Table.Scopes.Get(scopeID(t, fields, ast.KindFunctionDecl, "f"))
	for _, m := range fn.Members {
		if sym := fields.Table.Symbols.Get(m); sym.Kind == symbols.SymbolVariable && fields.Table.NameOf(m) != "xs" {
			t.Fatalf("locals must not be bound in fields mode, found %s", fields.Table.NameOf(m))
		}
	}

	locals := analyzeSnippet(t, src, ModeFieldsAndLocals)
	expectClean(t, locals)
	b := locals.Types.Builtins()
	fnID := scopeID(t, locals, ast.KindFunctionDecl, "f")
	if variable(t, locals, fnID, "x").Type != b.Integer {
		t.Fatalf("local x must be Integer")
	}
	loops := locals.Table.Scopes.Get(fnID).Children
	if len(loops) != 2 {
		t.Fatalf("expected two loop scopes, got %d", len(loops))
	}
	if variable(t, locals, loops[0], "i").Type != b.Integer {
		t.Fatalf("loop variable i must be Integer")
	}
	if variable(t, locals, loops[1], "s").Type != b.String {
		t.Fatalf("enhanced-for variable s must be String")
	}
}

func TestResolverIsIdempotentPerNode(t *testing.T) {
	c := analyzeSnippet(t, "class A { int x; } function f(int a) { int y; }", ModeFieldsOnly)
	ResolveTypes(c, ModeFieldsAndLocals)
	expectClean(t, c)
	a := scopeID(t, c, ast.KindClassDecl, "A")
	nameID, _ := c.Table.Strings.Find("x")
	if got := len(c.Table.LookupLocal(a, nameID)); got != 1 {
		t.Fatalf("re-resolving must not re-declare fields, got %d", got)
	}
	fn := scopeID(t, c, ast.KindFunctionDecl, "f")
	if len(c.Table.Scopes.Get(fn).Params) != 1 {
		t.Fatalf("re-resolving must not duplicate params")
	}
	variable(t, c, fn, "y")
}

func TestAnalysisIsDeterministic(t *testing.T) {
	src := `
class Shape { double area() { return 0; } }
class Circle extends Shape { double r; function(double): double scale; }
function total(Shape[] shapes, function (Shape): double f): double { for (;;) { } return 0; }
class Shape {}
`
	tree := parseSnippet(t, src)
	first := Analyze(tree, AnalyzeOptions{})
	second := Analyze(tree, AnalyzeOptions{})
	third := Analyze(parseSnippet(t, src), AnalyzeOptions{})

	a, b, c := TakeSnapshot(first), TakeSnapshot(second), TakeSnapshot(third)
	if !reflect.DeepEqual(a, b) || !reflect.DeepEqual(a, c) {
		t.Fatalf("snapshots differ:\n%+v\n%+v\n%+v", a, b, c)
	}
	if len(a.Diagnostics) != 1 || !strings.HasPrefix(a.Diagnostics[0], "SEM3001") {
		t.Fatalf("expected the duplicate class diagnostic, got %v", a.Diagnostics)
	}
	if a.Root.Children[1].ParentClass != "Shape" {
		t.Fatalf("Circle must extend Shape, got %+v", a.Root.Children[1])
	}
}

func TestInheritanceCycles(t *testing.T) {
	src := "class A extends B {} class B extends A {} class C extends C {} class D extends A {}"
	plain := analyzeSnippet(t, src, ModeFieldsOnly)
	expectClean(t, plain)

	c := Analyze(parseSnippet(t, src), AnalyzeOptions{CheckCycles: true})
	if got := c.Count(diag.SemaInheritanceCycle); got != 2 {
		t.Fatalf("expected two cycles, got %s", logSummary(c))
	}
	msgs := logSummary(c)
	if !strings.Contains(msgs, "A -> B -> A") || !strings.Contains(msgs, "C -> C") {
		t.Fatalf("unexpected cycle messages: %s", msgs)
	}
	for _, l := range c.Diagnostics() {
		if l.Diagnostic.Severity != diag.SevWarning {
			t.Fatalf("cycles are warnings")
		}
	}
}

func TestDiagnosticsMirrorToReporter(t *testing.T) {
	bag := diag.NewBag(16)
	tree := parseSnippet(t, "class A {} class A extends Z {}")
	c := Analyze(tree, AnalyzeOptions{Options: Options{Reporter: diag.BagReporter{Bag: bag}}})
	if bag.Len() != len(c.Diagnostics()) || bag.Len() != 2 {
		t.Fatalf("expected 2 mirrored diagnostics, got bag=%d log=%d", bag.Len(), len(c.Diagnostics()))
	}
	if bag.Items()[0].Primary.Empty() {
		t.Fatalf("diagnostic must carry the node span")
	}
}

func TestLookupHelpers(t *testing.T) {
	c := analyzeSnippet(t, "class Outer { class Inner {} } function f() {}", ModeFieldsOnly)
	inner := scopeID(t, c, ast.KindClassDecl, "Inner")
	outer := scopeID(t, c, ast.KindClassDecl, "Outer")
	if c.LookupClass(inner, "Outer") != outer {
		t.Fatalf("outer class must be visible from inner scope")
	}
	if c.LookupClass(c.Root(), "Inner").IsValid() {
		t.Fatalf("inner class must not be visible from the namespace")
	}
	if c.LookupClass(c.Root(), "f").IsValid() {
		t.Fatalf("functions are not classes")
	}
	if c.Types.KindOf(c.LookupType("f")) != types.KindFunction {
		t.Fatalf("LookupType must find functions")
	}
	if c.LookupType("Nope") != types.NoTypeID || c.LookupClass(c.Root(), "Nope").IsValid() {
		t.Fatalf("unknown names resolve to nothing")
	}
	if c.EnclosingScope(c.Tree.Root) != symbols.NoScopeID {
		t.Fatalf("the root node has no enclosing scope")
	}
}

func TestUnknownParentClassSuggestsDroppingExtends(t *testing.T) {
	src := "class B extends Missing {\n}\n"
	c := analyzeSnippet(t, src, ModeFieldsOnly)
	if len(c.Diagnostics()) != 1 {
		t.Fatalf("expected one diagnostic, got %s", logSummary(c))
	}
	d := c.Diagnostics()[0].Diagnostic
	if len(d.Fixes) != 1 || len(d.Fixes[0].Edits) != 1 {
		t.Fatalf("expected one single-edit fix, got %+v", d.Fixes)
	}
	edit := d.Fixes[0].Edits[0]
	if removed := src[edit.Span.Start:edit.Span.End]; removed != " extends Missing" || edit.NewText != "" {
		t.Fatalf("fix removes %q and inserts %q", removed, edit.NewText)
	}
}
