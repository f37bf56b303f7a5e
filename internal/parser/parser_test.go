package parser

import (
	"fmt"
	"strings"
	"testing"

	"playscript/internal/ast"
	"playscript/internal/diag"
	"playscript/internal/lexer"
	"playscript/internal/source"
	"playscript/internal/testkit"
)

func parseSnippet(t *testing.T, src string) (*ast.Tree, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("snippet.play", []byte(src)))
	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: rep})
	res := ParseTokens(file.ID, toks, nil, Options{Reporter: rep})
	return res.Tree, bag
}

func mustParse(t *testing.T, src string) *ast.Tree {
	t.Helper()
	tree, bag := parseSnippet(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q: %s", src, diagnosticsSummary(bag))
	}
	return tree
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func firstChild(t *testing.T, tree *ast.Tree) ast.NodeID {
	t.Helper()
	root := tree.Node(tree.Root)
	if root == nil || len(root.Children) == 0 {
		t.Fatalf("empty program")
	}
	return root.Children[0]
}

func expectSexpr(t *testing.T, src, want string) {
	t.Helper()
	tree := mustParse(t, src)
	if got := ast.Sexpr(tree, firstChild(t, tree)); got != want {
		t.Fatalf("%s\nwant: %s\ngot:  %s", src, want, got)
	}
}

func TestClassDeclaration(t *testing.T) {
	expectSexpr(t, "class B extends A { int x, y; public void f(int a) {} }",
		"(ClassDecl:B (TypeType (ClassOrInterfaceType:A)) (ClassBody "+
			"(FieldDecl (VarDeclarators (TypeType (PrimitiveType:int)) (VarDeclarator (VarDeclaratorID:x)) (VarDeclarator (VarDeclaratorID:y)))) "+
			"(FunctionDecl:f (Modifier:public) (TypeTypeOrVoid:void) (FormalParameters (FormalParameter (TypeType (PrimitiveType:int)) (VarDeclaratorID:a))) (FunctionBody (Block)))))")
}

func TestFunctionDeclarationForms(t *testing.T) {
	expectSexpr(t, "int add(int a, int b) { return a + b; }",
		"(FunctionDecl:add (TypeTypeOrVoid (TypeType (PrimitiveType:int))) "+
			"(FormalParameters (FormalParameter (TypeType (PrimitiveType:int)) (VarDeclaratorID:a)) (FormalParameter (TypeType (PrimitiveType:int)) (VarDeclaratorID:b))) "+
			"(FunctionBody (Block (Statement:return (Binary:+ (Ident:a) (Ident:b))))))")

	expectSexpr(t, "class P { P(int v) {} }",
		"(ClassDecl:P (ClassBody (FunctionDecl:P (FormalParameters (FormalParameter (TypeType (PrimitiveType:int)) (VarDeclaratorID:v))) (FunctionBody (Block)))))")

	tree := mustParse(t, "function f(int x): string { return \"s\"; }")
	fn := firstChild(t, tree)
	if tree.Kind(fn) != ast.KindFunctionDecl || tree.Name(fn) != "f" {
		t.Fatalf("expected function f, got %s", ast.Label(tree, fn))
	}
	if tree.Node(fn).Flags&ast.FlagFunctionKeyword == 0 || tree.Node(fn).Flags&ast.FlagTrailingReturn == 0 {
		t.Fatalf("expected function keyword and trailing return flags")
	}
	ret := tree.Child(fn, ast.KindTypeTypeOrVoid)
	if got := ast.Sexpr(tree, ret); got != "(TypeTypeOrVoid (TypeType (PrimitiveType:string)))" {
		t.Fatalf("unexpected return type %s", got)
	}

	tree = mustParse(t, "function g() {}")
	if tree.Child(firstChild(t, tree), ast.KindTypeTypeOrVoid).IsValid() {
		t.Fatalf("function without ': T' has no return type node")
	}
}

func TestFunctionTypes(t *testing.T) {
	expectSexpr(t, "function int (int, int) f;",
		"(LocalVarDecl (VarDeclarators (TypeType (FunctionType (TypeTypeOrVoid (TypeType (PrimitiveType:int))) "+
			"(TypeList (TypeType (PrimitiveType:int)) (TypeType (PrimitiveType:int))))) (VarDeclarator (VarDeclaratorID:f))))")

	expectSexpr(t, "function (int, int): int g;",
		"(LocalVarDecl (VarDeclarators (TypeType (FunctionType (TypeList (TypeType (PrimitiveType:int)) (TypeType (PrimitiveType:int))) "+
			"(TypeTypeOrVoid (TypeType (PrimitiveType:int))))) (VarDeclarator (VarDeclaratorID:g))))")

	expectSexpr(t, "void apply(function void () cb) {}",
		"(FunctionDecl:apply (TypeTypeOrVoid:void) (FormalParameters (FormalParameter (TypeType (FunctionType (TypeTypeOrVoid:void))) (VarDeclaratorID:cb))) (FunctionBody (Block)))")
}

func TestDeclarationVersusExpression(t *testing.T) {
	cases := map[string]ast.Kind{
		"a.b c;":            ast.KindLocalVarDecl,
		"a.b = c;":          ast.KindStatement,
		"A[] xs;":           ast.KindLocalVarDecl,
		"xs[0] = 1;":        ast.KindStatement,
		"foo(1);":           ast.KindStatement,
		"Foo(int a) {}":     ast.KindFunctionDecl,
		"Foo bar(int a) {}": ast.KindFunctionDecl,
		"i++;":              ast.KindStatement,
	}
	for src, want := range cases {
		tree := mustParse(t, src)
		if got := tree.Kind(firstChild(t, tree)); got != want {
			t.Fatalf("%q: expected %v, got %v", src, want, got)
		}
	}
}

func TestForStatements(t *testing.T) {
	expectSexpr(t, "for (int i = 0; i < n; i++) { }",
		"(Statement:for (ForControl (ForInit (LocalVarDecl (VarDeclarators (TypeType (PrimitiveType:int)) (VarDeclarator (VarDeclaratorID:i) (Literal:0))))) "+
			"(Binary:< (Ident:i) (Ident:n)) (ExprList (Postfix:++ (Ident:i)))) (Statement:block (Block)))")

	expectSexpr(t, "for (string s : names) print(s);",
		"(Statement:for (EnhancedForControl (TypeType (PrimitiveType:string)) (VarDeclaratorID:s) (Ident:names)) "+
			"(Statement:expr (Call (Ident:print) (Ident:s))))")
}

func TestExpressionPrecedence(t *testing.T) {
	expectSexpr(t, "a = b + c * d;",
		"(Statement:expr (Assign:= (Ident:a) (Binary:+ (Ident:b) (Binary:* (Ident:c) (Ident:d)))))")
	expectSexpr(t, "x = y = c ? 1 : 2;",
		"(Statement:expr (Assign:= (Ident:x) (Assign:= (Ident:y) (Ternary (Ident:c) (Literal:1) (Literal:2)))))")
	expectSexpr(t, "o.m(1)[2].f++;",
		"(Statement:expr (Postfix:++ (Member:f (Index (Call (Member:m (Ident:o)) (Literal:1)) (Literal:2)))))")
	expectSexpr(t, "p = new Point(1, -2);",
		"(Statement:expr (Assign:= (Ident:p) (New (Ident:Point) (Literal:1) (Unary:- (Literal:2)))))")
}

func TestStatements(t *testing.T) {
	expectSexpr(t, "if (a) b(); else { c(); }",
		"(Statement:if (Ident:a) (Statement:expr (Call (Ident:b))) (Statement:block (Block (Statement:expr (Call (Ident:c))))))")
	expectSexpr(t, "while (x > 0) x--;",
		"(Statement:while (Binary:> (Ident:x) (Literal:0)) (Statement:expr (Postfix:-- (Ident:x))))")
	expectSexpr(t, "do { } while (true);",
		"(Statement:do (Statement:block (Block)) (Literal:true))")
	expectSexpr(t, "outer: for (;;) break outer;",
		"(Statement:labeled:outer (Statement:for (ForControl) (Statement:break:outer)))")
}

func TestErrorRecovery(t *testing.T) {
	tree, bag := parseSnippet(t, "int x = ; int y; class C { int ; } void f() {}")
	if bag.Len() == 0 {
		t.Fatalf("expected syntax errors")
	}
	if !bag.HasErrors() {
		t.Fatalf("expected error severity")
	}
	var names []string
	ast.Walk(tree, tree.Root, ast.ListenerFuncs{OnEnter: func(id ast.NodeID) {
		switch tree.Kind(id) {
		case ast.KindVarDeclaratorID, ast.KindClassDecl, ast.KindFunctionDecl:
			names = append(names, tree.Name(id))
		}
	}})
	if got := strings.Join(names, ","); got != "x,y,C,f" {
		t.Fatalf("parser must recover and keep later declarations, got %q", got)
	}
}

func TestUnclosedBlockTerminates(t *testing.T) {
	_, bag := parseSnippet(t, "void f() { int x;")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynUnclosedBrace {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected unclosed brace, got %s", diagnosticsSummary(bag))
	}
}

func TestMaxErrorsLimitsReports(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("many.play", []byte(") ; ) ; ) ; ) ; ) ;")))
	bag := diag.NewBag(64)
	toks := lexer.Tokenize(file, lexer.Options{})
	res := ParseTokens(file.ID, toks, nil, Options{Reporter: diag.BagReporter{Bag: bag}, MaxErrors: 2})
	if bag.Len() != 2 {
		t.Fatalf("expected reports capped at 2, got %d", bag.Len())
	}
	if res.Errors < 5 {
		t.Fatalf("all errors must still be counted, got %d", res.Errors)
	}
}

func TestMissingSemicolonSuggestsInsertion(t *testing.T) {
	src := "class A {\n  int x = 1\n}\n"
	_, bag := parseSnippet(t, src)
	var got *diag.Diagnostic
	items := bag.Items()
	for i := range items {
		if items[i].Code == diag.SynExpectSemicolon {
			got = &items[i]
			break
		}
	}
	if got == nil {
		t.Fatalf("expected missing semicolon, got %s", diagnosticsSummary(bag))
	}
	if len(got.Fixes) != 1 || len(got.Fixes[0].Edits) != 1 {
		t.Fatalf("expected one single-edit fix, got %+v", got.Fixes)
	}
	edit := got.Fixes[0].Edits[0]
	want := uint32(strings.Index(src, "1") + 1) //nolint:gosec // small test input
	if edit.Span.Start != want || edit.Span.End != want || edit.NewText != ";" {
		t.Fatalf("unexpected edit %+v, want insertion of ';' at %d", edit, want)
	}
}

func TestTreeInvariantsHoldForValidAndBrokenInput(t *testing.T) {
	inputs := []string{
		"class A extends B { int x = 1; void f(int a) { for (int i = 0; i < a; i++) { x += i; } } }",
		"int add(int a, int b) { return a + b * (a - b); }\nfunction g(): int { return add(1, 2); }",
		"function int (int, string) cb; int[] xs = null;",
		"class A { int x = 1 }",
		"void f() { int x;",
		") ; class { ;",
		"",
	}
	for _, src := range inputs {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("inv.play", []byte(src)))
		toks := lexer.Tokenize(file, lexer.Options{})
		res := ParseTokens(file.ID, toks, nil, Options{})
		if err := testkit.CheckTreeInvariants(res.Tree, file); err != nil {
			t.Fatalf("%q: %v", src, err)
		}
	}
}
