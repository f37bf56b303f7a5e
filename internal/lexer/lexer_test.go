package lexer_test

import (
	"testing"

	"playscript/internal/diag"
	"playscript/internal/lexer"
	"playscript/internal/source"
	"playscript/internal/token"
)

func lexAll(t *testing.T, input string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.play", []byte(input)))
	bag := diag.NewBag(32)
	toks := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return toks, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func expectKinds(t *testing.T, toks []token.Token, want ...token.Kind) {
	t.Helper()
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens %v, got %d %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %v, got %v (all: %v)", i, want[i], got[i], got)
		}
	}
}

func TestClassDeclarationTokens(t *testing.T) {
	toks, bag := lexAll(t, "class B extends A { int x = 1; }")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	expectKinds(t, toks,
		token.KwClass, token.Ident, token.KwExtends, token.Ident, token.LBrace,
		token.KwInt, token.Ident, token.Assign, token.IntLit, token.Semicolon,
		token.RBrace, token.EOF)
	if toks[1].Text != "B" || toks[3].Text != "A" {
		t.Fatalf("unexpected identifier text %q %q", toks[1].Text, toks[3].Text)
	}
}

func TestFunctionTypeTokens(t *testing.T) {
	toks, _ := lexAll(t, "function int (int, string) f;")
	expectKinds(t, toks,
		token.KwFunction, token.KwInt, token.LParen, token.KwInt, token.Comma,
		token.KwString, token.RParen, token.Ident, token.Semicolon, token.EOF)
}

func TestCommentsAreSkipped(t *testing.T) {
	toks, bag := lexAll(t, "// line\nint /* block\n comment */ x;")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics")
	}
	expectKinds(t, toks, token.KwInt, token.Ident, token.Semicolon, token.EOF)
}

func TestUnterminatedBlockComment(t *testing.T) {
	toks, bag := lexAll(t, "int x; /* never closed")
	expectKinds(t, toks, token.KwInt, token.Ident, token.Semicolon, token.EOF)
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("expected one unterminated comment diagnostic, got %v", bag.Items())
	}
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		in   string
		kind token.Kind
	}{
		{"42", token.IntLit},
		{"0x1F", token.IntLit},
		{"10L", token.IntLit},
		{"3.14", token.FloatLit},
		{".5", token.FloatLit},
		{"1e10", token.FloatLit},
		{"2.5f", token.FloatLit},
		{"7d", token.FloatLit},
	}
	for _, tc := range cases {
		toks, bag := lexAll(t, tc.in)
		if bag.Len() != 0 {
			t.Fatalf("%q: unexpected diagnostics %v", tc.in, bag.Items())
		}
		if toks[0].Kind != tc.kind || toks[0].Text != tc.in {
			t.Fatalf("%q: got %v %q", tc.in, toks[0].Kind, toks[0].Text)
		}
	}
}

func TestBadNumbers(t *testing.T) {
	for _, in := range []string{"1e", "0x", "12abc"} {
		toks, bag := lexAll(t, in)
		if toks[0].Kind != token.Invalid {
			t.Fatalf("%q: expected Invalid, got %v", in, toks[0].Kind)
		}
		if bag.Len() == 0 || bag.Items()[0].Code != diag.LexBadNumber {
			t.Fatalf("%q: expected LexBadNumber", in)
		}
	}
}

func TestStringsAndChars(t *testing.T) {
	toks, bag := lexAll(t, `"a\"b" 'c' '\n'`)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics %v", bag.Items())
	}
	expectKinds(t, toks, token.StringLit, token.CharLit, token.CharLit, token.EOF)
	if toks[0].Text != `"a\"b"` {
		t.Fatalf("unexpected string text %q", toks[0].Text)
	}

	_, bag = lexAll(t, "\"open\nx")
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected unterminated string diagnostic")
	}
}

func TestOperatorsAreGreedy(t *testing.T) {
	toks, _ := lexAll(t, "a += b++ && c != d <= e || !f")
	expectKinds(t, toks,
		token.Ident, token.PlusAssign, token.Ident, token.Inc, token.AndAnd,
		token.Ident, token.BangEq, token.Ident, token.LtEq, token.Ident,
		token.OrOr, token.Bang, token.Ident, token.EOF)
}

func TestUnknownCharacter(t *testing.T) {
	toks, bag := lexAll(t, "int # x;")
	expectKinds(t, toks, token.KwInt, token.Invalid, token.Ident, token.Semicolon, token.EOF)
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnknownChar {
		t.Fatalf("expected LexUnknownChar")
	}
}

func TestIdentifiersAreNFCNormalized(t *testing.T) {
	// "é" как 'e' + combining acute и как одна руна
	toks, _ := lexAll(t, "cafe\u0301 caf\u00e9")
	if toks[0].Kind != token.Ident || toks[1].Kind != token.Ident {
		t.Fatalf("expected identifiers, got %v", kinds(toks))
	}
	if toks[0].Text != toks[1].Text {
		t.Fatalf("expected normalized identifiers to match: %q vs %q", toks[0].Text, toks[1].Text)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("peek.play", []byte("class A")))
	lx := lexer.New(file, lexer.Options{})
	if lx.Peek().Kind != token.KwClass || lx.Next().Kind != token.KwClass {
		t.Fatalf("peek must not consume")
	}
	if lx.Next().Kind != token.Ident || lx.Next().Kind != token.EOF || lx.Next().Kind != token.EOF {
		t.Fatalf("expected Ident then sticky EOF")
	}
}
