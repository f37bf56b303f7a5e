package ast

import (
	"strings"
	"testing"

	"playscript/internal/source"
	"playscript/internal/token"
)

func toks(texts ...string) []token.Token {
	out := make([]token.Token, 0, len(texts)+1)
	var off uint32
	for _, s := range texts {
		n := uint32(len(s)) // #nosec G115
		out = append(out, token.Token{Kind: token.Ident, Text: s, Span: source.Span{File: 1, Start: off, End: off + n}})
		off += n + 1
	}
	return append(out, token.Token{Kind: token.EOF, Span: source.Span{File: 1, Start: off, End: off}})
}

func TestOpenCloseAndText(t *testing.T) {
	tree := NewTree(1, toks("a", ".", "b", ";"), nil)
	root := tree.Open(KindProg, NoNodeID, 0)
	typ := tree.Open(KindClassOrInterfaceType, root, 0)
	tree.Close(typ, 3)
	tree.Close(root, 4)

	if got := Text(tree, typ); got != "a.b" {
		t.Fatalf("expected a.b, got %q", got)
	}
	if sp := tree.Node(typ).Span; sp.Start != 0 || sp.End != 5 {
		t.Fatalf("unexpected span %v", sp)
	}
	if tree.Parent(typ) != root || tree.Child(root, KindClassOrInterfaceType) != typ {
		t.Fatalf("parent/child links broken")
	}
}

func TestPrecedeKeepsChildOrder(t *testing.T) {
	tree := NewTree(1, toks("x", "+", "y"), nil)
	root := tree.Open(KindStatement, NoNodeID, 0)
	before := tree.Open(KindIdent, root, 0)
	tree.Close(before, 0)
	lhs := tree.Open(KindIdent, root, 0)
	tree.Close(lhs, 1)

	bin := tree.Precede(lhs, KindBinary)
	rhs := tree.Open(KindIdent, bin, 2)
	tree.Close(rhs, 3)
	tree.Close(bin, 3)

	kids := tree.Node(root).Children
	if len(kids) != 2 || kids[0] != before || kids[1] != bin {
		t.Fatalf("binary node must replace lhs in place, got %v", kids)
	}
	if tree.Parent(lhs) != bin || tree.Node(bin).Children[0] != lhs || tree.Node(bin).Children[1] != rhs {
		t.Fatalf("lhs must become first child of the binary node")
	}
	if Text(tree, bin) != "x+y" {
		t.Fatalf("unexpected text %q", Text(tree, bin))
	}
}

func TestWalkOrder(t *testing.T) {
	tree := NewTree(1, toks("a"), nil)
	root := tree.Open(KindProg, NoNodeID, 0)
	b := tree.Open(KindBlock, root, 0)
	tree.Open(KindIdent, b, 0)
	tree.Open(KindLiteral, root, 0)

	var trace []string
	Walk(tree, root, ListenerFuncs{
		OnEnter: func(id NodeID) { trace = append(trace, "+"+tree.Kind(id).String()) },
		OnExit:  func(id NodeID) { trace = append(trace, "-"+tree.Kind(id).String()) },
	})
	want := "+Prog +Block +Ident -Ident -Block +Literal -Literal -Prog"
	if got := strings.Join(trace, " "); got != want {
		t.Fatalf("walk order:\nwant %s\ngot  %s", want, got)
	}
}
