package ast

import (
	"strings"
)

// Sexpr renders the subtree as a compact s-expression, e.g.
// (ClassDecl:B (TypeType (ClassOrInterfaceType:A)) (ClassBody)).
// Statements show their StmtKind, operator nodes their token.
func Sexpr(t *Tree, id NodeID) string {
	var b strings.Builder
	writeSexpr(&b, t, id)
	return b.String()
}

func writeSexpr(b *strings.Builder, t *Tree, id NodeID) {
	n := t.Node(id)
	if n == nil {
		b.WriteString("()")
		return
	}
	b.WriteByte('(')
	b.WriteString(Label(t, id))
	for _, ch := range n.Children {
		b.WriteByte(' ')
		writeSexpr(b, t, ch)
	}
	b.WriteByte(')')
}

// Label is the one-line description of a node used by dumps.
func Label(t *Tree, id NodeID) string {
	n := t.Node(id)
	if n == nil {
		return "<nil>"
	}
	label := n.Kind.String()
	switch {
	case n.Kind == KindStatement:
		label += ":" + n.Stmt.String()
		if name := t.Name(id); name != "" {
			label += ":" + name
		}
	case n.Kind == KindLiteral:
		label += ":" + Text(t, id)
	case n.Tok != 0:
		label += ":" + n.Tok.String()
	case n.Name != 0:
		label += ":" + t.Name(id)
	}
	if n.Flags&FlagArray != 0 {
		label += "[]"
	}
	return label
}
