package ast

import (
	"strings"

	"playscript/internal/source"
	"playscript/internal/token"
)

// Node is one parse-tree node. Children are owned; Parent is a lookup-only
// back-reference. First/Last delimit the node's tokens as [First, Last).
type Node struct {
	Kind     Kind
	Stmt     StmtKind
	Tok      token.Kind
	Flags    Flags
	Parent   NodeID
	Children []NodeID
	Name     source.StringID
	Span     source.Span
	First    uint32
	Last     uint32
}

// Tree is the parse tree of one compilation unit together with the token
// stream it was built from.
type Tree struct {
	File    source.FileID
	Nodes   *Nodes
	Tokens  []token.Token
	Strings *source.Interner
	Root    NodeID
}

// NewTree creates an empty tree over toks. strings may be shared between trees.
func NewTree(file source.FileID, toks []token.Token, strings *source.Interner) *Tree {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Tree{
		File:    file,
		Nodes:   newNodes(len(toks)/2 + 1),
		Tokens:  toks,
		Strings: strings,
	}
}

// Node returns the node or nil for NoNodeID.
func (t *Tree) Node(id NodeID) *Node {
	if t == nil {
		return nil
	}
	return t.Nodes.Get(id)
}

// Len reports the number of allocated nodes.
func (t *Tree) Len() int {
	return t.Nodes.Len()
}

// Open allocates a node of kind under parent, starting at token index first.
func (t *Tree) Open(kind Kind, parent NodeID, first uint32) NodeID {
	id := t.Nodes.add(Node{Kind: kind, Parent: parent, First: first, Last: first})
	if p := t.Node(parent); p != nil {
		p.Children = append(p.Children, id)
	}
	return id
}

// Close records the node's end token (exclusive) and computes its span.
func (t *Tree) Close(id NodeID, last uint32) {
	n := t.Node(id)
	if n == nil {
		return
	}
	if last < n.First {
		last = n.First
	}
	n.Last = last
	n.Span = t.tokenSpan(n.First, n.Last)
}

// Precede inserts a new node of kind in child's place; child becomes its
// first child. Used for left-recursive constructs such as binary expressions.
func (t *Tree) Precede(child NodeID, kind Kind) NodeID {
	c := t.Node(child)
	parent, first := c.Parent, c.First
	id := t.Nodes.add(Node{Kind: kind, Parent: parent, First: first, Last: first})
	if p := t.Node(parent); p != nil {
		for i, ch := range p.Children {
			if ch == child {
				p.Children[i] = id
				break
			}
		}
	}
	// re-fetch: add may have moved the backing array
	c = t.Node(child)
	c.Parent = id
	t.Node(id).Children = []NodeID{child}
	return id
}

func (t *Tree) tokenSpan(first, last uint32) source.Span {
	if len(t.Tokens) == 0 {
		return source.Span{File: t.File}
	}
	if int(first) >= len(t.Tokens) {
		end := t.Tokens[len(t.Tokens)-1].Span.End
		return source.Span{File: t.File, Start: end, End: end}
	}
	if last <= first {
		start := t.Tokens[first].Span.Start
		return source.Span{File: t.File, Start: start, End: start}
	}
	if int(last) > len(t.Tokens) {
		last = uint32(len(t.Tokens)) // #nosec G115 -- bounded by the check above
	}
	return t.Tokens[first].Span.Cover(t.Tokens[last-1].Span)
}

// Parent returns the parent of id or NoNodeID.
func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.Node(id); n != nil {
		return n.Parent
	}
	return NoNodeID
}

// Kind returns the kind of id, KindInvalid for NoNodeID.
func (t *Tree) Kind(id NodeID) Kind {
	if n := t.Node(id); n != nil {
		return n.Kind
	}
	return KindInvalid
}

// Child returns the first child of kind, or NoNodeID.
func (t *Tree) Child(id NodeID, kind Kind) NodeID {
	n := t.Node(id)
	if n == nil {
		return NoNodeID
	}
	for _, ch := range n.Children {
		if t.Kind(ch) == kind {
			return ch
		}
	}
	return NoNodeID
}

// ChildrenOf returns every direct child of the given kind, in order.
func (t *Tree) ChildrenOf(id NodeID, kind Kind) []NodeID {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	var out []NodeID
	for _, ch := range n.Children {
		if t.Kind(ch) == kind {
			out = append(out, ch)
		}
	}
	return out
}

// Name returns the identifier bound to the node, or "".
func (t *Tree) Name(id NodeID) string {
	n := t.Node(id)
	if n == nil || n.Name == source.NoStringID {
		return ""
	}
	s, _ := t.Strings.Lookup(n.Name)
	return s
}

// Text reproduces the node's source as the concatenation of its tokens,
// without whitespace or comments ("a . b" yields "a.b").
func Text(t *Tree, id NodeID) string {
	n := t.Node(id)
	if n == nil {
		return ""
	}
	var b strings.Builder
	for i := n.First; i < n.Last && int(i) < len(t.Tokens); i++ {
		if t.Tokens[i].Kind == token.EOF {
			break
		}
		b.WriteString(t.Tokens[i].Text)
	}
	return b.String()
}
