package ast

// Listener receives depth-first enter/exit events for every node.
type Listener interface {
	Enter(id NodeID)
	Exit(id NodeID)
}

// ListenerFuncs adapts two plain functions to Listener; nil fields are skipped.
type ListenerFuncs struct {
	OnEnter func(id NodeID)
	OnExit  func(id NodeID)
}

func (l ListenerFuncs) Enter(id NodeID) {
	if l.OnEnter != nil {
		l.OnEnter(id)
	}
}

func (l ListenerFuncs) Exit(id NodeID) {
	if l.OnExit != nil {
		l.OnExit(id)
	}
}

// Walk visits the subtree rooted at id in natural depth-first order: a node's
// Enter, then its children left to right, then its Exit.
func Walk(t *Tree, id NodeID, l Listener) {
	n := t.Node(id)
	if n == nil {
		return
	}
	l.Enter(id)
	for _, ch := range n.Children {
		Walk(t, ch, l)
	}
	l.Exit(id)
}

// Ancestors calls fn for each proper ancestor of id, innermost first, until fn
// returns false.
func Ancestors(t *Tree, id NodeID, fn func(NodeID) bool) {
	for p := t.Parent(id); p.IsValid(); p = t.Parent(p) {
		if !fn(p) {
			return
		}
	}
}
