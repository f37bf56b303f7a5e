package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Nodes stores the nodes of one tree. NodeID n lives at items[n-1], so
// NoNodeID never resolves.
type Nodes struct {
	items []Node
}

func newNodes(hint int) *Nodes { return &Nodes{items: make([]Node, 0, hint)} }

// add appends n. Pointers from Get are invalidated by add.
func (a *Nodes) add(n Node) NodeID {
	a.items = append(a.items, n)
	id, err := safecast.Conv[uint32](len(a.items))
	if err != nil {
		panic(fmt.Errorf("syntax tree too large: %w", err))
	}
	return NodeID(id)
}

func (a *Nodes) Get(id NodeID) *Node {
	if id == NoNodeID || int(id) > len(a.items) {
		return nil
	}
	return &a.items[id-1]
}

func (a *Nodes) Len() int { return len(a.items) }

// All returns the nodes in allocation order; read only.
func (a *Nodes) All() []Node { return a.items }
