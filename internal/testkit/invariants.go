// Package testkit holds structural checks shared by tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"playscript/internal/ast"
	"playscript/internal/source"
)

// CheckTreeInvariants walks tree from its root and verifies:
//  1. every span points at sf and stays within its content
//  2. token ranges are well formed and nested inside the parent's range
//  3. non-empty child spans are covered by the parent span
//  4. Parent back-references match the Children lists
func CheckTreeInvariants(tree *ast.Tree, sf *source.File) error {
	if tree == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	root := tree.Node(tree.Root)
	if root == nil {
		return fmt.Errorf("root node not found")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	lenTokens, err := safecast.Conv[uint32](len(tree.Tokens))
	if err != nil {
		return fmt.Errorf("len tokens overflow: %w", err)
	}

	var check func(id ast.NodeID, depth int) error
	check = func(id ast.NodeID, depth int) error {
		n := tree.Node(id)
		if n == nil {
			return fmt.Errorf("nil node for id=%d", id)
		}
		if depth > tree.Len() {
			return fmt.Errorf("cycle through node %d", id)
		}
		sp := n.Span
		if sp.End > sp.Start && sp.File != sf.ID {
			return fmt.Errorf("node %d (%s) span file mismatch: got=%d want=%d", id, n.Kind, sp.File, sf.ID)
		}
		if sp.End < sp.Start || sp.End > lenContent {
			return fmt.Errorf("node %d (%s) span %v outside content of %d bytes", id, n.Kind, sp, lenContent)
		}
		if n.Last < n.First || n.Last > lenTokens {
			return fmt.Errorf("node %d (%s) token range [%d,%d) invalid", id, n.Kind, n.First, n.Last)
		}
		for _, ch := range n.Children {
			c := tree.Node(ch)
			if c == nil {
				return fmt.Errorf("node %d has nil child %d", id, ch)
			}
			if c.Parent != id {
				return fmt.Errorf("child %d of %d points at parent %d", ch, id, c.Parent)
			}
			if c.First < n.First || c.Last > n.Last {
				return fmt.Errorf("child %d (%s) tokens [%d,%d) escape parent [%d,%d)", ch, c.Kind, c.First, c.Last, n.First, n.Last)
			}
			// пустые узлы (пропущенные конструкции) не проверяем
			if c.Span.End > c.Span.Start && (c.Span.Start < sp.Start || c.Span.End > sp.End) {
				return fmt.Errorf("child %d (%s) span %v is outside parent span %v", ch, c.Kind, c.Span, sp)
			}
			if err := check(ch, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return check(tree.Root, 0)
}
