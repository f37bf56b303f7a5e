package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"playscript/internal/ast"
	"playscript/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Label    string          `json:"label,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// FormatTreePretty prints the parse tree one node per line with box-drawing
// guides, e.g.
//
//	Prog (span: 1:1-3:2)
//	└─ ClassDecl:B (span: 1:1-1:20)
func FormatTreePretty(w io.Writer, tree *ast.Tree, fs *source.FileSet) error {
	root := tree.Node(tree.Root)
	if root == nil {
		return fmt.Errorf("tree has no root")
	}
	if _, err := fmt.Fprintf(w, "%s (span: %s)\n", ast.Label(tree, tree.Root), formatSpan(root.Span, fs)); err != nil {
		return err
	}
	return writeTreeChildren(w, tree, root.Children, fs, "")
}

func writeTreeChildren(w io.Writer, tree *ast.Tree, children []ast.NodeID, fs *source.FileSet, prefix string) error {
	for i, id := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		n := tree.Node(id)
		if n == nil {
			fmt.Fprintf(w, "%s%s<nil>\n", prefix, branch)
			continue
		}
		if _, err := fmt.Fprintf(w, "%s%s%s (span: %s)\n", prefix, branch, ast.Label(tree, id), formatSpan(n.Span, fs)); err != nil {
			return err
		}
		if err := writeTreeChildren(w, tree, n.Children, fs, prefix+next); err != nil {
			return err
		}
	}
	return nil
}

// FormatTreeSexpr prints the whole tree as a single s-expression line.
func FormatTreeSexpr(w io.Writer, tree *ast.Tree) error {
	_, err := fmt.Fprintln(w, ast.Sexpr(tree, tree.Root))
	return err
}

// FormatTreeJSON выводит дерево разбора в JSON.
func FormatTreeJSON(w io.Writer, tree *ast.Tree) error {
	if tree.Node(tree.Root) == nil {
		return fmt.Errorf("tree has no root")
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildNodeJSON(tree, tree.Root))
}

func buildNodeJSON(tree *ast.Tree, id ast.NodeID) ASTNodeOutput {
	n := tree.Node(id)
	out := ASTNodeOutput{
		Type:  n.Kind.String(),
		Label: ast.Label(tree, id),
		Span:  n.Span,
	}
	if len(n.Children) == 0 {
		out.Text = ast.Text(tree, id)
	}
	for _, ch := range n.Children {
		if tree.Node(ch) != nil {
			out.Children = append(out.Children, buildNodeJSON(tree, ch))
		}
	}
	return out
}
