package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"playscript/internal/ast"
	"playscript/internal/diag"
	"playscript/internal/lexer"
	"playscript/internal/parser"
	"playscript/internal/source"
	"playscript/internal/token"
)

func parseForDump(t *testing.T, src string) (*ast.Tree, []token.Token, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("dump.play", []byte(src)))
	bag := diag.NewBag(16)
	rep := diag.BagReporter{Bag: bag}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: rep})
	res := parser.ParseTokens(file.ID, toks, nil, parser.Options{Reporter: rep})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	return res.Tree, toks, fs
}

func TestFormatTreePretty(t *testing.T) {
	tree, _, fs := parseForDump(t, "class A {}\nclass B extends A {}\n")

	var buf bytes.Buffer
	if err := FormatTreePretty(&buf, tree, fs); err != nil {
		t.Fatalf("FormatTreePretty: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "Prog (span: 1:1-") {
		t.Fatalf("unexpected root line:\n%s", out)
	}
	if !strings.Contains(out, "├─ ClassDecl:A (span: 1:1-1:11)") {
		t.Errorf("missing first class:\n%s", out)
	}
	if !strings.Contains(out, "└─ ClassDecl:B (span: 2:1-") {
		t.Errorf("missing last class:\n%s", out)
	}
	if !strings.Contains(out, "   ├─ TypeType") {
		t.Errorf("children of the last class must be indented without a guide:\n%s", out)
	}
}

func TestFormatTreeSexpr(t *testing.T) {
	tree, _, _ := parseForDump(t, "class A {}")

	var buf bytes.Buffer
	if err := FormatTreeSexpr(&buf, tree); err != nil {
		t.Fatalf("FormatTreeSexpr: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "(Prog (ClassDecl:A (ClassBody)))" {
		t.Fatalf("unexpected sexpr %q", got)
	}
}

func TestFormatTreeJSON(t *testing.T) {
	tree, _, _ := parseForDump(t, "int x = 1;")

	var buf bytes.Buffer
	if err := FormatTreeJSON(&buf, tree); err != nil {
		t.Fatalf("FormatTreeJSON: %v", err)
	}
	var root ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if root.Type != "Prog" || len(root.Children) == 0 {
		t.Fatalf("unexpected root %+v", root)
	}
	var leaves []string
	var walk func(n ASTNodeOutput)
	walk = func(n ASTNodeOutput) {
		if len(n.Children) == 0 {
			leaves = append(leaves, n.Text)
		}
		for _, ch := range n.Children {
			walk(ch)
		}
	}
	walk(root)
	if got := strings.Join(leaves, " "); !strings.Contains(got, "int") || !strings.Contains(got, "x") || !strings.Contains(got, "1") {
		t.Fatalf("leaves lost source text: %q", got)
	}
}

func TestFormatTokens(t *testing.T) {
	_, toks, fs := parseForDump(t, "int x;")

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 token lines (int, x, ;, EOF), got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], `"x" at 1:5-1:6`) {
		t.Errorf("unexpected identifier line %q", lines[1])
	}
	if !strings.Contains(lines[3], "EOF") {
		t.Errorf("last line must be EOF, got %q", lines[3])
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks, fs); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != 4 || out[1].Text != "x" || out[1].Start != "1:5" {
		t.Fatalf("unexpected tokens %+v", out)
	}
}
