package driver

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

var dirFixture = map[string]string{
	"a.play":          "class A {}\nclass A {}\n",
	"sub/b.play":      "class A {}\nclass B extends A {}\n",
	"sub/c.play":      "class C extends Missing {}\nvoid f(int x, int x) {}\n",
	".hidden/d.play":  "class D extends Nowhere {}\n",
	"notes.txt":       "not a source file",
	"sub/deep/e.play": "int x; int y;",
}

func TestListSourceFiles(t *testing.T) {
	dir := writeTree(t, dirFixture)
	files, err := ListSourceFiles(context.Background(), dir)
	if err != nil {
		t.Fatalf("ListSourceFiles: %v", err)
	}
	var rel []string
	for _, f := range files {
		r, _ := filepath.Rel(dir, f)
		rel = append(rel, filepath.ToSlash(r))
	}
	want := []string{"a.play", "sub/b.play", "sub/c.play", "sub/deep/e.play"}
	if !reflect.DeepEqual(rel, want) {
		t.Fatalf("files %v, want %v", rel, want)
	}
}

type dirDiag struct {
	Path, Code, Msg string
}

func dirSummary(t *testing.T, r *DirResult) []dirDiag {
	t.Helper()
	var out []dirDiag
	for _, d := range r.Bag.Items() {
		out = append(out, dirDiag{Path: filepath.Base(r.FileSet.Get(d.Primary.File).Path), Code: d.Code.ID(), Msg: d.Message})
	}
	return out
}

func TestAnalyzeDirIsDeterministic(t *testing.T) {
	dir := writeTree(t, dirFixture)

	serial, err := AnalyzeDir(context.Background(), dir, Options{Jobs: 1})
	if err != nil {
		t.Fatalf("AnalyzeDir: %v", err)
	}
	if len(serial.Files) != 4 {
		t.Fatalf("expected 4 files, got %d", len(serial.Files))
	}

	want := dirSummary(t, serial)
	// a.play: duplicate class; c.play: unknown parent and duplicate parameter
	if len(want) != 3 {
		t.Fatalf("expected 3 diagnostics, got %+v", want)
	}
	if want[0].Path != "a.play" || want[0].Code != "SEM3001" {
		t.Fatalf("diagnostics must follow path order, got %+v", want)
	}

	for range 5 {
		par, err := AnalyzeDir(context.Background(), dir, Options{Jobs: 4})
		if err != nil {
			t.Fatalf("AnalyzeDir: %v", err)
		}
		if got := dirSummary(t, par); !reflect.DeepEqual(got, want) {
			t.Fatalf("parallel run differs:\n got %+v\nwant %+v", got, want)
		}
	}
}

func TestAnalyzeDirUnitsAreIndependent(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"x.play": "class A {}",
		"y.play": "class A {}",
	})
	res, err := AnalyzeDir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatalf("AnalyzeDir: %v", err)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("classes in different files must not clash: %+v", dirSummary(t, res))
	}
	if res.Files[0].Sema == res.Files[1].Sema {
		t.Fatalf("each file needs its own context")
	}
	if res.Files[0].RunID != res.RunID {
		t.Fatalf("files must carry the directory run id")
	}
}

func TestAnalyzeDirBoundsMergedBag(t *testing.T) {
	dir := writeTree(t, dirFixture)
	res, err := AnalyzeDir(context.Background(), dir, Options{MaxDiagnostics: 2})
	if err != nil {
		t.Fatalf("AnalyzeDir: %v", err)
	}
	if res.Bag.Len() != 2 {
		t.Fatalf("merged bag must respect the limit, got %d", res.Bag.Len())
	}
}

func TestAnalyzeDirEmptyAndCancelled(t *testing.T) {
	res, err := AnalyzeDir(context.Background(), t.TempDir(), Options{})
	if err != nil || len(res.Files) != 0 {
		t.Fatalf("empty dir: %v %+v", err, res)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := AnalyzeDir(ctx, writeTree(t, dirFixture), Options{}); err == nil {
		t.Fatal("expected cancellation error")
	}
}
