package source

import "testing"

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.play", []byte("class A {}\nint x;\n\nvoid f() {}"))

	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{6, 1, 7},
		{10, 1, 11}, // the newline itself
		{11, 2, 1},
		{18, 3, 1},
		{19, 4, 1},
		{24, 4, 6},
	}
	for _, tc := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if start.Line != tc.line || start.Col != tc.col {
			t.Fatalf("offset %d: got %d:%d, want %d:%d", tc.off, start.Line, start.Col, tc.line, tc.col)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("b.play", []byte("first\nsecond\nthird"))
	f := fs.Get(id)
	for i, want := range []string{"first", "second", "third"} {
		if got := f.GetLine(uint32(i + 1)); got != want {
			t.Fatalf("line %d: got %q, want %q", i+1, got, want)
		}
	}
	if got := f.GetLine(4); got != "" {
		t.Fatalf("expected empty line past EOF, got %q", got)
	}
}

func TestNormalizeCRLFAndBOM(t *testing.T) {
	content, had := normalizeCRLF([]byte("a\r\nb\rc\r\n"))
	if !had || string(content) != "a\nb\rc\n" {
		t.Fatalf("unexpected normalization: %q (changed=%v)", content, had)
	}
	stripped, bom := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x'})
	if !bom || string(stripped) != "x" {
		t.Fatalf("BOM not removed: %q", stripped)
	}
}

func TestInternerDeduplicates(t *testing.T) {
	in := NewInterner()
	a := in.Intern("Shape")
	b := in.Intern("Shape")
	if a != b || a == NoStringID {
		t.Fatalf("expected stable non-zero id, got %d and %d", a, b)
	}
	if _, ok := in.Find("Circle"); ok {
		t.Fatalf("Find must not intern")
	}
	if got := in.MustLookup(a); got != "Shape" {
		t.Fatalf("lookup mismatch: %q", got)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got.Start != 2 || got.End != 8 {
		t.Fatalf("unexpected cover %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 100}); got != a {
		t.Fatalf("spans from other files must not merge")
	}
	if !a.Cover(b).Contains(b) {
		t.Fatalf("cover must contain its inputs")
	}
}
