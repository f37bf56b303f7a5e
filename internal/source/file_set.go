package source

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"fortio.org/safecast"
)

// FileSet owns the files of one run and maps spans back to line/column.
// It is not safe for concurrent mutation; AnalyzeDir loads every file before
// the workers start and they only read from it.
type FileSet struct {
	files   []File
	baseDir string
}

func NewFileSet() *FileSet { return &FileSet{} }

// NewFileSetWithBase renders relative paths against baseDir.
func NewFileSetWithBase(baseDir string) *FileSet { return &FileSet{baseDir: baseDir} }

// BaseDir falls back to the working directory when no base was given.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir != "" {
		return fileSet.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Add registers content under path. Every call yields a new FileID, even
// for a path that was added before.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("too many source files: %w", err))
	}
	id := FileID(n)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    filepath.ToSlash(filepath.Clean(path)),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	return id
}

// Load reads path, drops a UTF-8 BOM and folds CRLF line ends before Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- the user names the file
	if err != nil {
		return 0, err
	}
	var flags FileFlags
	content, bom := removeBOM(raw)
	if bom {
		flags |= FileHadBOM
	}
	content, crlf := normalizeCRLF(content)
	if crlf {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds content that has no file on disk. `playc fix` refuses to
// write such files.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns nil for an unknown id. The pointer is valid until the next Add.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return &fileSet.files[id]
}

// Resolve maps both ends of span to 1-based positions. A newline belongs to
// the line it ends.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return f.position(span.Start), f.position(span.End)
}

func (f *File) position(off uint32) LineCol {
	// LineIdx holds newline offsets, so the count of newlines before off is
	// the 0-based line number
	line, _ := slices.BinarySearch(f.LineIdx, off)
	var lineStart uint32
	if line > 0 {
		lineStart = f.LineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line) + 1, Col: off - lineStart + 1} //nolint:gosec // line <= len(LineIdx)
}

// GetLine returns line n (1-based) without its newline, "" past the end.
func (f *File) GetLine(n uint32) string {
	if n == 0 || int(n) > len(f.LineIdx)+1 {
		return ""
	}
	start := 0
	if n > 1 {
		start = int(f.LineIdx[n-2]) + 1
	}
	end := len(f.Content)
	if int(n) <= len(f.LineIdx) {
		end = int(f.LineIdx[n-1])
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders the path as "absolute", "relative" (to baseDir, or the
// working directory when empty), "basename" or "auto". Auto keeps the path
// as loaded unless it is a long absolute one.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		if rel, err := filepath.Rel(baseDir, f.Path); err == nil {
			return filepath.ToSlash(rel)
		}
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		if len(f.Path) >= 40 && filepath.IsAbs(f.Path) {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func removeBOM(content []byte) ([]byte, bool) {
	if bytes.HasPrefix(content, utf8BOM) {
		return content[len(utf8BOM):], true
	}
	return content, false
}

// normalizeCRLF rewrites \r\n as \n. A lone \r is kept.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, []byte("\r\n")) {
		return content, false
	}
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n")), true
}

func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for off, b := range content {
		if b == '\n' {
			idx = append(idx, uint32(off)) //nolint:gosec // content length is bounded by Add
		}
	}
	return idx
}
