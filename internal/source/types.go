package source

// FileID indexes FileSet.files. IDs start at 0, so the zero Span points at
// the first loaded file.
type FileID uint32

// FileFlags records how a file's bytes differ from what is on disk.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // added from memory: tests, stdin
	FileHadBOM                               // a UTF-8 BOM was stripped
	FileNormalizedCRLF                       // \r\n was rewritten to \n
)

// File is one loaded compilation unit. Content is already normalised;
// LineIdx and Hash describe the normalised bytes.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offset of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based position. Col counts bytes, not runes.
type LineCol struct {
	Line uint32
	Col  uint32
}
