package diagfmt

// PathMode selects how file paths are printed.
type PathMode uint8

const (
	PathModeAuto PathMode = iota // as loaded; long absolute paths shrink to the basename
	PathModeAbsolute
	PathModeRelative // relative to the FileSet base directory
	PathModeBasename
)

var pathModes = map[string]PathMode{
	"":         PathModeAuto,
	"auto":     PathModeAuto,
	"absolute": PathModeAbsolute,
	"relative": PathModeRelative,
	"basename": PathModeBasename,
}

// ParsePathMode maps a --path-mode value onto a PathMode.
func ParsePathMode(s string) (PathMode, bool) {
	m, ok := pathModes[s]
	return m, ok
}

// PrettyOpts configures Pretty.
type PrettyOpts struct {
	Color bool
	// Context is the number of source lines shown around the primary line.
	Context  int8
	PathMode PathMode
	// Width truncates source lines to this many terminal cells; 0 = no limit.
	Width       uint8
	ShowNotes   bool
	ShowFixes   bool
	ShowPreview bool
}

// JSONOpts configures JSON and BuildDiagnosticsOutput.
type JSONOpts struct {
	IncludePositions bool // line/col next to byte offsets
	PathMode         PathMode
	Max              int // trims output only; the bag is untouched
	IncludeNotes     bool
	IncludeFixes     bool
	IncludePreviews  bool
}
