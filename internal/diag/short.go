package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"playscript/internal/source"
)

// shortLine is one row of the short format. Rows sort by location first and
// then by label, code and text, so notes interleave with the diagnostics
// they point at.
type shortLine struct {
	path      string
	line, col uint32
	label     string
	code      string
	text      string
}

func (l shortLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.label, l.code, l.path, l.line, l.col, l.text)
}

// FormatShortDiagnostics renders one diagnostic per line:
//
//	error SEM3001 src/shapes.play:4:7 duplicate class name "Shape"
//
// Paths are relative to the file set base directory; multi-line messages
// are folded onto one line. Notes become "note" rows when includeNotes is
// set. Spans of unknown files are skipped.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	var rows []shortLine
	add := func(sp source.Span, label string, code Code, text string) {
		f := fs.Get(sp.File)
		if f == nil {
			return
		}
		start, _ := fs.Resolve(sp)
		rows = append(rows, shortLine{
			path:  cleanRelPath(f.FormatPath("relative", fs.BaseDir())),
			line:  start.Line,
			col:   start.Col,
			label: label,
			code:  code.ID(),
			text:  oneLine(text),
		})
	}
	for _, d := range diags {
		add(d.Primary, d.Severity.Label(), d.Code, d.Message)
		if includeNotes {
			for _, n := range d.Notes {
				add(n.Span, "note", d.Code, n.Msg)
			}
		}
	}

	slices.SortStableFunc(rows, func(a, b shortLine) int {
		return cmp.Or(
			strings.Compare(a.path, b.path),
			cmp.Compare(a.line, b.line),
			cmp.Compare(a.col, b.col),
			strings.Compare(a.label, b.label),
			strings.Compare(a.code, b.code),
			strings.Compare(a.text, b.text),
		)
	})
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.String()
	}
	return strings.Join(out, "\n")
}

func cleanRelPath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

// oneLine folds CR, LF and CRLF into spaces.
func oneLine(msg string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg))
}
