package diagfmt

import (
	"encoding/json"
	"io"

	"playscript/internal/diag"
	"playscript/internal/source"
)

// DiagnosticsOutput is the document `playc diag --format json` prints.
type DiagnosticsOutput struct {
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Count       int              `json:"count"`
	Dropped     int              `json:"dropped,omitempty"`
}

type JSONDiagnostic struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location JSONLocation `json:"location"`
	Notes    []JSONNote   `json:"notes,omitempty"`
	Fixes    []JSONFix    `json:"fixes,omitempty"`
}

// JSONLocation always has byte offsets; line and column are filled only
// with IncludePositions.
type JSONLocation struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type JSONNote struct {
	Message  string       `json:"message"`
	Location JSONLocation `json:"location"`
}

type JSONFix struct {
	Title string     `json:"title"`
	Edits []JSONEdit `json:"edits,omitempty"`
}

type JSONEdit struct {
	Location    JSONLocation `json:"location"`
	NewText     string       `json:"new_text"`
	OldText     string       `json:"old_text,omitempty"`
	BeforeLines []string     `json:"before_lines,omitempty"`
	AfterLines  []string     `json:"after_lines,omitempty"`
}

type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

// BuildDiagnosticsOutput converts the bag without encoding it. opts.Max cuts
// the output; Dropped still reports only what the bag itself refused.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	b := jsonBuilder{fs: fs, opts: opts}
	items := bag.Items()
	if opts.Max > 0 {
		items = items[:min(opts.Max, len(items))]
	}
	out := DiagnosticsOutput{Diagnostics: make([]JSONDiagnostic, len(items)), Count: len(items), Dropped: bag.Dropped()}
	for i := range items {
		out.Diagnostics[i] = b.diagnostic(&items[i])
	}
	return out
}

func (b jsonBuilder) location(sp source.Span) JSONLocation {
	loc := JSONLocation{File: formatPath(b.fs.Get(sp.File), b.fs, b.opts.PathMode), StartByte: sp.Start, EndByte: sp.End}
	if b.opts.IncludePositions {
		start, end := b.fs.Resolve(sp)
		loc.StartLine, loc.StartCol, loc.EndLine, loc.EndCol = start.Line, start.Col, end.Line, end.Col
	}
	return loc
}

func (b jsonBuilder) diagnostic(d *diag.Diagnostic) JSONDiagnostic {
	out := JSONDiagnostic{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Location: b.location(d.Primary),
	}
	// a timings diagnostic is nothing but its notes
	if b.opts.IncludeNotes || d.Code == diag.ObsTimings {
		for _, n := range d.Notes {
			out.Notes = append(out.Notes, JSONNote{Message: n.Msg, Location: b.location(n.Span)})
		}
	}
	if b.opts.IncludeFixes {
		for _, fx := range d.Fixes {
			out.Fixes = append(out.Fixes, b.fix(fx))
		}
	}
	return out
}

func (b jsonBuilder) fix(fx diag.Fix) JSONFix {
	out := JSONFix{Title: fx.Title, Edits: make([]JSONEdit, 0, len(fx.Edits))}
	for _, edit := range fx.Edits {
		je := JSONEdit{Location: b.location(edit.Span), NewText: edit.NewText}
		if f := b.fs.Get(edit.Span.File); f != nil && edit.Span.Start <= edit.Span.End && int(edit.Span.End) <= len(f.Content) {
			je.OldText = string(f.Content[edit.Span.Start:edit.Span.End])
		}
		if b.opts.IncludePreviews {
			if preview, err := buildFixEditPreview(b.fs, edit); err == nil {
				je.BeforeLines, je.AfterLines = preview.before, preview.after
			}
		}
		out.Edits = append(out.Edits, je)
	}
	return out
}

// JSON writes the whole bag as one indented document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
