package diag

import (
	"playscript/internal/source"
)

// Note points at a related location, e.g. the earlier declaration of a
// duplicate name.
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit replaces Span with NewText. An empty span is an insertion.
type FixEdit struct {
	Span    source.Span
	NewText string
}

// Fix is a titled group of edits applied together by `playc fix`.
type Fix struct {
	Title string
	Edits []FixEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// WithNote returns d with one more note; d itself is not modified.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes[:len(d.Notes):len(d.Notes)], Note{Span: sp, Msg: msg})
	return d
}

// WithFix returns d with one more fix; d itself is not modified.
func (d Diagnostic) WithFix(title string, edits ...FixEdit) Diagnostic {
	d.Fixes = append(d.Fixes[:len(d.Fixes):len(d.Fixes)], Fix{Title: title, Edits: edits})
	return d
}
