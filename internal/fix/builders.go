package fix

import (
	"playscript/internal/diag"
	"playscript/internal/source"
)

// InsertText creates fix that inserts text at span (Span.Start == Span.End).
func InsertText(title string, at source.Span, text string) diag.Fix {
	at.End = at.Start
	return diag.Fix{
		Title: title,
		Edits: []diag.FixEdit{{Span: at, NewText: text}},
	}
}

// DeleteSpan removes text covered by span.
func DeleteSpan(title string, span source.Span) diag.Fix {
	return diag.Fix{
		Title: title,
		Edits: []diag.FixEdit{{Span: span}},
	}
}
