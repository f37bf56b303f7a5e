package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"playscript/internal/diag"
	"playscript/internal/source"
)

type palette struct {
	err, warn, info, code, path, gutter, caret, note, fix *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		path:   color.New(color.FgBlue),
		gutter: color.New(color.FgBlue, color.Bold),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgGreen),
		fix:    color.New(color.FgMagenta),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note, p.fix} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty prints diagnostics in a human readable form:
//
//	ERROR SEM3001: duplicate class name "A"
//	  --> main.play:3:7
//	   |
//	 3 | class A {}
//	   |       ^
//	   = note: previous declaration at 1:7
//
// Write errors are ignored, as with the other text writers.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	items := bag.Items()
	for i := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &items[i], fs, opts, p)
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "\n... %d more diagnostics not shown\n", dropped)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	sevColor := p.severity(d.Severity)
	fmt.Fprintf(w, "%s %s: %s\n", sevColor.Sprint(d.Severity.String()), p.code.Sprint(d.Code.ID()), d.Message)

	f := fs.Get(d.Primary.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(d.Primary)
	gutterWidth := len(strconv.FormatUint(uint64(end.Line)+uint64(max(opts.Context, 0)), 10))
	pad := strings.Repeat(" ", gutterWidth)

	fmt.Fprintf(w, "%s%s %s:%d:%d\n", pad, p.gutter.Sprint("-->"), p.path.Sprint(formatPath(f, fs, opts.PathMode)), start.Line, start.Col)
	fmt.Fprintf(w, "%s %s\n", pad, p.gutter.Sprint("|"))

	total := uint32(len(f.LineIdx)) //nolint:gosec // line count fits in uint32 alongside offsets
	if len(f.Content) > 0 && f.Content[len(f.Content)-1] != '\n' {
		total++
	}
	total = max(total, start.Line)
	first := start.Line
	last := start.Line
	if opts.Context > 0 {
		ctx := uint32(opts.Context) //nolint:gosec // positive int8
		first = max(first, ctx+1) - ctx
		last = min(last+ctx, total)
	}
	for line := first; line <= last; line++ {
		text := f.GetLine(line)
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%s %s %s\n", p.gutter.Sprintf("%*d", gutterWidth, line), p.gutter.Sprint("|"), text)
		if line == start.Line {
			fmt.Fprintf(w, "%s %s %s\n", pad, p.gutter.Sprint("|"), p.caret.Sprint(caretLine(text, start, end)))
		}
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			ns, _ := fs.Resolve(n.Span)
			loc := fmt.Sprintf("%d:%d", ns.Line, ns.Col)
			if n.Span.File != d.Primary.File {
				loc = formatPath(fs.Get(n.Span.File), fs, opts.PathMode) + ":" + loc
			}
			fmt.Fprintf(w, "%s %s %s: %s at %s\n", pad, p.gutter.Sprint("="), p.note.Sprint("note"), n.Msg, loc)
		}
	}
	if opts.ShowFixes {
		for _, fx := range d.Fixes {
			fmt.Fprintf(w, "%s %s %s: %s\n", pad, p.gutter.Sprint("="), p.fix.Sprint("fix"), fx.Title)
			if !opts.ShowPreview {
				continue
			}
			for _, edit := range fx.Edits {
				preview, err := buildFixEditPreview(fs, edit)
				if err != nil {
					continue
				}
				for _, l := range preview.before {
					fmt.Fprintf(w, "%s %s - %s\n", pad, p.gutter.Sprint("|"), l)
				}
				for _, l := range preview.after {
					fmt.Fprintf(w, "%s %s + %s\n", pad, p.gutter.Sprint("|"), l)
				}
			}
		}
	}
}

// caretLine underlines the span on its first line. Widths are measured in
// terminal cells so wide runes line up; tabs are copied through.
func caretLine(text string, start, end source.LineCol) string {
	col := int(start.Col) - 1
	col = min(max(col, 0), len(text))
	var b strings.Builder
	for _, r := range text[:col] {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	stop := len(text)
	if end.Line == start.Line {
		stop = min(max(int(end.Col)-1, col), len(text))
	}
	width := max(runewidth.StringWidth(text[col:stop]), 1)
	b.WriteString(strings.Repeat("^", width))
	return b.String()
}
