package diagfmt

import (
	"bytes"
	"fmt"
	"strings"

	"playscript/internal/diag"
	"playscript/internal/source"
)

// fixEditPreview holds the whole lines touched by an edit, before and after.
type fixEditPreview struct {
	before []string
	after  []string
}

// buildFixEditPreview widens the edit span to full lines and renders those
// lines with and without the edit applied.
func buildFixEditPreview(fs *source.FileSet, edit diag.FixEdit) (fixEditPreview, error) {
	if fs == nil {
		return fixEditPreview{}, fmt.Errorf("nil FileSet")
	}
	file := fs.Get(edit.Span.File)
	if file == nil {
		return fixEditPreview{}, fmt.Errorf("file %d not found in FileSet", edit.Span.File)
	}
	content := file.Content
	start, end := int(edit.Span.Start), int(edit.Span.End)
	if start > end || end > len(content) {
		return fixEditPreview{}, fmt.Errorf("edit span %s out of range for %s", edit.Span, file.Path)
	}

	lineStart := bytes.LastIndexByte(content[:start], '\n') + 1
	lineEnd := len(content)
	if i := bytes.IndexByte(content[end:], '\n'); i >= 0 {
		lineEnd = end + i
	}

	block := string(content[lineStart:lineEnd])
	rel := start - lineStart
	patched := block[:rel] + edit.NewText + block[end-lineStart:]
	return fixEditPreview{before: previewLines(block), after: previewLines(patched)}, nil
}

func previewLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
