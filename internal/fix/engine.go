package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"playscript/internal/diag"
	"playscript/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	// ApplyModeOnce applies the first fix in source order.
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// DryRun computes the new contents without writing files.
	DryRun bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID          string
	Title       string
	Code        diag.Code
	Message     string
	PrimaryPath string
	EditCount   int
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises modifications performed on a file.
type FileChange struct {
	Path      string
	EditCount int
	Content   []byte
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	id    string
	order int
}

// ID returns the stable identifier of the idx-th fix of d, as accepted by
// ApplyModeID.
func ID(d diag.Diagnostic, idx int) string {
	return fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx)
}

// Apply gathers the fixes attached to diagnostics, picks the ones opts asks
// for and applies them in source order. A fix whose edits collide with an
// already accepted fix is skipped, not merged. ErrNoFixes is returned when
// nothing was applied.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates, buildSkips := gatherCandidates(diagnostics)
	result.Skipped = append(result.Skipped, buildSkips...)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}

	sortCandidates(candidates)

	selected, selectionSkips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, selectionSkips...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	applied, skipped, changes, err := applyCandidates(fs, selected, opts.DryRun)
	result.Applied = applied
	result.Skipped = append(result.Skipped, skipped...)
	result.FileChanges = changes
	if err != nil {
		return result, err
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

// gatherCandidates turns every fix with edits into a candidate. Fixes
// without edits and repeated ids are skipped; order keeps insertion order
// for the stable sort.
func gatherCandidates(diagnostics []diag.Diagnostic) ([]candidate, []SkippedFix) {
	var (
		cands []candidate
		skips []SkippedFix
	)
	seen := make(map[string]struct{})
	order := 0
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			id := ID(d, idx)
			if len(f.Edits) == 0 {
				skips = append(skips, SkippedFix{ID: id, Title: f.Title, Reason: "fix has no edits"})
				continue
			}
			if _, dup := seen[id]; dup {
				skips = append(skips, SkippedFix{ID: id, Title: f.Title, Reason: "duplicate fix id"})
				continue
			}
			seen[id] = struct{}{}
			cands = append(cands, candidate{diag: d, fix: f, id: id, order: order})
			order++
		}
	}
	return cands, skips
}

// sortCandidates puts candidates in source order of their diagnostics;
// ties keep the order the diagnostics were reported in.
func sortCandidates(candidates []candidate) {
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		pa, pb := a.diag.Primary, b.diag.Primary
		switch {
		case pa.File != pb.File:
			return pa.File < pb.File
		case pa.Start != pb.Start:
			return pa.Start < pb.Start
		case pa.End != pb.End:
			return pa.End < pb.End
		}
		return a.order < b.order
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.id == opts.TargetID {
				return []candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{ID: opts.TargetID, Reason: "fix id not found"}}
	case ApplyModeAll:
		return candidates, nil
	case ApplyModeOnce:
		return candidates[:1], nil
	default:
		return nil, nil
	}
}

// pendingFile collects the edits accepted for one file. Edits are kept
// sorted by position and never overlap, so the new content is rendered in a
// single pass over the original.
type pendingFile struct {
	file  *source.File
	edits []diag.FixEdit
}

// check returns why edits cannot join p, or "" when they can.
func (p *pendingFile) check(edits []diag.FixEdit) string {
	size := len(p.file.Content)
	for i, e := range edits {
		if e.Span.Start > e.Span.End || int(e.Span.End) > size {
			return "edit span out of range"
		}
		for _, other := range edits[:i] {
			if spansConflict(e, other) {
				return "fix edits overlap each other"
			}
		}
		for _, prev := range p.edits {
			if spansConflict(e, prev) {
				return "conflicts with a previously applied fix"
			}
		}
	}
	return ""
}

func (p *pendingFile) add(edits []diag.FixEdit) {
	p.edits = append(p.edits, edits...)
	// insertions sort before a replacement starting at the same offset
	sort.SliceStable(p.edits, func(i, j int) bool {
		a, b := p.edits[i].Span, p.edits[j].Span
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})
}

func (p *pendingFile) render() []byte {
	src := p.file.Content
	var out []byte
	cur := uint32(0)
	for _, e := range p.edits {
		out = append(out, src[cur:e.Span.Start]...)
		out = append(out, e.NewText...)
		cur = e.Span.End
	}
	return append(out, src[cur:]...)
}

func applyCandidates(fs *source.FileSet, selected []candidate, dryRun bool) ([]AppliedFix, []SkippedFix, []FileChange, error) {
	var (
		applied []AppliedFix
		skipped []SkippedFix
	)
	pending := make(map[source.FileID]*pendingFile)

	for _, cand := range selected {
		byFile := groupEditsByFile(cand.fix.Edits)
		reason := ""
		for _, id := range sortedFileIDs(byFile) {
			if reason = admissible(fs, pending, id, byFile[id], dryRun); reason != "" {
				break
			}
		}
		if reason != "" {
			skipped = append(skipped, SkippedFix{ID: cand.id, Title: cand.fix.Title, Reason: reason})
			continue
		}
		for id, edits := range byFile {
			if pending[id] == nil {
				pending[id] = &pendingFile{file: fs.Get(id)}
			}
			pending[id].add(edits)
		}
		applied = append(applied, AppliedFix{
			ID:          cand.id,
			Title:       cand.fix.Title,
			Code:        cand.diag.Code,
			Message:     cand.diag.Message,
			PrimaryPath: formatFilePath(fs, cand.diag.Primary.File),
			EditCount:   len(cand.fix.Edits),
		})
	}

	changes := make([]FileChange, 0, len(pending))
	for _, id := range sortedFileIDs(pending) {
		p := pending[id]
		content := p.render()
		if !dryRun {
			if err := writePreservingMode(p.file.Path, content); err != nil {
				return applied, skipped, changes, err
			}
		}
		changes = append(changes, FileChange{
			Path:      p.file.FormatPath("relative", fs.BaseDir()),
			EditCount: len(p.edits),
			Content:   content,
		})
	}
	sort.SliceStable(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	return applied, skipped, changes, nil
}

// admissible checks one file's share of a fix against what is already
// pending for that file.
func admissible(fs *source.FileSet, pending map[source.FileID]*pendingFile, id source.FileID, edits []diag.FixEdit, dryRun bool) string {
	file := fs.Get(id)
	switch {
	case file == nil:
		return "unknown file"
	case file.Flags&source.FileVirtual != 0 && !dryRun:
		return "target file is virtual"
	}
	p := pending[id]
	if p == nil {
		p = &pendingFile{file: file}
	}
	return p.check(edits)
}

func writePreservingMode(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, content, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func sortedFileIDs[V any](m map[source.FileID]V) []source.FileID {
	ids := make([]source.FileID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// spansConflict reports whether two edits touch the same bytes. Two
// insertions never conflict; an insertion conflicts only with a span that
// strictly contains its offset.
func spansConflict(a, b diag.FixEdit) bool {
	as, ae, bs, be := a.Span.Start, a.Span.End, b.Span.Start, b.Span.End
	switch {
	case as == ae && bs == be:
		return false
	case as == ae:
		return bs < as && as < be
	case bs == be:
		return as < bs && bs < ae
	}
	return as < be && bs < ae
}

func groupEditsByFile(edits []diag.FixEdit) map[source.FileID][]diag.FixEdit {
	byFile := make(map[source.FileID][]diag.FixEdit)
	for _, e := range edits {
		byFile[e.Span.File] = append(byFile[e.Span.File], e)
	}
	return byFile
}

func formatFilePath(fs *source.FileSet, id source.FileID) string {
	if f := fs.Get(id); f != nil {
		return f.FormatPath("auto", fs.BaseDir())
	}
	return ""
}
