package driver

import (
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"playscript/internal/diag"
	"playscript/internal/project"
	"playscript/internal/source"
)

// bump whenever DiskPayload or its parts change shape
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores per-file diagnostics keyed by content hash plus the
// options that influence them. Safe for use by the AnalyzeDir workers.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is what one file leaves in the cache. Offsets are kept
// without a FileID and rebound on restore.
type DiskPayload struct {
	Schema      uint16
	Path        string
	ContentHash project.Digest
	Diagnostics []CachedDiagnostic
}

type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []CachedNote
	Fixes    []CachedFix
}

type CachedNote struct {
	Start, End uint32
	Msg        string
}

type CachedFix struct {
	Title string
	Edits []CachedEdit
}

type CachedEdit struct {
	Start, End uint32
	NewText    string
}

// OpenDiskCache opens app under the user cache directory
// ($XDG_CACHE_HOME or ~/.cache on Linux).
func OpenDiskCache(app string) (*DiskCache, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir is "" for a nil cache.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// entry shards by the first key byte: files/ab/abcd....mp
func (c *DiskCache) entry(key project.Digest) string {
	name := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "files", name[:2], name+".mp")
}

// Put replaces the entry for key. Readers see either the old or the new
// file, never a partial one.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil || payload == nil {
		return nil
	}
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return replaceFile(c.entry(key), data)
}

func replaceFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	_, err = tmp.Write(data)
	err = errors.Join(err, tmp.Close())
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
	}
	return err
}

// Get reports false without an error when key has no entry.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	data, err := os.ReadFile(c.entry(key))
	c.mu.RUnlock()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll removes the whole cache directory.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// сначала переименовываем: другой процесс не должен увидеть полуудалённый каталог
	graveyard := c.dir + ".old-" + strconv.FormatInt(time.Now().UnixNano(), 36)
	if err := os.Rename(c.dir, graveyard); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(graveyard)
}

func newDiskPayload(file *source.File, bag *diag.Bag) *DiskPayload {
	items := bag.Items()
	p := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        file.Path,
		ContentHash: project.Digest(file.Hash),
		Diagnostics: make([]CachedDiagnostic, len(items)),
	}
	for i, d := range items {
		cd := &p.Diagnostics[i]
		cd.Severity, cd.Code, cd.Message = uint8(d.Severity), uint16(d.Code), d.Message
		cd.Start, cd.End = d.Primary.Start, d.Primary.End
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{n.Span.Start, n.Span.End, n.Msg})
		}
		for _, fx := range d.Fixes {
			cf := CachedFix{Title: fx.Title, Edits: make([]CachedEdit, len(fx.Edits))}
			for j, e := range fx.Edits {
				cf.Edits[j] = CachedEdit{e.Span.Start, e.Span.End, e.NewText}
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
	}
	return p
}

// restore rebuilds the bag with every span bound to file.
func (p *DiskPayload) restore(file source.FileID, maxDiagnostics int) *diag.Bag {
	at := func(start, end uint32) source.Span { return source.Span{File: file, Start: start, End: end} }
	bag := diag.NewBag(maxDiagnostics)
	for _, cd := range p.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), at(cd.Start, cd.End), cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(at(n.Start, n.End), n.Msg)
		}
		for _, fx := range cd.Fixes {
			edits := make([]diag.FixEdit, len(fx.Edits))
			for j, e := range fx.Edits {
				edits[j] = diag.FixEdit{Span: at(e.Start, e.End), NewText: e.NewText}
			}
			d = d.WithFix(fx.Title, edits...)
		}
		bag.Add(d)
	}
	return bag
}
