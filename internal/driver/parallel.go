package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"playscript/internal/diag"
	"playscript/internal/observ"
	"playscript/internal/source"
	"playscript/internal/trace"
)

// SourceExt is the extension of PlayScript compilation units.
const SourceExt = ".play"

// DirResult содержит результаты анализа всех файлов директории в порядке путей.
type DirResult struct {
	FileSet *source.FileSet
	Files   []*Result
	// Bag merges every file's diagnostics, bounded by MaxDiagnostics.
	Bag    *diag.Bag
	Timing observ.Report
	RunID  string
}

// Cached reports how many files were served from the disk cache.
func (r *DirResult) Cached() int {
	n := 0
	for _, f := range r.Files {
		if f.Cached {
			n++
		}
	}
	return n
}

// ListSourceFiles возвращает отсортированный список всех *.play файлов в
// директории. Hidden directories are skipped.
func ListSourceFiles(ctx context.Context, dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == SourceExt {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// AnalyzeDir анализирует все *.play файлы в директории параллельно. Each file
// is an independent compilation unit with its own context; results keep path
// order whatever the scheduling.
func AnalyzeDir(ctx context.Context, dir string, opts Options) (*DirResult, error) {
	files, err := ListSourceFiles(ctx, dir)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "analyze_dir", trace.CurrentSpan(ctx).SpanID).
		WithExtra("run", runID).
		WithExtra("files", fmt.Sprint(len(files)))
	defer span.End("")
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	// FileSet не потокобезопасен: загружаем всё заранее
	fileSet := source.NewFileSetWithBase(dir)
	ids := make([]source.FileID, len(files))
	for i, path := range files {
		id, loadErr := fileSet.Load(path)
		if loadErr != nil {
			return nil, fmt.Errorf("load %s: %w", path, loadErr)
		}
		ids[i] = id
	}

	out := &DirResult{
		FileSet: fileSet,
		Files:   make([]*Result, len(files)),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
		RunID:   runID,
	}
	if len(files) == 0 {
		return out, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range files {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			// индекс i уникален для горутины, мьютекс не нужен
			res, err := analyzeFile(gctx, fileSet, fileSet.Get(ids[i]), &opts)
			if err != nil {
				return err
			}
			res.RunID = runID
			out.Files[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, res := range out.Files {
		for _, d := range res.Bag.Items() {
			out.Bag.Add(d)
		}
		out.Timing = out.Timing.Merge(res.Timing)
	}
	span.WithExtra("diagnostics", fmt.Sprint(out.Bag.Len()))
	return out, nil
}
