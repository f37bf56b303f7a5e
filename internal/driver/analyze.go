package driver

import (
	"context"
	"fmt"

	"fortio.org/safecast"
	"github.com/google/uuid"

	"playscript/internal/ast"
	"playscript/internal/diag"
	"playscript/internal/lexer"
	"playscript/internal/observ"
	"playscript/internal/parser"
	"playscript/internal/project"
	"playscript/internal/sema"
	"playscript/internal/source"
	"playscript/internal/token"
	"playscript/internal/trace"
)

// Result is the outcome of analysing one compilation unit. Tokens, Tree and
// Sema are filled up to the requested stage; a cached result carries only
// the bag.
type Result struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Tree    *ast.Tree
	Sema    *sema.Context
	Bag     *diag.Bag
	Timing  observ.Report
	RunID   string
	Cached  bool
}

// Analyze loads path and runs the pipeline on it.
func Analyze(ctx context.Context, path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return runFile(ctx, fs, fs.Get(fileID), &opts)
}

// AnalyzeSource runs the pipeline on in-memory content registered as name.
func AnalyzeSource(ctx context.Context, name string, content []byte, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	return runFile(ctx, fs, fs.Get(fs.AddVirtual(name, content)), &opts)
}

func runFile(ctx context.Context, fs *source.FileSet, file *source.File, opts *Options) (*Result, error) {
	runID := uuid.NewString()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "analyze", trace.CurrentSpan(ctx).SpanID).
		WithExtra("run", runID)
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	res, err := analyzeFile(ctx, fs, file, opts)
	if err != nil {
		span.End(err.Error())
		return nil, err
	}
	res.RunID = runID
	span.End(fmt.Sprintf("diagnostics=%d", res.Bag.Len()))
	return res, nil
}

// analyzeFile is shared by Analyze and the AnalyzeDir workers; it must not
// touch fs beyond reading file.
func analyzeFile(ctx context.Context, fs *source.FileSet, file *source.File, opts *Options) (*Result, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "file", trace.CurrentSpan(ctx).SpanID).
		WithExtra("path", file.Path)
	defer span.End("")

	res := &Result{FileSet: fs, File: file}

	var key project.Digest
	if opts.Cache != nil {
		key = project.Combine(project.Digest(file.Hash), project.DigestOf(opts.cacheKey()))
		var payload DiskPayload
		if ok, err := opts.Cache.Get(key, &payload); err == nil && ok && payload.Schema == diskCacheSchemaVersion {
			res.Bag = payload.restore(file.ID, opts.MaxDiagnostics)
			res.Cached = true
			span.WithExtra("cache", "hit")
			return res, nil
		}
	}

	ph := newPhases(opts, file.Path)
	bag := diag.NewBag(opts.MaxDiagnostics)
	// повторные сообщения парсера на одном месте не должны съедать лимит
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	stage := opts.stage()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	idx := ph.begin("tokenize")
	res.Tokens = lexer.Tokenize(file, lexer.Options{Reporter: rep})
	ph.end(idx, fmt.Sprintf("tokens=%d", len(res.Tokens)))

	if stage != StageTokenize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		maxErrors, err := safecast.Conv[uint](max(opts.MaxDiagnostics, 0))
		if err != nil {
			return nil, fmt.Errorf("max diagnostics: %w", err)
		}
		idx = ph.begin("parse")
		parsed := parser.ParseTokens(file.ID, res.Tokens, nil, parser.Options{Reporter: rep, MaxErrors: maxErrors})
		res.Tree = parsed.Tree
		ph.end(idx, fmt.Sprintf("nodes=%d", res.Tree.Len()))
	}

	if stage == StageScopes || stage == StageAll {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c := sema.NewContext(res.Tree, sema.Options{Reporter: rep, Tracer: tracer, TraceParent: span.ID()})
		idx = ph.begin("scopes")
		sema.BuildScopes(c)
		ph.end(idx, fmt.Sprintf("scopes=%d", c.Table.Scopes.Len()))

		if stage == StageAll {
			idx = ph.begin("types")
			sema.ResolveTypes(c, opts.Mode)
			ph.end(idx, fmt.Sprintf("mode=%s types=%d", opts.Mode, len(c.AllTypes())))
			if opts.CheckCycles {
				idx = ph.begin("cycles")
				n := sema.CheckInheritanceCycles(c)
				ph.end(idx, fmt.Sprintf("cycles=%d", n))
			}
		}
		if opts.Validate {
			idx = ph.begin("validate")
			if err := c.Validate(); err != nil {
				diag.ReportError(rep, diag.SemaTableInvariant, source.Span{File: file.ID}, err.Error()).Emit()
			}
			ph.end(idx, "")
		}
		res.Sema = c
	}

	finishBag(bag, opts)
	res.Bag = bag
	res.Timing = ph.report()

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, newDiskPayload(file, bag)); err != nil {
			span.WithExtra("cache_error", err.Error())
		}
	}
	return res, nil
}

// finishBag применяет фильтры предупреждений и приводит порядок к детерминированному.
func finishBag(bag *diag.Bag, opts *Options) {
	if opts.IgnoreWarnings {
		bag.Filter(func(d diag.Diagnostic) bool {
			return d.Severity == diag.SevError
		})
	}
	if opts.WarningsAsErrors {
		bag.Transform(func(d diag.Diagnostic) diag.Diagnostic {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
			return d
		})
	}
	bag.Dedup()
	bag.Sort()
}
