package diag

import "playscript/internal/source"

// Reporter получает диагностики от фаз. The lexer, parser, scope stack and
// resolvers only know this interface; the driver decides where they land.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// Send forwards d to r when r is set.
func Send(r Reporter, d Diagnostic) {
	if r != nil {
		r.Report(d)
	}
}

// BagReporter пишет в *Bag; a nil Bag swallows everything.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// DedupReporter drops a diagnostic whose code, severity, primary span and
// message were already reported. Parser recovery tends to hit the same
// token more than once; without this the repeats eat the bag limit.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

type dedupKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: map[dedupKey]struct{}{}}
}

func (r *DedupReporter) Report(d Diagnostic) {
	key := dedupKey{code: d.Code, sev: d.Severity, span: d.Primary, msg: d.Message}
	if _, dup := r.seen[key]; dup {
		return
	}
	r.seen[key] = struct{}{}
	Send(r.next, d)
}

// ReportBuilder collects notes and fixes for one diagnostic and emits it
// once:
//
//	diag.ReportError(rep, diag.SemaDuplicateClass, span, msg).
//		WithNote(prev, "previous declaration").
//		Emit()
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

func NewReportBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{reporter: r, diag: New(sev, code, primary, msg)}
}

func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, primary, msg)
}

func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, primary, msg)
}

func ReportInfo(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevInfo, code, primary, msg)
}

func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b != nil {
		b.diag = b.diag.WithNote(sp, msg)
	}
	return b
}

func (b *ReportBuilder) WithFix(title string, edits ...FixEdit) *ReportBuilder {
	if b != nil {
		b.diag = b.diag.WithFix(title, edits...)
	}
	return b
}

// Emit reports the diagnostic; later calls do nothing.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	b.emitted = true
	Send(b.reporter, b.diag)
}

// Diagnostic returns what Emit would report.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}
