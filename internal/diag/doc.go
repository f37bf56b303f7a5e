// Package diag defines the diagnostic model shared by all pipeline phases.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string form (LEX1001, SYN2001, SEM3001, ...), a short Message, the primary
// source.Span and optional Notes/Fixes.
//
// Phases emit through a Reporter and never see where diagnostics end up.
// ReportBuilder chains notes and fixes before Emit. BagReporter collects
// into a bounded Bag; DedupReporter in front of it drops exact repeats.
//
// Package diag does no rendering or IO; see internal/diagfmt for output
// formats and internal/driver for collection per file.
package diag
