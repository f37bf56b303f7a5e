// Package trace records what the analyzer pipeline is doing: command-level
// driver spans, one span per pass, per-file spans in directory runs and
// instant events for each class and function the scope pass declares.
//
// Tracing is off unless --trace names an output:
//
//	playc diag --trace=- --trace-level=detail src/
//	playc diag --trace=run.json src/   # chrome://tracing
//
// The level bounds the finest scope that is recorded: phase keeps driver
// and pass spans, detail adds files, debug adds declarations. Sinks are a
// StreamTracer (text, NDJSON or Chrome JSON), a RingTracer holding the last
// events in memory, or both behind a MultiTracer.
//
// The tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "types", parent)
//	defer span.End("")
package trace
