package trace

import "context"

type (
	tracerKey struct{}
	spanKey   struct{}
)

// SpanContext carries the enclosing span id down the call chain so nested
// spans can name their parent.
type SpanContext struct {
	SpanID uint64
}

func lookup[T any](ctx context.Context, key any) (T, bool) {
	var zero T
	if ctx == nil {
		return zero, false
	}
	v, ok := ctx.Value(key).(T)
	return v, ok
}

// FromContext returns the tracer stored in ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if t, ok := lookup[Tracer](ctx, tracerKey{}); ok {
		return t
	}
	return Nop
}

// WithTracer stores t in ctx. A nil tracer is stored as Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// CurrentSpan returns the innermost span recorded in ctx.
func CurrentSpan(ctx context.Context) SpanContext {
	sc, _ := lookup[SpanContext](ctx, spanKey{})
	return sc
}

// WithSpanContext records sc as the innermost span.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	return context.WithValue(ctx, spanKey{}, sc)
}
