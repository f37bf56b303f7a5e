package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns the next process-wide event sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a fresh span id; ids start at 1.
func NextSpanID() uint64 { return spanCounter.Add(1) }

// goroutineID parses the id out of the "goroutine N [...]" stack header.
// It is only used to give Chrome traces one lane per worker.
func goroutineID() uint64 {
	var buf [64]byte
	head := buf[:runtime.Stack(buf[:], false)]
	head = bytes.TrimPrefix(head, []byte("goroutine "))
	if i := bytes.IndexByte(head, ' '); i > 0 {
		if id, err := strconv.ParseUint(string(head[:i]), 10, 64); err == nil {
			return id
		}
	}
	return 0
}

// Span is an open begin event waiting for its end. A Span from a disabled
// tracer is inert, so callers never check before calling End.
type Span struct {
	tracer Tracer
	begin  Event
	extra  map[string]string
}

// Begin emits a begin event for name under parent (0 for a root span).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{}
	}
	s := &Span{tracer: t, begin: Event{
		Time:     time.Now(),
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   NextSpanID(),
		ParentID: parent,
		GID:      goroutineID(),
		Name:     name,
	}}
	ev := s.begin
	t.Emit(&ev)
	return s
}

func (s *Span) live() bool { return s != nil && s.tracer != nil }

// WithExtra attaches a key/value pair reported on the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = map[string]string{}
	}
	s.extra[key] = value
	return s
}

// End emits the end event and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	ev := s.begin
	ev.Time = time.Now()
	ev.Kind = KindSpanEnd
	ev.Detail = detail
	ev.Extra = s.extra
	s.tracer.Emit(&ev)
	return ev.Time.Sub(s.begin.Time)
}

// ID is 0 for inert spans.
func (s *Span) ID() uint64 {
	if !s.live() {
		return 0
	}
	return s.begin.SpanID
}

// Point emits an instant event, e.g. one per declared class.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		GID:      goroutineID(),
		Name:     name,
		Detail:   detail,
	})
}
