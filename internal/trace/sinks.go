package trace

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

// levelGate is embedded by every sink to answer Level and Enabled.
type levelGate struct{ level Level }

func (g levelGate) Level() Level  { return g.level }
func (g levelGate) Enabled() bool { return g.level > LevelOff }

func (g levelGate) accepts(ev *Event) bool {
	return ev.Kind == KindHeartbeat || g.level.ShouldEmit(ev.Scope)
}

type nopTracer struct{ levelGate }

func (nopTracer) Emit(*Event)  {}
func (nopTracer) Flush() error { return nil }
func (nopTracer) Close() error { return nil }

// Nop discards everything. It is what FromContext returns when no tracer
// was attached.
var Nop Tracer = nopTracer{}

// StreamTracer encodes each accepted event straight to a writer.
type StreamTracer struct {
	levelGate
	mu     sync.Mutex
	out    *bufio.Writer
	closer io.Closer
	format Format
	sep    string
}

// NewStreamTracer wraps w. For FormatChrome the array header is written
// immediately and the footer on Close.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	st := &StreamTracer{levelGate: levelGate{level}, out: bufio.NewWriter(w), format: format}
	if c, ok := w.(io.Closer); ok {
		st.closer = c
	}
	if format == FormatChrome {
		st.out.WriteString("{\"traceEvents\":[\n") //nolint:errcheck
	}
	return st
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.accepts(ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	ev.Seq = NextSeq()
	// ошибки записи трассы никогда не роняют анализ
	if t.format == FormatChrome {
		t.out.WriteString(t.sep) //nolint:errcheck
		t.sep = ",\n"
	}
	t.out.Write(FormatEvent(ev, t.format)) //nolint:errcheck
	if ev.Kind == KindHeartbeat {
		// heartbeats must reach the file while a pass is stuck
		t.out.Flush() //nolint:errcheck
	}
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.out.Flush()
}

// Close writes the Chrome footer if needed, flushes, and closes the
// underlying writer when it is a file. Stderr is never closed.
func (t *StreamTracer) Close() error {
	t.mu.Lock()
	if t.format == FormatChrome {
		t.out.WriteString("\n]}\n") //nolint:errcheck
	}
	err := t.out.Flush()
	t.mu.Unlock()
	if t.closer != nil && !isStdStream(t.closer) {
		err = errors.Join(err, t.closer.Close())
	}
	return err
}

// RingTracer remembers the most recent events in a fixed buffer.
type RingTracer struct {
	levelGate
	mu    sync.Mutex
	buf   []Event
	start int // index of the oldest event
	count int
}

// NewRingTracer keeps up to capacity events; non-positive means 4096.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{levelGate: levelGate{level}, buf: make([]Event, capacity)}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.accepts(ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	stored := *ev
	stored.Seq = NextSeq()
	if t.count < len(t.buf) {
		t.buf[(t.start+t.count)%len(t.buf)] = stored
		t.count++
		return
	}
	// full: overwrite the oldest slot
	t.buf[t.start] = stored
	t.start = (t.start + 1) % len(t.buf)
}

// Snapshot copies the buffered events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, t.count)
	for i := range out {
		out[i] = t.buf[(t.start+i)%len(t.buf)]
	}
	return out
}

// Dump writes the buffered events to w in format.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }
func (t *RingTracer) Close() error { return nil }

// MultiTracer fans every event out to several sinks.
type MultiTracer struct {
	levelGate
	sinks []Tracer
}

func NewMultiTracer(level Level, sinks ...Tracer) *MultiTracer {
	return &MultiTracer{levelGate: levelGate{level}, sinks: sinks}
}

func (t *MultiTracer) Emit(ev *Event) {
	for _, s := range t.sinks {
		// each sink stamps Seq itself, so give it a private copy
		cp := *ev
		s.Emit(&cp)
	}
}

func (t *MultiTracer) Flush() error {
	var errs []error
	for _, s := range t.sinks {
		errs = append(errs, s.Flush())
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Close() error {
	var errs []error
	for _, s := range t.sinks {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}
