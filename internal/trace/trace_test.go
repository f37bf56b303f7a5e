package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestRingTracerKeepsLastEvents(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"lex", "parse", "scopes"} {
		Begin(ring, ScopePass, name, 0).End("")
	}
	events := ring.Snapshot()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[1].Name != "scopes" || events[1].Kind != KindSpanEnd {
		t.Fatalf("unexpected last event %+v", events[1])
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	ring := NewRingTracer(16, LevelPhase)
	Begin(ring, ScopeFile, "file:a.play", 0).End("")
	Point(ring, ScopeDecl, "class", "A", 0)
	Begin(ring, ScopePass, "types", 0).WithExtra("mode", "fields").End("")
	events := ring.Snapshot()
	if len(events) != 2 {
		t.Fatalf("phase level must only keep pass events, got %d", len(events))
	}
	if events[1].Extra["mode"] != "fields" {
		t.Fatalf("extra lost: %+v", events[1])
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelPhase, FormatText)
	ctx := WithTracer(context.Background(), st)
	span := Begin(FromContext(ctx), ScopeDriver, "diag", 0)
	span.End("ok")
	if err := st.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "→ diag") || !strings.Contains(out, "← diag (ok)") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestFromContextDefaultsToNop(t *testing.T) {
	if FromContext(context.Background()).Enabled() {
		t.Fatalf("expected nop tracer")
	}
	tr, err := FromSettings(Settings{Level: "debug"})
	if err != nil || tr.Enabled() {
		t.Fatalf("empty output must disable tracing")
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected level error")
	}
}

func TestMultiTracerFeedsEverySink(t *testing.T) {
	a := NewRingTracer(8, LevelDebug)
	b := NewRingTracer(8, LevelPhase)
	multi := NewMultiTracer(LevelDebug, a, b)
	Point(multi, ScopeDecl, "class", "A", 0)
	Begin(multi, ScopePass, "scopes", 0).End("")
	if got := len(a.Snapshot()); got != 3 {
		t.Fatalf("debug sink: expected 3 events, got %d", got)
	}
	if got := len(b.Snapshot()); got != 2 {
		t.Fatalf("phase sink: expected 2 events, got %d", got)
	}
	if err := multi.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestChromeStreamIsClosedArray(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelPhase, FormatChrome)
	Begin(st, ScopePass, "parse", 0).End("")
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "{\"traceEvents\":[") || !strings.HasSuffix(out, "]}\n") {
		t.Fatalf("not a chrome trace: %q", out)
	}
	if strings.Count(out, ",\n") != 1 {
		t.Fatalf("expected one separator between two events: %q", out)
	}
}

func TestHeartbeatStopIsIdempotent(t *testing.T) {
	ring := NewRingTracer(8, LevelPhase)
	hb := StartHeartbeat(ring, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	hb.Stop()
	hb.Stop()
	if len(ring.Snapshot()) == 0 {
		t.Fatalf("expected at least one heartbeat")
	}
	var none *Heartbeat
	none.Stop()
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatalf("disabled tracer must not start a heartbeat")
	}
}
