package trace

import (
	"strconv"
	"sync"
	"time"
)

// Heartbeat emits a tick every interval. Ticks that keep coming while no
// span ends point at a pass that does not terminate.
type Heartbeat struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartHeartbeat returns nil when t is disabled or interval is not positive;
// Stop on a nil Heartbeat is a no-op.
func StartHeartbeat(t Tracer, interval time.Duration) *Heartbeat {
	if t == nil || !t.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{stop: make(chan struct{}), done: make(chan struct{})}
	go h.loop(t, interval)
	return h
}

func (h *Heartbeat) loop(t Tracer, interval time.Duration) {
	defer close(h.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	started := time.Now()
	for n := 1; ; n++ {
		select {
		case <-h.stop:
			return
		case now := <-ticker.C:
			t.Emit(&Event{
				Time:   now,
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				Name:   "heartbeat",
				Detail: "#" + strconv.Itoa(n),
				Extra:  map[string]string{"uptime": now.Sub(started).Truncate(time.Millisecond).String()},
			})
		}
	}
}

// Stop ends the ticker goroutine and waits for it. Safe to call twice.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}
