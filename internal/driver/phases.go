package driver

import (
	"time"

	"playscript/internal/observ"
)

// PhaseStatus tells a phase start from its end.
type PhaseStatus int

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

func (s PhaseStatus) String() string {
	if s == PhaseStart {
		return "start"
	}
	return "end"
}

// PhaseEvent is sent to a PhaseObserver around each pipeline pass
// (tokenize, parse, scopes, types, cycles, validate). Elapsed is set on
// PhaseEnd only.
type PhaseEvent struct {
	Path    string
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver is called synchronously by the pipeline. AnalyzeDir calls it
// from several workers at once.
type PhaseObserver func(PhaseEvent)

// phases times the passes of one file. With timings off and no observer it
// does nothing.
type phases struct {
	timer    *observ.Timer
	observer PhaseObserver
	path     string
	names    []string
}

func newPhases(opts *Options, path string) *phases {
	p := &phases{observer: opts.Observer, path: path}
	if opts.EnableTimings || opts.Observer != nil {
		p.timer = observ.NewTimer()
	}
	return p
}

func (p *phases) notify(ev PhaseEvent) {
	if p.observer != nil {
		ev.Path = p.path
		p.observer(ev)
	}
}

// begin returns the handle end expects, -1 when disabled.
func (p *phases) begin(name string) int {
	if p.timer == nil {
		return -1
	}
	p.notify(PhaseEvent{Name: name, Status: PhaseStart})
	p.names = append(p.names, name)
	return p.timer.Begin(name)
}

func (p *phases) end(idx int, note string) {
	if p.timer == nil || idx < 0 {
		return
	}
	elapsed := p.timer.End(idx, note)
	p.notify(PhaseEvent{Name: p.names[idx], Status: PhaseEnd, Elapsed: elapsed})
}

func (p *phases) report() observ.Report {
	if p.timer == nil {
		return observ.Report{}
	}
	return p.timer.Report()
}
