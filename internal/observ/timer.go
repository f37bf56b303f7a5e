package observ

import (
	"fmt"
	"strings"
	"time"
)

// Timer measures the passes of one analysis run. It is not safe for
// concurrent use; AnalyzeDir gives every file its own Timer and merges the
// reports afterwards.
type Timer struct {
	phases []phase
}

type phase struct {
	name    string
	started time.Time
	took    time.Duration
	note    string
}

func NewTimer() *Timer { return &Timer{phases: make([]phase, 0, 8)} }

// Begin opens a phase and returns the handle End takes.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, phase{name: name, started: time.Now()})
	return len(t.phases) - 1
}

// End closes phase idx with a short note such as "nodes=42".
func (t *Timer) End(idx int, note string) time.Duration {
	if idx < 0 || idx >= len(t.phases) {
		return 0
	}
	p := &t.phases[idx]
	p.took, p.note = time.Since(p.started), note
	return p.took
}

func (t *Timer) Summary() string { return t.Report().Summary() }

// PhaseReport: одна строка таблицы таймингов. Count > 1 after Merge.
type PhaseReport struct {
	Name       string  `json:"name" msgpack:"name"`
	DurationMS float64 `json:"duration_ms" msgpack:"duration_ms"`
	Note       string  `json:"note,omitempty" msgpack:"note,omitempty"`
	Count      int     `json:"count,omitempty" msgpack:"count,omitempty"`
}

// Report is the serialisable form of a Timer.
type Report struct {
	TotalMS float64       `json:"total_ms" msgpack:"total_ms"`
	Phases  []PhaseReport `json:"phases" msgpack:"phases"`
}

// Report snapshots the phases in the order they began. An unfinished phase
// reports zero.
func (t *Timer) Report() Report {
	var r Report
	if t == nil {
		return r
	}
	for _, p := range t.phases {
		ms := millis(p.took)
		r.TotalMS += ms
		r.Phases = append(r.Phases, PhaseReport{Name: p.name, DurationMS: ms, Note: p.note, Count: 1})
	}
	return r
}

// Merge folds other into r: phases with the same name are summed, new names
// are appended in first-seen order. Notes are dropped for summed phases.
func (r Report) Merge(other Report) Report {
	out := Report{
		TotalMS: r.TotalMS + other.TotalMS,
		Phases:  append([]PhaseReport(nil), r.Phases...),
	}
	index := make(map[string]int, len(out.Phases))
	for i, p := range out.Phases {
		index[p.Name] = i
	}
	for _, p := range other.Phases {
		if i, ok := index[p.Name]; ok {
			out.Phases[i].DurationMS += p.DurationMS
			out.Phases[i].Count += max(p.Count, 1)
			out.Phases[i].Note = ""
			continue
		}
		index[p.Name] = len(out.Phases)
		out.Phases = append(out.Phases, p)
	}
	return out
}

// Summary renders the report as an aligned table.
func (r Report) Summary() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Count > 1 {
			fmt.Fprintf(&b, "  x%d", p.Count)
		}
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "  %-20s %7.2f ms\n", "total", r.TotalMS)
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
