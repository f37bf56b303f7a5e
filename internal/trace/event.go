package trace

import (
	"fmt"
	"strings"
	"time"
)

// Kind tells span boundaries apart from instant events.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event. Smaller values are coarser.
type Scope uint8

const (
	// ScopeDriver covers a whole command: one file or one directory run.
	ScopeDriver Scope = iota + 1
	// ScopePass covers one pipeline pass (tokenize, parse, scopes, types).
	ScopePass
	// ScopeFile covers the processing of one compilation unit.
	ScopeFile
	// ScopeDecl marks single class and function declarations.
	ScopeDecl
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopePass:   "pass",
	ScopeFile:   "file",
	ScopeDecl:   "decl",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Level selects how much of the pipeline is traced.
type Level uint8

const (
	LevelOff Level = iota
	LevelError
	LevelPhase
	LevelDetail
	LevelDebug
)

// levelInfo pairs each level with the finest scope it lets through.
var levelInfo = [...]struct {
	name   string
	finest Scope
}{
	LevelOff:    {"off", 0},
	LevelError:  {"error", 0},
	LevelPhase:  {"phase", ScopePass},
	LevelDetail: {"detail", ScopeFile},
	LevelDebug:  {"debug", ScopeDecl},
}

func (l Level) String() string {
	if int(l) < len(levelInfo) {
		return levelInfo[l].name
	}
	return "unknown"
}

// ParseLevel accepts a level name in any case.
func ParseLevel(s string) (Level, error) {
	for l, info := range levelInfo {
		if strings.EqualFold(s, info.name) {
			return Level(l), nil //nolint:gosec // index of a five-element table
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
}

// ShouldEmit reports whether events of scope pass the level filter.
// LevelError lets nothing through; it exists for crash dumps of the ring.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(levelInfo) {
		return false
	}
	return scope != 0 && scope <= levelInfo[l].finest
}

// Event is one record of the trace stream.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the sink, monotonic across the process
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for root spans
	GID      uint64
	Name     string // "parse", "types", "class", ...
	Detail   string
	Extra    map[string]string
}
