package trace

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

// Format is the encoding of a stream sink.
type Format uint8

const (
	FormatAuto   Format = iota // pick by output file extension
	FormatText                 // one line per event
	FormatNDJSON               // one JSON object per line
	FormatChrome               // chrome://tracing event array
)

var formatNames = map[string]Format{
	"":       FormatAuto,
	"auto":   FormatAuto,
	"text":   FormatText,
	"ndjson": FormatNDJSON,
	"chrome": FormatChrome,
}

func ParseFormat(s string) (Format, error) {
	if f, ok := formatNames[strings.ToLower(s)]; ok {
		return f, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson|chrome)", s)
}

// FormatEvent encodes ev. Chrome elements carry no separator.
func FormatEvent(ev *Event, format Format) []byte {
	switch format {
	case FormatNDJSON:
		return append(mustJSON(newWireEvent(ev)), '\n')
	case FormatChrome:
		return mustJSON(newChromeEvent(ev))
	}
	return formatText(ev)
}

func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		// only string maps and scalars reach here
		panic(err)
	}
	return data
}

type wireEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id"`
	ParentID uint64            `json:"parent_id,omitempty"`
	GID      uint64            `json:"gid,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

func newWireEvent(ev *Event) wireEvent {
	return wireEvent{
		Time:     ev.Time.Format(time.RFC3339Nano),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		GID:      ev.GID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Extra:    ev.Extra,
	}
}

type chromeEvent struct {
	Name string            `json:"name"`
	Cat  string            `json:"cat"`
	Ph   string            `json:"ph"`
	Ts   int64             `json:"ts"`
	Pid  int               `json:"pid"`
	Tid  uint64            `json:"tid"`
	Args map[string]string `json:"args,omitempty"`
}

var chromePhase = map[Kind]string{KindSpanBegin: "B", KindSpanEnd: "E"}

func newChromeEvent(ev *Event) chromeEvent {
	ph, ok := chromePhase[ev.Kind]
	if !ok {
		ph = "i"
	}
	var args map[string]string
	if len(ev.Extra) > 0 || ev.Detail != "" {
		args = maps.Clone(ev.Extra)
		if args == nil {
			args = make(map[string]string, 1)
		}
		if ev.Detail != "" {
			args["detail"] = ev.Detail
		}
	}
	return chromeEvent{
		Name: ev.Name,
		Cat:  ev.Scope.String(),
		Ph:   ph,
		Ts:   ev.Time.UnixMicro(),
		Pid:  1,
		Tid:  ev.GID,
		Args: args,
	}
}

var processStart = time.Now()

var textMarks = map[Kind]string{
	KindSpanBegin: "→ ",
	KindSpanEnd:   "← ",
	KindPoint:     "• ",
	KindHeartbeat: "♡ ",
}

// formatText renders one line:
//
//	[  12.345ms]   → types {mode=fields}
//
// The offset is measured from process start; child events are indented.
func formatText(ev *Event) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%9.3fms] ", float64(ev.Time.Sub(processStart).Microseconds())/1000)
	if ev.ParentID > 0 {
		sb.WriteString("  ")
	}
	sb.WriteString(textMarks[ev.Kind])
	sb.WriteString(ev.Name)
	if ev.Detail != "" {
		fmt.Fprintf(&sb, " (%s)", ev.Detail)
	}
	if len(ev.Extra) > 0 {
		sb.WriteString(" {")
		for i, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k + "=" + ev.Extra[k])
		}
		sb.WriteByte('}')
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}
