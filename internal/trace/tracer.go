package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Tracer receives events. Implementations must be safe for concurrent use:
// AnalyzeDir emits from several workers at once.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// StorageMode selects where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // write as they happen
	ModeRing                          // keep the tail in memory
	ModeBoth
)

var modeNames = map[string]StorageMode{
	"stream": ModeStream,
	"ring":   ModeRing,
	"both":   ModeBoth,
}

func (m StorageMode) String() string {
	for name, v := range modeNames {
		if v == m {
			return name
		}
	}
	return "unknown"
}

// ParseMode accepts stream, ring or both in any case.
func ParseMode(s string) (StorageMode, error) {
	if m, ok := modeNames[strings.ToLower(s)]; ok {
		return m, nil
	}
	return ModeRing, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

// Config describes a tracer. Output wins over OutputPath; an empty path or
// "-" means stderr.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format
	Output     io.Writer
	OutputPath string
	RingSize   int
}

// Settings are the raw --trace* flag values.
type Settings struct {
	Output string
	Level  string
	Mode   string
	Format string
}

// FromSettings parses the flag values. An empty output disables tracing.
func FromSettings(s Settings) (Tracer, error) {
	if s.Output == "" {
		return Nop, nil
	}
	lvl, err := ParseLevel(s.Level)
	if err != nil {
		return nil, err
	}
	cfg := Config{Level: lvl, Mode: ModeStream, OutputPath: s.Output}
	if s.Mode != "" {
		if cfg.Mode, err = ParseMode(s.Mode); err != nil {
			return nil, err
		}
	}
	if cfg.Format, err = ParseFormat(s.Format); err != nil {
		return nil, err
	}
	return New(cfg)
}

// New builds the tracer described by cfg.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.Mode == ModeRing {
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	}
	if cfg.Mode != ModeStream && cfg.Mode != ModeBoth {
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}

	w, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}
	format := cfg.Format
	if format == FormatAuto {
		format = formatForPath(cfg.OutputPath)
	}
	stream := NewStreamTracer(w, cfg.Level, format)
	if cfg.Mode == ModeStream {
		return stream, nil
	}
	return NewMultiTracer(cfg.Level, stream, NewRingTracer(cfg.RingSize, cfg.Level)), nil
}

// formatForPath picks the encoding from the output file extension:
// .ndjson for NDJSON, .json for the Chrome event array, text otherwise.
func formatForPath(path string) Format {
	switch filepath.Ext(path) {
	case ".ndjson":
		return FormatNDJSON
	case ".json":
		return FormatChrome
	}
	return FormatText
}

func openOutput(cfg Config) (io.Writer, error) {
	switch {
	case cfg.Output != nil:
		return cfg.Output, nil
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		return os.Stderr, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

func isStdStream(c io.Closer) bool {
	f, ok := c.(*os.File)
	return ok && (f == os.Stderr || f == os.Stdout)
}
