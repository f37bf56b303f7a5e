package driver

import (
	"encoding/json"
	"io"

	"playscript/internal/observ"
)

// TimingPayload is the machine-readable form of --timings.
type TimingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	RunID   string               `json:"run,omitempty"`
	Files   int                  `json:"files,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// NewTimingPayload describes report; kind is "file" or "dir".
func NewTimingPayload(kind, path, runID string, files int, report observ.Report) TimingPayload {
	if kind == "" {
		kind = "pipeline"
	}
	return TimingPayload{
		Kind:    kind,
		Path:    path,
		RunID:   runID,
		Files:   files,
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
	}
}

// WriteJSON writes the payload as a single JSON line.
func (p TimingPayload) WriteJSON(w io.Writer) error {
	return json.NewEncoder(w).Encode(p)
}
