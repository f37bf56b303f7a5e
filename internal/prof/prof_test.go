package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSessionWritesRequestedProfiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPU:   filepath.Join(dir, "cpu.out"),
		Mem:   filepath.Join(dir, "mem.out"),
		Trace: filepath.Join(dir, "trace.out"),
	}
	if !cfg.Enabled() {
		t.Fatalf("config with paths must be enabled")
	}
	s, err := Start(cfg)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	for _, p := range []string{cfg.CPU, cfg.Mem, cfg.Trace} {
		if info, err := os.Stat(p); err != nil || info.Size() == 0 {
			t.Fatalf("profile %s missing or empty: %v", filepath.Base(p), err)
		}
	}
	// повторный Stop ничего не делает
	if err := s.Stop(); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}

func TestNilSessionStop(t *testing.T) {
	var s *Session
	if err := s.Stop(); err != nil {
		t.Fatalf("nil stop: %v", err)
	}
	if (Config{}).Enabled() {
		t.Fatalf("empty config must be disabled")
	}
}
