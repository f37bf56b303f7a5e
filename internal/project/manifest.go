package project

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file that marks a PlayScript project root.
const ManifestName = "playscript.toml"

// Manifest is the parsed playscript.toml.
type Manifest struct {
	// Path of the manifest file; Root is its directory.
	Path string
	Root string

	Name           string
	Mode           string
	MaxDiagnostics int
	CheckCycles    bool
	Jobs           int
	// Include is the source directory relative to Root ("" = Root).
	Include string
	Cache   bool
}

var (
	// ErrPackageSectionMissing indicates that [package] is missing.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrInvalidMode indicates an unsupported [analysis].mode value.
	ErrInvalidMode = errors.New("invalid [analysis].mode")
)

type manifestFile struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Analysis struct {
		Mode           string `toml:"mode"`
		MaxDiagnostics int    `toml:"max_diagnostics"`
		CheckCycles    bool   `toml:"check_cycles"`
		Jobs           int    `toml:"jobs"`
		Include        string `toml:"include"`
		Cache          *bool  `toml:"cache"`
	} `toml:"analysis"`
}

// LoadManifest parses and validates a playscript.toml.
func LoadManifest(path string) (Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Manifest{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	mode := strings.TrimSpace(cfg.Analysis.Mode)
	switch mode {
	case "", "fields", "locals":
	default:
		return Manifest{}, fmt.Errorf("%s: %w %q (expected fields|locals)", path, ErrInvalidMode, mode)
	}
	if cfg.Analysis.MaxDiagnostics < 0 || cfg.Analysis.Jobs < 0 {
		return Manifest{}, fmt.Errorf("%s: [analysis] limits must not be negative", path)
	}
	include := filepath.Clean(filepath.FromSlash(strings.TrimSpace(cfg.Analysis.Include)))
	if filepath.IsAbs(include) || strings.HasPrefix(include, "..") {
		return Manifest{}, fmt.Errorf("%s: invalid [analysis].include %q: must stay inside the project", path, cfg.Analysis.Include)
	}
	if include == "." {
		include = ""
	}
	cache := true
	if cfg.Analysis.Cache != nil {
		cache = *cfg.Analysis.Cache
	}
	return Manifest{
		Path:           path,
		Root:           filepath.Dir(path),
		Name:           strings.TrimSpace(cfg.Package.Name),
		Mode:           mode,
		MaxDiagnostics: cfg.Analysis.MaxDiagnostics,
		CheckCycles:    cfg.Analysis.CheckCycles,
		Jobs:           cfg.Analysis.Jobs,
		Include:        include,
		Cache:          cache,
	}, nil
}

// Load finds and parses the manifest governing startDir. ok is false when
// there is none.
func Load(startDir string) (Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return Manifest{}, ok, err
	}
	m, err := LoadManifest(path)
	return m, true, err
}

// SourceDir returns the absolute directory holding the project's sources.
func (m Manifest) SourceDir() string {
	return filepath.Join(m.Root, m.Include)
}

// FindManifest returns the nearest playscript.toml at or above startDir.
func FindManifest(startDir string) (path string, ok bool, err error) {
	dir, err := filepath.Abs(cmp.Or(startDir, "."))
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for ; ; dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, ManifestName)
		switch _, statErr := os.Stat(candidate); {
		case statErr == nil:
			return candidate, true, nil
		case !errors.Is(statErr, fs.ErrNotExist):
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, statErr)
		}
		if filepath.Dir(dir) == dir {
			return "", false, nil
		}
	}
}
