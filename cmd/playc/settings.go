package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"playscript/internal/driver"
	"playscript/internal/project"
	"playscript/internal/sema"
)

// addAnalysisFlags registers the flags shared by diag, scopes and watch.
func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().String("mode", "fields", "which declarations get types (fields|locals)")
	cmd.Flags().String("stage", "all", "last phase to run (tokenize|syntax|scopes|all)")
	cmd.Flags().Bool("check-cycles", false, "report inheritance cycles")
	cmd.Flags().Bool("validate", false, "check symbol table invariants after analysis")
	cmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	cmd.Flags().Bool("werror", false, "treat warnings as errors")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().Bool("no-cache", false, "disable the diagnostics disk cache")
}

// analysisSettings is the merged view of flags and playscript.toml.
type analysisSettings struct {
	Options driver.Options
	// Target is the file or directory to analyse after manifest [analysis].include.
	Target string
}

// loadSettings merges the manifest governing target with the command flags.
// Flags win when they were set explicitly.
func loadSettings(cmd *cobra.Command, target string) (analysisSettings, error) {
	out := analysisSettings{Target: target}

	st, err := os.Stat(target)
	if err != nil {
		return out, fmt.Errorf("failed to stat path: %w", err)
	}
	startDir := target
	if !st.IsDir() {
		startDir = filepath.Dir(target)
	}
	manifest, found, err := project.Load(startDir)
	if err != nil {
		return out, err
	}
	if found && st.IsDir() && sameDir(target, manifest.Root) {
		out.Target = manifest.SourceDir()
	}

	flags := cmd.Flags()
	changed := func(name string) bool {
		if f := flags.Lookup(name); f != nil && f.Changed {
			return true
		}
		return cmd.Root().PersistentFlags().Changed(name)
	}

	modeStr := mustString(flags, "mode")
	if found && manifest.Mode != "" && !changed("mode") {
		modeStr = manifest.Mode
	}
	mode, err := sema.ParseMode(modeStr)
	if err != nil {
		return out, err
	}
	stage, err := driver.ParseStage(mustString(flags, "stage"))
	if err != nil {
		return out, err
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return out, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if found && manifest.MaxDiagnostics > 0 && !changed("max-diagnostics") {
		maxDiagnostics = manifest.MaxDiagnostics
	}
	checkCycles, _ := flags.GetBool("check-cycles")
	if found && !changed("check-cycles") {
		checkCycles = manifest.CheckCycles
	}
	jobs, _ := flags.GetInt("jobs")
	if found && manifest.Jobs > 0 && !changed("jobs") {
		jobs = manifest.Jobs
	}
	validate, _ := flags.GetBool("validate")
	noWarnings, _ := flags.GetBool("no-warnings")
	werror, _ := flags.GetBool("werror")
	if noWarnings && werror {
		return out, fmt.Errorf("no-warnings and werror flags cannot be used together")
	}
	timings, _ := cmd.Root().PersistentFlags().GetBool("timings")

	out.Options = driver.Options{
		Stage:            stage,
		Mode:             mode,
		MaxDiagnostics:   maxDiagnostics,
		CheckCycles:      checkCycles,
		Validate:         validate,
		IgnoreWarnings:   noWarnings,
		WarningsAsErrors: werror,
		EnableTimings:    timings,
		Jobs:             jobs,
	}

	noCache, _ := flags.GetBool("no-cache")
	if found && manifest.Cache && !noCache {
		cache, err := driver.OpenDiskCache("playscript")
		if err != nil {
			// кэш необязателен
			infof(cmd, "warning: disk cache disabled: %v\n", err)
		} else {
			out.Options.Cache = cache
		}
	}
	return out, nil
}

func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && filepath.Clean(absA) == filepath.Clean(absB)
}
