package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"playscript/internal/diag"
	"playscript/internal/diagfmt"
	"playscript/internal/driver"
	"playscript/internal/observ"
	"playscript/internal/source"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.play|directory>",
	Short: "Run diagnostics on a PlayScript source file or directory",
	Long:  `Run diagnostics to find syntax and semantic issues in a PlayScript source file or all *.play files within a directory`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDiagnose,
}

// init registers the diag flags: output format, note and fix rendering, path
// style, plus the analysis flags shared with scopes and watch.
func init() {
	addDiagOutputFlags(diagCmd)
	addAnalysisFlags(diagCmd)
}

func addDiagOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	cmd.Flags().String("path-mode", "auto", "how file paths are printed (auto|absolute|relative|basename)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	cmd.Flags().Bool("preview", false, "preview fix edits (implies --suggest)")
}

// diagOutput describes how diagnostics are rendered.
type diagOutput struct {
	format    string
	pathMode  diagfmt.PathMode
	withNotes bool
	showFixes bool
	preview   bool
	color     bool
	width     uint8
}

func readDiagOutput(cmd *cobra.Command) (diagOutput, error) {
	flags := cmd.Flags()
	out := diagOutput{format: mustString(flags, "format")}
	switch out.format {
	case "pretty", "json", "short":
	default:
		return out, fmt.Errorf("unknown format: %s", out.format)
	}
	pathModeStr := mustString(flags, "path-mode")
	pathMode, ok := diagfmt.ParsePathMode(pathModeStr)
	if !ok {
		return out, fmt.Errorf("unknown path mode: %s", pathModeStr)
	}
	out.pathMode = pathMode
	out.withNotes, _ = flags.GetBool("with-notes")
	suggest, _ := flags.GetBool("suggest")
	out.preview, _ = flags.GetBool("preview")
	out.showFixes = suggest || out.preview
	out.color = useColor(cmd, os.Stdout)
	out.width = terminalWidth(os.Stdout)
	return out, nil
}

// runDiagnose executes the "diag" command and sets a non-zero exit status
// when any error diagnostic was reported.
func runDiagnose(cmd *cobra.Command, args []string) error {
	output, err := readDiagOutput(cmd)
	if err != nil {
		return err
	}
	settings, err := loadSettings(cmd, args[0])
	if err != nil {
		return err
	}
	hasErrors, err := diagnoseOnce(cmd.Context(), cmd, settings, output, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if hasErrors {
		exitStatus = 1
	}
	return nil
}

// diagRun is the part of a file or directory result that rendering needs.
type diagRun struct {
	kind   string
	path   string
	fs     *source.FileSet
	bag    *diag.Bag
	timing observ.Report
	runID  string
	files  int
	cached int
}

// diagnoseOnce analyses settings.Target, renders the diagnostics to w and
// reports whether any of them is an error.
func diagnoseOnce(ctx context.Context, cmd *cobra.Command, settings analysisSettings, output diagOutput, w io.Writer) (bool, error) {
	run, err := analyzeTarget(ctx, settings)
	if err != nil {
		return false, fmt.Errorf("diagnosis failed: %w", err)
	}

	switch output.format {
	case "pretty":
		diagfmt.Pretty(w, run.bag, run.fs, diagfmt.PrettyOpts{
			Color:       output.color,
			Context:     2,
			PathMode:    output.pathMode,
			Width:       output.width,
			ShowNotes:   output.withNotes,
			ShowFixes:   output.showFixes,
			ShowPreview: output.preview,
		})
	case "short":
		if text := diag.FormatShortDiagnostics(run.bag.Items(), run.fs, output.withNotes); text != "" {
			fmt.Fprintln(w, text)
		}
	case "json":
		err = diagfmt.JSON(w, run.bag, run.fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         output.pathMode,
			IncludeNotes:     output.withNotes,
			IncludeFixes:     output.showFixes,
			IncludePreviews:  output.preview,
		})
		if err != nil {
			return false, fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}

	if output.format != "json" {
		errs := run.bag.CountBySeverity(diag.SevError)
		warns := run.bag.CountBySeverity(diag.SevWarning)
		infof(cmd, "%d error(s), %d warning(s) in %d file(s)", errs, warns, run.files)
		if run.cached > 0 {
			infof(cmd, ", %d cached", run.cached)
		}
		infof(cmd, "\n")
	}

	if settings.Options.EnableTimings {
		if err := printTimings(cmd.ErrOrStderr(), run, output.format == "json"); err != nil {
			return false, err
		}
	}
	return run.bag.HasErrors(), nil
}

func analyzeTarget(ctx context.Context, settings analysisSettings) (diagRun, error) {
	st, err := os.Stat(settings.Target)
	if err != nil {
		return diagRun{}, err
	}
	if st.IsDir() {
		res, err := driver.AnalyzeDir(ctx, settings.Target, settings.Options)
		if err != nil {
			return diagRun{}, err
		}
		return diagRun{
			kind:   "dir",
			path:   settings.Target,
			fs:     res.FileSet,
			bag:    res.Bag,
			timing: res.Timing,
			runID:  res.RunID,
			files:  len(res.Files),
			cached: res.Cached(),
		}, nil
	}
	res, err := driver.Analyze(ctx, settings.Target, settings.Options)
	if err != nil {
		return diagRun{}, err
	}
	run := diagRun{
		kind:   "file",
		path:   settings.Target,
		fs:     res.FileSet,
		bag:    res.Bag,
		timing: res.Timing,
		runID:  res.RunID,
		files:  1,
	}
	if res.Cached {
		run.cached = 1
	}
	return run, nil
}

// printTimings пишет отчёт о фазах в stderr: таблицей или одной JSON-строкой.
func printTimings(w io.Writer, run diagRun, asJSON bool) error {
	if asJSON {
		return driver.NewTimingPayload(run.kind, run.path, run.runID, run.files, run.timing).WriteJSON(w)
	}
	_, err := io.WriteString(w, run.timing.Summary())
	return err
}
