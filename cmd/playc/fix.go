package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"playscript/internal/diag"
	"playscript/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.play|directory>",
	Short: "Apply suggested fixes to a source file or directory",
	Long:  "Run diagnostics, list the fixes they suggest and apply them according to the chosen strategy.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply every non-conflicting fix")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
	fixCmd.Flags().Bool("list", false, "list available fixes without applying them")
	fixCmd.Flags().Bool("dry-run", false, "report what would change without writing files")
	addAnalysisFlags(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) error {
	applyAll, _ := cmd.Flags().GetBool("all")
	applyOnce, _ := cmd.Flags().GetBool("once")
	targetID, _ := cmd.Flags().GetString("id")
	list, _ := cmd.Flags().GetBool("list")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}
	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}

	settings, err := loadSettings(cmd, args[0])
	if err != nil {
		return err
	}
	run, err := analyzeTarget(cmd.Context(), settings)
	if err != nil {
		return fmt.Errorf("fix: diagnose failed: %w", err)
	}
	diagnostics := run.bag.Items()

	if list {
		return listFixes(cmd.OutOrStdout(), run, diagnostics)
	}

	res, applyErr := fix.Apply(run.fs, diagnostics, fix.ApplyOptions{Mode: mode, TargetID: targetID, DryRun: dryRun})
	return handleApplyResult(cmd.OutOrStdout(), res, applyErr, dryRun)
}

func listFixes(w io.Writer, run diagRun, diagnostics []diag.Diagnostic) error {
	n := 0
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			start, _ := run.fs.Resolve(d.Primary)
			path := ""
			if file := run.fs.Get(d.Primary.File); file != nil {
				path = file.FormatPath("auto", run.fs.BaseDir())
			}
			if _, err := fmt.Fprintf(w, "%s  %s:%d:%d  %s\n", fix.ID(d, idx), path, start.Line, start.Col, f.Title); err != nil {
				return err
			}
			n++
		}
	}
	if n == 0 {
		_, err := fmt.Fprintln(w, "no fixes available")
		return err
	}
	return nil
}

func handleApplyResult(w io.Writer, res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}
	verb := "Applied"
	if dryRun {
		verb = "Would apply"
	}
	if len(res.Applied) > 0 {
		fmt.Fprintf(w, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(w, "  %s [%s] at %s (%d edits)\n", item.Title, item.ID, location, item.EditCount)
		}
	}
	if len(res.FileChanges) > 0 {
		fmt.Fprintln(w, "Updated files:")
		for _, change := range res.FileChanges {
			fmt.Fprintf(w, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}
	if len(res.Skipped) > 0 {
		fmt.Fprintln(os.Stderr, "Skipped fixes:")
		for _, skip := range res.Skipped {
			label := skip.Title
			if label == "" {
				label = skip.ID
			}
			fmt.Fprintf(os.Stderr, "  %s: %s\n", label, skip.Reason)
		}
	}
	if errors.Is(applyErr, fix.ErrNoFixes) {
		fmt.Fprintln(w, "No fixes applied.")
		return nil
	}
	return applyErr
}
