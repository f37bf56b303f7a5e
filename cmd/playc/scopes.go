package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"playscript/internal/diagfmt"
	"playscript/internal/driver"
	"playscript/internal/sema"
)

var scopesCmd = &cobra.Command{
	Use:   "scopes [flags] file.play",
	Short: "Dump the scope graph and resolved types of a PlayScript file",
	Args:  cobra.ExactArgs(1),
	RunE:  runScopes,
}

func init() {
	scopesCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	scopesCmd.Flags().Bool("types", false, "list every registered type (pretty format)")
	addAnalysisFlags(scopesCmd)
}

func runScopes(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	showTypes, err := cmd.Flags().GetBool("types")
	if err != nil {
		return fmt.Errorf("failed to get types flag: %w", err)
	}

	settings, err := loadSettings(cmd, args[0])
	if err != nil {
		return err
	}
	if st, statErr := os.Stat(settings.Target); statErr == nil && st.IsDir() {
		return errors.New("scopes expects a single file")
	}
	// дамп строится из контекста, кэш его не хранит
	settings.Options.Cache = nil
	if settings.Options.Stage != driver.StageScopes {
		settings.Options.Stage = driver.StageAll
	}

	result, err := driver.Analyze(cmd.Context(), settings.Target, settings.Options)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if result.Sema == nil {
		return errors.New("no semantic context was produced")
	}
	if result.Bag.HasErrors() {
		exitStatus = 1
	}

	snap := sema.TakeSnapshot(result.Sema)
	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		return diagfmt.ScopesPretty(out, &snap, showTypes)
	case "json":
		return diagfmt.ScopesJSON(out, &snap)
	case "yaml":
		return diagfmt.ScopesYAML(out, &snap)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
