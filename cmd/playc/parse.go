package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"playscript/internal/diagfmt"
	"playscript/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.play",
	Short: "Parse a PlayScript source file and dump its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|sexpr|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Analyze(cmd.Context(), args[0], driver.Options{
		Stage:          driver.StageSyntax,
		MaxDiagnostics: maxDiagnostics,
	})
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	printStageDiagnostics(cmd, result)

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		return diagfmt.FormatTreePretty(out, result.Tree, result.FileSet)
	case "sexpr":
		return diagfmt.FormatTreeSexpr(out, result.Tree)
	case "json":
		return diagfmt.FormatTreeJSON(out, result.Tree)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
