package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"playscript/internal/diagfmt"
	"playscript/internal/driver"
	"playscript/internal/source"
	"playscript/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.play",
	Short: "Tokenize a PlayScript source file",
	Long:  `Tokenize prints the token stream of a PlayScript file, one token per line or as JSON.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

// tokenDumpers maps --format values to renderers.
var tokenDumpers = map[string]func(io.Writer, []token.Token, *source.FileSet) error{
	"pretty": diagfmt.FormatTokensPretty,
	"json":   diagfmt.FormatTokensJSON,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	dump, ok := tokenDumpers[format]
	if !ok {
		return fmt.Errorf("unknown format: %s", format)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Analyze(cmd.Context(), args[0], driver.Options{
		Stage:          driver.StageTokenize,
		MaxDiagnostics: maxDiagnostics,
	})
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	// лексические ошибки уходят в stderr, дамп токенов остаётся на stdout
	printStageDiagnostics(cmd, result)
	return dump(cmd.OutOrStdout(), result.Tokens, result.FileSet)
}

// printStageDiagnostics writes front end diagnostics to stderr so that the
// dump on stdout stays machine readable.
func printStageDiagnostics(cmd *cobra.Command, result *driver.Result) {
	if result.Bag.Len() == 0 {
		return
	}
	diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{
		Color:   useColor(cmd, os.Stderr),
		Context: 1,
		Width:   terminalWidth(os.Stderr),
	})
	if result.Bag.HasErrors() {
		exitStatus = 1
	}
}
