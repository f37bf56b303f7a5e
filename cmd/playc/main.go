package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"playscript/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "playc",
	Short: "PlayScript semantic analyzer",
	Long: `playc builds the scope graph of PlayScript sources, resolves the types of
their declarations and reports semantic diagnostics`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := parseColorMode(mustString(cmd.Root().PersistentFlags(), "color")); err != nil {
			return err
		}
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, cleanup)
		stopProfiling, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, stopProfiling)
		return nil
	},
}

var (
	// cleanups выполняются в обратном порядке перед выходом.
	cleanups []func()
	// exitStatus is set by commands that succeed but found errors in the input.
	exitStatus int
)

// main registers subcommands and persistent flags, then executes the root
// command. Tracing is flushed before the process exits.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(scopesCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("trace", "", "write a trace to this file (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "phase", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace encoding (auto|text|ndjson|chrome)")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit trace heartbeats at this interval (0 = off)")

	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")

	err := rootCmd.Execute()
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	if err != nil {
		os.Exit(1)
	}
	os.Exit(exitStatus)
}

// quiet reports whether --quiet was given.
func quiet(cmd *cobra.Command) bool {
	q, err := cmd.Root().PersistentFlags().GetBool("quiet")
	return err == nil && q
}

func infof(cmd *cobra.Command, format string, args ...any) {
	if quiet(cmd) {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), format, args...)
}
