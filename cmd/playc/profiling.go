package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"playscript/internal/prof"
)

// setupProfiling starts the profiles requested on the command line and
// returns the function that stops them.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()
	cfg := prof.Config{
		CPU:   mustString(flags, "cpuprofile"),
		Mem:   mustString(flags, "memprofile"),
		Trace: mustString(flags, "runtime-trace"),
	}
	if !cfg.Enabled() {
		return func() {}, nil
	}
	session, err := prof.Start(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start profiling: %w", err)
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	}, nil
}
