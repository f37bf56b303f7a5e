package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"playscript/internal/trace"
)

type traceFlags struct {
	trace.Settings
	heartbeat time.Duration
}

func readTraceFlags(cmd *cobra.Command) (traceFlags, error) {
	pf := cmd.Root().PersistentFlags()
	var (
		tf  traceFlags
		err error
	)
	for name, dst := range map[string]*string{
		"trace":        &tf.Output,
		"trace-level":  &tf.Level,
		"trace-mode":   &tf.Mode,
		"trace-format": &tf.Format,
	} {
		if *dst, err = pf.GetString(name); err != nil {
			return tf, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
	}
	if tf.heartbeat, err = pf.GetDuration("trace-heartbeat"); err != nil {
		return tf, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}
	return tf, nil
}

// setupTracing puts the tracer selected by --trace into the command context.
// The cleanup stops the heartbeat before the sink is closed so no tick is
// written to a closed file.
func setupTracing(cmd *cobra.Command) (func(), error) {
	tf, err := readTraceFlags(cmd)
	if err != nil {
		return nil, err
	}
	tracer, err := trace.FromSettings(tf.Settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	heartbeat := trace.StartHeartbeat(tracer, tf.heartbeat)

	return func() {
		heartbeat.Stop()
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}, nil
}
