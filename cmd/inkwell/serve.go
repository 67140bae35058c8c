package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inkwell/internal/engine"
	"inkwell/internal/trace"
	"inkwell/internal/transport"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis engine over stdio",
	Long: `Serve runs the engine on stdin/stdout with Content-Length framing.
Stdout carries protocol frames only; traces go to stderr or a file.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("codec", "", "wire codec (json|msgpack; default [serve].codec)")
}

func runServe(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd)
	codecFlag, err := cmd.Flags().GetString("codec")
	if err != nil {
		return fmt.Errorf("failed to get codec flag: %w", err)
	}
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	codec, err := st.codec(codecFlag)
	if err != nil {
		return err
	}

	ctx, cleanup, err := serveTracing(cmd, st.cfg.Serve.Trace, st.cfg.Serve.TraceLevel)
	if err != nil {
		return err
	}
	defer cleanup()

	conn := transport.NewStream(os.Stdin, os.Stdout, os.Stdin)
	trace.Point(trace.FromContext(ctx), trace.ScopeDriver, "serve.start", codec.Name())
	return engine.New(st.engineOptions(codec)).Serve(ctx, conn)
}

// serveTracing applies [serve].trace and [serve].trace_level when the
// command line did not set tracing itself. Output never goes to stdout.
func serveTracing(cmd *cobra.Command, output, levelName string) (context.Context, func(), error) {
	ctx := cmd.Context()
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("trace") || flags.Changed("trace-level") {
		return ctx, func() {}, nil
	}
	level, err := trace.ParseLevel(levelName)
	if err != nil {
		return nil, nil, err
	}
	if level == trace.LevelOff {
		return ctx, func() {}, nil
	}
	tracer, err := trace.New(trace.Config{Level: level, Mode: trace.ModeStream, OutputPath: output})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cleanup := func() {
		_ = tracer.Flush()
		_ = tracer.Close()
	}
	return trace.WithTracer(ctx, tracer), cleanup, nil
}
