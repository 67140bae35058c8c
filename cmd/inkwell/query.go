package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"inkwell/internal/channel"
	"inkwell/internal/engine"
	"inkwell/internal/protocol"
	"inkwell/internal/query"
	"inkwell/internal/source"
	"inkwell/internal/trace"
	"inkwell/internal/transport"
)

var queryKinds = []string{"hover", "definition", "occurrences", "completions", "boundary"}

var queryCmd = &cobra.Command{
	Use:       "query <hover|definition|occurrences|completions|boundary> file.js offset",
	Short:     "Answer one editor query over a local host/engine channel",
	Long:      `Query loads the file into an in-process engine through the same message channel an editor uses and prints the JSON result`,
	Args:      cobra.ExactArgs(3),
	ValidArgs: queryKinds,
	RunE:      runQuery,
}

func init() {
	queryCmd.Flags().String("direction", "right", "direction for boundary queries (left|right)")
	queryCmd.Flags().String("codec", "", "wire codec between host and engine (json|msgpack; default [serve].codec)")
}

func runQuery(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd)
	kind, filePath := args[0], args[1]
	offset, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid offset %q: %w", args[2], err)
	}
	dirFlag, err := cmd.Flags().GetString("direction")
	if err != nil {
		return fmt.Errorf("failed to get direction flag: %w", err)
	}
	dir, err := query.ParseDirection(dirFlag)
	if err != nil {
		return err
	}
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
	file, err := source.Load(filePath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	result, err := askEngine(ctx, st.engineOptions(codec), file.Content, kind, offset, dir)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// askEngine starts an engine on one end of a pipe and a host on the other,
// pushes text and runs a single query.
func askEngine(ctx context.Context, opts engine.Options, text, kind string, offset int, dir query.Direction) (any, error) {
	hostEnd, workerEnd := transport.Pipe()
	served := make(chan error, 1)
	go func() {
		served <- engine.New(opts).Serve(ctx, workerEnd)
	}()

	host := channel.NewHost(hostEnd, channel.Options{Codec: opts.Codec, Tracer: trace.FromContext(ctx)})
	host.Start(ctx)
	defer host.Close()

	snapshot := make(chan protocol.Update, 1)
	host.OnSnapshot(func(u protocol.Update) {
		select {
		case snapshot <- u:
		default:
		}
	})
	if err := host.UpdateText(text); err != nil {
		return nil, err
	}
	select {
	case <-snapshot:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	result, err := runOne(ctx, host, kind, offset, dir)
	if err != nil {
		return nil, err
	}
	if err := host.Shutdown(ctx); err != nil && !errors.Is(err, channel.ErrClosed) {
		return nil, err
	}
	if err := <-served; err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return result, nil
}

func runOne(ctx context.Context, host *channel.Host, kind string, offset int, dir query.Direction) (any, error) {
	var (
		result any
		err    error
	)
	switch kind {
	case "hover":
		result, _, err = host.Hover(ctx, offset)
	case "definition":
		result, _, err = host.Definition(ctx, offset)
	case "occurrences":
		result, _, err = host.Occurrences(ctx, offset)
	case "completions":
		result, _, err = host.Completions(ctx, offset)
	case "boundary":
		var target int
		target, _, err = host.NextWordBoundary(ctx, offset, dir)
		result = protocol.Location{TargetIndex: target}
	default:
		return nil, fmt.Errorf("unknown query %q (expected one of %v)", kind, queryKinds)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
