package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"inkwell/internal/trace"
	"inkwell/internal/transport"
)

// Serve reads frames from conn and answers them in arrival order until the
// peer closes the connection, a shutdown message is handled, or ctx is
// cancelled. A clean close returns nil.
func (e *Engine) Serve(ctx context.Context, conn transport.Conn) error {
	span, ctx := trace.BeginCtx(ctx, trace.ScopeDriver, "engine.serve")
	defer span.End(e.codec.Name())

	loopCtx, stop := context.WithCancel(ctx)
	g := new(errgroup.Group)

	// ReadFrame не принимает context: при отмене закрываем соединение
	g.Go(func() error {
		<-loopCtx.Done()
		if ctx.Err() != nil {
			return conn.Close()
		}
		return nil
	})

	var loopErr error
	g.Go(func() error {
		defer stop()
		loopErr = e.loop(ctx, conn)
		return nil
	})

	closeErr := g.Wait()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if loopErr != nil {
		return loopErr
	}
	return closeErr
}

func (e *Engine) loop(ctx context.Context, conn transport.Conn) error {
	tracer := trace.FromContext(ctx)
	for {
		frame, err := conn.ReadFrame()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, transport.ErrClosed) {
				return nil
			}
			return fmt.Errorf("read frame: %w", err)
		}
		env, err := e.codec.DecodeEnvelope(frame)
		if err != nil {
			trace.Point(tracer, trace.ScopeMessage, "engine.drop", err.Error())
			continue
		}
		reply, ok := e.Handle(ctx, env)
		if !ok {
			continue
		}
		data, err := e.codec.EncodeEnvelope(reply)
		if err != nil {
			trace.Point(tracer, trace.ScopeMessage, "engine.drop", err.Error())
			continue
		}
		if err := conn.WriteFrame(data); err != nil {
			if errors.Is(err, transport.ErrClosed) {
				return nil
			}
			return fmt.Errorf("write frame: %w", err)
		}
		if e.shutdown {
			return nil
		}
	}
}
