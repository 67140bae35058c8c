// Package engine is the worker side of the analysis channel. It owns the
// current Snapshot and answers protocol messages strictly one at a time.
package engine

import (
	"context"
	"fmt"

	"inkwell/internal/analysis"
	"inkwell/internal/protocol"
	"inkwell/internal/query"
	"inkwell/internal/trace"
)

// Options configures an Engine.
type Options struct {
	// Codec encodes payloads and envelopes; nil means protocol.JSON.
	Codec protocol.Codec
	// Analysis is passed to every snapshot rebuild.
	Analysis analysis.Options
	// Query answers position queries; nil means query.Default().
	Query *query.Service
	// Editor is echoed in every update push.
	Editor protocol.EditorConfig
}

// Engine is not safe for concurrent use: Serve runs it on one goroutine,
// which is what lets the snapshot live without locks.
type Engine struct {
	codec    protocol.Codec
	builder  *analysis.Builder
	svc      *query.Service
	editor   protocol.EditorConfig
	snap     *analysis.Snapshot
	shutdown bool
}

func New(opts Options) *Engine {
	codec := opts.Codec
	if codec == nil {
		codec = protocol.JSON
	}
	svc := opts.Query
	if svc == nil {
		svc = query.Default()
	}
	return &Engine{
		codec:   codec,
		builder: analysis.NewBuilder(opts.Analysis),
		svc:     svc,
		editor:  opts.Editor,
	}
}

// Snapshot returns the current snapshot, nil before the first updateText.
func (e *Engine) Snapshot() *analysis.Snapshot {
	return e.snap
}

// Codec returns the codec the engine encodes replies with.
func (e *Engine) Codec() protocol.Codec {
	return e.codec
}

// ShutdownRequested reports whether a shutdown message has been handled.
func (e *Engine) ShutdownRequested() bool {
	return e.shutdown
}

// Reset drops the snapshot and restarts versions; queries are ignored until
// the next updateText.
func (e *Engine) Reset() {
	e.snap = nil
	e.builder.Reset()
	e.shutdown = false
}

// Handle processes one message to completion. ok is false when the message
// gets no reply: unknown types, queries before the first updateText, and
// undecodable payloads. Such drops are only visible in the trace.
func (e *Engine) Handle(ctx context.Context, env protocol.Envelope) (reply protocol.Envelope, ok bool) {
	span, ctx := trace.BeginCtx(ctx, trace.ScopeMessage, "engine.handle")
	defer func() {
		if ok {
			span.End(env.String() + " -> " + reply.String())
		} else {
			span.End(env.String() + " dropped")
		}
	}()

	if _, err := protocol.ParseType(string(env.Type)); err != nil {
		e.drop(ctx, env, err.Error())
		return protocol.Envelope{}, false
	}

	switch env.Type {
	case protocol.TypeUpdateText:
		return e.handleUpdateText(ctx, env)
	case protocol.TypeShutdown:
		e.shutdown = true
		return e.reply(ctx, env, nil)
	case protocol.TypeUpdate:
		e.drop(ctx, env, "update is engine-to-host only")
		return protocol.Envelope{}, false
	}

	if e.snap == nil {
		e.drop(ctx, env, "query before first updateText")
		return protocol.Envelope{}, false
	}

	switch env.Type {
	case protocol.TypeHover:
		return e.handleHover(ctx, env)
	case protocol.TypeDefinition:
		return e.handleDefinition(ctx, env)
	case protocol.TypeOccurrences:
		return e.handleOccurrences(ctx, env)
	case protocol.TypeCompletions:
		return e.handleCompletions(ctx, env)
	case protocol.TypeWordBoundary:
		return e.handleWordBoundary(ctx, env)
	}
	e.drop(ctx, env, "no handler")
	return protocol.Envelope{}, false
}

func (e *Engine) drop(ctx context.Context, env protocol.Envelope, reason string) {
	trace.Point(trace.FromContext(ctx), trace.ScopeMessage, "engine.drop", env.String()+": "+reason)
}

// reply encodes payload as the response to env. A nil payload is a null
// result.
func (e *Engine) reply(ctx context.Context, env protocol.Envelope, payload any) (protocol.Envelope, bool) {
	out, err := protocol.NewEnvelope(e.codec, env.Type, env.RequestID, payload)
	if err != nil {
		e.drop(ctx, env, err.Error())
		return protocol.Envelope{}, false
	}
	out.RawID = env.RawID
	if e.snap != nil {
		out.Version = e.snap.Version
	}
	return out, true
}

func (e *Engine) handleUpdateText(ctx context.Context, env protocol.Envelope) (protocol.Envelope, bool) {
	var text string
	if _, err := protocol.DecodePayload(e.codec, env, &text); err != nil {
		e.drop(ctx, env, err.Error())
		return protocol.Envelope{}, false
	}
	// снапшот заменяется целиком, старый больше никому не виден
	e.snap = e.builder.Rebuild(ctx, text)

	update := protocol.Update{
		Version:     e.snap.Version,
		Tokens:      protocol.FromTokens(e.snap.Tokens),
		Diagnostics: protocol.FromDiagnostics(e.snap.Diagnostics),
		Config:      e.editor,
	}
	push := protocol.Envelope{Type: protocol.TypeUpdate}
	return e.reply(ctx, push, update)
}

func (e *Engine) decodeIndex(ctx context.Context, env protocol.Envelope) (int, bool) {
	var params protocol.IndexParams
	ok, err := protocol.DecodePayload(e.codec, env, &params)
	if err != nil || !ok {
		reason := "missing payload"
		if err != nil {
			reason = err.Error()
		}
		e.drop(ctx, env, reason)
		return 0, false
	}
	return params.Index, true
}

func (e *Engine) handleHover(ctx context.Context, env protocol.Envelope) (protocol.Envelope, bool) {
	index, ok := e.decodeIndex(ctx, env)
	if !ok {
		return protocol.Envelope{}, false
	}
	info := e.svc.Hover(e.snap, index)
	if info == nil {
		return e.reply(ctx, env, nil)
	}
	return e.reply(ctx, env, protocol.HoverResult{Content: info.Content})
}

func (e *Engine) handleDefinition(ctx context.Context, env protocol.Envelope) (protocol.Envelope, bool) {
	index, ok := e.decodeIndex(ctx, env)
	if !ok {
		return protocol.Envelope{}, false
	}
	loc := e.svc.Definition(e.snap, index)
	if loc == nil {
		return e.reply(ctx, env, nil)
	}
	return e.reply(ctx, env, protocol.Location{TargetIndex: loc.TargetIndex})
}

func (e *Engine) handleOccurrences(ctx context.Context, env protocol.Envelope) (protocol.Envelope, bool) {
	index, ok := e.decodeIndex(ctx, env)
	if !ok {
		return protocol.Envelope{}, false
	}
	return e.reply(ctx, env, protocol.FromSpans(e.svc.Occurrences(e.snap, index)))
}

func (e *Engine) handleCompletions(ctx context.Context, env protocol.Envelope) (protocol.Envelope, bool) {
	index, ok := e.decodeIndex(ctx, env)
	if !ok {
		return protocol.Envelope{}, false
	}
	return e.reply(ctx, env, protocol.FromCompletions(e.svc.Completions(e.snap, index)))
}

func (e *Engine) handleWordBoundary(ctx context.Context, env protocol.Envelope) (protocol.Envelope, bool) {
	var params protocol.BoundaryParams
	ok, err := protocol.DecodePayload(e.codec, env, &params)
	if err != nil || !ok {
		e.drop(ctx, env, fmt.Sprintf("bad boundary payload: %v", err))
		return protocol.Envelope{}, false
	}
	// всё, что не "right"/"forward", трактуется как движение влево
	dir, err := query.ParseDirection(params.Direction)
	if err != nil {
		dir = query.Left
	}
	target := e.svc.NextWordBoundary(e.snap, params.Index, dir)
	return e.reply(ctx, env, protocol.Location{TargetIndex: target})
}
