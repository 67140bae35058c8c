// Package trace records what the analysis engine and its host are doing.
//
// The engine runs as an isolated worker and drops malformed or premature
// messages without replying, so the trace stream is the only place such
// drops become visible.
//
// # Usage
//
//	inkwell serve --trace=- --trace-level=detail
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (file or stderr)
//   - RingTracer: keeps the last N events in memory for post-mortem dumps
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only explicit dumps
//   - LevelPhase: CLI commands and analysis passes
//   - LevelDetail: individual protocol messages
//   - LevelDebug: everything including single queries
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "lex", parentID)
//	defer span.End("")
package trace
