package analysis

import (
	"context"
	"fmt"
	"strconv"

	"inkwell/internal/decl"
	"inkwell/internal/diag"
	"inkwell/internal/lexer"
	"inkwell/internal/lint"
	"inkwell/internal/observ"
	"inkwell/internal/source"
	"inkwell/internal/trace"
)

// Options configures one analysis run.
type Options struct {
	// Name labels the text in traces and file positions ("buffer" if empty).
	Name string
	// Scanner runs the lint rules; nil means lint.NewScanner(0).
	Scanner *lint.Scanner
	// KeepNotes collects lexer notes into Snapshot.Notes.
	KeepNotes bool
}

// Analyze builds a Snapshot for text. Tracing comes from ctx. Only the
// first 4 GiB of text are analysed; the rest is ignored, never an error.
func Analyze(ctx context.Context, version uint64, text string, opts Options) *Snapshot {
	name := opts.Name
	if name == "" {
		name = "buffer"
	}
	scanner := opts.Scanner
	if scanner == nil {
		scanner = lint.NewScanner(0)
	}

	span, ctx := trace.BeginCtx(ctx, trace.ScopePass, "analyze")
	span.WithExtra("version", strconv.FormatUint(version, 10))
	timer := observ.NewTimer()

	snap := &Snapshot{
		Version: version,
		File:    source.Virtual(name, text),
	}

	var notes *diag.Bag
	var dedup *diag.DedupReporter
	lexOpts := lexer.Options{}
	if opts.KeepNotes {
		notes = diag.NewBag(0)
		dedup = diag.NewDedupReporter(diag.BagReporter{Bag: notes})
		lexOpts.Reporter = dedup
	}

	// 1) лексер
	done := phase(ctx, timer, "lex")
	snap.Tokens = lexer.New(text, lexOpts).All()
	done(fmt.Sprintf("%d tokens", len(snap.Tokens)))

	// 2) индекс объявлений
	done = phase(ctx, timer, "decl")
	snap.Decls = decl.Build(snap.Tokens, text)
	done(fmt.Sprintf("%d declarations", snap.Decls.Len()))

	// 3) линт по сырому тексту
	done = phase(ctx, timer, "lint")
	snap.Diagnostics = scanner.Scan(text)
	done(fmt.Sprintf("%d diagnostics", len(snap.Diagnostics)))

	if notes != nil && notes.Len() > 0 {
		snap.Notes = append([]diag.Diagnostic(nil), notes.Items()...)
	}
	if n := dedup.Dropped(); n > 0 {
		span.WithExtra("duplicate_notes", strconv.Itoa(n))
	}
	snap.Timings = timer.Report()
	span.End(name)
	return snap
}

func phase(ctx context.Context, timer *observ.Timer, name string) func(note string) {
	sp, _ := trace.BeginCtx(ctx, trace.ScopePass, name)
	end := timer.Track(name)
	return func(note string) {
		end(note)
		sp.End(note)
	}
}

// Builder owns the version counter for a sequence of snapshots of one
// buffer. Versions start at 1.
type Builder struct {
	opts    Options
	version uint64
}

func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts}
}

// Rebuild analyses text under the next version.
func (b *Builder) Rebuild(ctx context.Context, text string) *Snapshot {
	b.version++
	return Analyze(ctx, b.version, text, b.opts)
}

// Version returns the version of the last Rebuild, 0 if none.
func (b *Builder) Version() uint64 {
	return b.version
}

// Reset forgets the version history.
func (b *Builder) Reset() {
	b.version = 0
}
