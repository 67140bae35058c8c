// Package driver runs analysis over many files at once, in parallel and
// through an optional on-disk cache.
package driver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"inkwell/internal/analysis"
	"inkwell/internal/diag"
	"inkwell/internal/lint"
	"inkwell/internal/source"
	"inkwell/internal/trace"
)

type Options struct {
	// Jobs bounds parallelism; <= 0 means GOMAXPROCS.
	Jobs int
	// Analysis is applied to every file. Name is replaced by the file path.
	Analysis analysis.Options
	// Cache may be nil.
	Cache    *DiskCache
	Progress ProgressSink
}

// FileResult holds the outcome for one file. Snapshot is nil for cache hits
// and for files that failed to load.
type FileResult struct {
	Path        string
	File        *source.File
	Snapshot    *analysis.Snapshot
	Diagnostics []diag.Diagnostic
	Tokens      int
	Decls       int
	Cached      bool
	Err         error
	Elapsed     time.Duration
}

// AnalyzeFiles analyses every file in paths (see ListFiles) and returns
// results in path order. Per-file load errors are reported in FileResult.Err;
// the returned error is for listing failures and cancellation.
func AnalyzeFiles(ctx context.Context, paths []string, opts Options) ([]FileResult, error) {
	files, err := ListFiles(paths)
	if err != nil {
		return nil, err
	}
	span, ctx := trace.BeginCtx(ctx, trace.ScopeDriver, "driver.analyze")
	defer span.End(fmt.Sprintf("%d files", len(files)))

	for _, f := range files {
		emit(opts.Progress, Event{File: f, Stage: StageLoad, Status: StatusQueued})
	}
	if len(files) == 0 {
		return nil, nil
	}

	scanner := opts.Analysis.Scanner
	if scanner == nil {
		scanner = lint.NewScanner(0)
	}
	analysisOpts := opts.Analysis
	analysisOpts.Scanner = scanner
	rules := RulesDigest(scanner)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = analyzeOne(gctx, path, analysisOpts, rules, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	emit(opts.Progress, Event{Stage: StageAnalyze, Status: StatusDone})
	return results, nil
}

func analyzeOne(ctx context.Context, path string, aopts analysis.Options, rules Digest, opts Options) FileResult {
	start := time.Now()
	res := FileResult{Path: path}
	tracer := trace.FromContext(ctx)

	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	file, err := source.Load(path)
	if err != nil {
		res.Err = err
		res.Elapsed = time.Since(start)
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err, Elapsed: res.Elapsed})
		return res
	}
	res.File = file

	key := CacheKey(file, rules)
	if opts.Cache != nil {
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			// испорченная запись: считаем промахом и перезапишем
			trace.Point(tracer, trace.ScopePass, "cache.corrupt", path+": "+err.Error())
		}
		if hit {
			res.Cached = true
			res.Tokens = payload.Tokens
			res.Decls = payload.Decls
			res.Diagnostics = fromDiskPayload(&payload)
			res.Elapsed = time.Since(start)
			emit(opts.Progress, Event{File: path, Stage: StageCache, Status: StatusCached, Elapsed: res.Elapsed})
			return res
		}
	}

	emit(opts.Progress, Event{File: path, Stage: StageAnalyze, Status: StatusWorking})
	aopts.Name = path
	snap := analysis.Analyze(ctx, 1, file.Content, aopts)
	res.Snapshot = snap
	res.Diagnostics = snap.Diagnostics
	res.Tokens = len(snap.Tokens)
	res.Decls = snap.Decls.Len()

	if opts.Cache != nil {
		payload := toDiskPayload(path, Digest(file.Hash), res.Tokens, res.Decls, res.Diagnostics)
		if err := opts.Cache.Put(key, payload); err != nil {
			trace.Point(tracer, trace.ScopePass, "cache.put", path+": "+err.Error())
		}
	}
	res.Elapsed = time.Since(start)
	emit(opts.Progress, Event{File: path, Stage: StageAnalyze, Status: StatusDone, Elapsed: res.Elapsed})
	return res
}

// Summary counts diagnostics by severity across results.
type Summary struct {
	Files    int
	Cached   int
	Failed   int
	Errors   int
	Warnings int
	Infos    int
}

func Summarize(results []FileResult) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		if r.Cached {
			s.Cached++
		}
		if r.Err != nil {
			s.Failed++
		}
		for _, d := range r.Diagnostics {
			switch d.Severity {
			case diag.SevError:
				s.Errors++
			case diag.SevWarning:
				s.Warnings++
			default:
				s.Infos++
			}
		}
	}
	return s
}
