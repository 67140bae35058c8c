package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"inkwell/internal/diagfmt"
	"inkwell/internal/driver"
	"inkwell/internal/version"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.js|directory>...",
	Short: "Lint JavaScript files or directories",
	Long:  `Run the lint rules over files, or over every *.js, *.mjs and *.cjs file within directories`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers (0 = [analysis].jobs or auto)")
	diagCmd.Flags().Int("context", 0, "lines of source context around each diagnostic")
	diagCmd.Flags().Bool("no-cache", false, "disable the on-disk result cache")
	diagCmd.Flags().Bool("clear-cache", false, "drop the on-disk result cache before running")
	diagCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	diagCmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
}

type diagOptions struct {
	format           string
	jobs             int
	context          int
	noCache          bool
	clearCache       bool
	warningsAsErrors bool
	fullPath         bool
	progress         progressMode
}

// progressMode is the --ui setting of diag.
type progressMode uint8

const (
	progressAuto progressMode = iota
	progressOn
	progressOff
)

func parseProgressMode(value string) (progressMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return progressAuto, nil
	case "on":
		return progressOn, nil
	case "off":
		return progressOff, nil
	}
	return progressAuto, fmt.Errorf("diag: --ui must be auto, on or off, got %q", value)
}

// showProgress reports whether the batch runs under the progress view.
// json and sarif output never does; auto follows stderr, where the view
// is drawn.
func (o diagOptions) showProgress(stderrTTY bool) bool {
	if o.format == "json" || o.format == "sarif" {
		return false
	}
	switch o.progress {
	case progressOn:
		return true
	case progressOff:
		return false
	}
	return stderrTTY
}

func readDiagOptions(cmd *cobra.Command) (diagOptions, error) {
	var opts diagOptions
	var err error
	flags := cmd.Flags()
	if opts.format, err = flags.GetString("format"); err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch opts.format {
	case "pretty", "short", "json", "sarif":
	default:
		return opts, fmt.Errorf("unknown format: %s", opts.format)
	}
	if opts.jobs, err = flags.GetInt("jobs"); err != nil {
		return opts, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if opts.context, err = flags.GetInt("context"); err != nil {
		return opts, fmt.Errorf("failed to get context flag: %w", err)
	}
	if opts.noCache, err = flags.GetBool("no-cache"); err != nil {
		return opts, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if opts.clearCache, err = flags.GetBool("clear-cache"); err != nil {
		return opts, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if opts.warningsAsErrors, err = flags.GetBool("warnings-as-errors"); err != nil {
		return opts, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if opts.fullPath, err = flags.GetBool("fullpath"); err != nil {
		return opts, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return opts, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if opts.progress, err = parseProgressMode(uiValue); err != nil {
		return opts, err
	}
	return opts, nil
}

// runDiagnose lints every file under args and prints the findings. It
// returns errFindings when any error-level diagnostic (or warning, with
// --warnings-as-errors) was reported.
func runDiagnose(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd)

	opts, err := readDiagOptions(cmd)
	if err != nil {
		return err
	}
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	jobs := opts.jobs
	if jobs == 0 {
		jobs = st.cfg.Analysis.Jobs
	}
	req := driver.Options{Jobs: jobs, Analysis: st.analysis}
	if !opts.noCache {
		cache, err := openCache(st.cfg.Analysis.CacheDir)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if opts.clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
		}
		req.Cache = cache
	}

	var results []driver.FileResult
	if opts.showProgress(isTerminal(os.Stderr)) {
		files, err := driver.ListFiles(args)
		if err != nil {
			return err
		}
		results, err = runDiagnoseWithUI(cmd.Context(), "inkwell diag", files, args, req)
		if err != nil {
			return err
		}
	} else {
		results, err = driver.AnalyzeFiles(cmd.Context(), args, req)
		if err != nil {
			return err
		}
	}

	files := make([]diagfmt.FileDiagnostics, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
			continue
		}
		files = append(files, diagfmt.FileDiagnostics{File: r.File, Diagnostics: r.Diagnostics})
	}

	pathMode := diagfmt.PathModeAuto
	if opts.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	base, _ := os.Getwd()
	out := cmd.OutOrStdout()
	switch opts.format {
	case "json":
		err = diagfmt.JSON(out, files, diagfmt.JSONOpts{IncludePositions: true, PathMode: pathMode, BaseDir: base})
	case "sarif":
		meta := diagfmt.SarifRunMeta{ToolName: "inkwell", ToolVersion: version.Version, InvocationArgs: os.Args[1:]}
		err = diagfmt.Sarif(out, files, meta, diagfmt.JSONOpts{PathMode: pathMode, BaseDir: base})
	default:
		colorOut, cerr := useColor(cmd, os.Stdout)
		if cerr != nil {
			return cerr
		}
		pretty := diagfmt.PrettyOpts{Color: colorOut, Context: opts.context, PathMode: pathMode, BaseDir: base}
		if opts.format == "short" {
			err = diagfmt.Short(out, files, pretty)
		} else {
			err = diagfmt.Pretty(out, files, pretty)
		}
	}
	if err != nil {
		return err
	}

	sum := driver.Summarize(results)
	if st.timings {
		printBatchTimings(os.Stderr, results, sum)
	}
	failed := sum.Errors > 0 || sum.Failed > 0 || (opts.warningsAsErrors && sum.Warnings > 0)
	if failed {
		return errFindings
	}
	return nil
}

func openCache(dir string) (*driver.DiskCache, error) {
	if dir != "" {
		return driver.NewDiskCache(dir)
	}
	return driver.OpenDiskCache("inkwell")
}

func printBatchTimings(w io.Writer, results []driver.FileResult, sum driver.Summary) {
	var total float64
	for _, r := range results {
		total += toMillis(r.Elapsed)
	}
	fmt.Fprintf(w, "files %d (cached %d, failed %d), diagnostics: %d error, %d warning, %d info\n",
		sum.Files, sum.Cached, sum.Failed, sum.Errors, sum.Warnings, sum.Infos)
	fmt.Fprintf(w, "analyzed %.1f ms (sum over files)\n", total)
	for _, r := range results {
		if r.Snapshot != nil && len(r.Snapshot.Timings.Phases) > 0 {
			fmt.Fprintf(w, "%s\n%s", r.Path, r.Snapshot.Timings.Summary())
		}
	}
}
