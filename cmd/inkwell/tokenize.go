package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inkwell/internal/analysis"
	"inkwell/internal/diagfmt"
	"inkwell/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.js",
	Short: "Tokenize a JavaScript file",
	Long:  `Tokenize breaks a JavaScript file into highlighting tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd)
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	file, err := source.Load(filePath)
	if err != nil {
		return err
	}
	opts := st.analysis
	opts.Name = file.Path
	opts.KeepNotes = true
	snap := analysis.Analyze(cmd.Context(), 1, file.Content, opts)

	// Замечания лексера в stderr
	if len(snap.Notes) > 0 {
		colorErr, err := useColor(cmd, os.Stderr)
		if err != nil {
			return err
		}
		notes := []diagfmt.FileDiagnostics{{File: snap.File, Diagnostics: snap.Notes}}
		if err := diagfmt.Pretty(os.Stderr, notes, diagfmt.PrettyOpts{Color: colorErr}); err != nil {
			return err
		}
	}
	if st.timings {
		fmt.Fprint(os.Stderr, snap.Timings.Summary())
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return diagfmt.FormatTokensJSON(out, snap.File, snap.Tokens)
	}
	colorOut, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	return diagfmt.FormatTokensPretty(out, snap.File, snap.Tokens, colorOut)
}
