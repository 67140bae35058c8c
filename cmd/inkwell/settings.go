package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"inkwell/internal/analysis"
	"inkwell/internal/config"
	"inkwell/internal/engine"
	"inkwell/internal/protocol"
)

// settings is the merged view of inkwell.toml and global flags.
type settings struct {
	cfg        config.Config
	configPath string
	timings    bool
	analysis   analysis.Options
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()
	explicit, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics < 0 {
		return nil, fmt.Errorf("--max-diagnostics must be >= 0")
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	cfg, path, err := config.Resolve(explicit, ".")
	if err != nil {
		return nil, err
	}
	scanner, err := cfg.Scanner(maxDiagnostics)
	if err != nil {
		return nil, err
	}
	return &settings{
		cfg:        cfg,
		configPath: path,
		timings:    timings,
		analysis:   analysis.Options{Scanner: scanner},
	}, nil
}

// engineOptions builds the engine configuration for codec.
func (s *settings) engineOptions(codec protocol.Codec) engine.Options {
	return engine.Options{
		Codec:    codec,
		Analysis: s.analysis,
		Query:    s.cfg.QueryService(),
		Editor:   s.cfg.EditorPush(),
	}
}

// codec resolves a --codec flag value, falling back to [serve].codec.
func (s *settings) codec(flag string) (protocol.Codec, error) {
	name := flag
	if name == "" {
		name = s.cfg.Serve.Codec
	}
	return protocol.CodecByName(name)
}
