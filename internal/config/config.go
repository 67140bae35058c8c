// Package config loads inkwell.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"inkwell/internal/diag"
	"inkwell/internal/lint"
	"inkwell/internal/protocol"
	"inkwell/internal/query"
	"inkwell/internal/trace"
)

// FileName is the name looked up by Find.
const FileName = "inkwell.toml"

type Config struct {
	Editor   EditorConfig   `toml:"editor"`
	Analysis AnalysisConfig `toml:"analysis"`
	Lint     LintConfig     `toml:"lint"`
	Hover    HoverConfig    `toml:"hover"`
	Serve    ServeConfig    `toml:"serve"`
}

type EditorConfig struct {
	HighlightWhitespace bool `toml:"highlight_whitespace"`
	HighlightIndent     bool `toml:"highlight_indent"`
}

type AnalysisConfig struct {
	// MaxDiagnostics caps diagnostics per text; 0 means unlimited.
	MaxDiagnostics int `toml:"max_diagnostics"`
	// Jobs bounds batch parallelism; 0 means GOMAXPROCS.
	Jobs int `toml:"jobs"`
	// CacheDir overrides the batch cache location.
	CacheDir string `toml:"cache_dir"`
}

type LintConfig struct {
	// NoDefaults drops the built-in console.log rule.
	NoDefaults bool       `toml:"no_defaults"`
	Rules      []LintRule `toml:"rules"`
}

type LintRule struct {
	Pattern  string `toml:"pattern"`
	Severity string `toml:"severity"`
	Message  string `toml:"message"`
}

// HoverConfig adds or overrides built-in hover docs, keyed by identifier.
type HoverConfig struct {
	Builtins map[string]string `toml:"builtins"`
}

type ServeConfig struct {
	Codec      string `toml:"codec"`
	Trace      string `toml:"trace"`
	TraceLevel string `toml:"trace_level"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Editor: EditorConfig{HighlightWhitespace: true, HighlightIndent: true},
		Serve:  ServeConfig{Codec: "json", TraceLevel: "off"},
	}
}

// Find walks up from startDir looking for inkwell.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses path over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads explicit when set, otherwise the nearest inkwell.toml above
// startDir, otherwise the defaults. The returned path is empty for defaults.
func Resolve(explicit, startDir string) (Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

func (c Config) Validate() error {
	if c.Analysis.MaxDiagnostics < 0 {
		return fmt.Errorf("[analysis].max_diagnostics must be >= 0, got %d", c.Analysis.MaxDiagnostics)
	}
	if c.Analysis.Jobs < 0 {
		return fmt.Errorf("[analysis].jobs must be >= 0, got %d", c.Analysis.Jobs)
	}
	if _, err := c.LintRules(); err != nil {
		return err
	}
	if _, err := protocol.CodecByName(c.Serve.Codec); err != nil {
		return fmt.Errorf("[serve].codec: %w", err)
	}
	if _, err := trace.ParseLevel(c.Serve.TraceLevel); err != nil {
		return fmt.Errorf("[serve].trace_level: %w", err)
	}
	for name, doc := range c.Hover.Builtins {
		if strings.TrimSpace(name) == "" || strings.TrimSpace(doc) == "" {
			return fmt.Errorf("[hover].builtins: empty entry %q", name)
		}
	}
	return nil
}

// LintRules converts [[lint.rules]] entries. Rule i gets code LintCustom+i.
func (c Config) LintRules() ([]lint.Rule, error) {
	rules := make([]lint.Rule, 0, len(c.Lint.Rules))
	for i, r := range c.Lint.Rules {
		sev := diag.SevWarning
		if r.Severity != "" {
			parsed, err := diag.ParseSeverity(r.Severity)
			if err != nil {
				return nil, fmt.Errorf("[[lint.rules]] #%d: %w", i+1, err)
			}
			sev = parsed
		}
		rule := lint.Rule{
			Pattern:  r.Pattern,
			Severity: sev,
			Message:  r.Message,
			Code:     diag.LintCustom + diag.Code(i),
		}
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("[[lint.rules]] #%d: %w", i+1, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// Scanner builds the lint scanner. maxOverride > 0 wins over
// [analysis].max_diagnostics.
func (c Config) Scanner(maxOverride int) (*lint.Scanner, error) {
	extra, err := c.LintRules()
	if err != nil {
		return nil, err
	}
	limit := c.Analysis.MaxDiagnostics
	if maxOverride > 0 {
		limit = maxOverride
	}
	if c.Lint.NoDefaults {
		return &lint.Scanner{Rules: extra, Max: limit}, nil
	}
	return lint.NewScanner(limit, extra...), nil
}

func (c Config) QueryService() *query.Service {
	return query.New(query.Options{Builtins: c.Hover.Builtins})
}

func (c Config) EditorPush() protocol.EditorConfig {
	return protocol.EditorConfig{
		HighlightWhitespace: c.Editor.HighlightWhitespace,
		HighlightIndent:     c.Editor.HighlightIndent,
	}
}
