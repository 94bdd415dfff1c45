package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"phodata/internal/domain"
)

// Defaults are passed explicitly so callers and tests can swap them.
type Defaults struct {
	CSVOutput    string
	SQLiteOutput string
	DuckDBOutput string
	Extensions   []string
	Policy       domain.ErrorPolicy
}

func StandardDefaults() Defaults {
	return Defaults{
		CSVOutput:    "photos.csv",
		SQLiteOutput: "photos.db",
		DuckDBOutput: "photos.duckdb",
		Extensions:   []string{"jpg"},
		Policy:       domain.PolicyAbort,
	}
}

func (d Defaults) OutputFor(format domain.Format) string {
	switch format {
	case domain.FormatSQLite:
		return d.SQLiteOutput
	case domain.FormatDuckDB:
		return d.DuckDBOutput
	default:
		return d.CSVOutput
	}
}

// Options are the raw command-line values. Empty fields fall back to the
// environment, then the config file, then Defaults.
type Options struct {
	Root       string
	Format     string
	Output     string
	Extensions []string
	OnError    string
	ConfigFile string
	Verbose    bool
	TUI        bool
}

type Config struct {
	Root       string
	Format     domain.Format
	Output     string
	Extensions domain.ExtensionSet
	Policy     domain.ErrorPolicy
	Verbose    bool
	TUI        bool
}

type fileConfig struct {
	Format     string   `yaml:"format"`
	Output     string   `yaml:"output"`
	Extensions []string `yaml:"extensions"`
	OnError    string   `yaml:"on_error"`
	Verbose    bool     `yaml:"verbose"`
}

func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("failed to read config file at %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return fc, nil
}

func Resolve(opts Options, defaults Defaults) (Config, error) {
	var fc fileConfig
	configPath := firstNonEmpty(opts.ConfigFile, envOrEmpty("PHODATA_CONFIG"))
	if configPath != "" {
		loaded, err := loadFile(configPath)
		if err != nil {
			return Config{}, err
		}
		fc = loaded
	}

	if strings.TrimSpace(opts.Root) == "" {
		return Config{}, errors.New("root directory is required")
	}
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return Config{}, fmt.Errorf("invalid root directory: %w", err)
	}

	rawFormat := firstNonEmpty(opts.Format, envOrEmpty("PHODATA_FORMAT"), fc.Format)
	if rawFormat == "" {
		return Config{}, errors.New("output format is required (csv, sqlite or duckdb)")
	}
	format, err := domain.ParseFormat(rawFormat)
	if err != nil {
		return Config{}, err
	}

	rawPolicy := firstNonEmpty(opts.OnError, envOrEmpty("PHODATA_ON_ERROR"), fc.OnError, string(defaults.Policy))
	policy, err := domain.ParseErrorPolicy(rawPolicy)
	if err != nil {
		return Config{}, err
	}

	exts := splitList(opts.Extensions)
	if len(exts) == 0 {
		exts = splitList([]string{envOrEmpty("PHODATA_EXTENSIONS")})
	}
	if len(exts) == 0 {
		exts = splitList(fc.Extensions)
	}
	if len(exts) == 0 {
		exts = defaults.Extensions
	}

	return Config{
		Root:       root,
		Format:     format,
		Output:     firstNonEmpty(opts.Output, envOrEmpty("PHODATA_OUTPUT"), fc.Output, defaults.OutputFor(format)),
		Extensions: domain.NewExtensionSet(exts...),
		Policy:     policy,
		Verbose:    opts.Verbose || envTruthy("PHODATA_VERBOSE") || fc.Verbose,
		TUI:        opts.TUI,
	}, nil
}

// splitList flattens comma separated entries and drops blanks.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func envOrEmpty(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}
