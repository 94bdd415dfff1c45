package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"phodata/internal/domain"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"PHODATA_CONFIG", "PHODATA_FORMAT", "PHODATA_OUTPUT", "PHODATA_EXTENSIONS", "PHODATA_ON_ERROR", "PHODATA_VERBOSE"} {
		t.Setenv(key, "")
	}
}

func TestResolveDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Resolve(Options{Root: "/photos", Format: "sqlite"}, StandardDefaults())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output != "photos.db" {
		t.Fatalf("expected photos.db, got %s", cfg.Output)
	}
	if cfg.Policy != domain.PolicyAbort {
		t.Fatalf("expected abort policy, got %s", cfg.Policy)
	}
	if !reflect.DeepEqual(cfg.Extensions.Sorted(), []string{"jpg"}) {
		t.Fatalf("unexpected extensions %v", cfg.Extensions.Sorted())
	}
	if !filepath.IsAbs(cfg.Root) {
		t.Fatalf("expected absolute root, got %s", cfg.Root)
	}
}

func TestResolveDefaultOutputPerFormat(t *testing.T) {
	clearEnv(t)
	for format, want := range map[string]string{"csv": "photos.csv", "CSV": "photos.csv", "duckdb": "photos.duckdb"} {
		cfg, err := Resolve(Options{Root: "/photos", Format: format}, StandardDefaults())
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", format, err)
		}
		if cfg.Output != want {
			t.Fatalf("%s: expected %s, got %s", format, want, cfg.Output)
		}
	}
}

func TestResolveRejectsBadValues(t *testing.T) {
	clearEnv(t)
	cases := []Options{
		{Format: "csv"},
		{Root: "/photos"},
		{Root: "/photos", Format: "parquet"},
		{Root: "/photos", Format: "csv", OnError: "retry"},
	}
	for _, opts := range cases {
		if _, err := Resolve(opts, StandardDefaults()); err == nil {
			t.Fatalf("expected error for %+v", opts)
		}
	}
}

func TestResolveExtensionsSplitAndNormalise(t *testing.T) {
	clearEnv(t)
	cfg, err := Resolve(Options{Root: "/photos", Format: "csv", Extensions: []string{"JPG, .jpeg", "heic"}}, StandardDefaults())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Extensions.Sorted(), []string{"heic", "jpeg", "jpg"}) {
		t.Fatalf("unexpected extensions %v", cfg.Extensions.Sorted())
	}
}

func TestResolvePrecedence(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "phodata.yaml")
	content := "format: duckdb\noutput: from-file.duckdb\nextensions: [jpg, tif]\non_error: skip\nverbose: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PHODATA_CONFIG", path)
	t.Setenv("PHODATA_OUTPUT", "from-env.duckdb")

	cfg, err := Resolve(Options{Root: "/photos"}, StandardDefaults())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Format != domain.FormatDuckDB || cfg.Policy != domain.PolicySkip || !cfg.Verbose {
		t.Fatalf("expected file values, got %+v", cfg)
	}
	if cfg.Output != "from-env.duckdb" {
		t.Fatalf("expected env to beat file, got %s", cfg.Output)
	}
	if !reflect.DeepEqual(cfg.Extensions.Sorted(), []string{"jpg", "tif"}) {
		t.Fatalf("unexpected extensions %v", cfg.Extensions.Sorted())
	}

	cfg, err = Resolve(Options{Root: "/photos", Format: "csv", Output: "flag.csv"}, StandardDefaults())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Format != domain.FormatCSV || cfg.Output != "flag.csv" {
		t.Fatalf("expected flags to win, got %+v", cfg)
	}
}

func TestResolveMissingConfigFile(t *testing.T) {
	clearEnv(t)
	_, err := Resolve(Options{Root: "/photos", Format: "csv", ConfigFile: filepath.Join(t.TempDir(), "none.yaml")}, StandardDefaults())
	if err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
