package domain

import (
	"fmt"
	"strings"
	"time"
)

type Format string

const (
	FormatCSV    Format = "csv"
	FormatSQLite Format = "sqlite"
	FormatDuckDB Format = "duckdb"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatSQLite, FormatDuckDB:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (use csv, sqlite or duckdb)", s)
	}
}

// ErrorPolicy decides what happens when a discovered file cannot be decoded.
type ErrorPolicy string

const (
	PolicyAbort ErrorPolicy = "abort"
	PolicySkip  ErrorPolicy = "skip"
)

func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch p := ErrorPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyAbort, PolicySkip:
		return p, nil
	default:
		return "", fmt.Errorf("unknown error policy %q (use abort or skip)", s)
	}
}

type SkippedFile struct {
	Path   string
	Reason string
}

type ExportSummary struct {
	Format      Format
	Destination string
	Written     int
	Skipped     []SkippedFile
	WithGPS     int
	Elapsed     time.Duration
}
