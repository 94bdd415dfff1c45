package presentation

import (
	"fmt"
	"io"

	"phodata/internal/domain"
)

type Printer struct {
	Writer  io.Writer
	Verbose bool
}

func (p Printer) PrintSummary(summary domain.ExportSummary) {
	fmt.Fprintf(p.Writer, "Wrote %d %s to %s (%s).\n", summary.Written, plural(summary.Written, "photo", "photos"), summary.Destination, summary.Format)
	fmt.Fprintf(p.Writer, "%d with GPS coordinates.\n", summary.WithGPS)

	if len(summary.Skipped) == 0 {
		return
	}

	fmt.Fprintln(p.Writer)
	fmt.Fprintf(p.Writer, "Skipped %d unreadable %s:\n", len(summary.Skipped), plural(len(summary.Skipped), "file", "files"))
	for _, line := range formatSkipLines(summary.Skipped, p.Verbose) {
		fmt.Fprintln(p.Writer, line)
	}
}

func formatSkipLines(skipped []domain.SkippedFile, verbose bool) []string {
	lines := make([]string, 0, len(skipped))
	for _, s := range skipped {
		if verbose {
			lines = append(lines, fmt.Sprintf("Skip %s  (%s)", s.Path, s.Reason))
		} else {
			lines = append(lines, "Skip "+s.Path)
		}
	}

	if verbose || len(lines) <= 4 {
		return lines
	}
	head := lines[:2]
	tail := lines[len(lines)-2:]
	return append(append(head, "..."), tail...)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
