package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestVerbosefSilentUnlessVerbose(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Verbosef("walked %d dirs", 3)
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}

	New(&buf, true).Verbosef("walked %d dirs", 3)
	if got := buf.String(); got != "Verbose: walked 3 dirs\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestWarnfAndMeasure(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)
	logger.Warnf("skipping %s", "/p/a.jpg")
	stop := logger.Measure("Exporting")
	stop()

	out := buf.String()
	if !strings.Contains(out, "Warning: skipping /p/a.jpg") {
		t.Fatalf("missing warning in %q", out)
	}
	if !strings.Contains(out, "Verbose: Exporting took") {
		t.Fatalf("missing timing in %q", out)
	}
}

func TestNilWriterIsNoop(t *testing.T) {
	Logger{Verbose: true}.Infof("nothing")
}

func TestSkipfShowsReasonOnlyWhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Skipf("/p/broken.jpg", "EOF")
	if got := buf.String(); got != "Warning: skipping /p/broken.jpg\n" {
		t.Fatalf("unexpected output %q", got)
	}

	buf.Reset()
	New(&buf, true).Skipf("/p/broken.jpg", "EOF")
	if got := buf.String(); got != "Warning: skipping /p/broken.jpg: EOF\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
