package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTempSiblingIsUniqueAndHidden(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out", "photos.csv")
	a, err := TempSibling(dest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := TempSibling(dest)
	if a == b {
		t.Fatalf("expected unique temp paths")
	}
	if filepath.Dir(a) != filepath.Dir(dest) {
		t.Fatalf("expected sibling of %s, got %s", dest, a)
	}
	if !strings.HasPrefix(filepath.Base(a), ".photos.csv.") {
		t.Fatalf("unexpected temp name %s", a)
	}
	if _, err := os.Stat(filepath.Dir(dest)); err != nil {
		t.Fatalf("expected parent directory to exist: %v", err)
	}
}

func TestPromoteReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "photos.db")
	tmp := filepath.Join(dir, ".photos.db.tmp")
	writeFile(t, dest)
	if err := os.WriteFile(tmp, []byte("fresh"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Promote(tmp, dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil || string(data) != "fresh" {
		t.Fatalf("expected replaced content, got %q (%v)", data, err)
	}
	if _, err := os.Stat(tmp); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be gone")
	}
}

func TestDiscardIgnoresMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.tmp")
	writeFile(t, path)
	writeFile(t, path+".wal")

	if err := Discard(path, ".wal", "-journal"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("expected empty dir, got %d entries", len(entries))
	}
}
