package domain

import (
	"path/filepath"
	"sort"
	"strings"
)

// ExtensionSet holds lower-cased file extensions without the leading period.
// The empty string matches files that have no extension.
type ExtensionSet map[string]struct{}

func NewExtensionSet(exts ...string) ExtensionSet {
	set := make(ExtensionSet, len(exts))
	for _, ext := range exts {
		set[normalizeExt(ext)] = struct{}{}
	}
	return set
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// ExtensionOf returns the text after the last period of the file name,
// lower-cased, or "" when there is none.
func ExtensionOf(path string) string {
	return normalizeExt(filepath.Ext(filepath.Base(path)))
}

func (s ExtensionSet) Matches(path string) bool {
	_, ok := s[ExtensionOf(path)]
	return ok
}

func (s ExtensionSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for ext := range s {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
