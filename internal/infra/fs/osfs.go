package fs

import (
	"io/fs"
	"os"

	"github.com/karrick/godirwalk"
)

type OSFS struct{}

func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// WalkFiles visits regular files, and symlinks that resolve to regular files,
// in the order the directory entries are read.
func (OSFS) WalkFiles(root string, fn func(path string) error) error {
	return godirwalk.Walk(root, &godirwalk.Options{
		Unsorted: true,
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				return nil
			}
			if de.IsSymlink() {
				info, err := os.Stat(path)
				if err != nil || !info.Mode().IsRegular() {
					return nil
				}
				return fn(path)
			}
			if !de.IsRegular() {
				return nil
			}
			return fn(path)
		},
	})
}
